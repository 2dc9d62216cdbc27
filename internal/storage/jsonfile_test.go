package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/miskatonicsociety/keeperbot/internal/character"
)

func sampleRecords() map[string]*character.Record {
	return map[string]*character.Record{
		"user1": {
			Nickname:   "小明",
			Attributes: map[string]int{"STR": 80, "DEX": 75, "SAN": 50},
			Skills:     map[string]int{"图书馆": 60},
			CoreTotal:  155,
		},
		"user2": {
			Nickname:   "小刚",
			Attributes: map[string]int{"STR": 45},
			Skills:     map[string]int{},
			CoreTotal:  45,
		},
	}
}

func TestJSONFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "characters.json")
	backend := NewJSONFile(path)

	want := sampleRecords()
	if err := backend.Save(want); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := backend.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("loaded %d records, expected %d", len(got), len(want))
	}
	rec := got["user1"]
	if rec == nil || rec.Nickname != "小明" || rec.Attributes["STR"] != 80 || rec.Skills["图书馆"] != 60 {
		t.Errorf("user1 round trip mismatch: %+v", rec)
	}
}

func TestJSONFileMissingFile(t *testing.T) {
	backend := NewJSONFile(filepath.Join(t.TempDir(), "absent.json"))
	got, err := backend.Load()
	if err != nil {
		t.Fatalf("Load of missing file should not error, got: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Load of missing file = %d records, expected empty", len(got))
	}
}

func TestJSONFileCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewJSONFile(path).Load(); err == nil {
		t.Error("Load of corrupt file should error")
	}
}

func TestOpenSelectsDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Path = filepath.Join(t.TempDir(), "characters.json")

	backend, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if _, ok := backend.(*JSONFile); !ok {
		t.Errorf("default driver = %T, expected *JSONFile", backend)
	}

	cfg.Driver = "bogus"
	if _, err := Open(cfg); err == nil {
		t.Error("Open with unknown driver should error")
	}
}
