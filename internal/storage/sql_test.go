package storage

import (
	"path/filepath"
	"testing"
)

func TestSQLiteRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Driver = "sqlite"
	cfg.Path = filepath.Join(t.TempDir(), "characters.db")

	backend, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer backend.Close()

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
	if rec == nil || rec.Nickname != "小明" || rec.Attributes["DEX"] != 75 {
		t.Errorf("user1 round trip mismatch: %+v", rec)
	}
}

func TestSQLiteSaveReplaces(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Driver = "sqlite"
	cfg.Path = filepath.Join(t.TempDir(), "characters.db")

	backend, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer backend.Close()

	if err := backend.Save(sampleRecords()); err != nil {
		t.Fatalf("first Save error: %v", err)
	}

	// A save after deleting a user must not leave the stale row behind.
	remaining := sampleRecords()
	delete(remaining, "user2")
	if err := backend.Save(remaining); err != nil {
		t.Fatalf("second Save error: %v", err)
	}

	got, err := backend.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("loaded %d records after replace, expected 1", len(got))
	}
	if _, ok := got["user2"]; ok {
		t.Error("deleted user2 still present after Save")
	}
}
