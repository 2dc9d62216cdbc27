package attribute

import (
	"math/rand"
	"testing"

	"github.com/miskatonicsociety/keeperbot/internal/dice"
)

func TestResolveAlias(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"str", "力量"},
		{"STR", "力量"},
		{"  dex  ", "敏捷"},
		{"运气", "幸运"},
		{"灵感", "智力"},
		{"san值", "理智"},
		{"克苏鲁神话", "克苏鲁"},
		{"cm", "克苏鲁"},
		{"图书馆使用", "图书馆"},
		{"力量", "力量"},   // canonical names pass through
		{"开根号", "开根号"}, // unknown names pass through trimmed
	}

	for _, tt := range tests {
		if got := ResolveAlias(tt.raw); got != tt.want {
			t.Errorf("ResolveAlias(%q) = %q, expected %q", tt.raw, got, tt.want)
		}
	}
}

func TestCatalogShape(t *testing.T) {
	if len(CoreShorts) != 9 {
		t.Errorf("expected 9 core attributes, got %d: %v", len(CoreShorts), CoreShorts)
	}
	if len(AutoShorts) != 6 {
		t.Errorf("expected 6 auto-computed attributes, got %d: %v", len(AutoShorts), AutoShorts)
	}

	for _, short := range []string{"STR", "CON", "SIZ", "DEX", "APP", "INT", "POW", "EDU", "LUCK"} {
		def, ok := ByShort(short)
		if !ok || !def.Core {
			t.Errorf("expected %s to be a core attribute", short)
		}
	}
	for _, short := range []string{"HP", "MP", "SAN", "DB", "DODGE", "MOV"} {
		def, ok := ByShort(short)
		if !ok || def.Core {
			t.Errorf("expected %s to be auto-computed", short)
		}
	}
}

func TestDamageBonusExpr(t *testing.T) {
	tests := []struct {
		str, siz int
		want     string
	}{
		{1, 0, "-2"}, // below table minimum falls back to -2
		{1, 1, "-2"},
		{30, 34, "-2"},
		{30, 35, "-1"},
		{40, 44, "-1"},
		{40, 45, "0"},
		{60, 64, "0"},
		{60, 65, "1d4"},
		{80, 84, "1d4"},
		{80, 85, "1d6"},
		{100, 104, "1d6"},
		{100, 105, "2d6"},
		{200, 200, "2d6"},
	}

	for _, tt := range tests {
		if got := DamageBonusExpr(tt.str, tt.siz); got != tt.want {
			t.Errorf("DamageBonusExpr(%d, %d) = %q, expected %q", tt.str, tt.siz, got, tt.want)
		}
	}
}

func TestMovement(t *testing.T) {
	tests := []struct {
		dex, str, siz int
		want          int
	}{
		{40, 40, 60, 7},  // both below SIZ
		{70, 70, 60, 9},  // both above SIZ
		{70, 40, 60, 8},  // mixed
		{60, 60, 60, 8},  // equal
		{40, 70, 60, 8},  // mixed
	}

	for _, tt := range tests {
		if got := Movement(tt.dex, tt.str, tt.siz); got != tt.want {
			t.Errorf("Movement(%d, %d, %d) = %d, expected %d", tt.dex, tt.str, tt.siz, got, tt.want)
		}
	}
}

func TestDefaultValue(t *testing.T) {
	r := dice.NewRoller(rand.NewSource(42))

	fixed := map[string]int{"生命": 12, "魔力": 10, "理智": 50}
	for name, want := range fixed {
		got, err := DefaultValue(name, r)
		if err != nil {
			t.Fatalf("DefaultValue(%q) error: %v", name, err)
		}
		if got != want {
			t.Errorf("DefaultValue(%q) = %d, expected %d", name, got, want)
		}
	}

	// 3d6 x 5 attributes range over [15, 90]
	for i := 0; i < 50; i++ {
		got, err := DefaultValue("力量", r)
		if err != nil {
			t.Fatalf("DefaultValue(力量) error: %v", err)
		}
		if got < 15 || got > 90 || got%5 != 0 {
			t.Errorf("DefaultValue(力量) = %d, expected multiple of 5 in [15, 90]", got)
		}
	}

	// (2d6+6) x 5 attributes range over [40, 90]
	for i := 0; i < 50; i++ {
		got, err := DefaultValue("教育", r)
		if err != nil {
			t.Fatalf("DefaultValue(教育) error: %v", err)
		}
		if got < 40 || got > 90 || got%5 != 0 {
			t.Errorf("DefaultValue(教育) = %d, expected multiple of 5 in [40, 90]", got)
		}
	}

	// derived attributes stay in their formula ranges
	for i := 0; i < 50; i++ {
		dodge, _ := DefaultValue("闪避", r)
		if dodge < 7 || dodge > 45 {
			t.Errorf("DefaultValue(闪避) = %d, expected [7, 45]", dodge)
		}
		mov, _ := DefaultValue("移动力", r)
		if mov < 7 || mov > 9 {
			t.Errorf("DefaultValue(移动力) = %d, expected 7-9", mov)
		}
	}

	if _, err := DefaultValue("不存在", r); err == nil {
		t.Error("DefaultValue on unknown name should fail")
	}
}

func TestGenerateSheet(t *testing.T) {
	r := dice.NewRoller(rand.NewSource(99))
	sheet := GenerateSheet(r)

	if len(sheet) != len(Catalog) {
		t.Fatalf("GenerateSheet produced %d values, expected %d", len(sheet), len(Catalog))
	}
	if sheet["HP"] != 12 || sheet["MP"] != 10 || sheet["SAN"] != 50 {
		t.Errorf("fixed defaults wrong: HP=%d MP=%d SAN=%d", sheet["HP"], sheet["MP"], sheet["SAN"])
	}
	for _, short := range CoreShorts {
		v := sheet[short]
		if v < 15 || v > 90 {
			t.Errorf("%s = %d, expected [15, 90]", short, v)
		}
	}
	if sheet["DODGE"] != sheet["DEX"]/2 {
		t.Errorf("DODGE = %d, expected DEX/2 = %d", sheet["DODGE"], sheet["DEX"]/2)
	}
	if got := Movement(sheet["DEX"], sheet["STR"], sheet["SIZ"]); sheet["MOV"] != got {
		t.Errorf("MOV = %d, expected %d", sheet["MOV"], got)
	}
}
