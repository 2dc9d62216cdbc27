package template

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	got := Render("🎲 {nickname}掷出{total}", map[string]any{
		"nickname": "小明",
		"total":    42,
	})
	want := "🎲 小明掷出42"
	if got != want {
		t.Errorf("Render = %q, expected %q", got, want)
	}
}

func TestRenderMissingKeyStaysLiteral(t *testing.T) {
	got := Render("{nickname}：{unknown_field}", map[string]any{"nickname": "小明"})
	if !strings.Contains(got, "{unknown_field}") {
		t.Errorf("unresolved placeholder should survive literally, got %q", got)
	}
	if !strings.HasPrefix(got, "小明") {
		t.Errorf("resolved placeholder missing, got %q", got)
	}
}

func TestRenderExtraDataIgnored(t *testing.T) {
	got := Render("plain text", map[string]any{"nickname": "小明"})
	if got != "plain text" {
		t.Errorf("Render = %q, expected unchanged text", got)
	}
}

func TestLookup(t *testing.T) {
	overrides := map[string]string{"roll": "custom {total}"}

	if got := Lookup(overrides, "roll"); got != "custom {total}" {
		t.Errorf("Lookup should prefer override, got %q", got)
	}
	if got := Lookup(overrides, "check"); got != Defaults["check"] {
		t.Errorf("Lookup should fall back to default, got %q", got)
	}
	if got := Lookup(nil, "san_check"); got != Defaults["san_check"] {
		t.Errorf("Lookup with nil overrides should use default, got %q", got)
	}
	if got := Lookup(map[string]string{"roll": ""}, "roll"); got != Defaults["roll"] {
		t.Errorf("empty override should fall back to default, got %q", got)
	}
}

func TestDefaultsComplete(t *testing.T) {
	keys := []string{
		"roll", "check", "attr_check", "attr_check_mod", "san_check",
		"character_output", "character_query", "skill_query", "single_skill",
		"import_success", "import_auto_create_tip", "import_update_tip",
		"import_error", "delete_success", "delete_character", "delete_error",
		"rename_success", "rename_error",
	}
	for _, key := range keys {
		if Defaults[key] == "" {
			t.Errorf("missing default template for %q", key)
		}
	}
}
