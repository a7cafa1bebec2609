package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/xonecas/hitext/internal/highlight"
	"github.com/xonecas/hitext/internal/presets"
	"github.com/xonecas/hitext/internal/rules"
	"github.com/xonecas/hitext/internal/style"
	"github.com/xonecas/hitext/internal/theme"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_RequiresPath(t *testing.T) {
	if _, err := Load(""); err == nil || !strings.Contains(err.Error(), "config path is required") {
		t.Errorf("Load(\"\") error = %v", err)
	}
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("Load(missing) error = %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
theme = "dracula"
presets = ["url"]
log_level = "debug"

[font]
family = "Iosevka"
size = 15

[store]
path = "/tmp/hitext-rules.db"

[[rules]]
pattern = "TODO|FIXME"
flags = ["ignorecase"]
foreground = "#ff5555"
traits = ["bold"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Theme != "dracula" {
		t.Errorf("theme = %q, want dracula", cfg.Theme)
	}
	if !slices.Equal(cfg.Presets, []string{"url"}) {
		t.Errorf("presets = %v, want [url]", cfg.Presets)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %q, want debug", cfg.LogLevel)
	}
	if got := cfg.Font.Font(); got != (style.Font{Family: "Iosevka", Size: 15}) {
		t.Errorf("font = %v", got)
	}
	if cfg.Store.Path != "/tmp/hitext-rules.db" {
		t.Errorf("store.path = %q", cfg.Store.Path)
	}
	if len(cfg.Rules) != 1 || !slices.Equal(cfg.Rules[0].Flags, []string{"ignorecase"}) {
		t.Fatalf("rules = %+v", cfg.Rules)
	}

	rs, err := cfg.RuleList()
	if err != nil {
		t.Fatalf("RuleList: %v", err)
	}
	if len(rs) != len(presets.URL())+1 {
		t.Errorf("got %d rules, want %d", len(rs), len(presets.URL())+1)
	}

	st := highlight.Highlight("a todo here", rs, cfg.Base())
	if fg, ok := st.At(3).Color(style.KeyForeground); !ok || fg != style.RGB(0xff, 0x55, 0x55) {
		t.Errorf("fg at 3 = %v, %v", fg, ok)
	}
	if !st.At(3).Font().Traits.Has(style.Bold) {
		t.Error("expected bold at 3")
	}
	if fam := st.At(0).Font().Family; fam != "Iosevka" {
		t.Errorf("family = %q, want Iosevka", fam)
	}
}

func TestLoad_KeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `log_level = "warn"`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != theme.DefaultName {
		t.Errorf("theme = %q, want %q", cfg.Theme, theme.DefaultName)
	}
	if !slices.Equal(cfg.Presets, presets.Names()) {
		t.Errorf("presets = %v, want %v", cfg.Presets, presets.Names())
	}
	if cfg.Font.Font() != style.DefaultFont {
		t.Errorf("font = %v, want default", cfg.Font.Font())
	}
}

func TestLoad_ParseError(t *testing.T) {
	_, err := Load(writeConfig(t, `theme = `))
	if err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Errorf("error = %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HITEXT_THEME", "monokai")
	t.Setenv("HITEXT_LOG_LEVEL", "error")
	t.Setenv("HITEXT_STORE", "/var/lib/hitext.db")

	cfg, err := Load(writeConfig(t, `theme = "dracula"`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "monokai" || cfg.LogLevel != "error" || cfg.Store.Path != "/var/lib/hitext.db" {
		t.Errorf("overrides not applied: theme=%q log_level=%q store=%q", cfg.Theme, cfg.LogLevel, cfg.Store.Path)
	}
}

func TestLoadDefault_AppliesEnv(t *testing.T) {
	t.Setenv("HITEXT_THEME", "monokai")
	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if cfg.Theme != "monokai" {
		t.Errorf("theme = %q, want monokai", cfg.Theme)
	}

	t.Setenv("HITEXT_THEME", "no-such-theme")
	if _, err := LoadDefault(); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Theme = "no-such-theme"
	cfg.Presets = []string{"markdown", "rst"}
	cfg.LogLevel = "loud"
	cfg.Font.Size = -1
	cfg.Rules = []rules.Spec{{Pattern: "("}}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{`theme="no-such-theme"`, `"rst"`, `log_level="loud"`, "font.size", "rules: rule 0"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
	if !errors.Is(err, rules.ErrInvalidPattern) {
		t.Errorf("error does not wrap ErrInvalidPattern: %v", err)
	}
}

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	rs, err := cfg.RuleList()
	if err != nil {
		t.Fatalf("RuleList: %v", err)
	}
	if want := len(presets.Markdown(cfg.Options())) + len(presets.URL()); len(rs) != want {
		t.Errorf("got %d rules, want %d", len(rs), want)
	}
	if cfg.Base().Foreground != theme.Load(theme.DefaultName).Fg {
		t.Errorf("base fg = %v", cfg.Base().Foreground)
	}
}

func TestRuleListFor_NamedPresets(t *testing.T) {
	cfg := Default()
	cfg.Rules = []rules.Spec{{Pattern: "TODO", Traits: []string{"bold"}}}

	rs, err := cfg.RuleListFor([]string{"url"})
	if err != nil {
		t.Fatalf("RuleListFor: %v", err)
	}
	if len(rs) != len(presets.URL())+1 {
		t.Fatalf("got %d rules, want %d", len(rs), len(presets.URL())+1)
	}
	if rs[len(rs)-1].Pattern.String() != "TODO" {
		t.Errorf("custom rule not last: %s", rs[len(rs)-1].Pattern)
	}

	rs, err = cfg.RuleListFor(nil)
	if err != nil || len(rs) != 1 {
		t.Errorf("RuleListFor(nil) = %d rules, %v", len(rs), err)
	}

	if _, err := cfg.RuleListFor([]string{"rst"}); !errors.Is(err, presets.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}

	cfg.Rules = []rules.Spec{{Pattern: "("}}
	if _, err := cfg.RuleListFor(nil); !errors.Is(err, rules.ErrInvalidPattern) {
		t.Errorf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestStoreConfig_PathOrDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	for _, tt := range []struct {
		path string
		want string
	}{
		{"", filepath.Join(home, ".config", "hitext", "rules.db")},
		{"~/rules.db", filepath.Join(home, "rules.db")},
		{"/abs/rules.db", "/abs/rules.db"},
	} {
		got, err := StoreConfig{Path: tt.path}.PathOrDefault()
		if err != nil {
			t.Fatalf("PathOrDefault(%q): %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("PathOrDefault(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}

	dir, err := EnsureDataDir()
	if err != nil {
		t.Fatalf("EnsureDataDir: %v", err)
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Errorf("data dir %s not created: %v", dir, err)
	}
}
