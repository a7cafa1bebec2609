package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/xonecas/hitext/internal/store"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := fmt.Sprintf(`presets = ["markdown", "url"]

[store]
path = %q

[[rules]]
pattern = "TODO"
foreground = "#ff5555"
traits = ["bold"]
`, filepath.Join(dir, "rules.db"))
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDumpStdin(t *testing.T) {
	cfg := writeTestConfig(t)
	out, err := run(t, "Visit https://example.com today", "dump", "--config", cfg, "--preset", "url")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[1], `[6,25) "https://example.com" `), lines[1])
	require.Contains(t, lines[1], "underline=single link=https://example.com")
}

func TestDumpDetectsFileType(t *testing.T) {
	cfg := writeTestConfig(t)
	dir := t.TempDir()

	src := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(src, []byte("# not a heading"), 0600))
	out, err := run(t, "", "dump", "--config", cfg, src)
	require.NoError(t, err)
	require.NotContains(t, out, "bold")

	doc := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(doc, []byte("# a heading"), 0600))
	out, err = run(t, "", "dump", "--config", cfg, doc)
	require.NoError(t, err)
	require.Contains(t, out, "+bold|expanded")
}

func TestRenderStripsToInput(t *testing.T) {
	cfg := writeTestConfig(t)
	input := "# Title\n\nSome *bold* text, a TODO and https://example.com\n"
	out, err := run(t, input, "render", "--config", cfg)
	require.NoError(t, err)
	require.NotEqual(t, input, out)
	require.Equal(t, input, ansi.Strip(out))
}

func TestRulesLifecycle(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := run(t, "", "rules", "save", "todo", "--config", cfg)
	require.NoError(t, err)
	require.Contains(t, out, `saved 1 rules as "todo"`)

	out, err = run(t, "", "rules", "list", "--config", cfg)
	require.NoError(t, err)
	require.Contains(t, out, "NAME")
	require.Regexp(t, `todo\s+1\s+`, out)

	out, err = run(t, "", "rules", "show", "todo", "--config", cfg)
	require.NoError(t, err)
	require.Contains(t, out, "[[rules]]")
	require.Contains(t, out, `pattern = "TODO"`)

	out, err = run(t, "a TODO", "dump", "--config", cfg, "--preset", "url", "--ruleset", "todo")
	require.NoError(t, err)
	require.Contains(t, out, `[2,6) "TODO" font=system-ui/13+bold fg=#ff5555`)

	_, err = run(t, "", "rules", "delete", "todo", "--config", cfg)
	require.NoError(t, err)

	_, err = run(t, "", "rules", "delete", "todo", "--config", cfg)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = run(t, "x", "dump", "--config", cfg, "--ruleset", "todo")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestPresetsCommand(t *testing.T) {
	cfg := writeTestConfig(t)
	out, err := run(t, "", "presets", "--config", cfg)
	require.NoError(t, err)
	require.Equal(t, "* markdown\n* url\n", out)
}

func TestBadInputs(t *testing.T) {
	cfg := writeTestConfig(t)

	_, err := run(t, "", "presets", "--config", cfg, "--log-level", "loud")
	require.ErrorContains(t, err, "invalid log level")

	_, err = run(t, "x", "dump", "--config", cfg, "--preset", "rst")
	require.Error(t, err)

	_, err = run(t, "", "dump", "--config", cfg, filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)

	_, err = run(t, "", "presets", "--config", filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorContains(t, err, "config file not found")
}
