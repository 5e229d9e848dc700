package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kobzarvs/qcode/internal/highlight"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestConfigDirEnv(t *testing.T) {
	t.Setenv("QCODE_CONFIG_HOME", "/tmp/qcode-config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/qcode-config" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/qcode-config")
	}

	t.Setenv("QCODE_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/xdg/qcode" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/xdg/qcode")
	}
}

func TestDefaultThemeCoversEveryCategory(t *testing.T) {
	theme := Default().Theme
	for _, cat := range highlight.Categories() {
		if theme.SyntaxColor(cat) == "" {
			t.Fatalf("no default colour for %v", cat)
		}
	}
	if theme.SyntaxColor(highlight.Default) != "" {
		t.Fatalf("Default category has a syntax colour")
	}
	if !theme.SyntaxIsBold(highlight.Keyword) || theme.SyntaxIsBold(highlight.String) {
		t.Fatalf("bold set = %v", theme.SyntaxBold)
	}
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv("QCODE_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.TabWidth != 4 || cfg.Completion.MinPrefix != 3 {
		t.Fatalf("cfg = %#v, want defaults", cfg)
	}
}

func TestLoadWithThemeAndOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QCODE_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "theme", "night.toml"), `
foreground = "#111111"
background = "#222222"
syntax-keyword = "#333333"
syntax-bold = []
`)

	writeFile(t, filepath.Join(dir, "config.toml"), `
[editor]
tab-width = 8
line-numbers = "off"
highlight-current-line = false
watch = false

[theme]
theme = "night"
syntax-string = "#123456"

[completion]
min-prefix = 2
wrap-around = true

[compiler]
command = "clang -fsyntax-only {file}"
detached = true

[keymap]
"ctrl+r" = "compile"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.TabWidth != 8 {
		t.Fatalf("TabWidth = %d, want 8", cfg.Editor.TabWidth)
	}
	if cfg.Editor.LineNumbers != "off" {
		t.Fatalf("LineNumbers = %q, want %q", cfg.Editor.LineNumbers, "off")
	}
	if cfg.Editor.HighlightCurrentLine || cfg.Editor.Watch {
		t.Fatalf("bool overrides not applied: %#v", cfg.Editor)
	}
	if cfg.Editor.MaxHighlightBytes != 8<<20 {
		t.Fatalf("MaxHighlightBytes = %d, want default", cfg.Editor.MaxHighlightBytes)
	}
	if cfg.Theme.Foreground != "#111111" || cfg.Theme.Background != "#222222" {
		t.Fatalf("theme file not merged: %#v", cfg.Theme)
	}
	if cfg.Theme.SyntaxKeyword != "#333333" {
		t.Fatalf("SyntaxKeyword = %q, want %q", cfg.Theme.SyntaxKeyword, "#333333")
	}
	if cfg.Theme.SyntaxString != "#123456" {
		t.Fatalf("SyntaxString = %q, want %q", cfg.Theme.SyntaxString, "#123456")
	}
	if cfg.Theme.SyntaxLineComment != "#008000" {
		t.Fatalf("SyntaxLineComment = %q, want default", cfg.Theme.SyntaxLineComment)
	}
	if cfg.Theme.SyntaxIsBold(highlight.Keyword) {
		t.Fatalf("theme cleared bold list but keyword still bold")
	}
	if cfg.Completion.MinPrefix != 2 || !cfg.Completion.WrapAround {
		t.Fatalf("Completion = %#v", cfg.Completion)
	}
	if cfg.Compiler.Command != "clang -fsyntax-only {file}" || !cfg.Compiler.Detached {
		t.Fatalf("Compiler = %#v", cfg.Compiler)
	}
	if cfg.Keymap["ctrl+r"] != "compile" {
		t.Fatalf("keymap ctrl+r = %q, want %q", cfg.Keymap["ctrl+r"], "compile")
	}
	if cfg.Keymap["ctrl+s"] != "save" {
		t.Fatalf("keymap ctrl+s = %q, want %q", cfg.Keymap["ctrl+s"], "save")
	}
}

func TestLoadThemeWrapped(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QCODE_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "theme", "wrapped.toml"), `
[theme]
foreground = "#aaaaaa"
syntax-block-comment = "#bbbbbb"
`)

	theme, err := LoadTheme("wrapped")
	if err != nil {
		t.Fatalf("LoadTheme error: %v", err)
	}
	if theme.Foreground != "#aaaaaa" {
		t.Fatalf("Foreground = %q, want %q", theme.Foreground, "#aaaaaa")
	}
	if theme.SyntaxColor(highlight.BlockComment) != "#bbbbbb" {
		t.Fatalf("SyntaxBlockComment = %q, want %q", theme.SyntaxBlockComment, "#bbbbbb")
	}
}

func TestLoadMissingThemeFails(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QCODE_CONFIG_HOME", dir)
	writeFile(t, filepath.Join(dir, "config.toml"), "[theme]\ntheme = \"ghost\"\n")
	if _, err := Load(); err == nil {
		t.Fatalf("Load with missing theme succeeded")
	}
}

func TestWordlistPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QCODE_CONFIG_HOME", dir)
	cfg := Default()
	got, err := cfg.WordlistPath()
	if err != nil {
		t.Fatalf("WordlistPath error: %v", err)
	}
	if got != filepath.Join(dir, "wordlist.txt") {
		t.Fatalf("WordlistPath = %q", got)
	}
	cfg.Completion.Wordlist = "/words"
	if got, _ := cfg.WordlistPath(); got != "/words" {
		t.Fatalf("WordlistPath = %q, want /words", got)
	}
}
