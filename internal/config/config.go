package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/kobzarvs/qcode/internal/highlight"
)

type EditorOptions struct {
	TabWidth             int    `toml:"tab-width"`
	LineNumbers          string `toml:"line-numbers"`
	HighlightCurrentLine bool   `toml:"highlight-current-line"`
	MaxHighlightBytes    int64  `toml:"max-highlight-bytes"`
	Watch                bool   `toml:"watch"`
}

type Theme struct {
	Theme                   string   `toml:"theme"`
	Foreground              string   `toml:"foreground"`
	Background              string   `toml:"background"`
	CurrentLineBackground   string   `toml:"current-line-background"`
	GutterForeground        string   `toml:"gutter-foreground"`
	GutterBackground        string   `toml:"gutter-background"`
	StatuslineForeground    string   `toml:"statusline-foreground"`
	StatuslineBackground    string   `toml:"statusline-background"`
	PopupForeground         string   `toml:"popup-foreground"`
	PopupBackground         string   `toml:"popup-background"`
	PopupSelectedForeground string   `toml:"popup-selected-foreground"`
	PopupSelectedBackground string   `toml:"popup-selected-background"`
	SyntaxKeyword           string   `toml:"syntax-keyword"`
	SyntaxNumber            string   `toml:"syntax-number"`
	SyntaxFunction          string   `toml:"syntax-function"`
	SyntaxOperator          string   `toml:"syntax-operator"`
	SyntaxDynamicFunction   string   `toml:"syntax-dynamic-function"`
	SyntaxString            string   `toml:"syntax-string"`
	SyntaxLineComment       string   `toml:"syntax-line-comment"`
	SyntaxBlockComment      string   `toml:"syntax-block-comment"`
	SyntaxBold              []string `toml:"syntax-bold"`
}

type Completion struct {
	Wordlist      string `toml:"wordlist"`
	MinPrefix     int    `toml:"min-prefix"`
	CaseSensitive bool   `toml:"case-sensitive"`
	WrapAround    bool   `toml:"wrap-around"`
}

type Compiler struct {
	Command  string `toml:"command"`
	Detached bool   `toml:"detached"`
}

type Config struct {
	Editor     EditorOptions     `toml:"editor"`
	Theme      Theme             `toml:"theme"`
	Completion Completion        `toml:"completion"`
	Compiler   Compiler          `toml:"compiler"`
	Keymap     map[string]string `toml:"keymap"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabWidth:             4,
			LineNumbers:          "absolute",
			HighlightCurrentLine: true,
			MaxHighlightBytes:    8 << 20,
			Watch:                true,
		},
		Theme: Theme{
			Foreground:              "#000000",
			Background:              "#FFFFFF",
			CurrentLineBackground:   "#B4DCFA",
			GutterForeground:        "#808080",
			GutterBackground:        "#C0C0C0",
			StatuslineForeground:    "#FFFFFF",
			StatuslineBackground:    "#404040",
			PopupForeground:         "#000000",
			PopupBackground:         "#E0E0E0",
			PopupSelectedForeground: "#FFFFFF",
			PopupSelectedBackground: "#3070C0",
			SyntaxKeyword:           "#000080",
			SyntaxNumber:            "#800080",
			SyntaxFunction:          "#0000FF",
			SyntaxOperator:          "#FF0000",
			SyntaxDynamicFunction:   "#800000",
			SyntaxString:            "#000080",
			SyntaxLineComment:       "#008000",
			SyntaxBlockComment:      "#008080",
			SyntaxBold:              []string{"keyword", "number"},
		},
		Completion: Completion{
			MinPrefix: 3,
		},
		Compiler: Compiler{
			Command: "g++ -fsyntax-only {file}",
		},
		Keymap: map[string]string{
			"left":      "move_left",
			"right":     "move_right",
			"up":        "move_up",
			"down":      "move_down",
			"home":      "line_start",
			"end":       "line_end",
			"ctrl+home": "file_start",
			"ctrl+end":  "file_end",
			"pgup":      "page_up",
			"pgdn":      "page_down",
			"enter":     "newline",
			"backspace": "backspace",
			"del":       "delete_char",
			"tab":       "insert_tab",
			"ctrl+s":    "save",
			"ctrl+q":    "quit",
			"ctrl+c":    "quit",
			"ctrl+e":    "complete",
			"ctrl+b":    "compile",
			"ctrl+t":    "toggle_errors",
			"ctrl+n":    "next_error",
			"ctrl+l":    "toggle_line_numbers",
			"ctrl+k":    "delete_line",
		},
	}
}

// SyntaxColor returns the configured colour for a category, "" for Default.
func (t Theme) SyntaxColor(cat highlight.Category) string {
	switch cat {
	case highlight.Keyword:
		return t.SyntaxKeyword
	case highlight.Number:
		return t.SyntaxNumber
	case highlight.Function:
		return t.SyntaxFunction
	case highlight.Operator:
		return t.SyntaxOperator
	case highlight.DynamicFunction:
		return t.SyntaxDynamicFunction
	case highlight.String:
		return t.SyntaxString
	case highlight.LineComment:
		return t.SyntaxLineComment
	case highlight.BlockComment:
		return t.SyntaxBlockComment
	}
	return ""
}

func (t Theme) SyntaxIsBold(cat highlight.Category) bool {
	for _, name := range t.SyntaxBold {
		if c, ok := highlight.ParseCategory(name); ok && c == cat {
			return true
		}
	}
	return false
}

// Load reads config.toml over the defaults. A named theme file is merged
// first and explicit [theme] keys win over it.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	md, err := toml.Decode(string(data), &userCfg)
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if userCfg.Editor.TabWidth > 0 {
		cfg.Editor.TabWidth = userCfg.Editor.TabWidth
	}
	if userCfg.Editor.LineNumbers != "" {
		cfg.Editor.LineNumbers = userCfg.Editor.LineNumbers
	}
	if md.IsDefined("editor", "highlight-current-line") {
		cfg.Editor.HighlightCurrentLine = userCfg.Editor.HighlightCurrentLine
	}
	if md.IsDefined("editor", "max-highlight-bytes") {
		cfg.Editor.MaxHighlightBytes = userCfg.Editor.MaxHighlightBytes
	}
	if md.IsDefined("editor", "watch") {
		cfg.Editor.Watch = userCfg.Editor.Watch
	}

	if userCfg.Theme.Theme != "" {
		theme, err := LoadTheme(userCfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		cfg.Theme.Theme = userCfg.Theme.Theme
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)

	if userCfg.Completion.Wordlist != "" {
		cfg.Completion.Wordlist = userCfg.Completion.Wordlist
	}
	if userCfg.Completion.MinPrefix > 0 {
		cfg.Completion.MinPrefix = userCfg.Completion.MinPrefix
	}
	if md.IsDefined("completion", "case-sensitive") {
		cfg.Completion.CaseSensitive = userCfg.Completion.CaseSensitive
	}
	if md.IsDefined("completion", "wrap-around") {
		cfg.Completion.WrapAround = userCfg.Completion.WrapAround
	}

	if md.IsDefined("compiler", "command") {
		cfg.Compiler.Command = userCfg.Compiler.Command
	}
	if md.IsDefined("compiler", "detached") {
		cfg.Compiler.Detached = userCfg.Compiler.Detached
	}

	for k, v := range userCfg.Keymap {
		cfg.Keymap[k] = v
	}
	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	set := func(d *string, s string) {
		if s != "" {
			*d = s
		}
	}
	set(&dst.Foreground, src.Foreground)
	set(&dst.Background, src.Background)
	set(&dst.CurrentLineBackground, src.CurrentLineBackground)
	set(&dst.GutterForeground, src.GutterForeground)
	set(&dst.GutterBackground, src.GutterBackground)
	set(&dst.StatuslineForeground, src.StatuslineForeground)
	set(&dst.StatuslineBackground, src.StatuslineBackground)
	set(&dst.PopupForeground, src.PopupForeground)
	set(&dst.PopupBackground, src.PopupBackground)
	set(&dst.PopupSelectedForeground, src.PopupSelectedForeground)
	set(&dst.PopupSelectedBackground, src.PopupSelectedBackground)
	set(&dst.SyntaxKeyword, src.SyntaxKeyword)
	set(&dst.SyntaxNumber, src.SyntaxNumber)
	set(&dst.SyntaxFunction, src.SyntaxFunction)
	set(&dst.SyntaxOperator, src.SyntaxOperator)
	set(&dst.SyntaxDynamicFunction, src.SyntaxDynamicFunction)
	set(&dst.SyntaxString, src.SyntaxString)
	set(&dst.SyntaxLineComment, src.SyntaxLineComment)
	set(&dst.SyntaxBlockComment, src.SyntaxBlockComment)
	if src.SyntaxBold != nil {
		dst.SyntaxBold = append([]string(nil), src.SyntaxBold...)
	}
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

// LoadTheme accepts both a bare theme file and one wrapped in [theme].
func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("load theme %q: %w", name, err)
	}
	var wrap struct {
		Theme *Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrap); err == nil && wrap.Theme != nil {
		return *wrap.Theme, nil
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err != nil {
		return Theme{}, fmt.Errorf("parse theme %q: %w", name, err)
	}
	return t, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("QCODE_CONFIG_HOME"); v != "" {
		return filepath.Clean(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "qcode"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "qcode"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// WordlistPath is the completion word list, defaulting to
// <configdir>/wordlist.txt.
func (c Config) WordlistPath() (string, error) {
	if c.Completion.Wordlist != "" {
		return c.Completion.Wordlist, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "wordlist.txt"), nil
}
