package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/kobzarvs/qcode/internal/highlight"
	"github.com/kobzarvs/qcode/internal/logger"
)

type Language struct {
	Name      string   `toml:"name"`
	FileTypes []string `toml:"file-types"`
	// ExtendsDefault puts the built-in C-like rules ahead of Rules.
	// Unset means true.
	ExtendsDefault *bool                `toml:"extends-default"`
	Rules          []highlight.RuleSpec `toml:"rule"`
}

type Languages struct {
	Languages []Language `toml:"language"`
}

// DefaultLanguages knows C and C++ sources.
func DefaultLanguages() Languages {
	return Languages{
		Languages: []Language{
			{Name: "cpp", FileTypes: []string{"cpp", "cc", "cxx", "c", "h", "hpp"}},
		},
	}
}

func (l Languages) Match(path string) *Language {
	base := filepath.Base(path)
	baseLower := strings.ToLower(base)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(base), "."))
	for i := range l.Languages {
		lang := &l.Languages[i]
		for _, ft := range lang.FileTypes {
			ftLower := strings.ToLower(ft)
			if ftLower == ext || ftLower == baseLower {
				return lang
			}
			if strings.HasPrefix(ftLower, ".") && strings.TrimPrefix(ftLower, ".") == ext {
				return lang
			}
		}
	}
	return nil
}

func (l Languages) Find(name string) *Language {
	for i := range l.Languages {
		if strings.EqualFold(l.Languages[i].Name, name) {
			return &l.Languages[i]
		}
	}
	return nil
}

// RuleSpecs is the ordered rule list the language's table is built from.
func (l Language) RuleSpecs() []highlight.RuleSpec {
	var specs []highlight.RuleSpec
	if l.ExtendsDefault == nil || *l.ExtendsDefault {
		specs = highlight.DefaultRules()
	}
	return append(specs, l.Rules...)
}

// Build compiles the language's rule table. A bad rule fails the whole
// language with a *highlight.ConfigError.
func (l Language) Build() (*highlight.Highlighter, error) {
	rules, err := highlight.NewRuleTable(l.RuleSpecs())
	if err != nil {
		return nil, fmt.Errorf("language %s: %w", l.Name, err)
	}
	logger.Info("rule table built", "language", l.Name, "rules", rules.Len())
	return highlight.New(rules), nil
}

// LoadLanguages reads languages.toml. User entries come first so they win
// in Match, and an entry named like a built-in replaces it.
func LoadLanguages() (Languages, error) {
	path, err := LanguagesPath()
	if err != nil {
		return DefaultLanguages(), err
	}
	return LoadLanguagesFile(path)
}

func LoadLanguagesFile(path string) (Languages, error) {
	defaults := DefaultLanguages()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return defaults, err
	}

	var cfg Languages
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return defaults, fmt.Errorf("parse %s: %w", path, err)
	}
	for _, lang := range defaults.Languages {
		if cfg.Find(lang.Name) == nil {
			cfg.Languages = append(cfg.Languages, lang)
		}
	}
	return cfg, nil
}

func LanguagesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "languages.toml"), nil
}
