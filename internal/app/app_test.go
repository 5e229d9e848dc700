package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kobzarvs/qcode/internal/config"
	"github.com/kobzarvs/qcode/internal/editor"
	"github.com/kobzarvs/qcode/internal/highlight"
	"github.com/kobzarvs/qcode/internal/launcher"
)

func TestLoadDocumentHighlightsByLanguage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.cpp")
	require.NoError(t, os.WriteFile(path, []byte("int main() {}\n"), 0o644))

	doc, lang, err := LoadDocument(config.Default(), config.DefaultLanguages(), path)
	require.NoError(t, err)
	require.NotNil(t, lang)
	assert.Equal(t, "cpp", lang.Name)
	assert.Equal(t, highlight.Keyword, highlight.CategoryAt(doc.Spans(0), 0))
	assert.False(t, doc.Dirty())
}

func TestLoadDocumentUnknownLanguagePlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("int x\n"), 0o644))

	doc, lang, err := LoadDocument(config.Default(), config.DefaultLanguages(), path)
	require.NoError(t, err)
	assert.Nil(t, lang)
	assert.Nil(t, doc.Spans(0))
}

func TestLoadDocumentLargeFilePlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.cpp")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("int x;\n", 10)), 0o644))
	cfg := config.Default()
	cfg.Editor.MaxHighlightBytes = 16

	doc, lang, err := LoadDocument(cfg, config.DefaultLanguages(), path)
	require.NoError(t, err)
	require.NotNil(t, lang)
	assert.Nil(t, doc.Spans(0))
}

func TestLoadDocumentNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.cpp")
	doc, _, err := LoadDocument(config.Default(), config.DefaultLanguages(), path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path())
	assert.Equal(t, "", doc.Text())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "new file created before save")
}

func TestLoadDocumentBadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.cpp")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	langs := config.Languages{Languages: []config.Language{{
		Name:      "cpp",
		FileTypes: []string{"cpp"},
		Rules:     []highlight.RuleSpec{{Pattern: "(", Category: "keyword"}},
	}}}
	_, _, err := LoadDocument(config.Default(), langs, path)
	var cfgErr *highlight.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestOnFileChangedReloadsCleanBuffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.cpp")
	require.NoError(t, os.WriteFile(path, []byte("int a;"), 0o644))
	doc, _, err := LoadDocument(config.Default(), config.DefaultLanguages(), path)
	require.NoError(t, err)
	ed := editor.New(config.Default(), doc)

	onFileChanged(ed)
	assert.Equal(t, "", ed.StatusMessage(), "unchanged file triggered a reload")

	require.NoError(t, os.WriteFile(path, []byte("int b;"), 0o644))
	onFileChanged(ed)
	assert.Equal(t, "int b;", doc.Text())

	doc.InsertRune(0, 0, 'x')
	require.NoError(t, os.WriteFile(path, []byte("int c;"), 0o644))
	onFileChanged(ed)
	assert.Equal(t, "xint b;", doc.Text())
	assert.Contains(t, ed.StatusMessage(), "unsaved")
}

func TestReportCompile(t *testing.T) {
	ed := editor.New(config.Default(), nil)
	reportCompile(ed, launcher.Result{Duration: time.Second}, nil)
	assert.Equal(t, "compiled OK in 1s", ed.StatusMessage())

	reportCompile(ed, launcher.Result{
		ExitCode:    1,
		Diagnostics: []launcher.Diagnostic{{Path: "a.cpp", Line: 1, Message: "x"}},
	}, nil)
	assert.Equal(t, "compile failed (exit 1): 1 diagnostics", ed.StatusMessage())
	assert.Len(t, ed.Diagnostics(), 1)

	reportCompile(ed, launcher.Result{}, launcher.ErrNoCommand)
	assert.Equal(t, launcher.ErrNoCommand.Error(), ed.StatusMessage())
}
