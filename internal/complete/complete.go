// Package complete implements the word-list completion behind the editor's
// popup.
package complete

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"sort"
	"strings"
	"unicode"
)

// EndOfWord lists the runes that close the popup when typed.
const EndOfWord = "~!@#$%^&*()_+{}|:\"<>?,./;'[]\\-="

type Options struct {
	MinPrefix     int
	CaseSensitive bool
	WrapAround    bool
}

type Completer struct {
	words []string
	opts  Options
}

// LoadWords reads one word per line. A missing file yields no words.
func LoadWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var words []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if w := strings.TrimSpace(sc.Text()); w != "" {
			words = append(words, w)
		}
	}
	return words, sc.Err()
}

func New(words []string, opts Options) *Completer {
	if opts.MinPrefix <= 0 {
		opts.MinPrefix = 3
	}
	sorted := append([]string(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := strings.ToLower(sorted[i]), strings.ToLower(sorted[j])
		if a != b {
			return a < b
		}
		return sorted[i] < sorted[j]
	})
	return &Completer{words: sorted, opts: opts}
}

func (c *Completer) Options() Options {
	return c.opts
}

func (c *Completer) Len() int {
	return len(c.words)
}

// Matches returns the words starting with prefix, in sorted order.
func (c *Completer) Matches(prefix string) []string {
	if prefix == "" {
		return nil
	}
	var out []string
	for _, w := range c.words {
		if c.hasPrefix(w, prefix) {
			out = append(out, w)
		}
	}
	return out
}

func (c *Completer) hasPrefix(word, prefix string) bool {
	if c.opts.CaseSensitive {
		return strings.HasPrefix(word, prefix)
	}
	if len(word) < len(prefix) {
		return false
	}
	return strings.EqualFold(word[:len(prefix)], prefix)
}

// Trigger reports whether the popup should show after typed was entered
// with prefix under the cursor. shortcut forces it open.
func (c *Completer) Trigger(prefix string, typed rune, shortcut bool) bool {
	if shortcut {
		return true
	}
	if len([]rune(prefix)) < c.opts.MinPrefix {
		return false
	}
	return !strings.ContainsRune(EndOfWord, typed)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// WordBefore returns the word that ends at col and the column it starts at.
func WordBefore(line []rune, col int) (string, int) {
	if col > len(line) {
		col = len(line)
	}
	start := col
	for start > 0 && isWordRune(line[start-1]) {
		start--
	}
	return string(line[start:col]), start
}

// Suffix is the part of completion still to be inserted after prefix.
func Suffix(completion, prefix string) string {
	c := []rune(completion)
	n := len([]rune(prefix))
	if n >= len(c) {
		return ""
	}
	return string(c[n:])
}
