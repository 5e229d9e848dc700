package highlight

import (
	"fmt"
	"regexp"
)

// RuleSpec is the uncompiled form of a Rule, as written in languages.toml.
type RuleSpec struct {
	Pattern  string `toml:"pattern"`
	Category string `toml:"category"`
	Group    int    `toml:"group"`
}

// Rule tags every match of Pattern with Category. When Group is non-zero
// only that submatch becomes the span, which stands in for the lookahead
// assertions RE2 does not support.
type Rule struct {
	Pattern  *regexp.Regexp
	Category Category
	Group    int
}

// RuleTable is an ordered, immutable list of rules.
type RuleTable struct {
	rules []Rule
}

var keywords = []string{
	"if", "else", "for", "while", "do", "break", "continue", "return",
	"int", "double", "bool", "void", "string", "infix", "true", "false",
}

// Keywords returns the closed keyword list used by DefaultRules.
func Keywords() []string {
	out := make([]string, len(keywords))
	copy(out, keywords)
	return out
}

// DefaultRules is the C-like rule set. The numeric "decimal point" is an
// unescaped dot and strings run to the last quote on the line; both are
// intentional. \b is ASCII-only, so a non-ASCII letter next to a keyword
// does not hide it ("éint" highlights int).
func DefaultRules() []RuleSpec {
	return []RuleSpec{
		{Pattern: keywordPattern(keywords), Category: Keyword.String()},
		{Pattern: `\b-?[0-9]+.[0-9]*|-?[0-9]+\b`, Category: Number.String()},
		{Pattern: `\b([A-Za-z0-9_]+)\(`, Category: Function.String(), Group: 1},
		{Pattern: `\b[\\=^$?|*+\-/<>@]+\b`, Category: Operator.String()},
		{Pattern: `\b([A-Za-z0-9_]+!)\(`, Category: DynamicFunction.String(), Group: 1},
		{Pattern: `".*"`, Category: String.String()},
		{Pattern: `//.*`, Category: LineComment.String()},
	}
}

func keywordPattern(words []string) string {
	p := `\b(?:`
	for i, w := range words {
		if i > 0 {
			p += "|"
		}
		p += regexp.QuoteMeta(w)
	}
	return p + `)\b`
}

// NewRuleTable compiles specs in order. Any bad spec aborts construction
// with a *ConfigError; no partial table is returned.
func NewRuleTable(specs []RuleSpec) (*RuleTable, error) {
	rules := make([]Rule, 0, len(specs))
	for i, spec := range specs {
		r, err := compileRule(spec)
		if err != nil {
			return nil, &ConfigError{Index: i, Pattern: spec.Pattern, Category: spec.Category, Err: err}
		}
		rules = append(rules, r)
	}
	return &RuleTable{rules: rules}, nil
}

func compileRule(spec RuleSpec) (Rule, error) {
	cat, ok := ParseCategory(spec.Category)
	if !ok {
		return Rule{}, fmt.Errorf("unknown category %q", spec.Category)
	}
	if spec.Pattern == "" {
		return Rule{}, fmt.Errorf("empty pattern")
	}
	re, err := regexp.Compile(spec.Pattern)
	if err != nil {
		return Rule{}, err
	}
	if spec.Group < 0 || spec.Group > re.NumSubexp() {
		return Rule{}, fmt.Errorf("group %d out of range, pattern has %d", spec.Group, re.NumSubexp())
	}
	return Rule{Pattern: re, Category: cat, Group: spec.Group}, nil
}

func (t *RuleTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rules)
}

// Rules returns a copy of the compiled rules in application order.
func (t *RuleTable) Rules() []Rule {
	if t == nil {
		return nil
	}
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// ScanLine applies every rule in order and returns one span per match.
// Spans from different rules may overlap; later ones paint over earlier ones.
func (t *RuleTable) ScanLine(text string) []Span {
	if t.Len() == 0 || text == "" {
		return nil
	}
	cols := newColumns(text)
	var spans []Span
	for _, r := range t.rules {
		lo, hi := 2*r.Group, 2*r.Group+1
		for _, m := range r.Pattern.FindAllStringSubmatchIndex(text, -1) {
			if s, ok := cols.span(m[lo], m[hi], r.Category); ok {
				spans = append(spans, s)
			}
		}
	}
	return spans
}
