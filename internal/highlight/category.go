package highlight

import "strings"

// Category is the visual class assigned to a span of text.
type Category int

const (
	Default Category = iota
	Keyword
	Number
	Function
	Operator
	DynamicFunction
	String
	LineComment
	BlockComment
)

var categoryNames = [...]string{
	Default:         "default",
	Keyword:         "keyword",
	Number:          "number",
	Function:        "function",
	Operator:        "operator",
	DynamicFunction: "dynamic-function",
	String:          "string",
	LineComment:     "line-comment",
	BlockComment:    "block-comment",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "default"
	}
	return categoryNames[c]
}

// ParseCategory maps a config name back to its Category.
// Underscores and case are ignored, so "Dynamic_Function" works too.
func ParseCategory(name string) (Category, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", "-")
	switch name {
	case "numeric-constant", "constant":
		return Number, true
	case "infix-operator":
		return Operator, true
	case "quotation", "string-literal":
		return String, true
	}
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return Default, false
}

// Categories returns every styled category in declaration order, Default excluded.
func Categories() []Category {
	out := make([]Category, 0, len(categoryNames)-1)
	for i := 1; i < len(categoryNames); i++ {
		out = append(out, Category(i))
	}
	return out
}
