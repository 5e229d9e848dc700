package highlight

import "fmt"

// ConfigError reports a rule that could not be compiled into a RuleTable.
type ConfigError struct {
	Index    int
	Pattern  string
	Category string
	Err      error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("highlight: rule %d (%q as %s): %v", e.Index, e.Pattern, e.Category, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
