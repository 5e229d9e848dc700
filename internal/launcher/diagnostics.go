package launcher

import (
	"regexp"
	"strconv"
	"strings"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Diagnostic is one compiler message. Line and Col are 1-based; Col is 0
// when the compiler gave none.
type Diagnostic struct {
	Path     string
	Line     int
	Col      int
	Severity Severity
	Message  string
}

func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(d.Path)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(d.Line))
	if d.Col > 0 {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(d.Col))
	}
	b.WriteString(": ")
	if d.Severity != "" {
		b.WriteString(string(d.Severity))
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	return b.String()
}

var (
	// path:line:col: severity: message, col and severity optional.
	diagLine = regexp.MustCompile(`^(.+?):(\d+):(?:(\d+):)?\s*(?:(fatal error|error|warning|note):\s*)?(.*)$`)
)

// ParseDiagnostics extracts diagnostics from compiler output. Lines that do
// not look like path:line: message are skipped.
func ParseDiagnostics(output string) []Diagnostic {
	var out []Diagnostic
	for _, raw := range strings.Split(output, "\n") {
		line := strings.TrimRight(raw, "\r")
		m := diagLine.FindStringSubmatch(line)
		if m == nil || strings.TrimSpace(m[5]) == "" {
			continue
		}
		d := Diagnostic{Path: m[1], Message: strings.TrimSpace(m[5])}
		d.Line, _ = strconv.Atoi(m[2])
		if m[3] != "" {
			d.Col, _ = strconv.Atoi(m[3])
		}
		switch m[4] {
		case "fatal error", "error":
			d.Severity = SeverityError
		case "warning":
			d.Severity = SeverityWarning
		case "note":
			d.Severity = SeverityNote
		}
		out = append(out, d)
	}
	return out
}
