// SPDX-License-Identifier: MIT
package lex

// Severity classifies a Diagnostic. The core only ever emits Error, but the
// type carries the full set so a caller-side renderer (out of scope here)
// can reuse it for its own diagnostics.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

// String implements fmt.Stringer for log lines.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// LabelStyle distinguishes a diagnostic's primary span from supporting ones.
type LabelStyle int

const (
	LabelPrimary LabelStyle = iota
	LabelSecondary
)

// Label attaches a message to a span within a Diagnostic.
type Label struct {
	Span    Span
	Message string
	Style   LabelStyle
}

// Diagnostic is a structured error/warning produced by the core. Every
// core-emitted diagnostic carries exactly one LabelPrimary label.
type Diagnostic struct {
	Severity Severity
	Message  string
	Labels   []Label
	Help     string
	Notes    []string
}
