// Package diag implements the diagnostic sink used by the validator:
// primary plus optional secondary labels, no short-circuiting on the
// first error found in a function.
package diag

import "fmt"

// Severity classifies a Diagnostic the way a reader would triage it.
type Severity int

const (
	// Error marks a diagnostic that prevents the surrounding expression
	// from being validated as written; the validator still recovers by
	// substituting an Error node and keeps going.
	Error Severity = iota
	// Warning marks a diagnostic that does not block validation.
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Span locates a diagnostic in source text. It is deliberately minimal:
// span plumbing beyond this is an external collaborator's concern.
type Span struct {
	Start, End int
}

// Label attaches a message to a Span; Diagnostic.Secondary, when present,
// points at a different span than Diagnostic.Primary (e.g. the point
// where an async effect was introduced, reported alongside an await
// used outside that effect).
type Label struct {
	Span    Span
	Message string
}

// Diagnostic is a single validator-reported finding.
type Diagnostic struct {
	Severity  Severity
	Primary   Label
	Secondary *Label
}

func (d Diagnostic) String() string {
	if d.Secondary != nil {
		return fmt.Sprintf("%s: %s (secondary: %s)", d.Severity, d.Primary.Message, d.Secondary.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Primary.Message)
}

// Sink receives diagnostics as they are produced. The validator never
// aborts on the first error reported to a Sink; every independent
// problem found during one validation pass is reported.
type Sink interface {
	Report(Diagnostic)
}

// Collector is a Sink that simply accumulates every Diagnostic reported
// to it, in order. It is the Sink used by tests and by the CLI driver.
type Collector struct {
	Diagnostics []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// HasErrors reports whether any collected Diagnostic has Severity Error.
func (c *Collector) HasErrors() bool {
	for _, d := range c.Diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// SinkFunc adapts a plain function to the Sink interface, mirroring the
// Report-callback shape the validator is handed.
type SinkFunc func(Diagnostic)

func (f SinkFunc) Report(d Diagnostic) { f(d) }
