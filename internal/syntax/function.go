package syntax

import "github.com/Veeupup/dada/internal/diag"

// Specifier is the permission specifier written on a parameter
// declaration. It is recorded as descriptive metadata on the validated
// LocalVariable; validation mode for a use of the parameter still comes
// from the syntax at the use site (Give/Lease/Shlease/Share/bare), not
// from this specifier.
type Specifier int

const (
	My Specifier = iota
	Our
	Leased
	Shleased
	Any
)

// Effect is the effect a function or atomic block executes under.
type Effect int

const (
	// Default is the effect of an ordinary, non-async function: no
	// suspension points are permitted anywhere in its body.
	Default Effect = iota
	// Async permits `.await` expressions.
	Async
	// Atomic permits neither suspension nor re-entrant access to shared
	// state; entering one from Async is still permitted syntactically,
	// but `.await` is forbidden until a nested Async scope reappears.
	AtomicEffect
)

// Parameter is a single function parameter as written in source.
type Parameter struct {
	Span      diag.Span
	Name      string
	Specifier Specifier
}

// Function is a whole function declaration as the parser hands it to
// the validator: a name, its parameter list, the effect it executes
// under, and its body expression.
type Function struct {
	Span       diag.Span
	Name       string
	Parameters []Parameter
	Effect     Effect
	Body       Expr
}
