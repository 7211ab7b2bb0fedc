// Package validate lowers a syntax.Function into a validated IR: name
// resolution is complete, compound assignment and while-loops are
// desugared, effect/atomic rules are checked, and every place-vs-value
// distinction the rest of the pipeline relies on has been made
// explicit. It does not type-check or enforce permissions; those are a
// runtime concern.
package validate

import (
	"github.com/Veeupup/dada/internal/arena"
	"github.com/Veeupup/dada/internal/syntax"
)

// LocalVariable, Expr, Place and TargetPlace are dense handles into a
// Tables value; see arena.Id.
type (
	LocalVariable = arena.Id
	Expr          = arena.Id
	Place         = arena.Id
	TargetPlace   = arena.Id
)

// LocalVariableData describes one local variable: a parameter, a
// user-declared `var`, or a compiler-introduced temporary (Name == "").
type LocalVariableData struct {
	Name      string
	Specifier syntax.Specifier
	HasSpec   bool // false for temporaries, which carry no specifier
	Atomic    bool
}

// ExprData is the sum type of validated expression forms. Concrete
// types below implement it; switch on the dynamic type to inspect one.
type ExprData interface{ isExprData() }

type BooleanLiteral struct{ Value bool }
type SignedIntegerLiteral struct{ Value int64 }
type UnsignedIntegerLiteral struct{ Value uint64 }
type FloatLiteral struct{ Value float64 }
type StringLiteral struct{ Value string }

// Reserve validates its Place in reserve mode: used for call function
// and argument positions.
type Reserve struct{ Place Place }

// Share wraps an inner Expr (typically a Give) for the `shared(...)`
// permission form, and also for the implicit Share(Give(p)) produced
// when a bare place is used in an Our-specifier context.
type Share struct{ Inner Expr }
type Lease struct{ Place Place }
type Shlease struct{ Place Place }
type Give struct{ Place Place }

// Unit is the value of an expression with no interesting result, e.g.
// a `var` declaration or a plain assignment.
type Unit struct{}

// Tuple is `()` (Elements == nil) or `(a, b, ...)`.
type Tuple struct{ Elements []Place }

// Seq evaluates each statement for effect and yields the value of the
// last one (Unit if Statements is empty).
type Seq struct{ Statements []Expr }

type Op struct {
	Left  Place
	Op    syntax.BinOp
	Right Place
}

type Unary struct {
	Op      syntax.UnaryOp
	Operand Place
}

// ErrorExpr replaces any expression the validator could not make sense
// of; it lets validation continue instead of aborting (see package
// diag).
type ErrorExpr struct{}

// Declare wraps Body with the set of local variables a lexical scope
// introduced, so that later passes know the lifetime those variables
// are scoped to without having to recompute it from Seq/If/Loop
// structure.
type Declare struct {
	Locals []LocalVariable
	Body   Expr
}

// AssignTemporary stores the value of Value into a freshly introduced
// local variable (a temporary, or the named local of a `var`); it
// evaluates to Unit.
type AssignTemporary struct {
	Temp  LocalVariable
	Value Expr
}

// AssignFromPlace is a direct place-to-place assignment; it evaluates
// to Unit.
type AssignFromPlace struct {
	Target TargetPlace
	Value  Place
}

type If struct {
	Cond Expr
	Then Expr
	Else Expr
}

// Loop is the only validated-IR looping construct; `while` is
// desugared into one (see desugarWhile).
type Loop struct{ Body Expr }

// Break exits the loop expression LoopExpr is bound to (the enclosing
// Loop's own Expr id, per the loop-stack in the validator), yielding
// Value as the loop expression's result.
type Break struct {
	LoopExpr Expr
	Value    Expr
}

// Atomic executes Body with re-entrancy and suspension forbidden.
type Atomic struct{ Body Expr }

// NamedArg is one argument to a Call.
type NamedArg struct {
	Name  string // "" if positional
	Value Place
}

// Call is effectful: it may suspend and may re-enter shared state.
// Unlike Await, it is not checked against the surrounding effect (see
// validateCall).
type Call struct {
	Func Place
	Args []NamedArg
}

type Await struct{ Future Place }

// Return ends the function with Value (Unit for a bare `return`).
type Return struct{ Value Expr }

func (BooleanLiteral) isExprData()        {}
func (SignedIntegerLiteral) isExprData()  {}
func (UnsignedIntegerLiteral) isExprData() {}
func (FloatLiteral) isExprData()          {}
func (StringLiteral) isExprData()         {}
func (Reserve) isExprData()               {}
func (Share) isExprData()                 {}
func (Lease) isExprData()                 {}
func (Shlease) isExprData()               {}
func (Give) isExprData()                  {}
func (Unit) isExprData()                  {}
func (Tuple) isExprData()                 {}
func (Seq) isExprData()                   {}
func (Op) isExprData()                    {}
func (Unary) isExprData()                 {}
func (ErrorExpr) isExprData()             {}
func (Declare) isExprData()               {}
func (AssignTemporary) isExprData()       {}
func (AssignFromPlace) isExprData()       {}
func (If) isExprData()                    {}
func (Loop) isExprData()                  {}
func (Break) isExprData()                 {}
func (Atomic) isExprData()                {}
func (Call) isExprData()                  {}
func (Await) isExprData()                 {}
func (Return) isExprData()                {}

// PlaceData is the sum type of validated place forms (things that can
// be read without copying).
type PlaceData interface{ isPlaceData() }

type LocalVariablePlace struct{ Var LocalVariable }
type FunctionPlace struct{ Name string }
type DotPlace struct {
	Owner Place
	Field string
}

func (LocalVariablePlace) isPlaceData() {}
func (FunctionPlace) isPlaceData()      {}
func (DotPlace) isPlaceData()           {}

// TargetPlaceData is the sum type of validated assignment targets.
type TargetPlaceData interface{ isTargetPlaceData() }

type LocalVariableTarget struct{ Var LocalVariable }
type DotTarget struct {
	Owner Place
	Field string
}

func (LocalVariableTarget) isTargetPlaceData() {}
func (DotTarget) isTargetPlaceData()           {}

// Tables interns every validated-IR entity for one function.
type Tables struct {
	LocalVariables arena.Arena[LocalVariableData]
	Exprs          arena.Arena[ExprData]
	Places         arena.Arena[PlaceData]
	TargetPlaces   arena.Arena[TargetPlaceData]
}

// LocalVariableOriginKind classifies where a LocalVariable came from.
type LocalVariableOriginKind int

const (
	OriginParameter LocalVariableOriginKind = iota
	OriginNamed
	OriginTemporary
)

// LocalVariableOrigin records, for one LocalVariable, whether it is a
// parameter, a named `var`, or a compiler-introduced temporary, and the
// syntax span it is best attributed to for diagnostics.
type LocalVariableOrigin struct {
	Kind LocalVariableOriginKind
	Span syntax.Expr // nil for parameters
}

// ExprOrigin attributes a validated Expr back to the syntax.Expr it was
// validated from. Synthesized is true for expressions the validator
// introduced itself (e.g. the implicit Unit else-branch, a Declare, or
// the Seq that sequences pending temporaries before an expression)
// rather than validated directly from a syntax node; ForceOrigin panics if asked to unwrap a synthesized
// origin, mirroring the "cannot force ... to be synthesized" invariant
// the algorithm relies on elsewhere.
type ExprOrigin struct {
	Syntax      syntax.Expr
	Synthesized bool
}

// ForceOrigin returns o.Syntax, panicking if o was synthesized. This is
// a programming-error check (see package diag), not a diagnostic: code
// that calls it is asserting it knows the origin is concrete.
func ForceOrigin(o ExprOrigin) syntax.Expr {
	if o.Synthesized {
		panic("validate: cannot force a synthesized origin")
	}
	return o.Syntax
}

// Origins is the side-table of Tables, recording provenance for every
// interned entity in parallel arenas indexed the same way as Tables.
type Origins struct {
	LocalVariables arena.Arena[LocalVariableOrigin]
	Exprs          arena.Arena[ExprOrigin]
	Places         arena.Arena[syntax.Expr]
	TargetPlaces   arena.Arena[syntax.Expr]
}
