// Package syntax defines the parsed-but-unvalidated expression tree the
// validator consumes. It is produced by a lexer/parser that lives
// outside this module; this package only defines the shape that
// producer is expected to hand over.
package syntax

import "github.com/Veeupup/dada/internal/diag"

// Expr is any syntax-tree expression node. Every concrete node type in
// this package implements Expr.
type Expr interface {
	Span() diag.Span
	expr()
}

// Stmt is a single entry in a Seq's statement list. A function body is
// just an Expr (usually a Seq), matching the source language's
// expression-oriented grammar: statements are expressions evaluated for
// their side effects.
type Stmt = Expr

// node carries the span every concrete Expr embeds.
type node struct {
	span diag.Span
}

func (n node) Span() diag.Span { return n.span }

// BinOp enumerates binary operators available at the syntax level,
// including the compound-assignment spellings that validation desugars
// away (OpEq carries the underlying BinOp, e.g. Add for "+=").
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Equals
	NotEquals
	LessThan
	GreaterThan
	LessEquals
	GreaterEquals
	And
	Or
)

// UnaryOp enumerates unary operators available at the syntax level.
type UnaryOp int

const (
	Neg UnaryOp = iota
	Not
)

// Id is a bare identifier, used both as a place expression (a variable
// reference) and, in call position, as a function reference.
type Id struct {
	node
	Name string
}

func (*Id) expr() {}

// Dot is a field/member access, `owner.field`. Dot is itself a place
// expression: it can appear on either side of an assignment.
type Dot struct {
	node
	Owner Expr
	Field string
}

func (*Dot) expr() {}

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	node
	Value bool
}

func (*BooleanLiteral) expr() {}

// IntegerLiteral is an integer literal as written in source, before
// underscore-stripping and suffix interpretation. Suffix is "" (no
// suffix, defaults to u64), "u", or "i".
type IntegerLiteral struct {
	node
	Text   string
	Suffix string
}

func (*IntegerLiteral) expr() {}

// FloatLiteral is a floating point literal as written in source.
type FloatLiteral struct {
	node
	Text string
}

func (*FloatLiteral) expr() {}

// StringLiteral is a (possibly multi-line) string literal as written in
// source, including its delimiters' surrounding whitespace; dedent and
// escape processing happen during validation.
type StringLiteral struct {
	node
	Raw      string
	Multiline bool
}

func (*StringLiteral) expr() {}

// Await is `x.await`.
type Await struct {
	node
	Future Expr
}

func (*Await) expr() {}

// Arg is one argument to a Call: an optional name (for named arguments)
// and the value expression.
type Arg struct {
	Name  string // "" if positional
	Value Expr
}

// Call is a function call, `f(a, b, name: c)`.
type Call struct {
	node
	Func Expr
	Args []Arg
}

func (*Call) expr() {}

// Share is `shared(place)`.
type Share struct {
	node
	Target Expr
}

func (*Share) expr() {}

// Lease is `leased(place)`.
type Lease struct {
	node
	Target Expr
}

func (*Lease) expr() {}

// Shlease is `shleased(place)`.
type Shlease struct {
	node
	Target Expr
}

func (*Shlease) expr() {}

// Give is `give(place)` (equivalently, just writing the place bare in a
// give-mode context).
type Give struct {
	node
	Target Expr
}

func (*Give) expr() {}

// Var is a `var name = value` (or `name := value`) local declaration;
// it evaluates to unit.
type Var struct {
	node
	Name  string
	Value Expr
}

func (*Var) expr() {}

// Parenthesized is `(inner)`.
type Parenthesized struct {
	node
	Inner Expr
}

func (*Parenthesized) expr() {}

// Tuple is `(a, b, c)` with at least two elements, or the unit tuple `()`.
type Tuple struct {
	node
	Elements []Expr
}

func (*Tuple) expr() {}

// If is `if cond { then } else { else }`; Else is nil for an else-less
// if, which validation desugars to an implicit unit else-branch.
type If struct {
	node
	Cond Expr
	Then Expr
	Else Expr
}

func (*If) expr() {}

// Atomic is `atomic { body }`.
type Atomic struct {
	node
	Body Expr
}

func (*Atomic) expr() {}

// Loop is `loop { body }`.
type Loop struct {
	node
	Body Expr
}

func (*Loop) expr() {}

// While is `while cond { body }`; validation desugars this into a Loop
// containing an If that breaks when cond is false.
type While struct {
	node
	Cond Expr
	Body Expr
}

func (*While) expr() {}

// Op is a binary operator expression.
type Op struct {
	node
	Left  Expr
	Op    BinOp
	Right Expr
}

func (*Op) expr() {}

// Unary is a unary operator expression.
type Unary struct {
	node
	Op      UnaryOp
	Operand Expr
}

func (*Unary) expr() {}

// OpEq is a compound assignment, `place += value` and friends;
// validation desugars this to a read-modify-write sequence.
type OpEq struct {
	node
	Place Expr
	Op    BinOp
	Value Expr
}

func (*OpEq) expr() {}

// Assign is a plain assignment, `place = value`.
type Assign struct {
	node
	Place Expr
	Value Expr
}

func (*Assign) expr() {}

// Error is a placeholder the parser inserts where it could not produce
// a valid node; validation passes it through as Error, too.
type Error struct {
	node
}

func (*Error) expr() {}

// Seq is a sequence of expressions evaluated for effect, whose value is
// that of the last one (or unit, if Statements is empty).
type Seq struct {
	node
	Statements []Expr
}

func (*Seq) expr() {}

// Return is `return` (Value == nil) or `return value`.
type Return struct {
	node
	Value Expr
}

func (*Return) expr() {}

// NewId, NewDot, ... are omitted: concrete node types are plain structs
// callers (a parser, or a test) construct directly with composite
// literals, matching how the teacher's own ast package is built.
