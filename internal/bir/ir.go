// Package bir defines the basic-block IR data model: its entities, the
// well-formedness rules they must satisfy, and a builder used to
// construct well-formed values of it. The algorithm that lowers
// validated IR into this form is not implemented here; nothing in this
// package or its tests depends on validated IR at all.
package bir

import "github.com/Veeupup/dada/internal/arena"

// LocalVariable, BasicBlock, Statement, Terminator, Expr, Place and
// TargetPlace are dense handles into a Tables value.
type (
	LocalVariable = arena.Id
	BasicBlock    = arena.Id
	Statement     = arena.Id
	Terminator    = arena.Id
	Expr          = arena.Id
	Place         = arena.Id
	TargetPlace   = arena.Id
)

// LocalVariableData describes one local variable. Name is "" for a
// compiler-introduced temporary. HasSpecifier records whether the
// variable carries a permission specifier (parameters and named locals
// do; temporaries don't); which specifier it is is not stored.
type LocalVariableData struct {
	Name         string
	HasSpecifier bool
	Atomic       bool
}

// BasicBlockData is a list of Statements followed by exactly one
// Terminator. It has no separate "successors" field: a Terminator
// carries its own successor BasicBlocks.
type BasicBlockData struct {
	Statements []Statement
	Terminator Terminator
}

// BasicBlockElementKind tags which field of BasicBlockElement is set.
type BasicBlockElementKind int

const (
	ElementStatement BasicBlockElementKind = iota
	ElementTerminator
)

// BasicBlockElement is either a Statement or the block's Terminator,
// the two kinds of thing ElementAt can return.
type BasicBlockElement struct {
	Kind       BasicBlockElementKind
	Statement  Statement
	Terminator Terminator
}

// ElementAt returns the i'th element of a block: one of its statements
// if i is in range, or its terminator if i == len(Statements). It
// panics for any other i, since that is always a caller bug.
func (b BasicBlockData) ElementAt(i int) BasicBlockElement {
	switch {
	case i < len(b.Statements):
		return BasicBlockElement{Kind: ElementStatement, Statement: b.Statements[i]}
	case i == len(b.Statements):
		return BasicBlockElement{Kind: ElementTerminator, Terminator: b.Terminator}
	default:
		panic("bir: BasicBlockData.ElementAt index out of range")
	}
}

// Elements returns every element of the block, statements followed by
// the terminator.
func (b BasicBlockData) Elements() []BasicBlockElement {
	out := make([]BasicBlockElement, 0, len(b.Statements)+1)
	for i := range b.Statements {
		out = append(out, b.ElementAt(i))
	}
	out = append(out, b.ElementAt(len(b.Statements)))
	return out
}

// StatementData is the sum type of basic-block statements: none of
// these may suspend or re-enter shared state (that's what the
// terminator-only TerminatorExpr forms are for).
type StatementData interface{ isStatementData() }

// AssignExprStatement assigns the value of a pure Expr into Target.
type AssignExprStatement struct {
	Target TargetPlace
	Value  Expr
}

// AssignPlaceStatement copies Value's current contents into Target.
type AssignPlaceStatement struct {
	Target TargetPlace
	Value  Place
}

// ClearStatement marks Target as holding no value (used after a move).
type ClearStatement struct{ Target TargetPlace }

// BreakpointStartStatement and BreakpointEndStatement bracket a region
// a debugger can stop within; they have no runtime effect otherwise.
type BreakpointStartStatement struct{ Name string }
type BreakpointEndStatement struct{ Name string }

func (AssignExprStatement) isStatementData()      {}
func (AssignPlaceStatement) isStatementData()     {}
func (ClearStatement) isStatementData()           {}
func (BreakpointStartStatement) isStatementData() {}
func (BreakpointEndStatement) isStatementData()   {}

// TerminatorData is the sum type of basic-block terminators.
type TerminatorData interface{ isTerminatorData() }

// GotoTerminator unconditionally transfers control to Target.
type GotoTerminator struct{ Target BasicBlock }

// IfTerminator transfers control to Then if Cond holds, else Else.
type IfTerminator struct {
	Cond       Place
	Then, Else BasicBlock
}

// StartAtomicTerminator enters an atomic region and transfers to
// Target; EndAtomicTerminator leaves one the same way.
type StartAtomicTerminator struct{ Target BasicBlock }
type EndAtomicTerminator struct{ Target BasicBlock }

// ReturnTerminator ends the function, yielding Value.
type ReturnTerminator struct{ Value Place }

// AssignTerminator is the only place an effectful TerminatorExpr
// (Await, Call) may appear: it assigns the expression's result into
// Target and transfers to Next.
type AssignTerminator struct {
	Target TargetPlace
	Value  TerminatorExpr
	Next   BasicBlock
}

// ErrorTerminator marks a block whose control flow could not be
// validated; reaching it at runtime is a bug in an earlier pass, not a
// reachable program state.
type ErrorTerminator struct{}

// PanicTerminator marks unconditionally-panicking control flow.
type PanicTerminator struct{}

func (GotoTerminator) isTerminatorData()        {}
func (IfTerminator) isTerminatorData()          {}
func (StartAtomicTerminator) isTerminatorData() {}
func (EndAtomicTerminator) isTerminatorData()   {}
func (ReturnTerminator) isTerminatorData()      {}
func (AssignTerminator) isTerminatorData()      {}
func (ErrorTerminator) isTerminatorData()       {}
func (PanicTerminator) isTerminatorData()       {}

// TerminatorExpr is the sum type of effectful operations. These can
// only ever appear as the Value of an AssignTerminator -- there is no
// constructor that lets one appear inside an ExprData or a Statement,
// so "effectful operations only appear in terminator position" is
// enforced by the Go type system, not by a runtime check.
type TerminatorExpr interface{ isTerminatorExpr() }

type AwaitTerminatorExpr struct{ Future Place }

type CallTerminatorExpr struct {
	Function  Place
	Arguments []Place
	Labels    []string // len(Labels) == len(Arguments); "" for a positional argument
}

func (AwaitTerminatorExpr) isTerminatorExpr() {}
func (CallTerminatorExpr) isTerminatorExpr()  {}

// ExprData is the sum type of pure basic-block expressions: it is a
// strict subset of validated IR's ExprData, missing every construct
// that needed structured control flow (If, Loop, Seq, ...) or that was
// effectful (Call, Await) -- both kinds only exist, in this form, as
// Terminators.
type ExprData interface{ isExprData() }

type BooleanLiteral struct{ Value bool }
type SignedIntegerLiteral struct{ Value int64 }
type UnsignedIntegerLiteral struct{ Value uint64 }
type FloatLiteral struct{ Value float64 }
type StringLiteral struct{ Value string }
type Reserve struct{ Place Place }
type Share struct{ Inner Expr }
type Lease struct{ Place Place }
type Shlease struct{ Place Place }
type Give struct{ Place Place }
type Unit struct{}
type Tuple struct{ Elements []Place }

// BinOp and UnaryOp mirror the syntax-level operator surface; bir does
// not depend on package syntax, so it defines its own small copies.
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

type UnaryOp int

const (
	Neg UnaryOp = iota
	Not
)

type Op struct {
	Left  Place
	Op    BinOp
	Right Place
}

type Unary struct {
	Op      UnaryOp
	Operand Place
}

type ErrorExpr struct{}

func (BooleanLiteral) isExprData()         {}
func (SignedIntegerLiteral) isExprData()   {}
func (UnsignedIntegerLiteral) isExprData() {}
func (FloatLiteral) isExprData()           {}
func (StringLiteral) isExprData()          {}
func (Reserve) isExprData()                {}
func (Share) isExprData()                  {}
func (Lease) isExprData()                  {}
func (Shlease) isExprData()                {}
func (Give) isExprData()                   {}
func (Unit) isExprData()                   {}
func (Tuple) isExprData()                  {}
func (Op) isExprData()                     {}
func (Unary) isExprData()                  {}
func (ErrorExpr) isExprData()              {}

// PlaceData is the sum type of readable places.
type PlaceData interface{ isPlaceData() }

type LocalVariablePlace struct{ Var LocalVariable }
type FunctionPlace struct{ Name string }
type ClassPlace struct{ Name string }
type IntrinsicPlace struct{ Name string }
type DotPlace struct {
	Owner Place
	Field string
}

func (LocalVariablePlace) isPlaceData() {}
func (FunctionPlace) isPlaceData()      {}
func (ClassPlace) isPlaceData()         {}
func (IntrinsicPlace) isPlaceData()     {}
func (DotPlace) isPlaceData()           {}

// TargetPlaceData is the sum type of assignable places.
type TargetPlaceData interface{ isTargetPlaceData() }

type LocalVariableTarget struct{ Var LocalVariable }
type DotTarget struct {
	Owner Place
	Field string
}

func (LocalVariableTarget) isTargetPlaceData() {}
func (DotTarget) isTargetPlaceData()           {}

// Tables interns every entity of one function's Bir.
type Tables struct {
	LocalVariables arena.Arena[LocalVariableData]
	BasicBlocks    arena.Arena[BasicBlockData]
	Statements     arena.Arena[StatementData]
	Terminators    arena.Arena[TerminatorData]
	Exprs          arena.Arena[ExprData]
	Places         arena.Arena[PlaceData]
	TargetPlaces   arena.Arena[TargetPlaceData]
}

// BirData is the complete Bir for one function.
type BirData struct {
	Tables           *Tables
	NumParameters    int
	StartBasicBlock  BasicBlock
}

// Parameters returns the LocalVariable ids of the function's
// parameters: by construction (see Builder.AddParameter) these are
// always local variable ids 1..NumParameters.
func (b *BirData) Parameters() []LocalVariable {
	params := make([]LocalVariable, b.NumParameters)
	for i := range params {
		params[i] = arena.Id(i + 1)
	}
	return params
}

// MaxLocalVariable returns the largest LocalVariable id interned.
func (b *BirData) MaxLocalVariable() LocalVariable { return b.Tables.LocalVariables.Max() }

// MaxBasicBlock returns the largest BasicBlock id interned.
func (b *BirData) MaxBasicBlock() BasicBlock { return b.Tables.BasicBlocks.Max() }

// AllBasicBlocks returns every BasicBlock id interned, in ascending
// order.
func (b *BirData) AllBasicBlocks() []BasicBlock { return b.Tables.BasicBlocks.Ids() }
