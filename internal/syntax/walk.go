package syntax

import "fmt"

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the returned Visitor w is not nil, Walk visits each child of node
// with w, followed by a call to w.Visit(nil).
type Visitor interface {
	Visit(node Expr) (w Visitor)
}

// Inspect traverses a syntax tree in depth-first order, calling f(node)
// for node and then, if f returns true, for each of node's children,
// followed by a call to f(nil).
func Inspect(node Expr, f func(Expr) bool) {
	Walk(inspector(f), node)
}

// Walk traverses a syntax tree in depth-first order: it calls
// v.Visit(node), then recurses into node's children with whatever
// Visitor v.Visit(node) returned, unless that Visitor is nil.
//
// Walk panics on an unrecognized Expr implementation (the validator's
// own dispatch reports a diagnostic instead): every concrete node type
// in this package is listed here, so reaching default is always a bug
// in whatever produced the tree, not a tree this package failed to
// anticipate.
func Walk(v Visitor, node Expr) {
	if node == nil {
		return
	}
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Id, *BooleanLiteral, *IntegerLiteral, *FloatLiteral, *StringLiteral, *Error:
		// no children
	case *Dot:
		Walk(v, n.Owner)
	case *Await:
		Walk(v, n.Future)
	case *Call:
		Walk(v, n.Func)
		for _, a := range n.Args {
			Walk(v, a.Value)
		}
	case *Share:
		Walk(v, n.Target)
	case *Lease:
		Walk(v, n.Target)
	case *Shlease:
		Walk(v, n.Target)
	case *Give:
		Walk(v, n.Target)
	case *Var:
		Walk(v, n.Value)
	case *Parenthesized:
		Walk(v, n.Inner)
	case *Tuple:
		walkList(v, n.Elements)
	case *If:
		Walk(v, n.Cond)
		Walk(v, n.Then)
		if n.Else != nil {
			Walk(v, n.Else)
		}
	case *Atomic:
		Walk(v, n.Body)
	case *Loop:
		Walk(v, n.Body)
	case *While:
		Walk(v, n.Cond)
		Walk(v, n.Body)
	case *Op:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *Unary:
		Walk(v, n.Operand)
	case *OpEq:
		Walk(v, n.Place)
		Walk(v, n.Value)
	case *Assign:
		Walk(v, n.Place)
		Walk(v, n.Value)
	case *Seq:
		walkList(v, n.Statements)
	case *Return:
		if n.Value != nil {
			Walk(v, n.Value)
		}
	default:
		panic(fmt.Sprintf("syntax.Walk: unrecognized node type %T", n))
	}

	v.Visit(nil)
}

func walkList(v Visitor, list []Expr) {
	for _, x := range list {
		Walk(v, x)
	}
}

type inspector func(Expr) bool

func (f inspector) Visit(node Expr) Visitor {
	if f(node) {
		return f
	}
	return nil
}
