package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veeupup/dada/internal/syntax"
)

func TestWalkVisitsEveryNode(t *testing.T) {
	tree := &syntax.If{
		Cond: &syntax.BooleanLiteral{Value: true},
		Then: &syntax.Seq{Statements: []syntax.Expr{
			&syntax.Var{Name: "x", Value: &syntax.IntegerLiteral{Text: "1"}},
			&syntax.Id{Name: "x"},
		}},
	}

	var visited []syntax.Expr
	var v walkerFunc
	v = func(n syntax.Expr) syntax.Visitor {
		if n == nil {
			return nil
		}
		visited = append(visited, n)
		return v
	}
	syntax.Walk(v, tree)

	// The root If, its Cond, its Then (a Seq), and the Seq's two
	// statements (Var and Id) are all distinct nodes worth visiting.
	assert.GreaterOrEqual(t, len(visited), 4)
}

func TestInspectStopsDescendingWhenFReturnsFalse(t *testing.T) {
	// Seq -> If -> {Cond, Then}: returning false for the If should keep
	// Inspect from ever reaching Cond or Then.
	tree := &syntax.Seq{Statements: []syntax.Expr{
		&syntax.If{
			Cond: &syntax.BooleanLiteral{Value: true},
			Then: &syntax.IntegerLiteral{Text: "1"},
		},
	}}

	var seen []syntax.Expr
	syntax.Inspect(tree, func(n syntax.Expr) bool {
		if n == nil {
			return false
		}
		seen = append(seen, n)
		_, isSeq := n.(*syntax.Seq)
		return isSeq // descend past the Seq, but not past its If child
	})

	require.Len(t, seen, 2) // the Seq, then the If -- never Cond or Then
	_, seqOK := seen[0].(*syntax.Seq)
	_, ifOK := seen[1].(*syntax.If)
	assert.True(t, seqOK)
	assert.True(t, ifOK)
}

type walkerFunc func(syntax.Expr) syntax.Visitor

func (f walkerFunc) Visit(n syntax.Expr) syntax.Visitor { return f(n) }
