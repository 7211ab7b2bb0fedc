package syntax

import (
	"go/ast"
	"io"
	"os"
)

// Print prints n to standard output, skipping nil fields. Print(n) is
// the same as Fprint(os.Stdout, n).
func Print(n Expr) error {
	return Fprint(os.Stdout, n)
}

// Fprint prints n to w, skipping nil fields. It reuses go/ast's
// reflection-based struct printer rather than hand-writing one: that
// printer is generic over any Go data structure, not specific to Go's
// own AST, and a syntax tree is exactly the kind of nested,
// interface-typed struct graph it was built to dump.
func Fprint(w io.Writer, n Expr) error {
	return ast.Fprint(w, nil, n, ast.NotNilFilter)
}
