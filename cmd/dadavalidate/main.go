// Command dadavalidate reads a .dada source file and runs it through
// the validator, printing either the validated IR or the diagnostics
// found along the way.
//
// There is no lexer/parser in this repository (an external
// collaborator's concern, the same way the teacher's own CST/AST
// construction is fed by a separate tree-sitter grammar); this driver
// reads the file's text purely to demonstrate source.ReadFile, and
// validates the fixture function named on the command line instead of
// whatever the file's text actually says.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Veeupup/dada/internal/diag"
	"github.com/Veeupup/dada/internal/syntax"
	"github.com/Veeupup/dada/internal/validate"
	"github.com/Veeupup/dada/source"
)

func main() {
	fixture := flag.String("fixture", "increment", "which built-in fixture function to validate")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: dadavalidate [-fixture name] <path.dada>")
		os.Exit(2)
	}

	path := flag.Arg(0)
	file, err := source.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dadavalidate: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("read %d bytes from %s\n\n", len(file.Text), file.Path)

	f, ok := fixtures[*fixture]
	if !ok {
		fmt.Fprintf(os.Stderr, "dadavalidate: unknown fixture %q\n", *fixture)
		os.Exit(2)
	}

	collector := &diag.Collector{}
	result := validate.Validate(f, collector)

	for _, d := range collector.Diagnostics {
		fmt.Println(d.String())
	}
	if collector.HasErrors() {
		os.Exit(1)
	}

	fmt.Println(validate.Print(result))
}

// fixtures stands in for what a real lexer/parser would hand the
// validator.
var fixtures = map[string]*syntax.Function{
	"increment": {
		Name: "increment",
		Parameters: []syntax.Parameter{
			{Name: "counter", Specifier: syntax.My},
		},
		Effect: syntax.Default,
		Body: &syntax.OpEq{
			Place: &syntax.Id{Name: "counter"},
			Op:    syntax.Add,
			Value: &syntax.IntegerLiteral{Text: "1"},
		},
	},
	"fetch": {
		Name: "fetch",
		Parameters: []syntax.Parameter{
			{Name: "future", Specifier: syntax.My},
		},
		Effect: syntax.Async,
		Body:   &syntax.Await{Future: &syntax.Id{Name: "future"}},
	},
}
