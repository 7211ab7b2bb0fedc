package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veeupup/dada/internal/diag"
	"github.com/Veeupup/dada/internal/syntax"
	"github.com/Veeupup/dada/internal/validate"
)

func TestPrintRendersNestedStructure(t *testing.T) {
	opEq := &syntax.OpEq{
		Place: &syntax.Id{Name: "x"},
		Op:    syntax.Add,
		Value: &syntax.IntegerLiteral{Text: "1"},
	}
	f := fn("f", []syntax.Parameter{{Name: "x", Specifier: syntax.My}}, syntax.Default, opEq)

	collector := &diag.Collector{}
	result := validate.Validate(f, collector)
	require.Empty(t, collector.Diagnostics)

	out := validate.Print(result)
	assert.Contains(t, out, "seq")
	assert.Contains(t, out, "op")
	assert.True(t, strings.Count(out, "\n") > 3)
}
