package syntax_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veeupup/dada/internal/syntax"
)

func TestFprintRendersFieldsAndSkipsNil(t *testing.T) {
	tree := &syntax.If{
		Cond: &syntax.BooleanLiteral{Value: true},
		Then: &syntax.Tuple{},
		// Else left nil
	}

	var buf bytes.Buffer
	require.NoError(t, syntax.Fprint(&buf, tree))

	out := buf.String()
	assert.Contains(t, out, "BooleanLiteral")
	assert.Contains(t, out, "Tuple")
	assert.NotContains(t, out, "Else")
}
