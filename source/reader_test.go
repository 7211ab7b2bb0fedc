package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veeupup/dada/source"
)

func TestNewFilePositionAtFindsLineAndColumn(t *testing.T) {
	f := source.NewFile("fixture.dada", "fn f(x) {\n  give x\n}\n")

	pos := f.PositionAt(0)
	assert.Equal(t, source.Position{Line: 1, Column: 0}, pos)

	giveOffset := 12 // the 'g' in "give"
	pos = f.PositionAt(giveOffset)
	assert.Equal(t, source.Position{Line: 2, Column: 2}, pos)
}

func TestNewFileLineReturnsLineWithoutNewline(t *testing.T) {
	f := source.NewFile("fixture.dada", "fn f(x) {\n  give x\n}\n")
	assert.Equal(t, "  give x", f.Line(2))
	assert.Equal(t, "", f.Line(0))
	assert.Equal(t, "", f.Line(99))
}

func TestReadFileNormalizesToUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.dada")
	require.NoError(t, os.WriteFile(path, []byte("fn f(x) {\n  give x\n}\n"), 0o644))

	f, err := source.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, f.Text, "give x")
	assert.True(t, filepath.IsAbs(f.Path))
}
