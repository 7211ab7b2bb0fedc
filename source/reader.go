// Package source reads .dada source files from disk, converting them to
// UTF-8 if a byte-order mark says they need it, and tracks enough
// per-file line/column bookkeeping to turn a diag.Span into a
// human-readable location.
package source

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// newUnicodeReader wraps r in a transformer that rewrites UTF-16 (LE or
// BE) input to UTF-8 if and only if a byte-order mark is present; plain
// UTF-8 input (the overwhelmingly common case for .dada files) passes
// through unchanged.
func newUnicodeReader(r io.Reader) io.Reader {
	decoder := unicode.UTF8.NewDecoder()
	return transform.NewReader(r, unicode.BOMOverride(decoder))
}

// ReadBytes reads filename's contents, normalizing its encoding to
// UTF-8.
func ReadBytes(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(newUnicodeReader(f))
}

var newlineFinder = regexp.MustCompile("\x0a")

// File is one source file's text, together with enough indexing to
// recover a line and column from a byte offset.
type File struct {
	Path string
	Text string

	lineStarts []int // byte offset of the first byte of each line, line 0 first
}

// ReadFile reads and indexes path.
func ReadFile(path string) (*File, error) {
	content, err := ReadBytes(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return NewFile(abs, string(content)), nil
}

// NewFile indexes an already-read source text.
func NewFile(path, text string) *File {
	f := &File{Path: path, Text: text, lineStarts: []int{0}}
	for _, match := range newlineFinder.FindAllIndex([]byte(text), -1) {
		f.lineStarts = append(f.lineStarts, match[0]+1)
	}
	return f
}

// Position is a 1-based line and 0-based column, the way a text editor
// reports them.
type Position struct {
	Line, Column int
}

// PositionAt converts a byte offset into its Position. Offsets past the
// end of the file clamp to the last line.
func (f *File) PositionAt(offset int) Position {
	idx := sort.Search(len(f.lineStarts), func(i int) bool { return f.lineStarts[i] > offset }) - 1
	if idx < 0 {
		idx = 0
	}
	return Position{Line: idx + 1, Column: offset - f.lineStarts[idx]}
}

// Line returns the text of the 1-based line n, without its trailing
// newline.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.lineStarts) {
		return ""
	}
	start := f.lineStarts[n-1]
	end := len(f.Text)
	if n < len(f.lineStarts) {
		end = f.lineStarts[n] - 1
	}
	return strings.TrimRight(f.Text[start:end], "\r")
}
