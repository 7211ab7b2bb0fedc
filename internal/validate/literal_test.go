package validate

import "testing"

func TestDedentStripsCommonWhitespacePrefix(t *testing.T) {
	in := "\n    hello\n      world\n    \n    done\n    "
	got := dedent(in)
	want := "hello\n  world\n\ndone"
	if got != want {
		t.Fatalf("dedent(%q) = %q, want %q", in, got, want)
	}
}

func TestDedentSingleLinePassesThrough(t *testing.T) {
	in := "hello"
	if got := dedent(in); got != in {
		t.Fatalf("dedent(%q) = %q, want unchanged", in, got)
	}
}

func TestApplyEscapesHandlesKnownEscapesOnly(t *testing.T) {
	in := `a\nb\tc\\d\"e\qf`
	want := "a\nb\tc\\d\"e\\qf"
	if got := applyEscapes(in); got != want {
		t.Fatalf("applyEscapes(%q) = %q, want %q", in, got, want)
	}
}

func TestStripUnderscoresRemovesDigitSeparators(t *testing.T) {
	if got := stripUnderscores("1_000_000"); got != "1000000" {
		t.Fatalf("got %q", got)
	}
}

func TestParseUnsignedIntOverflowFails(t *testing.T) {
	if _, ok := parseUnsignedInt("99999999999999999999"); ok {
		t.Fatal("expected overflow to fail")
	}
}

func TestCountBytesInCommon(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"  ", "    ", 2},
		{"    ", "  ", 2},
		{"", "abc", 0},
		{"abc", "abd", 2},
	}
	for _, c := range cases {
		if got := countBytesInCommon(c.a, c.b); got != c.want {
			t.Fatalf("countBytesInCommon(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
