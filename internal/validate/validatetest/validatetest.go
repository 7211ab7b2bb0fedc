// Package validatetest provides a table-driven harness for exercising
// the validator against hand-built syntax trees.
package validatetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veeupup/dada/internal/diag"
	"github.com/Veeupup/dada/internal/syntax"
	"github.com/Veeupup/dada/internal/validate"
)

// Case is one table entry: a function to validate, and the
// diagnostics it is expected to produce (by message substring, in
// order; nil or empty means "no diagnostics expected").
type Case struct {
	Name                string
	Function            *syntax.Function
	ExpectedDiagnostics []string
	// Check, if non-nil, receives the validated Result for further
	// assertions specific to this case.
	Check func(t *testing.T, result validate.Result)
}

// Run validates every Case and asserts its expectations.
func Run(t *testing.T, cases []Case) {
	t.Helper()
	for _, tc := range cases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			collector := &diag.Collector{}
			result := validate.Validate(tc.Function, collector)

			require.Len(t, collector.Diagnostics, len(tc.ExpectedDiagnostics))
			for i, want := range tc.ExpectedDiagnostics {
				assert.Contains(t, collector.Diagnostics[i].Primary.Message, want)
			}

			if tc.Check != nil {
				tc.Check(t, result)
			}
		})
	}
}
