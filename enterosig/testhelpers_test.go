package enterosig

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Reference taxa used across the tests: eight genus-level lineages plus one
// family-level row that rollup can land on.
var (
	taxEscherichia     = "d__Bacteria;f__Enterobacteriaceae;g__Escherichia"
	taxBifidobacterium = "d__Bacteria;f__Bifidobacteriaceae;g__Bifidobacterium"
	taxBacteroides     = "d__Bacteria;f__Bacteroidaceae;g__Bacteroides"
	taxPrevotella      = "d__Bacteria;f__Prevotellaceae;g__Prevotella"
	taxBlautia         = "d__Bacteria;f__Lachnospiraceae;g__Blautia"
	taxFaecali         = "d__Bacteria;f__Ruminococcaceae;g__Faecalibacterium"
	taxRoseburia       = "d__Bacteria;f__Lachnospiraceae;g__Roseburia"
	taxPhocaeicola     = "d__Bacteria;f__Bacteroidaceae;g__Phocaeicola"
	taxLachnoFamily    = "d__Bacteria;f__Lachnospiraceae"
)

func testTaxa() []string {
	return []string{
		taxEscherichia,
		taxBifidobacterium,
		taxBacteroides,
		taxPrevotella,
		taxBlautia,
		taxFaecali,
		taxRoseburia,
		taxPhocaeicola,
		taxLachnoFamily,
	}
}

func testBasis(t *testing.T) *ReferenceBasis {
	t.Helper()
	w := mustTable(t, testTaxa(), FiveESSignatures(), []float64{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0.2, 0,
		0, 0, 0, 1, 0,
		0, 0, 0, 0, 0.7,
		0, 0, 0.2, 0, 0.5,
		0, 0, 0, 0, 0.6,
		0, 0, 0.5, 0.1, 0,
		0.1, 0.1, 0.1, 0.1, 0.4,
	})
	basis, err := NewReferenceBasis(w)
	require.NoError(t, err)
	return basis
}

func mustTable(t *testing.T, rows, cols []string, data []float64) *Table {
	t.Helper()
	table, err := NewTable(rows, cols, data)
	require.NoError(t, err)
	return table
}

// normalizedBasisColumn returns basis column j rescaled to sum to one, as a
// ready-made sample abundance vector.
func normalizedBasisColumn(t *testing.T, basis *ReferenceBasis, j int) []float64 {
	t.Helper()
	col := basis.w.Col(j)
	var sum float64
	for _, v := range col {
		sum += v
	}
	require.Greater(t, sum, 0.0)
	for i := range col {
		col[i] /= sum
	}
	return col
}
