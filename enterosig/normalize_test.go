package enterosig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAbundanceReindexesAndScales(t *testing.T) {
	basis := testBasis(t)
	reconciled := mustTable(t, []string{taxBlautia, taxPrevotella}, []string{"S1", "S2"}, []float64{
		6, 1,
		2, 3,
	})

	x, err := NormalizeAbundance(reconciled, basis)
	require.NoError(t, err)

	assert.Equal(t, basis.Taxa(), x.RowNames())
	nr, _ := x.Dims()
	assert.Equal(t, len(basis.Taxa()), nr)

	// Sample columns sum to one over the reference taxon set.
	for j := range x.ColNames() {
		var sum float64
		for _, v := range x.Col(j) {
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-12)
	}

	iBlautia, _ := x.RowIndex(taxBlautia)
	iPrev, _ := x.RowIndex(taxPrevotella)
	iEsch, _ := x.RowIndex(taxEscherichia)
	assert.InDelta(t, 0.75, x.At(iBlautia, 0), 1e-12)
	assert.InDelta(t, 0.25, x.At(iPrev, 0), 1e-12)
	// Reference taxa absent from the input are zero-filled.
	assert.Zero(t, x.At(iEsch, 0))
	assert.Zero(t, x.At(iEsch, 1))
}

func TestNormalizeAbundanceRejectsZeroSumSample(t *testing.T) {
	basis := testBasis(t)
	reconciled := mustTable(t, []string{taxBlautia}, []string{"S1", "S2"}, []float64{
		5, 0,
	})

	_, err := NormalizeAbundance(reconciled, basis)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptySample)
	assert.Contains(t, err.Error(), "S2")
}
