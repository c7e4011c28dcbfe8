package enterosig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleColumnsSumsToOne(t *testing.T) {
	h := mustTable(t, []string{"ES_A", "ES_B", "ES_C"}, []string{"S1", "S2"}, []float64{
		2, 1,
		6, 1,
		0, 2,
	})
	scaled := ScaleColumns(h)
	for j := 0; j < 2; j++ {
		var sum float64
		for _, v := range scaled.Col(j) {
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-12)
	}
	assert.InDelta(t, 0.25, scaled.At(0, 0), 1e-12)
	assert.InDelta(t, 0.75, scaled.At(1, 0), 1e-12)
	// The input table is left untouched.
	assert.Equal(t, 2.0, h.At(0, 0))
}

func TestScaleColumnsLeavesZeroColumns(t *testing.T) {
	h := mustTable(t, []string{"ES_A", "ES_B"}, []string{"S1"}, []float64{
		0,
		0,
	})
	scaled := ScaleColumns(h)
	assert.Zero(t, scaled.At(0, 0))
	assert.Zero(t, scaled.At(1, 0))
}

func TestPrimarySignaturesArgmax(t *testing.T) {
	h := mustTable(t, []string{"ES_A", "ES_B", "ES_C"}, []string{"S1", "S2"}, []float64{
		1, 5,
		3, 2,
		1, 1,
	})
	primary := PrimarySignatures(h)
	require.Len(t, primary, 2)
	assert.Equal(t, "ES_B", primary[0].Signature)
	assert.Equal(t, 1, primary[0].Index)
	assert.InDelta(t, 0.6, primary[0].Weight, 1e-12)
	assert.Equal(t, "ES_A", primary[1].Signature)
	assert.Equal(t, 0, primary[1].Index)
}

func TestPrimarySignaturesTieBreaksToLowestIndex(t *testing.T) {
	h := mustTable(t, []string{"ES_A", "ES_B", "ES_C"}, []string{"S1"}, []float64{
		2,
		4,
		4,
	})
	primary := PrimarySignatures(h)
	require.Len(t, primary, 1)
	assert.Equal(t, 1, primary[0].Index)
	assert.Equal(t, "ES_B", primary[0].Signature)
}

func TestRepresentativeSignaturesThreshold(t *testing.T) {
	h := mustTable(t, []string{"ES_A", "ES_B", "ES_C", "ES_D"}, []string{"S1"}, []float64{
		0.7,
		0.3,
		0.0,
		0.0,
	})
	members := RepresentativeSignatures(h, 0.25)
	assert.Equal(t, 1.0, members.At(0, 0))
	assert.Equal(t, 1.0, members.At(1, 0))
	assert.Equal(t, 0.0, members.At(2, 0))
	assert.Equal(t, 0.0, members.At(3, 0))
}

func TestRepresentativeSignaturesThresholdIsInclusive(t *testing.T) {
	h := mustTable(t, []string{"ES_A", "ES_B"}, []string{"S1"}, []float64{
		0.75,
		0.25,
	})
	members := RepresentativeSignatures(h, 0.25)
	assert.Equal(t, 1.0, members.At(1, 0))
}

func TestMonodominantSamples(t *testing.T) {
	h := mustTable(t, []string{"ES_A", "ES_B"}, []string{"S1", "S2", "S3"}, []float64{
		0.95, 0.5, 0.9,
		0.05, 0.5, 0.1,
	})
	mono := MonodominantSamples(h, 0.9)
	require.Len(t, mono, 1)
	assert.Equal(t, "S1", mono[0].Sample)
	assert.Equal(t, "ES_A", mono[0].Signature)
	assert.InDelta(t, 0.95, mono[0].Weight, 1e-12)
}
