package enterosig

import "gonum.org/v1/gonum/floats"

// ScaleColumns returns a view of a table with each column rescaled to sum
// to one. This is purely a presentation transform; nothing is re-solved.
// All-zero columns are left as-is.
func ScaleColumns(t *Table) *Table {
	out := t.Clone()
	nr, nc := out.Dims()
	for j := 0; j < nc; j++ {
		sum := floats.Sum(out.Col(j))
		if sum == 0 {
			continue
		}
		for i := 0; i < nr; i++ {
			out.set(i, j, out.At(i, j)/sum)
		}
	}
	return out
}

// PrimarySignatures returns, per sample, the signature with maximal weight.
// Ties break to the lowest signature index so the assignment is stable.
// Weights are reported on the column-scaled view of H.
func PrimarySignatures(h *Table) []PrimarySignature {
	scaled := ScaleColumns(h)
	sigs := scaled.RowNames()
	samples := scaled.ColNames()
	out := make([]PrimarySignature, len(samples))
	for j, sample := range samples {
		best := 0
		for i := 1; i < len(sigs); i++ {
			if scaled.At(i, j) > scaled.At(best, j) {
				best = i
			}
		}
		out[j] = PrimarySignature{
			Sample:    sample,
			Signature: sigs[best],
			Index:     best,
			Weight:    scaled.At(best, j),
		}
	}
	return out
}

// RepresentativeSignatures returns a 0/1 membership table (signatures by
// samples) marking every signature whose scaled weight meets the inclusion
// threshold for that sample. Mixtures show several representative
// signatures; dominated samples show one.
func RepresentativeSignatures(h *Table, threshold float64) *Table {
	scaled := ScaleColumns(h)
	out, _ := NewTable(scaled.RowNames(), scaled.ColNames(), nil)
	nr, nc := out.Dims()
	for j := 0; j < nc; j++ {
		for i := 0; i < nr; i++ {
			if scaled.At(i, j) >= threshold {
				out.set(i, j, 1)
			}
		}
	}
	return out
}

// MonodominantSamples lists the samples whose primary signature's scaled
// weight exceeds the high-dominance threshold.
func MonodominantSamples(h *Table, threshold float64) []MonodominantSample {
	var out []MonodominantSample
	for _, p := range PrimarySignatures(h) {
		if p.Weight > threshold {
			out = append(out, MonodominantSample{
				Sample:    p.Sample,
				Signature: p.Signature,
				Weight:    p.Weight,
			})
		}
	}
	return out
}
