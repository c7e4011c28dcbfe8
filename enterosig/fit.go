package enterosig

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Evaluate computes per-sample reconstruction quality and a whole-table
// fit summary for a solved projection. Quality is the cosine similarity
// between each sample and its reconstruction basis·h, clamped to [0,1]
// with 1 meaning a perfect reconstruction. No sample is filtered on fit;
// a low score only signals that the basis may not represent that
// community well.
func Evaluate(basis *ReferenceBasis, x *Table, proj *Projection, lowFitThreshold float64) (QualitySeries, ModelFit) {
	var recon mat.Dense
	recon.Mul(basis.w.matrix(), proj.H.matrix())

	samples := x.ColNames()
	series := make(QualitySeries, len(samples))
	cosines := make([]float64, len(samples))
	for j, sample := range samples {
		c := cosineSimilarity(x.Col(j), mat.Col(nil, j, &recon))
		if c < 0 {
			c = 0
		} else if c > 1 {
			c = 1
		}
		cosines[j] = c
		series[j] = QualityRow{
			Sample:     sample,
			Cosine:     c,
			Converged:  proj.Converged[j],
			Iterations: proj.Iterations[j],
		}
	}

	fit := ModelFit{
		Samples:         len(samples),
		LowFitThreshold: lowFitThreshold,
	}
	if len(cosines) > 0 {
		sorted := append([]float64(nil), cosines...)
		sort.Float64s(sorted)
		fit.MinCosine = sorted[0]
		mid := len(sorted) / 2
		if len(sorted)%2 == 0 {
			fit.MedianCosine = (sorted[mid-1] + sorted[mid]) / 2
		} else {
			fit.MedianCosine = sorted[mid]
		}
		var sum float64
		for _, c := range cosines {
			sum += c
			if c < lowFitThreshold {
				fit.LowFitCount++
			}
		}
		fit.MeanCosine = sum / float64(len(cosines))
	}
	return series, fit
}

func cosineSimilarity(a, b []float64) float64 {
	dot := floats.Dot(a, b)
	na := floats.Dot(a, a)
	nb := floats.Dot(b, b)
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
