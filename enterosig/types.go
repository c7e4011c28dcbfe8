package enterosig

import "fmt"

// LogFunc is the caller-injected logging sink. The pipeline emits one
// human-readable line per resolution decision through it; a nil LogFunc
// discards everything.
type LogFunc func(line string)

func logf(sink LogFunc, format string, args ...any) {
	if sink != nil {
		sink(fmt.Sprintf(format, args...))
	}
}

// MatchMethod records how an input taxon was resolved against the
// reference vocabulary.
type MatchMethod string

const (
	// MatchHard means a caller-supplied override relabelled the taxon.
	MatchHard MatchMethod = "hard_mapping"
	// MatchExact means the normalized label matched the vocabulary as-is.
	MatchExact MatchMethod = "exact"
	// MatchRollup means the taxon was aggregated up to an ancestor rank.
	MatchRollup MatchMethod = "rollup"
	// MatchUnmapped means no resolution was found; the taxon is excluded
	// from projection but kept visible for audit.
	MatchUnmapped MatchMethod = "unmapped"
)

// TaxonMatch is one audit entry of the reconciliation step.
type TaxonMatch struct {
	Input       string      `json:"input"`
	Reference   string      `json:"reference,omitempty"`
	Method      MatchMethod `json:"method"`
	RolledRanks int         `json:"rolledRanks,omitempty"`
}

// TaxonMapping is the immutable record of every resolution decision made
// for one input table, in input row order.
type TaxonMapping struct {
	entries []TaxonMatch
}

// Entries returns a copy of all audit entries.
func (m *TaxonMapping) Entries() []TaxonMatch {
	out := make([]TaxonMatch, len(m.entries))
	copy(out, m.entries)
	return out
}

// Unmapped returns the input labels that failed to resolve.
func (m *TaxonMapping) Unmapped() []string {
	var out []string
	for _, e := range m.entries {
		if e.Method == MatchUnmapped {
			out = append(out, e.Input)
		}
	}
	return out
}

// CountByMethod tallies entries per resolution method.
func (m *TaxonMapping) CountByMethod() map[MatchMethod]int {
	out := make(map[MatchMethod]int, 4)
	for _, e := range m.entries {
		out[e.Method]++
	}
	return out
}

// QualityRow holds the per-sample reconstruction diagnostics.
type QualityRow struct {
	Sample     string  `json:"sample"`
	Cosine     float64 `json:"cosine"`
	Converged  bool    `json:"converged"`
	Iterations int     `json:"iterations"`
}

// QualitySeries is the per-sample quality table, in sample order.
type QualitySeries []QualityRow

// ModelFit summarizes how well the fixed basis reconstructs the whole
// table. Poor fit is informational; no sample is ever excluded by it.
type ModelFit struct {
	Samples         int     `json:"samples"`
	MeanCosine      float64 `json:"meanCosine"`
	MedianCosine    float64 `json:"medianCosine"`
	MinCosine       float64 `json:"minCosine"`
	LowFitCount     int     `json:"lowFitCount"`
	LowFitThreshold float64 `json:"lowFitThreshold"`
}

// PrimarySignature names the strongest signature for one sample.
type PrimarySignature struct {
	Sample    string  `json:"sample"`
	Signature string  `json:"signature"`
	Index     int     `json:"index"`
	Weight    float64 `json:"weight"`
}

// MonodominantSample marks a sample essentially explained by a single
// signature.
type MonodominantSample struct {
	Sample    string  `json:"sample"`
	Signature string  `json:"signature"`
	Weight    float64 `json:"weight"`
}
