package enterosig

import (
	"fmt"
)

// ReferenceBasis is the frozen, pretrained non-negative W matrix: rows are
// reference taxa in fixed order, columns are signatures. It is loaded once
// and never mutated, so a single instance is safe to share across any
// number of concurrent reapplications.
type ReferenceBasis struct {
	w     *Table
	vocab map[string]int
}

// NewReferenceBasis validates and wraps a taxa-by-signature weight table.
// Row labels are normalized before they enter the matching vocabulary.
func NewReferenceBasis(w *Table) (*ReferenceBasis, error) {
	rows, cols := w.Dims()
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("reference basis must not be empty")
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := w.At(i, j); v < 0 {
				return nil, fmt.Errorf("reference basis contains negative weight %g at %q/%q",
					v, w.rowNames[i], w.colNames[j])
			}
		}
	}
	normRows := make([]string, rows)
	for i, name := range w.RowNames() {
		normRows[i] = NormalizeLabel(name)
	}
	normed, err := NewTable(normRows, w.ColNames(), nil)
	if err != nil {
		return nil, fmt.Errorf("reference basis: %w", err)
	}
	normed.m.Copy(w.matrix())
	vocab := make(map[string]int, rows)
	for i, name := range normRows {
		vocab[name] = i
	}
	return &ReferenceBasis{w: normed, vocab: vocab}, nil
}

// Taxa returns the reference taxon labels in basis order.
func (b *ReferenceBasis) Taxa() []string {
	return b.w.RowNames()
}

// Signatures returns the signature names in basis order.
func (b *ReferenceBasis) Signatures() []string {
	return b.w.ColNames()
}

// SignatureCount returns the factorization rank of the basis.
func (b *ReferenceBasis) SignatureCount() int {
	_, k := b.w.Dims()
	return k
}

// W returns an independent copy of the weight table, echoed into results
// so downstream consumers see the exact basis a projection used.
func (b *ReferenceBasis) W() *Table {
	return b.w.Clone()
}

// taxonIndex resolves a normalized label against the vocabulary.
func (b *ReferenceBasis) taxonIndex(label string) (int, bool) {
	i, ok := b.vocab[label]
	return i, ok
}

// FiveESSignatures lists the signature names of the reference
// five-Enterosignature deployment, in basis column order.
func FiveESSignatures() []string {
	return []string{"ES_Esch", "ES_Bifi", "ES_Bact", "ES_Prev", "ES_Firm"}
}

// SignatureColors returns the display palette used for the five reference
// Enterosignatures, so every downstream renderer agrees on color.
func SignatureColors() map[string]string {
	return map[string]string{
		"ES_Esch": "#483838",
		"ES_Bifi": "#009E73",
		"ES_Bact": "#E69F00",
		"ES_Prev": "#D55E00",
		"ES_Firm": "#023e8a",
	}
}
