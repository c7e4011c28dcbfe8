package enterosig

import "gonum.org/v1/gonum/floats"

// NormalizeAbundance reindexes a reconciled table to the basis's fixed
// taxon order, zero-filling reference taxa absent from the input, and
// scales each sample column to sum to one over the reference taxon set.
// A sample summing to zero cannot be projected and is a data-validity
// error rather than a silent zero-fill.
func NormalizeAbundance(reconciled *Table, basis *ReferenceBasis) (*Table, error) {
	taxa := basis.Taxa()
	cols := reconciled.ColNames()
	x, err := NewTable(taxa, cols, nil)
	if err != nil {
		return nil, dataErrorf(ErrBadTable, "%v", err)
	}
	for name, src := range reconciled.rowIndex {
		dst, ok := x.RowIndex(name)
		if !ok {
			return nil, dataErrorf(ErrBadTable, "reconciled taxon %q is not a reference taxon", name)
		}
		for j := range cols {
			x.set(dst, j, reconciled.At(src, j))
		}
	}
	for j, sample := range cols {
		sum := floats.Sum(x.Col(j))
		if sum <= 0 {
			return nil, dataErrorf(ErrEmptySample, "sample %q", sample)
		}
		for i := range taxa {
			x.set(i, j, x.At(i, j)/sum)
		}
	}
	return x, nil
}
