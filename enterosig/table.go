package enterosig

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Table is a dense matrix with row and column labels. Rows and columns keep
// insertion order; lookups go through an index map so reconciliation stays
// linear in table size.
type Table struct {
	rowNames []string
	colNames []string
	rowIndex map[string]int
	m        *mat.Dense
}

// NewTable builds a table from row-major data. len(data) must equal
// len(rows)*len(cols); data may be nil for an all-zero table.
func NewTable(rows, cols []string, data []float64) (*Table, error) {
	if len(rows) == 0 || len(cols) == 0 {
		return nil, fmt.Errorf("table must have at least one row and column")
	}
	if data != nil && len(data) != len(rows)*len(cols) {
		return nil, fmt.Errorf("table data length %d does not match %dx%d", len(data), len(rows), len(cols))
	}
	idx := make(map[string]int, len(rows))
	for i, name := range rows {
		if _, dup := idx[name]; dup {
			return nil, fmt.Errorf("duplicate row label %q", name)
		}
		idx[name] = i
	}
	seenCols := make(map[string]struct{}, len(cols))
	for _, name := range cols {
		if _, dup := seenCols[name]; dup {
			return nil, fmt.Errorf("duplicate column label %q", name)
		}
		seenCols[name] = struct{}{}
	}
	return &Table{
		rowNames: append([]string(nil), rows...),
		colNames: append([]string(nil), cols...),
		rowIndex: idx,
		m:        mat.NewDense(len(rows), len(cols), data),
	}, nil
}

// RowNames returns a copy of the row labels.
func (t *Table) RowNames() []string {
	return append([]string(nil), t.rowNames...)
}

// ColNames returns a copy of the column labels.
func (t *Table) ColNames() []string {
	return append([]string(nil), t.colNames...)
}

// Dims returns (rows, cols).
func (t *Table) Dims() (int, int) {
	return t.m.Dims()
}

// At returns the value at row i, column j.
func (t *Table) At(i, j int) float64 {
	return t.m.At(i, j)
}

// RowIndex reports the position of a row label.
func (t *Table) RowIndex(name string) (int, bool) {
	i, ok := t.rowIndex[name]
	return i, ok
}

// Col copies column j into a fresh slice.
func (t *Table) Col(j int) []float64 {
	return mat.Col(nil, j, t.m)
}

// Clone returns an independent deep copy.
func (t *Table) Clone() *Table {
	out, _ := NewTable(t.rowNames, t.colNames, nil)
	out.m.Copy(t.m)
	return out
}

// Transpose returns a new table with rows and columns swapped. Labels are
// valid by construction, so the swapped table cannot fail validation.
func (t *Table) Transpose() *Table {
	out, _ := NewTable(t.colNames, t.rowNames, nil)
	out.m.Copy(t.m.T())
	return out
}

func (t *Table) set(i, j int, v float64) {
	t.m.Set(i, j, v)
}

// matrix exposes the underlying dense matrix for in-package numeric work.
// Callers outside the package only ever see copies.
func (t *Table) matrix() *mat.Dense {
	return t.m
}
