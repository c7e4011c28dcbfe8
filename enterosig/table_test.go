package enterosig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTableRejectsDuplicateRows(t *testing.T) {
	_, err := NewTable([]string{"a", "a"}, []string{"s1"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate row label")
}

func TestNewTableRejectsDuplicateColumns(t *testing.T) {
	_, err := NewTable([]string{"a", "b"}, []string{"S1", "S1"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate column label")
}

func TestNewTableRejectsBadShape(t *testing.T) {
	_, err := NewTable([]string{"a"}, []string{"s1", "s2"}, []float64{1})
	require.Error(t, err)

	_, err = NewTable(nil, []string{"s1"}, nil)
	require.Error(t, err)
}

func TestTableCloneIsIndependent(t *testing.T) {
	orig := mustTable(t, []string{"a", "b"}, []string{"s1"}, []float64{1, 2})
	clone := orig.Clone()
	clone.set(0, 0, 99)
	assert.Equal(t, 1.0, orig.At(0, 0))
	assert.Equal(t, 99.0, clone.At(0, 0))
}

func TestTableTranspose(t *testing.T) {
	orig := mustTable(t, []string{"a", "b"}, []string{"s1", "s2", "s3"}, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	tr := orig.Transpose()
	assert.Equal(t, []string{"s1", "s2", "s3"}, tr.RowNames())
	assert.Equal(t, []string{"a", "b"}, tr.ColNames())
	assert.Equal(t, 2.0, tr.At(1, 0))
	assert.Equal(t, 6.0, tr.At(2, 1))
}

func TestTableColCopies(t *testing.T) {
	orig := mustTable(t, []string{"a", "b"}, []string{"s1"}, []float64{1, 2})
	col := orig.Col(0)
	col[0] = 42
	assert.Equal(t, 1.0, orig.At(0, 0))
}
