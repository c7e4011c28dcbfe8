package enterosig

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadAbundanceTable reads a tab-separated abundance table. The first row
// is a header, the first column holds identifiers. Either orientation is
// accepted: if the header labels look more like lineages than the row
// labels do, the table is transposed so rows are always taxa and columns
// samples.
func ReadAbundanceTable(r io.Reader) (*Table, error) {
	rows, header, err := readTSV(r)
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(rows))
	data := make([]float64, 0, len(rows)*len(header))
	for i, row := range rows {
		labels[i] = row[0]
		for j, cell := range row[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, dataErrorf(ErrBadTable, "row %q column %q: value %q is not numeric",
					row[0], header[j], cell)
			}
			if v < 0 {
				return nil, dataErrorf(ErrBadTable, "row %q column %q: negative abundance %g",
					row[0], header[j], v)
			}
			data = append(data, v)
		}
	}
	t, err := NewTable(labels, header, data)
	if err != nil {
		return nil, dataErrorf(ErrBadTable, "%v", err)
	}
	if taxaAreColumns(labels, header) {
		t = t.Transpose()
	}
	return t, nil
}

// ReadAbundanceTableFile opens and reads a TSV abundance table.
func ReadAbundanceTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	return ReadAbundanceTable(f)
}

// LoadBasis reads a taxa-by-signature weight matrix from a TSV file and
// validates it as a reference basis.
func LoadBasis(path string) (*ReferenceBasis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open basis %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	rows, header, err := readTSV(f)
	if err != nil {
		return nil, fmt.Errorf("basis %s: %w", filepath.Base(path), err)
	}
	labels := make([]string, len(rows))
	data := make([]float64, 0, len(rows)*len(header))
	for i, row := range rows {
		labels[i] = row[0]
		for j, cell := range row[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("basis %s: row %q column %q: %w",
					filepath.Base(path), row[0], header[j], err)
			}
			data = append(data, v)
		}
	}
	t, err := NewTable(labels, header, data)
	if err != nil {
		return nil, fmt.Errorf("basis %s: %w", filepath.Base(path), err)
	}
	return NewReferenceBasis(t)
}

// ReadHardMapping reads a two-column TSV of input label to reference taxon
// overrides. Lines starting with '#' and an optional "input<TAB>reference"
// header row are skipped; both sides are normalized the same way matching
// is.
func ReadHardMapping(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mapping %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	reader := csv.NewReader(f)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.Comment = '#'
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read mapping %s: %w", filepath.Base(path), err)
	}
	out := make(map[string]string, len(records))
	for i, rec := range records {
		if len(rec) < 2 {
			continue
		}
		from := NormalizeLabel(rec[0])
		to := NormalizeLabel(rec[1])
		if from == "" || to == "" {
			continue
		}
		if i == 0 && strings.EqualFold(from, "input") && strings.EqualFold(to, "reference") {
			continue
		}
		out[from] = to
	}
	return out, nil
}

// WriteTableTSV writes a labeled table as TSV, index column first.
func WriteTableTSV(w io.Writer, t *Table, indexName string) error {
	writer := csv.NewWriter(w)
	writer.Comma = '\t'
	if err := writer.Write(append([]string{indexName}, t.ColNames()...)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	nr, nc := t.Dims()
	row := make([]string, nc+1)
	for i := 0; i < nr; i++ {
		row[0] = t.rowNames[i]
		for j := 0; j < nc; j++ {
			row[j+1] = strconv.FormatFloat(t.At(i, j), 'g', -1, 64)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row %q: %w", row[0], err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// readTSV returns the data rows and the header labels (first cell of the
// header, usually the index name, is dropped).
func readTSV(r io.Reader) ([][]string, []string, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, dataErrorf(ErrBadTable, "%v", err)
	}
	if len(records) < 2 {
		return nil, nil, dataErrorf(ErrBadTable, "table needs a header row and at least one data row")
	}
	header := make([]string, 0, len(records[0])-1)
	for _, cell := range records[0][1:] {
		header = append(header, strings.TrimSpace(cell))
	}
	if len(header) == 0 {
		return nil, nil, dataErrorf(ErrBadTable, "table has no data columns")
	}
	rows := make([][]string, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) != len(header)+1 {
			return nil, nil, dataErrorf(ErrBadTable, "row %d has %d cells, expected %d",
				i+2, len(rec), len(header)+1)
		}
		rec[0] = strings.TrimSpace(rec[0])
		rows = append(rows, rec)
	}
	if len(rows) == 0 {
		return nil, nil, dataErrorf(ErrBadTable, "table has no data rows")
	}
	return rows, header, nil
}

// taxaAreColumns reports whether the column labels look more like taxon
// lineages than the row labels, i.e. the table is sample-by-taxon.
func taxaAreColumns(rowLabels, colLabels []string) bool {
	return countTaxonLike(colLabels) > countTaxonLike(rowLabels)
}

func countTaxonLike(labels []string) int {
	n := 0
	for _, l := range labels {
		if looksLikeTaxon(l) {
			n++
		}
	}
	return n
}
