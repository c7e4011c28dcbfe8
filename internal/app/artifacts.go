package app

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/apduncan/enterosig-sl/enterosig"
)

// writeArtifacts writes the full result set as TSV files plus the run log,
// matching the artifact names downstream tooling expects.
func writeArtifacts(dir string, result *enterosig.Result) error {
	tables := []struct {
		name  string
		table *enterosig.Table
		index string
	}{
		{"w.tsv", result.W, "taxon"},
		{"h.tsv", result.H, "signature"},
		{"w_scaled.tsv", result.ScaledW(), "taxon"},
		{"h_scaled.tsv", result.ScaledH(), "signature"},
		{"x.tsv", result.X, "taxon"},
		{"representative_signatures.tsv", result.RepresentativeSignatures(), "signature"},
	}
	for _, t := range tables {
		if err := writeTable(filepath.Join(dir, t.name), t.table, t.index); err != nil {
			return err
		}
	}
	if err := writeMapping(filepath.Join(dir, "taxon_mapping.tsv"), result.Mapping); err != nil {
		return err
	}
	if err := writeQuality(filepath.Join(dir, "quality_measures.tsv"), result.Quality); err != nil {
		return err
	}
	if err := writeModelFit(filepath.Join(dir, "model_fit.tsv"), result.Fit); err != nil {
		return err
	}
	if err := writePrimary(filepath.Join(dir, "primary_signatures.tsv"), result.PrimarySignatures()); err != nil {
		return err
	}
	if err := writeMonodominant(filepath.Join(dir, "monodominant_samples.tsv"), result.MonodominantSamples()); err != nil {
		return err
	}
	logPath := filepath.Join(dir, "log.txt")
	if err := os.WriteFile(logPath, []byte(strings.Join(result.Log, "\n")+"\n"), 0o644); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func writeTable(path string, t *enterosig.Table, indexName string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	if err := enterosig.WriteTableTSV(f, t, indexName); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeRows(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	writer := csv.NewWriter(f)
	writer.Comma = '\t'
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write %s header: %w", filepath.Base(path), err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write %s row: %w", filepath.Base(path), err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeMapping(path string, mapping *enterosig.TaxonMapping) error {
	entries := mapping.Entries()
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Input, e.Reference, string(e.Method), strconv.Itoa(e.RolledRanks)}
	}
	return writeRows(path, []string{"input", "reference", "method", "rolled_ranks"}, rows)
}

func writeQuality(path string, series enterosig.QualitySeries) error {
	rows := make([][]string, len(series))
	for i, q := range series {
		rows[i] = []string{
			q.Sample,
			formatFloat(q.Cosine),
			strconv.FormatBool(q.Converged),
			strconv.Itoa(q.Iterations),
		}
	}
	return writeRows(path, []string{"sample", "cosine", "converged", "iterations"}, rows)
}

func writeModelFit(path string, fit enterosig.ModelFit) error {
	rows := [][]string{
		{"samples", strconv.Itoa(fit.Samples)},
		{"mean_cosine", formatFloat(fit.MeanCosine)},
		{"median_cosine", formatFloat(fit.MedianCosine)},
		{"min_cosine", formatFloat(fit.MinCosine)},
		{"low_fit_count", strconv.Itoa(fit.LowFitCount)},
		{"low_fit_threshold", formatFloat(fit.LowFitThreshold)},
	}
	return writeRows(path, []string{"statistic", "value"}, rows)
}

func writePrimary(path string, primary []enterosig.PrimarySignature) error {
	rows := make([][]string, len(primary))
	for i, p := range primary {
		rows[i] = []string{p.Sample, p.Signature, formatFloat(p.Weight)}
	}
	return writeRows(path, []string{"sample", "signature", "weight"}, rows)
}

func writeMonodominant(path string, mono []enterosig.MonodominantSample) error {
	rows := make([][]string, len(mono))
	for i, m := range mono {
		rows[i] = []string{m.Sample, m.Signature, formatFloat(m.Weight)}
	}
	return writeRows(path, []string{"sample", "signature", "weight"}, rows)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
