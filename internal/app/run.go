package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/apduncan/enterosig-sl/enterosig"
)

// Options carries the resolved command-line settings for a headless run.
type Options struct {
	ConfigPath  string
	InputPath   string
	BasisPath   string
	MappingPath string
	OutputDir   string
	// Rollup overrides the configured rollup toggle when RollupSet is true.
	Rollup    bool
	RollupSet bool
	Stdout    bool
}

// Run executes one reapplication end to end: load configuration and basis,
// read the abundance table, project it and write every artifact to the
// output directory.
func Run(opts Options) error {
	cfg, err := enterosig.LoadConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.RollupSet {
		cfg.Rollup = opts.Rollup
	}

	basisPath := opts.BasisPath
	if basisPath == "" {
		basisPath = cfg.BasisPath
	}
	if basisPath == "" {
		return errors.New("no basis matrix: pass --basis or set basisPath in config")
	}
	basis, err := enterosig.LoadBasis(basisPath)
	if err != nil {
		return fmt.Errorf("load basis: %w", err)
	}

	mappingPath := opts.MappingPath
	if mappingPath == "" {
		mappingPath = cfg.MappingPath
	}
	hardMapping := map[string]string{}
	if mappingPath != "" {
		hardMapping, err = enterosig.ReadHardMapping(mappingPath)
		if err != nil {
			return fmt.Errorf("read hard mapping: %w", err)
		}
	}

	raw, err := enterosig.ReadAbundanceTableFile(opts.InputPath)
	if err != nil {
		return fmt.Errorf("read abundance table: %w", err)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)
	service, err := enterosig.NewService(basis, cfg, logger)
	if err != nil {
		return fmt.Errorf("init service: %w", err)
	}

	result, err := service.Reapply(context.Background(), raw, hardMapping)
	if err != nil {
		var dataErr *enterosig.DataError
		if errors.As(err, &dataErr) {
			return fmt.Errorf("unable to transform: %w", err)
		}
		return err
	}

	outDir, err := resolveOutputDir(opts.OutputDir)
	if err != nil {
		return err
	}
	if err := writeArtifacts(outDir, result); err != nil {
		return err
	}
	fmt.Printf("Results written to %s\n", outDir)

	if opts.Stdout {
		printSummary(result)
	}
	return nil
}

func resolveOutputDir(dir string) (string, error) {
	if dir == "" {
		dir = fmt.Sprintf("enterosig_results_%s", time.Now().Format("20060102150405"))
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve output dir: %w", err)
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return absDir, nil
}

func printSummary(result *enterosig.Result) {
	fmt.Println()
	fmt.Println("==== Primary signatures ====")
	quality := result.Quality
	for i, p := range result.PrimarySignatures() {
		flag := ""
		if i < len(quality) && !quality[i].Converged {
			flag = " (unconverged)"
		}
		fmt.Printf("%s\t%s\t%.3f%s\n", p.Sample, p.Signature, p.Weight, flag)
	}
	if mono := result.MonodominantSamples(); len(mono) > 0 {
		fmt.Println()
		fmt.Println("==== Monodominant samples ====")
		for _, m := range mono {
			fmt.Printf("%s\t%s\t%.3f\n", m.Sample, m.Signature, m.Weight)
		}
	}
	fmt.Println()
	fmt.Printf("Model fit: mean %.3f, median %.3f, %d/%d below %.2f\n",
		result.Fit.MeanCosine, result.Fit.MedianCosine,
		result.Fit.LowFitCount, result.Fit.Samples, result.Fit.LowFitThreshold)
}
