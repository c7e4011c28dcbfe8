package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/apduncan/enterosig-sl/internal/app"
)

func main() {
	opts, err := parseFlags()
	if err != nil {
		log.Fatalf("enterosig-cli: %v", err)
	}
	if err := app.Run(opts); err != nil {
		log.Fatalf("enterosig-cli: %v", err)
	}
}

func parseFlags() (app.Options, error) {
	var opts app.Options
	var rollup bool
	flag.StringVar(&opts.ConfigPath, "config", "", "Path to config.json (default: ./config.json)")
	flag.StringVar(&opts.InputPath, "input", "", "TSV abundance table (taxa by samples or samples by taxa)")
	flag.StringVar(&opts.BasisPath, "basis", "", "TSV reference basis matrix, taxa by signatures (default from config)")
	flag.StringVar(&opts.MappingPath, "mapping", "", "Optional two-column TSV of hard taxon overrides")
	flag.StringVar(&opts.OutputDir, "output-dir", "", "Directory where result TSVs are written (default: enterosig_results_<timestamp>)")
	flag.BoolVar(&rollup, "rollup", true, "Roll unmatched taxa up to an ancestor rank present in the reference taxa")
	flag.BoolVar(&opts.Stdout, "stdout", false, "Print a result summary to STDOUT")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --input FILE --basis FILE [options]\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	opts.ConfigPath = strings.TrimSpace(opts.ConfigPath)
	opts.InputPath = strings.TrimSpace(opts.InputPath)
	opts.BasisPath = strings.TrimSpace(opts.BasisPath)
	opts.MappingPath = strings.TrimSpace(opts.MappingPath)
	opts.OutputDir = strings.TrimSpace(opts.OutputDir)
	opts.Rollup = rollup
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "rollup" {
			opts.RollupSet = true
		}
	})

	if opts.InputPath == "" {
		flag.Usage()
		return opts, errors.New("missing required --input file")
	}
	return opts, nil
}
