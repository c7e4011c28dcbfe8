package enterosig

// TransformOptions bundles the per-invocation parameters of a
// reapplication. Zero thresholds fall back to the Config defaults.
type TransformOptions struct {
	Rollup                  bool
	HardMapping             map[string]string
	Solve                   SolveOptions
	RepresentativeThreshold float64
	MonodominantThreshold   float64
	LowFitThreshold         float64
	Log                     LogFunc
}

func (o *TransformOptions) applyDefaults() {
	cfg := Config{
		Solve:                   o.Solve,
		RepresentativeThreshold: o.RepresentativeThreshold,
		MonodominantThreshold:   o.MonodominantThreshold,
		LowFitThreshold:         o.LowFitThreshold,
	}
	cfg.ApplyDefaults()
	o.Solve = cfg.Solve
	o.RepresentativeThreshold = cfg.RepresentativeThreshold
	o.MonodominantThreshold = cfg.MonodominantThreshold
	o.LowFitThreshold = cfg.LowFitThreshold
}

// Result carries everything a reapplication produces. It is assembled once
// per call and immutable afterwards; all state is local to the invocation,
// so results from concurrent calls never share anything but the read-only
// basis.
type Result struct {
	// W echoes the reference basis the projection used.
	W *Table
	// H is the solved signature-by-sample weight matrix.
	H *Table
	// X is the normalized sample-by-reference-taxon input.
	X *Table
	Mapping *TaxonMapping
	Quality QualitySeries
	Fit     ModelFit
	// Log holds the accumulated log lines of this invocation.
	Log []string

	representativeThreshold float64
	monodominantThreshold   float64
}

// Transform runs the full reapplication pipeline: reconcile the raw table
// against the basis vocabulary, normalize, project onto the frozen basis
// and derive quality and summaries. Fatal data-validity conditions return
// a *DataError and no partial result.
func Transform(raw *Table, basis *ReferenceBasis, opts TransformOptions) (*Result, error) {
	opts.applyDefaults()

	reconciled, mapping, err := Reconcile(raw, basis, opts.HardMapping, opts.Rollup, opts.Log)
	if err != nil {
		return nil, err
	}
	x, err := NormalizeAbundance(reconciled, basis)
	if err != nil {
		return nil, err
	}
	proj, err := Project(basis, x, opts.Solve)
	if err != nil {
		return nil, err
	}
	quality, fit := Evaluate(basis, x, proj, opts.LowFitThreshold)

	unconverged := 0
	for _, q := range quality {
		if !q.Converged {
			unconverged++
		}
	}
	if unconverged > 0 {
		logf(opts.Log, "%d of %d samples did not converge within %d iterations; their weights are reported with lowered confidence",
			unconverged, len(quality), opts.Solve.MaxIter)
	}
	logf(opts.Log, "Model fit: mean cosine %.3f, median %.3f, %d of %d samples below %.2f",
		fit.MeanCosine, fit.MedianCosine, fit.LowFitCount, fit.Samples, fit.LowFitThreshold)

	return &Result{
		W:                       basis.W(),
		H:                       proj.H,
		X:                       x,
		Mapping:                 mapping,
		Quality:                 quality,
		Fit:                     fit,
		representativeThreshold: opts.RepresentativeThreshold,
		monodominantThreshold:   opts.MonodominantThreshold,
	}, nil
}

// ScaledW returns W with each signature column rescaled to sum to one.
func (r *Result) ScaledW() *Table {
	return ScaleColumns(r.W)
}

// ScaledH returns H with each sample column rescaled to sum to one.
func (r *Result) ScaledH() *Table {
	return ScaleColumns(r.H)
}

// PrimarySignatures returns the strongest signature per sample.
func (r *Result) PrimarySignatures() []PrimarySignature {
	return PrimarySignatures(r.H)
}

// RepresentativeSignatures returns the 0/1 membership table of signatures
// whose scaled weight meets the inclusion threshold.
func (r *Result) RepresentativeSignatures() *Table {
	return RepresentativeSignatures(r.H, r.representativeThreshold)
}

// MonodominantSamples lists samples essentially explained by one signature.
func (r *Result) MonodominantSamples() []MonodominantSample {
	return MonodominantSamples(r.H, r.monodominantThreshold)
}
