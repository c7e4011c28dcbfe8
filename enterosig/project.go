package enterosig

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// muEpsilon keeps multiplicative-update denominators strictly positive.
const muEpsilon = 1e-12

// Projection holds the solved signature weights plus per-sample solver
// diagnostics.
type Projection struct {
	// H is the signature-by-sample weight matrix.
	H *Table
	// Converged flags, per sample, whether the relative reconstruction
	// error change fell below tolerance before the iteration cap.
	Converged []bool
	// Iterations records the multiplicative updates spent per sample.
	Iterations []int
}

// Project solves, independently per sample column x, for non-negative
// weights h minimising the Frobenius reconstruction error of basis·h
// against x. The basis is never updated. Multiplicative updates with a
// fixed uniform positive initialization make the solve fully
// deterministic: no randomness enters anywhere, so projecting the same
// table twice yields identical weights.
func Project(basis *ReferenceBasis, x *Table, opts SolveOptions) (*Projection, error) {
	if opts.MaxIter <= 0 || opts.Tolerance <= 0 {
		return nil, fmt.Errorf("solve options must set a positive iteration cap and tolerance")
	}
	taxa := basis.Taxa()
	nr, nc := x.Dims()
	if nr != len(taxa) {
		return nil, fmt.Errorf("abundance has %d rows, basis expects %d reference taxa", nr, len(taxa))
	}
	for i, name := range x.rowNames {
		if name != taxa[i] {
			return nil, fmt.Errorf("abundance row %d is %q, basis expects %q", i, name, taxa[i])
		}
	}

	w := basis.w.matrix()
	k := basis.SignatureCount()
	// W'W and W'x are fixed throughout the solve.
	var wtw mat.Dense
	wtw.Mul(w.T(), w)
	var wtx mat.Dense
	wtx.Mul(w.T(), x.matrix())

	h, err := NewTable(basis.Signatures(), x.ColNames(), nil)
	if err != nil {
		return nil, err
	}
	proj := &Projection{
		H:          h,
		Converged:  make([]bool, nc),
		Iterations: make([]int, nc),
	}
	col := make([]float64, k)
	for j := 0; j < nc; j++ {
		mat.Col(col, j, &wtx)
		weights, iters, ok := solveColumn(w, &wtw, col, x.Col(j), opts)
		for i := 0; i < k; i++ {
			h.set(i, j, weights[i])
		}
		proj.Converged[j] = ok
		proj.Iterations[j] = iters
	}
	return proj, nil
}

// solveColumn runs multiplicative updates for a single sample:
//
//	h <- h * (W'x) / (W'W h)
//
// starting from a uniform positive vector. Iteration stops when the
// relative change in reconstruction error drops below tolerance or the
// cap is reached.
func solveColumn(w *mat.Dense, wtw *mat.Dense, wtx, x []float64, opts SolveOptions) ([]float64, int, bool) {
	k := len(wtx)
	h := make([]float64, k)
	for i := range h {
		h[i] = 1.0 / float64(k)
	}
	hv := mat.NewVecDense(k, h)
	denom := mat.NewVecDense(k, nil)
	prev := reconstructionError(w, hv, x)
	for iter := 1; iter <= opts.MaxIter; iter++ {
		denom.MulVec(wtw, hv)
		for i := 0; i < k; i++ {
			h[i] *= wtx[i] / (denom.AtVec(i) + muEpsilon)
		}
		cur := reconstructionError(w, hv, x)
		if relativeChange(prev, cur) < opts.Tolerance {
			return h, iter, true
		}
		prev = cur
	}
	return h, opts.MaxIter, false
}

// reconstructionError returns ||x - W h||_2.
func reconstructionError(w *mat.Dense, h *mat.VecDense, x []float64) float64 {
	nr, _ := w.Dims()
	recon := mat.NewVecDense(nr, nil)
	recon.MulVec(w, h)
	var resid mat.VecDense
	resid.SubVec(mat.NewVecDense(nr, x), recon)
	return resid.Norm(2)
}

func relativeChange(prev, cur float64) float64 {
	diff := prev - cur
	if diff < 0 {
		diff = -diff
	}
	if prev < muEpsilon {
		return diff
	}
	return diff / prev
}
