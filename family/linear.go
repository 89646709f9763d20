package family

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"regsweep/dataset"
	"regsweep/formula"
	"regsweep/pkg/errors"
)

// LinearFit is the built-in ordinary least squares fitter. It solves the
// normal equations w = (X^T X)^-1 X^T y and derives standard errors and
// t-based p-values from the unbiased residual variance. Rows with NaN in any
// referenced column are dropped before estimation.
func LinearFit(formulaStr string, data *dataset.Table) (Fitted, error) {
	f, err := formula.Parse(formulaStr)
	if err != nil {
		return nil, err
	}

	X, y, err := designFor(f, data)
	if err != nil {
		return nil, err
	}

	n, p := X.Dims()
	if n <= p {
		return nil, errors.Newf("linear fit: %d observations for %d parameters", n, p)
	}

	var xt mat.Dense
	xt.CloneFrom(X.T())

	var xtx mat.Dense
	xtx.Mul(&xt, X)

	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, errors.Wrap(errors.ErrSingularMatrix, "linear fit")
	}

	var xty mat.VecDense
	xty.MulVec(&xt, y)

	beta := mat.NewVecDense(p, nil)
	beta.MulVec(&xtxInv, &xty)

	// Residual variance on n-p degrees of freedom.
	var fitted mat.VecDense
	fitted.MulVec(X, beta)
	rss := 0.0
	for i := 0; i < n; i++ {
		r := y.AtVec(i) - fitted.AtVec(i)
		rss += r * r
	}
	sigma2 := rss / float64(n-p)

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - p)}
	coefs := make([]Coefficient, p)
	terms := append([]string{InterceptTerm}, f.Terms...)
	for j := 0; j < p; j++ {
		est := beta.AtVec(j)
		se := math.Sqrt(sigma2 * xtxInv.At(j, j))
		stat := est / se
		coefs[j] = Coefficient{
			Term:     terms[j],
			Estimate: est,
			StdErr:   se,
			Stat:     stat,
			P:        2 * tDist.CDF(-math.Abs(stat)),
		}
	}

	return NewSummary(coefs), nil
}

// designFor extracts the complete-case design matrix (with intercept) and
// response vector for a parsed formula.
func designFor(f *formula.Formula, data *dataset.Table) (*mat.Dense, *mat.VecDense, error) {
	cols := append([]string{f.Response}, f.Terms...)
	keep, err := data.CompleteRows(cols)
	if err != nil {
		return nil, nil, err
	}
	if len(keep) == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "design matrix")
	}

	full, err := data.DesignMatrix(f.Terms, true)
	if err != nil {
		return nil, nil, err
	}
	resp, ok := data.Column(f.Response)
	if !ok {
		return nil, nil, errors.Newf("unknown response column %q", f.Response)
	}

	p := 1 + len(f.Terms)
	X := mat.NewDense(len(keep), p, nil)
	y := mat.NewVecDense(len(keep), nil)
	for i, r := range keep {
		for j := 0; j < p; j++ {
			X.Set(i, j, full.At(r, j))
		}
		y.SetVec(i, resp[r])
	}
	return X, y, nil
}
