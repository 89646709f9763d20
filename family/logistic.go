package family

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"regsweep/dataset"
	"regsweep/formula"
	"regsweep/pkg/errors"
)

const (
	irlsMaxIter = 25
	irlsTol     = 1e-8
)

// LogisticFit is the built-in binomial fitter. It runs iteratively
// reweighted least squares on a 0/1 response and derives Wald z statistics
// from the inverse Fisher information. A fit that stops at the iteration cap
// is still returned, with a ConvergenceWarning emitted through the warning
// sink, matching the usual GLM behavior of warning rather than failing.
func LogisticFit(formulaStr string, data *dataset.Table) (Fitted, error) {
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
		return nil, errors.Newf("logistic fit: %d observations for %d parameters", n, p)
	}
	for i := 0; i < n; i++ {
		if v := y.AtVec(i); v != 0 && v != 1 {
			return nil, errors.Newf("logistic fit: response must be 0/1, found %g", v)
		}
	}

	beta := mat.NewVecDense(p, nil)
	var info mat.Dense // (X^T W X)^-1 at the solution, the coefficient covariance
	converged := false
	iter := 0

	prevDev := math.Inf(1)
	for ; iter < irlsMaxIter; iter++ {
		// Working response and weights at the current estimate.
		eta := mat.NewVecDense(n, nil)
		eta.MulVec(X, beta)

		w := mat.NewVecDense(n, nil)
		z := mat.NewVecDense(n, nil)
		dev := 0.0
		for i := 0; i < n; i++ {
			mu := 1.0 / (1.0 + math.Exp(-eta.AtVec(i)))
			mu = math.Min(math.Max(mu, 1e-10), 1-1e-10)
			wi := mu * (1 - mu)
			w.SetVec(i, wi)
			z.SetVec(i, eta.AtVec(i)+(y.AtVec(i)-mu)/wi)
			if y.AtVec(i) == 1 {
				dev -= 2 * math.Log(mu)
			} else {
				dev -= 2 * math.Log(1-mu)
			}
		}

		// Weighted normal equations: (X^T W X) beta = X^T W z.
		xtwx := mat.NewDense(p, p, nil)
		xtwz := mat.NewVecDense(p, nil)
		for a := 0; a < p; a++ {
			for b := a; b < p; b++ {
				s := 0.0
				for i := 0; i < n; i++ {
					s += X.At(i, a) * w.AtVec(i) * X.At(i, b)
				}
				xtwx.Set(a, b, s)
				xtwx.Set(b, a, s)
			}
			s := 0.0
			for i := 0; i < n; i++ {
				s += X.At(i, a) * w.AtVec(i) * z.AtVec(i)
			}
			xtwz.SetVec(a, s)
		}

		var inv mat.Dense
		if err := inv.Inverse(xtwx); err != nil {
			return nil, errors.Wrap(errors.ErrSingularMatrix, "logistic fit")
		}
		beta.MulVec(&inv, xtwz)
		info.CloneFrom(&inv)

		if math.Abs(prevDev-dev) < irlsTol*(math.Abs(dev)+0.1) {
			converged = true
			break
		}
		prevDev = dev
	}

	if !converged {
		subject := InterceptTerm
		if len(f.Terms) > 0 {
			subject = f.Terms[len(f.Terms)-1]
		}
		errors.Warn(errors.NewConvergenceWarning("IRLS", subject, irlsMaxIter))
	}

	zDist := distuv.Normal{Mu: 0, Sigma: 1}
	terms := append([]string{InterceptTerm}, f.Terms...)
	coefs := make([]Coefficient, p)
	for j := 0; j < p; j++ {
		est := beta.AtVec(j)
		se := math.Sqrt(info.At(j, j))
		stat := est / se
		coefs[j] = Coefficient{
			Term:     terms[j],
			Estimate: est,
			StdErr:   se,
			Stat:     stat,
			P:        2 * zDist.CDF(-math.Abs(stat)),
		}
	}

	s := NewSummary(coefs)
	s.Converged = converged
	s.Iterations = iter + 1
	return s, nil
}
