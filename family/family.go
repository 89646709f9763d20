// Package family defines the closed set of model families the engine
// understands and the boundary between the engine and model fitting code.
// The engine never estimates anything itself: it invokes a FitFunc and
// consumes the Fitted summary it returns. Built-in reference fitters are
// provided for the linear and logistic families; the remaining families are
// fitted by user-supplied functions.
package family

import (
	"math"

	"regsweep/dataset"
)

// Family identifies a model family. Each family determines which fields the
// result normalizer extracts and how the effect-size ratio is labeled.
type Family int

const (
	Linear Family = iota
	Logistic
	Cox
	ConditionalLogistic
	NegativeBinomial
	Bayesian
	SurveyWeighted
)

// InterceptTerm is the term name fitters report for the model intercept.
const InterceptTerm = "(Intercept)"

func (f Family) String() string {
	switch f {
	case Linear:
		return "linear"
	case Logistic:
		return "logistic"
	case Cox:
		return "cox"
	case ConditionalLogistic:
		return "clogit"
	case NegativeBinomial:
		return "negbin"
	case Bayesian:
		return "bayesian"
	case SurveyWeighted:
		return "survey"
	default:
		return "unknown"
	}
}

// Valid reports whether f is a known family.
func (f Family) Valid() bool {
	return f >= Linear && f <= SurveyWeighted
}

// HasRatio reports whether the exponentiated effect size is conventionally
// meaningful for this family. Plain linear regression reports estimates on
// the natural scale and carries no ratio columns.
func (f Family) HasRatio() bool {
	return f != Linear
}

// RatioName returns the conventional name of the exponentiated effect size.
func (f Family) RatioName() string {
	switch f {
	case Cox, ConditionalLogistic:
		return "HR"
	case NegativeBinomial:
		return "IRR"
	default:
		return "OR"
	}
}

// StatName returns the test statistic label for the family.
func (f Family) StatName() string {
	if f == Linear {
		return "t"
	}
	return "Z"
}

// Survival reports whether the family carries the survival test statistics
// (likelihood-ratio, Wald and log-rank p-values).
func (f Family) Survival() bool {
	return f == Cox || f == ConditionalLogistic
}

// Coefficient is one row of a fitted model's coefficient table.
type Coefficient struct {
	Term     string
	Estimate float64
	StdErr   float64
	Stat     float64
	P        float64
}

// Fitted is the capability a fit function's return value must expose: a
// standard coefficient summary. Extra family-specific statistics are
// discovered through the optional SurvivalStats and DispersionStats
// interfaces.
type Fitted interface {
	Coefficients() []Coefficient
}

// SurvivalStats exposes the model-level test p-values reported by survival
// family fits.
type SurvivalStats interface {
	LikelihoodRatioP() float64
	WaldP() float64
	LogRankP() float64
}

// DispersionStats exposes the dispersion parameter reported by
// negative-binomial fits.
type DispersionStats interface {
	Theta() float64
	ThetaStdErr() float64
}

// FitFunc fits one concrete model. The engine renders the formula, calls the
// function, and normalizes the summary it returns. Errors and panics raised
// here are converted into per-variable failure outcomes and never abort the
// batch.
type FitFunc func(formula string, data *dataset.Table) (Fitted, error)

// Summary is the concrete fitted-model summary returned by the built-in
// fitters, and a convenient carrier for external ones. It implements Fitted,
// SurvivalStats and DispersionStats; fields that do not apply to the family
// stay NaN and are ignored by the normalizer.
type Summary struct {
	Coefs []Coefficient

	// Survival family statistics.
	LRTP     float64
	WaldTest float64
	LogRank  float64

	// Negative-binomial dispersion.
	Dispersion   float64
	DispersionSE float64

	Converged  bool
	Iterations int
}

// NewSummary returns a Summary with all optional statistics set to NaN.
func NewSummary(coefs []Coefficient) *Summary {
	return &Summary{
		Coefs:        coefs,
		LRTP:         math.NaN(),
		WaldTest:     math.NaN(),
		LogRank:      math.NaN(),
		Dispersion:   math.NaN(),
		DispersionSE: math.NaN(),
		Converged:    true,
	}
}

func (s *Summary) Coefficients() []Coefficient { return s.Coefs }

func (s *Summary) LikelihoodRatioP() float64 { return s.LRTP }
func (s *Summary) WaldP() float64            { return s.WaldTest }
func (s *Summary) LogRankP() float64         { return s.LogRank }

func (s *Summary) Theta() float64       { return s.Dispersion }
func (s *Summary) ThetaStdErr() float64 { return s.DispersionSE }
