package result

import (
	"gonum.org/v1/gonum/stat/distuv"

	"regsweep/family"
	"regsweep/pkg/errors"
)

// Normalizer maps fitted-model summaries into the uniform row schema for one
// model family at one confidence level. The critical value is computed once
// at construction, never per row.
type Normalizer struct {
	fam      family.Family
	level    float64
	critical float64
}

// NewNormalizer validates the confidence level (percent, e.g. 95) and
// precomputes the two-sided standard normal critical value: 1.959964 for 95,
// 2.575829 for 99.
func NewNormalizer(fam family.Family, confLevel float64) (*Normalizer, error) {
	if !fam.Valid() {
		return nil, errors.NewConfigurationError("family", "unknown model family", fam)
	}
	if confLevel <= 0 || confLevel >= 100 {
		return nil, errors.NewConfigurationError("confLevel",
			"confidence level must be strictly between 0 and 100", confLevel)
	}

	alpha := 1 - confLevel/100
	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(1 - alpha/2)
	return &Normalizer{fam: fam, level: confLevel, critical: z}, nil
}

// Critical returns the two-sided critical value in use.
func (n *Normalizer) Critical() float64 { return n.critical }

// Rows extracts one row per fitted term. Derivation problems (missing or
// non-finite standard error) mark the row FlagDerivation and leave NaN in
// the dependent fields instead of dropping the row.
func (n *Normalizer) Rows(variable string, fit family.Fitted) []Row {
	coefs := fit.Coefficients()
	rows := make([]Row, 0, len(coefs))

	for _, c := range coefs {
		row := blankRow(variable)
		row.Term = c.Term
		row.Beta = c.Estimate
		row.StdErr = c.StdErr
		row.Stat = c.Stat
		row.P = c.P

		if errors.IsFinite(c.StdErr) && c.StdErr > 0 && errors.IsFinite(c.Estimate) {
			row.CILower = c.Estimate - n.critical*c.StdErr
			row.CIUpper = c.Estimate + n.critical*c.StdErr
		} else {
			row.Flag = FlagDerivation
			errors.Warn(errors.NewDerivationWarning(variable, c.Term,
				"confidence bounds", "standard error unavailable"))
		}

		if n.fam.HasRatio() {
			if errors.IsFinite(c.Estimate) {
				row.Ratio = errors.StabilizeExp(c.Estimate)
			}
			row.RatioLower = errors.StabilizeExp(row.CILower)
			row.RatioUpper = errors.StabilizeExp(row.CIUpper)
		}

		n.stampExtras(&row, fit)
		rows = append(rows, row)
	}
	return rows
}

// stampExtras copies family-specific model-level statistics onto a row.
func (n *Normalizer) stampExtras(row *Row, fit family.Fitted) {
	if n.fam.Survival() {
		if s, ok := fit.(family.SurvivalStats); ok {
			row.LRTP = s.LikelihoodRatioP()
			row.WaldP = s.WaldP()
			row.LogRankP = s.LogRankP()
		}
	}
	if n.fam == family.NegativeBinomial {
		if d, ok := fit.(family.DispersionStats); ok {
			row.Theta = d.Theta()
			row.ThetaStdErr = d.ThetaStdErr()
		}
	}
}

// FailureRow builds the NA placeholder row recorded for a failed fit.
func (n *Normalizer) FailureRow(variable, reason string) Row {
	row := blankRow(variable)
	row.Flag = FlagFitFailed
	row.FailReason = reason
	return row
}
