// Package result turns family-specific fitted models into a uniform row
// schema and assembles the final ordered table. Rows from failed fits and
// rows with underivable statistics carry distinct typed flags so consumers
// never have to guess what a NaN means.
package result

import "math"

// Flag classifies the completeness of a row.
type Flag int

const (
	// FlagOK marks a fully derived row.
	FlagOK Flag = iota
	// FlagDerivation marks a row whose derived statistics (confidence
	// bounds, ratio) could not be computed; the affected fields are NaN but
	// the underlying fit succeeded.
	FlagDerivation
	// FlagFitFailed marks a placeholder row for a variable whose fit failed
	// entirely. All numeric fields are NaN and FailReason is set.
	FlagFitFailed
)

func (f Flag) String() string {
	switch f {
	case FlagOK:
		return "ok"
	case FlagDerivation:
		return "derivation-failed"
	case FlagFitFailed:
		return "fit-failed"
	default:
		return "unknown"
	}
}

// Row is one fitted term of one variable's model.
type Row struct {
	Variable string
	Term     string

	Beta   float64
	StdErr float64
	Stat   float64
	P      float64

	// Survival families only; NaN otherwise.
	LRTP     float64
	WaldP    float64
	LogRankP float64

	// Negative-binomial only; NaN otherwise.
	Theta       float64
	ThetaStdErr float64

	// Natural-scale confidence bounds on Beta.
	CILower float64
	CIUpper float64

	// Exponentiated effect size and its confidence bounds; NaN for the
	// linear family.
	Ratio      float64
	RatioLower float64
	RatioUpper float64

	// PAdjust is filled in a single terminal pass after assembly.
	PAdjust float64

	Flag       Flag
	FailReason string
}

// blankRow returns a row with every numeric field set to NaN.
func blankRow(variable string) Row {
	nan := math.NaN()
	return Row{
		Variable:    variable,
		Beta:        nan,
		StdErr:      nan,
		Stat:        nan,
		P:           nan,
		LRTP:        nan,
		WaldP:       nan,
		LogRankP:    nan,
		Theta:       nan,
		ThetaStdErr: nan,
		CILower:     nan,
		CIUpper:     nan,
		Ratio:       nan,
		RatioLower:  nan,
		RatioUpper:  nan,
		PAdjust:     nan,
	}
}
