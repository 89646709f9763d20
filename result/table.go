package result

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"regsweep/family"
	"regsweep/pkg/errors"
)

// Failure records one variable whose fit failed and why.
type Failure struct {
	Variable string
	Reason   string
}

// Table is the final ordered result of a sweep: one row per retained term
// per variable, in submission order, plus the list of fit failures. Rows are
// read-only once assembled except for the PAdjust column, which is filled in
// a single terminal pass.
type Table struct {
	Family    family.Family
	ConfLevel float64
	Rows      []Row
	Failures  []Failure
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// PValues returns the raw p-value of every row, in order. Failure placeholder
// rows contribute NaN.
func (t *Table) PValues() []float64 {
	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row.P
	}
	return out
}

// SetAdjusted writes the corrected p-values back onto the rows.
func (t *Table) SetAdjusted(adjusted []float64) error {
	if len(adjusted) != len(t.Rows) {
		return errors.NewDimensionError("result.SetAdjusted", len(t.Rows), len(adjusted))
	}
	for i := range t.Rows {
		t.Rows[i].PAdjust = adjusted[i]
	}
	return nil
}

// Header returns the column names of the table in output order. The test
// statistic and ratio columns are named per family: t or Z, and OR/HR/IRR.
func (t *Table) Header() []string {
	h := []string{"Variable", "Term", "Beta", "StandardError", t.Family.StatName(), "P"}
	if t.Family.Survival() {
		h = append(h, "LRT", "Wald", "LogRank")
	}
	if t.Family == family.NegativeBinomial {
		h = append(h, "Theta", "ThetaStdErr")
	}
	if t.Family.HasRatio() {
		r := t.Family.RatioName()
		h = append(h, r, r+"lower", r+"upper")
	} else {
		h = append(h, "Betalower", "Betaupper")
	}
	return append(h, "P.adjust")
}

// WriteCSV renders the table with NA markers for missing values.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header()); err != nil {
		return errors.Wrap(err, "write header")
	}

	for _, row := range t.Rows {
		rec := []string{row.Variable, naString(row.Term),
			naFloat(row.Beta), naFloat(row.StdErr), naFloat(row.Stat), naFloat(row.P)}
		if t.Family.Survival() {
			rec = append(rec, naFloat(row.LRTP), naFloat(row.WaldP), naFloat(row.LogRankP))
		}
		if t.Family == family.NegativeBinomial {
			rec = append(rec, naFloat(row.Theta), naFloat(row.ThetaStdErr))
		}
		if t.Family.HasRatio() {
			rec = append(rec, naFloat(row.Ratio), naFloat(row.RatioLower), naFloat(row.RatioUpper))
		} else {
			rec = append(rec, naFloat(row.CILower), naFloat(row.CIUpper))
		}
		rec = append(rec, naFloat(row.PAdjust))
		if err := cw.Write(rec); err != nil {
			return errors.Wrap(err, "write row")
		}
	}

	cw.Flush()
	return cw.Error()
}

func naFloat(v float64) string {
	if math.IsNaN(v) {
		return "NA"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func naString(s string) string {
	if s == "" {
		return "NA"
	}
	return s
}
