package dataset

import (
	"math"

	"github.com/montanaflynn/stats"

	"regsweep/pkg/errors"
)

// ColumnSummary holds NaN-aware descriptive statistics for one column.
// It is a pre-flight diagnostic: a column with zero variance or a high
// missing rate is a likely source of singular fits downstream.
type ColumnSummary struct {
	Name        string
	N           int
	Missing     int
	MissingRate float64
	Mean        float64
	StdDev      float64
	Min         float64
	Max         float64
	Median      float64
	Cardinality int
}

// ZeroVariance reports whether the column carries no usable signal.
func (s ColumnSummary) ZeroVariance() bool {
	return s.N < 2 || s.StdDev < 1e-10
}

// Summary computes descriptive statistics for a column, ignoring NaN values.
func (t *Table) Summary(name string) (ColumnSummary, error) {
	col, ok := t.Column(name)
	if !ok {
		return ColumnSummary{}, errors.Newf("dataset: unknown column %q", name)
	}

	valid := make([]float64, 0, len(col))
	unique := make(map[float64]struct{})
	for _, v := range col {
		if math.IsNaN(v) {
			continue
		}
		valid = append(valid, v)
		unique[v] = struct{}{}
	}

	s := ColumnSummary{
		Name:        name,
		N:           len(valid),
		Missing:     len(col) - len(valid),
		Cardinality: len(unique),
	}
	if len(col) > 0 {
		s.MissingRate = float64(s.Missing) / float64(len(col))
	}
	if len(valid) == 0 {
		s.Mean, s.StdDev = math.NaN(), math.NaN()
		s.Min, s.Max, s.Median = math.NaN(), math.NaN(), math.NaN()
		return s, nil
	}

	s.Mean, _ = stats.Mean(valid)
	s.StdDev, _ = stats.StandardDeviationSample(valid)
	s.Min, _ = stats.Min(valid)
	s.Max, _ = stats.Max(valid)
	s.Median, _ = stats.Median(valid)
	return s, nil
}

// Summaries computes summaries for the named columns in order.
func (t *Table) Summaries(names []string) ([]ColumnSummary, error) {
	out := make([]ColumnSummary, 0, len(names))
	for _, name := range names {
		s, err := t.Summary(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
