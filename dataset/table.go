// Package dataset holds the tabular input shared by all workers during a
// sweep. A Table is built once, before the run, and is treated as read-only
// from then on: workers share its columns without locking, which is safe
// because nothing mutates them mid-run.
package dataset

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"regsweep/pkg/errors"
)

// Table is a column-major table of float64 values with named columns.
// Missing values are represented as NaN.
type Table struct {
	names []string
	index map[string]int
	cols  [][]float64
	rows  int
}

// New creates an empty table expecting columns of the given length.
func New(rows int) *Table {
	return &Table{
		index: make(map[string]int),
		rows:  rows,
	}
}

// FromColumns builds a table from parallel name and column slices.
func FromColumns(names []string, cols [][]float64) (*Table, error) {
	if len(names) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset.FromColumns")
	}
	if len(names) != len(cols) {
		return nil, errors.NewDimensionError("dataset.FromColumns", len(names), len(cols))
	}

	t := New(len(cols[0]))
	for i, name := range names {
		if err := t.AddColumn(name, cols[i]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// AddColumn appends a named column. The slice is stored, not copied; callers
// must not mutate it after the sweep starts.
func (t *Table) AddColumn(name string, values []float64) error {
	if _, ok := t.index[name]; ok {
		return errors.Newf("dataset: duplicate column %q", name)
	}
	if len(values) != t.rows {
		return errors.NewDimensionError("dataset.AddColumn", t.rows, len(values))
	}
	t.index[name] = len(t.cols)
	t.names = append(t.names, name)
	t.cols = append(t.cols, values)
	return nil
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Columns returns the column names in insertion order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// HasColumn reports whether a column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the backing slice of a column. The returned slice is shared
// across workers and must be treated as read-only.
func (t *Table) Column(name string) ([]float64, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// Vector returns a column as a gonum vector.
func (t *Table) Vector(name string) (*mat.VecDense, error) {
	col, ok := t.Column(name)
	if !ok {
		return nil, errors.Newf("dataset: unknown column %q", name)
	}
	return mat.NewVecDense(len(col), col), nil
}

// DesignMatrix assembles the design matrix for the given terms, optionally
// prepending an all-ones intercept column. Rows containing NaN in any of the
// requested terms are kept; fitters decide how to treat them.
func (t *Table) DesignMatrix(terms []string, intercept bool) (*mat.Dense, error) {
	if len(terms) == 0 && !intercept {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset.DesignMatrix")
	}

	offset := 0
	if intercept {
		offset = 1
	}

	X := mat.NewDense(t.rows, len(terms)+offset, nil)
	if intercept {
		for i := 0; i < t.rows; i++ {
			X.Set(i, 0, 1.0)
		}
	}
	for j, term := range terms {
		col, ok := t.Column(term)
		if !ok {
			return nil, errors.Newf("dataset: unknown column %q", term)
		}
		for i := 0; i < t.rows; i++ {
			X.Set(i, j+offset, col[i])
		}
	}
	return X, nil
}

// CompleteRows returns the indices of rows with no NaN in any of the named
// columns. Fitters use this to drop incomplete cases before estimation.
func (t *Table) CompleteRows(names []string) ([]int, error) {
	cols := make([][]float64, len(names))
	for i, name := range names {
		col, ok := t.Column(name)
		if !ok {
			return nil, errors.Newf("dataset: unknown column %q", name)
		}
		cols[i] = col
	}

	var idx []int
	for r := 0; r < t.rows; r++ {
		complete := true
		for _, col := range cols {
			if math.IsNaN(col[r]) {
				complete = false
				break
			}
		}
		if complete {
			idx = append(idx, r)
		}
	}
	return idx, nil
}
