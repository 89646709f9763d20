package sweep

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regsweep/dataset"
	"regsweep/family"
	"regsweep/formula"
	"regsweep/pkg/errors"
)

func testTemplate(t *testing.T) *formula.Template {
	t.Helper()
	tmpl, err := formula.NewTemplate("y ~ [*] + age")
	require.NoError(t, err)
	return tmpl
}

func testData(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.FromColumns([]string{"y"}, [][]float64{{0, 1, 0, 1}})
	require.NoError(t, err)
	return tbl
}

// echoFit returns a one-coefficient summary naming the rendered formula, so
// tests can verify which variable landed in which outcome slot.
func echoFit(rendered string, _ *dataset.Table) (family.Fitted, error) {
	return family.NewSummary([]family.Coefficient{
		{Term: rendered, Estimate: 1, StdErr: 1, Stat: 1, P: 0.5},
	}), nil
}

func runScheduler(t *testing.T, fit family.FitFunc, vars []string, size, cores int, nested bool) []Outcome {
	t.Helper()
	blocks, err := Partition(vars, size)
	require.NoError(t, err)

	s := NewScheduler(testTemplate(t), fit, testData(t), cores, nested, nil)
	outcomes, err := s.Run(context.Background(), blocks)
	require.NoError(t, err)
	return outcomes
}

func TestSchedulerPreservesSubmissionOrder(t *testing.T) {
	vars := makeVariables(25)
	outcomes := runScheduler(t, echoFit, vars, 4, 3, true)

	require.Len(t, outcomes, len(vars))
	for i, o := range outcomes {
		assert.Equal(t, vars[i], o.Variable)
		assert.Contains(t, o.Formula, vars[i])
		require.NotNil(t, o.Fit, vars[i])
		assert.NoError(t, o.Err)
	}
}

func TestSchedulerNestedMatchesSequential(t *testing.T) {
	vars := makeVariables(17)
	flat := runScheduler(t, echoFit, vars, 5, 2, false)
	nested := runScheduler(t, echoFit, vars, 5, 2, true)

	require.Len(t, nested, len(flat))
	for i := range flat {
		assert.Equal(t, flat[i].Variable, nested[i].Variable)
		assert.Equal(t, flat[i].Formula, nested[i].Formula)
		assert.Equal(t, flat[i].Fit.Coefficients(), nested[i].Fit.Coefficients())
	}
}

func TestSchedulerIsolatesFitErrors(t *testing.T) {
	fit := func(rendered string, data *dataset.Table) (family.Fitted, error) {
		if strings.Contains(rendered, "x3") {
			return nil, errors.ErrSingularMatrix
		}
		return echoFit(rendered, data)
	}

	outcomes := runScheduler(t, fit, makeVariables(6), 2, 2, true)
	for i, o := range outcomes {
		if o.Variable == "x3" {
			require.Error(t, o.Err)
			var fe *errors.FitError
			require.True(t, errors.As(o.Err, &fe))
			assert.Equal(t, "x3", fe.Variable)
			assert.True(t, errors.Is(o.Err, errors.ErrSingularMatrix))
			assert.Nil(t, o.Fit)
			continue
		}
		assert.NoError(t, o.Err, "outcome %d", i)
		assert.NotNil(t, o.Fit, "outcome %d", i)
	}
}

func TestSchedulerRecoversPanics(t *testing.T) {
	fit := func(rendered string, data *dataset.Table) (family.Fitted, error) {
		if strings.Contains(rendered, "x2") {
			panic("index out of range in user fit")
		}
		return echoFit(rendered, data)
	}

	outcomes := runScheduler(t, fit, makeVariables(4), 2, 2, false)
	require.Error(t, outcomes[1].Err)
	var pe *errors.PanicError
	assert.True(t, errors.As(outcomes[1].Err, &pe))
	assert.NoError(t, outcomes[0].Err)
	assert.NoError(t, outcomes[2].Err)
	assert.NoError(t, outcomes[3].Err)
}

func TestSchedulerNilFitResultIsFailure(t *testing.T) {
	fit := func(string, *dataset.Table) (family.Fitted, error) {
		return nil, nil
	}

	outcomes := runScheduler(t, fit, []string{"x1"}, 1, 1, false)
	require.Error(t, outcomes[0].Err)
	assert.Contains(t, outcomes[0].Err.Error(), "no model")
}

func TestSchedulerHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	blocks, err := Partition(makeVariables(8), 2)
	require.NoError(t, err)

	s := NewScheduler(testTemplate(t), echoFit, testData(t), 2, true, nil)
	_, err = s.Run(ctx, blocks)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
