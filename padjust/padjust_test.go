package padjust

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regsweep/pkg/errors"
)

// Reference values were computed by hand from the procedure definitions on
// the unsorted vector (0.01, 0.04, 0.03, 0.005).
var refInput = []float64{0.01, 0.04, 0.03, 0.005}

func TestAdjustMethods(t *testing.T) {
	by := 1.0 + 1.0/2 + 1.0/3 + 1.0/4
	tests := []struct {
		method Method
		want   []float64
	}{
		{None, []float64{0.01, 0.04, 0.03, 0.005}},
		{Bonferroni, []float64{0.04, 0.16, 0.12, 0.02}},
		{Holm, []float64{0.03, 0.06, 0.06, 0.02}},
		{Hochberg, []float64{0.03, 0.04, 0.04, 0.02}},
		{Hommel, []float64{0.03, 0.04, 0.04, 0.02}},
		{BH, []float64{0.02, 0.04, 0.04, 0.02}},
		{BY, []float64{0.02 * by, 0.04 * by, 0.04 * by, 0.02 * by}},
	}

	for _, tt := range tests {
		got, err := Adjust(refInput, tt.method)
		require.NoError(t, err, string(tt.method))
		require.Len(t, got, len(tt.want), string(tt.method))
		for i := range tt.want {
			assert.InDelta(t, tt.want[i], got[i], 1e-12,
				"%s index %d", tt.method, i)
		}
	}
}

func TestAdjustDoesNotModifyInput(t *testing.T) {
	in := []float64{0.5, 0.01, 0.2}
	_, err := Adjust(in, Bonferroni)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.01, 0.2}, in)
}

func TestAdjustNaNPassthrough(t *testing.T) {
	in := []float64{0.02, math.NaN(), 0.04}

	got, err := Adjust(in, Bonferroni)
	require.NoError(t, err)

	// Only two real hypotheses, so the multiplier is 2, not 3.
	assert.InDelta(t, 0.04, got[0], 1e-12)
	assert.True(t, math.IsNaN(got[1]))
	assert.InDelta(t, 0.08, got[2], 1e-12)
}

func TestAdjustClampsAtOne(t *testing.T) {
	got, err := Adjust([]float64{0.6, 0.7, 0.8}, Bonferroni)
	require.NoError(t, err)
	for _, v := range got {
		assert.Equal(t, 1.0, v)
	}
}

func TestAdjustMonotoneAgainstRaw(t *testing.T) {
	in := []float64{0.001, 0.2, 0.04, 0.9, 0.3, math.NaN(), 0.07}
	for _, m := range Methods() {
		got, err := Adjust(in, m)
		require.NoError(t, err)
		for i, v := range got {
			if math.IsNaN(in[i]) {
				assert.True(t, math.IsNaN(v), "%s keeps NaN in place", m)
				continue
			}
			assert.GreaterOrEqual(t, v, in[i], "%s never shrinks a p-value", m)
			assert.LessOrEqual(t, v, 1.0, "%s stays in [0,1]", m)
		}
	}
}

func TestHommelSmallSetMatchesHochberg(t *testing.T) {
	in := []float64{0.04, 0.01}
	hommel, err := Adjust(in, Hommel)
	require.NoError(t, err)
	hochberg, err := Adjust(in, Hochberg)
	require.NoError(t, err)
	assert.Equal(t, hochberg, hommel)
}

func TestAdjustAllNaN(t *testing.T) {
	got, err := Adjust([]float64{math.NaN(), math.NaN()}, BH)
	require.NoError(t, err)
	for _, v := range got {
		assert.True(t, math.IsNaN(v))
	}
}

func TestAdjustUnknownMethod(t *testing.T) {
	_, err := Adjust([]float64{0.5}, Method("sidak"))
	assert.True(t, errors.IsConfiguration(err))
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in   string
		want Method
	}{
		{"BH", BH},
		{"fdr", BH},
		{"bh", BH},
		{"BY", BY},
		{"Holm", Holm},
		{"none", None},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseMethod("tukey")
	assert.True(t, errors.IsConfiguration(err))
}
