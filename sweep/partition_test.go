package sweep

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regsweep/pkg/errors"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name      string
		variables int
		size      int
		wantLens  []int
	}{
		{"even split", 10, 5, []int{5, 5}},
		{"short final block", 10, 4, []int{4, 4, 2}},
		{"single block", 3, 100, []int{3}},
		{"size one", 3, 1, []int{1, 1, 1}},
		{"empty input", 0, 5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := makeVariables(tt.variables)
			blocks, err := Partition(vars, tt.size)
			require.NoError(t, err)
			require.Len(t, blocks, len(tt.wantLens))

			var rejoined []string
			for i, b := range blocks {
				assert.Equal(t, i, b.Index)
				assert.Equal(t, len(rejoined), b.Start)
				assert.Len(t, b.Variables, tt.wantLens[i])
				rejoined = append(rejoined, b.Variables...)
			}
			assert.Equal(t, vars, rejoined, "blocks must cover the input in order")
		})
	}
}

func TestPartitionRejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := Partition([]string{"x1"}, size)
		assert.True(t, errors.IsConfiguration(err), "size %d", size)
	}
}

func TestDefaultBlockSize(t *testing.T) {
	assert.Equal(t, 25, DefaultBlockSize(100, 4))
	assert.Equal(t, 26, DefaultBlockSize(101, 4))
	assert.Equal(t, 1, DefaultBlockSize(3, 8))
	assert.Equal(t, 1, DefaultBlockSize(0, 4))
}

func TestDefaultCores(t *testing.T) {
	assert.GreaterOrEqual(t, DefaultCores(), 1)
}

func makeVariables(n int) []string {
	if n == 0 {
		return nil
	}
	vars := make([]string, n)
	for i := range vars {
		vars[i] = fmt.Sprintf("x%d", i+1)
	}
	return vars
}
