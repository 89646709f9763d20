// Package sweep partitions candidate variables into blocks and drives the
// two-level worker pool that fits one model per variable. Fit errors and
// panics are captured per variable and surface as failure outcomes; only
// context cancellation aborts a run.
package sweep

import (
	"math"
	"runtime"

	"regsweep/pkg/errors"
)

// Block is one contiguous unit of scheduling work. Start is the offset of the
// block's first variable in the submission order, which lets workers write
// outcomes position-indexed no matter when each block completes.
type Block struct {
	Index     int
	Start     int
	Variables []string
}

// Partition splits variables into consecutive blocks of the given size. The
// final block holds the remainder and may be shorter. Concatenating the
// blocks' variables reproduces the input exactly.
func Partition(variables []string, size int) ([]Block, error) {
	if size <= 0 {
		return nil, errors.NewConfigurationError("blockSize",
			"block size must be positive", size)
	}

	blocks := make([]Block, 0, (len(variables)+size-1)/size)
	for start := 0; start < len(variables); start += size {
		end := start + size
		if end > len(variables) {
			end = len(variables)
		}
		blocks = append(blocks, Block{
			Index:     len(blocks),
			Start:     start,
			Variables: variables[start:end],
		})
	}
	return blocks, nil
}

// DefaultCores leaves two cores to the rest of the machine, with a floor of
// one.
func DefaultCores() int {
	if n := runtime.NumCPU() - 2; n > 1 {
		return n
	}
	return 1
}

// DefaultBlockSize spreads the variables evenly over the worker pool.
func DefaultBlockSize(variables, cores int) int {
	if variables <= 0 || cores <= 0 {
		return 1
	}
	return int(math.Ceil(float64(variables) / float64(cores)))
}
