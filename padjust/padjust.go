// Package padjust applies multiple-testing correction to a pooled set of
// p-values. Correction is a property of the whole result set: it runs in a
// single pass over the retained rows after all concurrent work and term
// filtering have completed, never per block.
//
// The procedures follow the standard definitions (Bonferroni, Holm 1979,
// Hochberg 1988, Hommel 1988, Benjamini-Hochberg 1995, Benjamini-Yekutieli
// 2001). NaN p-values pass through unchanged and do not count toward the
// number of tested hypotheses, so failure placeholder rows never inflate the
// correction.
package padjust

import (
	"math"
	"sort"
	"strings"

	"regsweep/pkg/errors"
)

// Method names a correction procedure.
type Method string

const (
	None       Method = "none"
	Bonferroni Method = "bonferroni"
	Holm       Method = "holm"
	Hochberg   Method = "hochberg"
	Hommel     Method = "hommel"
	BH         Method = "BH"
	BY         Method = "BY"
)

// Methods lists every supported method.
func Methods() []Method {
	return []Method{None, Bonferroni, Holm, Hochberg, Hommel, BH, BY}
}

// ParseMethod resolves a method name, accepting "fdr" as the conventional
// alias for Benjamini-Hochberg. Matching is case-insensitive.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "none":
		return None, nil
	case "bonferroni":
		return Bonferroni, nil
	case "holm":
		return Holm, nil
	case "hochberg":
		return Hochberg, nil
	case "hommel":
		return Hommel, nil
	case "bh", "fdr":
		return BH, nil
	case "by":
		return BY, nil
	default:
		return "", errors.NewConfigurationError("pAdjust", "unknown correction method", s)
	}
}

// Valid reports whether m is a supported method.
func (m Method) Valid() bool {
	for _, known := range Methods() {
		if m == known {
			return true
		}
	}
	return false
}

// Adjust returns the corrected p-values for p under the given method. The
// input is not modified; the output has the same length and order, with NaN
// entries preserved in place.
func Adjust(p []float64, method Method) ([]float64, error) {
	if !method.Valid() {
		return nil, errors.NewConfigurationError("pAdjust", "unknown correction method", method)
	}

	out := make([]float64, len(p))
	copy(out, p)
	if method == None {
		return out, nil
	}

	// Compact away NaN entries; n counts only real hypotheses.
	idx := make([]int, 0, len(p))
	q := make([]float64, 0, len(p))
	for i, v := range p {
		if !math.IsNaN(v) {
			idx = append(idx, i)
			q = append(q, v)
		}
	}
	if len(q) == 0 {
		return out, nil
	}

	var adjusted []float64
	switch method {
	case Bonferroni:
		adjusted = bonferroni(q)
	case Holm:
		adjusted = holm(q)
	case Hochberg:
		adjusted = hochberg(q)
	case Hommel:
		adjusted = hommel(q)
	case BH:
		adjusted = benjaminiHochberg(q, 1)
	case BY:
		adjusted = benjaminiHochberg(q, harmonic(len(q)))
	}

	for i, j := range idx {
		out[j] = adjusted[i]
	}
	return out, nil
}

func bonferroni(p []float64) []float64 {
	n := float64(len(p))
	out := make([]float64, len(p))
	for i, v := range p {
		out[i] = errors.ClipProbability(v * n)
	}
	return out
}

// holm is the step-down procedure: ascending by p, running maximum of
// (n-i)*p_i, clamped to 1.
func holm(p []float64) []float64 {
	n := len(p)
	order := ascendingOrder(p)
	out := make([]float64, n)

	runMax := math.Inf(-1)
	for rank, j := range order {
		c := float64(n-rank) * p[j]
		if c > runMax {
			runMax = c
		}
		out[j] = errors.ClipProbability(runMax)
	}
	return out
}

// hochberg is the step-up procedure: descending by p, running minimum of
// (rank+1)*p_i.
func hochberg(p []float64) []float64 {
	n := len(p)
	order := ascendingOrder(p)
	out := make([]float64, n)

	runMin := math.Inf(1)
	for k := n - 1; k >= 0; k-- {
		j := order[k]
		c := float64(n-k) * p[j]
		if c < runMin {
			runMin = c
		}
		out[j] = errors.ClipProbability(runMin)
	}
	return out
}

// benjaminiHochberg computes the FDR step-up adjustment. scale is 1 for BH
// and the harmonic number H(n) for the Benjamini-Yekutieli variant.
func benjaminiHochberg(p []float64, scale float64) []float64 {
	n := len(p)
	order := ascendingOrder(p)
	out := make([]float64, n)

	runMin := math.Inf(1)
	for k := n - 1; k >= 0; k-- {
		j := order[k]
		c := scale * float64(n) / float64(k+1) * p[j]
		if c < runMin {
			runMin = c
		}
		out[j] = errors.ClipProbability(runMin)
	}
	return out
}

// hommel implements Hommel's (1988) procedure following the closed-form
// recursion used by R's p.adjust. The recursion needs at least three
// hypotheses; for n <= 2 Hommel coincides with Hochberg.
func hommel(p []float64) []float64 {
	n := len(p)
	if n <= 2 {
		return hochberg(p)
	}

	order := ascendingOrder(p)
	ps := make([]float64, n) // p sorted ascending
	for rank, j := range order {
		ps[rank] = p[j]
	}

	q0 := math.Inf(1)
	for i := 0; i < n; i++ {
		if c := float64(n) * ps[i] / float64(i+1); c < q0 {
			q0 = c
		}
	}

	q := make([]float64, n)
	pa := make([]float64, n)
	for i := range q {
		q[i] = q0
		pa[i] = q0
	}

	for m := n - 1; m >= 2; m-- {
		// Tail minimum over the largest m-1 p-values with divisors 2..m.
		q1 := math.Inf(1)
		for d := 2; d <= m; d++ {
			c := float64(m) * ps[n-m+d-1] / float64(d)
			if c < q1 {
				q1 = c
			}
		}
		for i := 0; i <= n-m; i++ {
			q[i] = math.Min(float64(m)*ps[i], q1)
		}
		for i := n - m + 1; i < n; i++ {
			q[i] = q[n-m]
		}
		for i := range pa {
			if q[i] > pa[i] {
				pa[i] = q[i]
			}
		}
	}

	out := make([]float64, n)
	for rank, j := range order {
		out[j] = errors.ClipProbability(math.Max(pa[rank], ps[rank]))
	}
	return out
}

// ascendingOrder returns the permutation that sorts p ascending. Ties keep
// their original relative order so results are deterministic.
func ascendingOrder(p []float64) []int {
	order := make([]int, len(p))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return p[order[a]] < p[order[b]]
	})
	return order
}

func harmonic(n int) float64 {
	h := 0.0
	for k := 1; k <= n; k++ {
		h += 1 / float64(k)
	}
	return h
}
