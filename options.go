package regsweep

import (
	"log/slog"

	"regsweep/padjust"
)

// config collects the tunable parameters of a run. Zero blockSize means
// "derive from the variable count and pool width".
type config struct {
	blockSize        int
	cores            int
	nested           bool
	confLevel        float64
	excludeTerms     []string
	excludeIntercept bool
	method           padjust.Method
	dropFailures     bool
	logger           *slog.Logger
}

func defaultConfig() config {
	return config{
		cores:            0, // resolved to sweep.DefaultCores() in Run
		confLevel:        95,
		excludeIntercept: true,
		method:           padjust.None,
	}
}

// Option configures a Run call.
type Option func(*config)

// WithBlockSize sets how many variables each scheduling block holds. The
// default spreads the variables evenly over the worker pool.
func WithBlockSize(n int) Option {
	return func(c *config) { c.blockSize = n }
}

// WithCores sets the worker-pool width at each nesting level. The default
// leaves two CPU cores to the rest of the machine.
func WithCores(n int) Option {
	return func(c *config) { c.cores = n }
}

// WithNestedParallel enables the inner per-variable fan-out inside each
// block, in addition to the outer pool over blocks.
func WithNestedParallel(enabled bool) Option {
	return func(c *config) { c.nested = enabled }
}

// WithConfLevel sets the confidence level in percent, e.g. 95 or 99.
func WithConfLevel(percent float64) Option {
	return func(c *config) { c.confLevel = percent }
}

// WithExcludeTerms drops rows for the named terms from the result, typically
// fixed adjustment covariates repeated in every model.
func WithExcludeTerms(terms ...string) Option {
	return func(c *config) { c.excludeTerms = append(c.excludeTerms, terms...) }
}

// WithIntercept keeps or drops the intercept rows. They are dropped by
// default.
func WithIntercept(keep bool) Option {
	return func(c *config) { c.excludeIntercept = !keep }
}

// WithPAdjust selects the multiple-testing correction applied to the retained
// rows. The default applies no correction.
func WithPAdjust(method padjust.Method) Option {
	return func(c *config) { c.method = method }
}

// WithDropFailures removes failed variables from the result table entirely
// instead of recording NA placeholder rows. The failure list is kept either
// way.
func WithDropFailures() Option {
	return func(c *config) { c.dropFailures = true }
}

// WithLogger routes the engine's log records to the given logger instead of
// the default slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}
