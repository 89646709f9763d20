package regsweep

import (
	"context"
	"log/slog"
	"time"

	"regsweep/dataset"
	"regsweep/family"
	"regsweep/formula"
	"regsweep/padjust"
	"regsweep/pkg/errors"
	applog "regsweep/pkg/log"
	"regsweep/result"
	"regsweep/sweep"
)

// Run fits one model per candidate variable and returns the assembled result
// table. The template must contain the wildcard formula.Wildcard exactly
// once. A nil fit function selects the built-in fitter for the family; only
// the linear and logistic families have one.
//
// All configuration is validated before any model is fitted, so a bad
// template or an unknown correction method fails fast. Individual fit
// failures never abort the run.
func Run(ctx context.Context, data *dataset.Table, template string, variables []string,
	fit family.FitFunc, fam family.Family, opts ...Option) (*result.Table, error) {

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	if data == nil || data.NumRows() == 0 {
		return nil, errors.NewConfigurationError("data", "dataset is empty", data)
	}
	if len(variables) == 0 {
		return nil, errors.NewConfigurationError("variables", "no candidate variables", variables)
	}
	for _, v := range variables {
		if !data.HasColumn(v) {
			return nil, errors.NewConfigurationError("variables", "variable is not a dataset column", v)
		}
	}

	tmpl, err := formula.NewTemplate(template)
	if err != nil {
		return nil, err
	}

	if fit == nil {
		switch fam {
		case family.Linear:
			fit = family.LinearFit
		case family.Logistic:
			fit = family.LogisticFit
		default:
			return nil, errors.NewConfigurationError("fitFunc",
				"no built-in fitter for family, a fit function is required", fam.String())
		}
	}

	// NewNormalizer also validates the family and the confidence level.
	norm, err := result.NewNormalizer(fam, cfg.confLevel)
	if err != nil {
		return nil, err
	}
	if !cfg.method.Valid() {
		return nil, errors.NewConfigurationError("pAdjust", "unknown correction method", cfg.method)
	}

	cores := cfg.cores
	if cores == 0 {
		cores = sweep.DefaultCores()
	}
	if cores < 1 {
		return nil, errors.NewConfigurationError("cores", "worker-pool width must be positive", cores)
	}

	size := cfg.blockSize
	if size == 0 {
		size = sweep.DefaultBlockSize(len(variables), cores)
	}
	blocks, err := sweep.Partition(variables, size)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	logger.InfoContext(ctx, "sweep starting",
		slog.String(applog.FamilyKey, fam.String()),
		slog.Int(applog.VariablesKey, len(variables)),
		slog.Int(applog.BlocksKey, len(blocks)),
		slog.Int(applog.CoresKey, cores),
		slog.Bool(applog.NestedKey, cfg.nested))

	scheduler := sweep.NewScheduler(tmpl, fit, data, cores, cfg.nested, logger)
	outcomes, err := scheduler.Run(ctx, blocks)
	if err != nil {
		return nil, err
	}

	tbl := assemble(outcomes, norm, fam, cfg)

	adjusted, err := padjust.Adjust(tbl.PValues(), cfg.method)
	if err != nil {
		return nil, err
	}
	if err := tbl.SetAdjusted(adjusted); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "sweep complete",
		slog.String(applog.FamilyKey, fam.String()),
		slog.Int(applog.RowsKey, tbl.Len()),
		slog.Int(applog.FailuresKey, len(tbl.Failures)),
		slog.Int64(applog.DurationMsKey, time.Since(start).Milliseconds()))

	return tbl, nil
}

// assemble normalizes the outcomes into rows in submission order and applies
// term filtering.
func assemble(outcomes []sweep.Outcome, norm *result.Normalizer, fam family.Family, cfg config) *result.Table {
	rows := make([]result.Row, 0, len(outcomes))
	var failures []result.Failure

	for _, o := range outcomes {
		if o.Err != nil {
			reason := failReason(o.Err)
			failures = append(failures, result.Failure{Variable: o.Variable, Reason: reason})
			if !cfg.dropFailures {
				rows = append(rows, norm.FailureRow(o.Variable, reason))
			}
			continue
		}
		rows = append(rows, norm.Rows(o.Variable, o.Fit)...)
	}

	rows = result.Filter(rows, cfg.excludeTerms, cfg.excludeIntercept)
	return &result.Table{
		Family:    fam,
		ConfLevel: cfg.confLevel,
		Rows:      rows,
		Failures:  failures,
	}
}

// failReason extracts the most specific cause message for the failure list.
func failReason(err error) string {
	var fe *errors.FitError
	if errors.As(err, &fe) && fe.Err != nil {
		return fe.Err.Error()
	}
	return err.Error()
}
