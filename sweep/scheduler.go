package sweep

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"regsweep/dataset"
	"regsweep/family"
	"regsweep/formula"
	"regsweep/pkg/errors"
	applog "regsweep/pkg/log"
)

// Outcome is the terminal state of one variable's fit. Exactly one of Fit and
// Err is set.
type Outcome struct {
	Variable string
	Formula  string
	Fit      family.Fitted
	Err      error
}

// Scheduler runs the fits for a partitioned variable list. The outer pool
// processes blocks with at most cores workers; when nested is set, each block
// additionally fans its variables out to goroutines bounded by a semaphore of
// the same width.
type Scheduler struct {
	tmpl   *formula.Template
	fit    family.FitFunc
	data   *dataset.Table
	cores  int
	nested bool
	logger *slog.Logger
}

// NewScheduler wires a scheduler for one run. A nil logger falls back to the
// default slog logger.
func NewScheduler(tmpl *formula.Template, fit family.FitFunc, data *dataset.Table,
	cores int, nested bool, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		tmpl:   tmpl,
		fit:    fit,
		data:   data,
		cores:  cores,
		nested: nested,
		logger: logger,
	}
}

// Run fits every variable of every block and returns one outcome per
// variable in submission order, regardless of block completion order.
func (s *Scheduler) Run(ctx context.Context, blocks []Block) ([]Outcome, error) {
	total := 0
	for _, b := range blocks {
		total += len(b.Variables)
	}
	outcomes := make([]Outcome, total)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cores)

	for _, block := range blocks {
		block := block
		g.Go(func() error {
			start := time.Now()
			var err error
			if s.nested {
				err = s.runNested(ctx, block, outcomes)
			} else {
				err = s.runSequential(ctx, block, outcomes)
			}
			s.logger.DebugContext(ctx, "block complete",
				slog.Int(applog.BlockKey, block.Index),
				slog.Int(applog.VariablesKey, len(block.Variables)),
				slog.Int64(applog.DurationMsKey, time.Since(start).Milliseconds()))
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "sweep aborted")
	}
	return outcomes, nil
}

func (s *Scheduler) runSequential(ctx context.Context, block Block, outcomes []Outcome) error {
	for i, v := range block.Variables {
		if err := ctx.Err(); err != nil {
			return err
		}
		outcomes[block.Start+i] = s.fitOne(v)
	}
	return nil
}

func (s *Scheduler) runNested(ctx context.Context, block Block, outcomes []Outcome) error {
	sem := semaphore.NewWeighted(int64(s.cores))
	var wg sync.WaitGroup

	for i, v := range block.Variables {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return err
		}
		wg.Add(1)
		go func(slot int, variable string) {
			defer wg.Done()
			defer sem.Release(1)
			outcomes[slot] = s.fitOne(variable)
		}(block.Start+i, v)
	}

	wg.Wait()
	return nil
}

// fitOne renders the formula for one variable and invokes the fit function
// behind the panic isolation boundary.
func (s *Scheduler) fitOne(variable string) Outcome {
	rendered := s.tmpl.Render(variable)

	var fit family.Fitted
	err := errors.SafeExecute("fit "+variable, func() error {
		var fitErr error
		fit, fitErr = s.fit(rendered, s.data)
		return fitErr
	})
	if err != nil {
		s.logger.Warn("variable fit failed",
			slog.String(applog.VariableKey, variable),
			slog.String(applog.FormulaKey, rendered),
			applog.ErrAttr(err))
		return Outcome{Variable: variable, Formula: rendered,
			Err: errors.NewFitError(variable, rendered, "model fit failed", err)}
	}
	if fit == nil {
		return Outcome{Variable: variable, Formula: rendered,
			Err: errors.NewFitError(variable, rendered, "fit function returned no model", nil)}
	}
	return Outcome{Variable: variable, Formula: rendered, Fit: fit}
}
