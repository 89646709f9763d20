// Package errors provides the error handling and warning system shared by all
// regsweep packages. It distinguishes fatal configuration problems, which
// abort a run before any model is fitted, from per-variable fit failures and
// per-row derivation problems, which are recovered locally and never abort
// the batch.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// Default handler logs to standard error.
		log.Printf("regsweep-warning: %v\n", w)
	}
	// zerolog sink, injected lazily to avoid an import cycle with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler sets the warning handler used by the whole module.
// Fit functions run concurrently; Warn serializes all warnings through a
// single mutex so their output never interleaves across workers.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // drop warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warning sink.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning through the configured sink. The zerolog sink takes
// precedence when installed.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// ConfigurationError reports an invalid run configuration: a malformed
// formula template, a non-positive block size, an unknown correction method,
// and so on. It is fatal and is raised before any fit is attempted.
type ConfigurationError struct {
	Param  string
	Reason string
	Value  interface{}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("regsweep: invalid configuration for '%s': %s (got: %v)", e.Param, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured configuration context to a zerolog event.
func (e *ConfigurationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param", e.Param).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ConfigurationError")
}

// NewConfigurationError creates a ConfigurationError with a stack trace attached.
func NewConfigurationError(param, reason string, value interface{}) error {
	err := &ConfigurationError{Param: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// IsConfiguration reports whether err is (or wraps) a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// FitError records the failure of a single variable's model fit:
// non-convergence, a singular design matrix, or a runtime error raised by the
// user fit function. It is recovered at the fit-adapter boundary and recorded
// as a failure outcome; it never aborts the batch.
type FitError struct {
	Variable string
	Formula  string
	Reason   string
	Err      error
}

func (e *FitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("regsweep: fit failed for variable '%s': %s: %v", e.Variable, e.Reason, e.Err)
	}
	return fmt.Sprintf("regsweep: fit failed for variable '%s': %s", e.Variable, e.Reason)
}

func (e *FitError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds the structured fit-failure context to a zerolog event.
func (e *FitError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("variable", e.Variable).
		Str("formula", e.Formula).
		Str("reason", e.Reason).
		Str("type", "FitError")
	if e.Err != nil {
		event.AnErr("cause", e.Err)
	}
}

// NewFitError creates a FitError with a stack trace attached.
func NewFitError(variable, formula, reason string, err error) error {
	fitErr := &FitError{Variable: variable, Formula: formula, Reason: reason, Err: err}
	return errors.WithStack(fitErr)
}

// ConvergenceWarning is emitted when an iterative fitting algorithm stops
// without reaching its tolerance. The fit result is still usable but should
// be treated with caution.
type ConvergenceWarning struct {
	Algorithm  string
	Variable   string
	Iterations int
}

func (w *ConvergenceWarning) Error() string {
	return fmt.Sprintf("%s did not converge after %d iterations (variable '%s')", w.Algorithm, w.Iterations, w.Variable)
}

// MarshalZerologObject adds the structured warning context to a zerolog event.
func (w *ConvergenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("algorithm", w.Algorithm).
		Str("variable", w.Variable).
		Int("iterations", w.Iterations).
		Str("type", "ConvergenceWarning")
}

// NewConvergenceWarning creates a new ConvergenceWarning.
func NewConvergenceWarning(algorithm, variable string, iterations int) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Variable: variable, Iterations: iterations}
}

// DerivationWarning is emitted when a derived statistic (confidence bound,
// odds or hazard ratio) cannot be computed for a specific row, typically
// because the standard error is unavailable. The row is still emitted with
// NaN in the affected fields; this is distinct from a fit failure.
type DerivationWarning struct {
	Variable string
	Term     string
	Field    string
	Reason   string
}

func (w *DerivationWarning) Error() string {
	return fmt.Sprintf("could not derive %s for %s:%s: %s", w.Field, w.Variable, w.Term, w.Reason)
}

// MarshalZerologObject adds the structured warning context to a zerolog event.
func (w *DerivationWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("variable", w.Variable).
		Str("term", w.Term).
		Str("field", w.Field).
		Str("reason", w.Reason).
		Str("type", "DerivationWarning")
}

// NewDerivationWarning creates a new DerivationWarning.
func NewDerivationWarning(variable, term, field, reason string) *DerivationWarning {
	return &DerivationWarning{Variable: variable, Term: term, Field: field, Reason: reason}
}

// DimensionError reports a shape mismatch between related inputs, for example
// a response column whose length differs from the dataset's row count.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("regsweep: %s: dimension mismatch. Expected %d, got %d", e.Op, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error context to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace attached.
func NewDimensionError(op string, expected, got int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common sentinel errors
//
// ===========================================================================

var (
	// ErrEmptyData indicates an empty dataset or variable list.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix indicates a singular design matrix.
	ErrSingularMatrix = New("singular matrix")

	// ErrNoConverge indicates an iterative fit that failed to converge.
	ErrNoConverge = New("did not converge")
)
