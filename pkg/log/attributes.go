// Standard attribute keys used by the sweep engine. Using these keys keeps
// log records filterable across runs.

package log

const (
	// VariableKey identifies the candidate variable a record refers to.
	VariableKey = "sweep.variable"

	// FormulaKey carries the rendered model formula.
	FormulaKey = "sweep.formula"

	// FamilyKey identifies the model family of the run.
	FamilyKey = "sweep.family"

	// BlockKey identifies the block index of a unit of work.
	BlockKey = "sweep.block"

	// BlocksKey records the total number of blocks in a run.
	BlocksKey = "sweep.blocks"

	// VariablesKey records the total number of candidate variables.
	VariablesKey = "sweep.variables"

	// CoresKey records the worker-pool width at each nesting level.
	CoresKey = "sweep.cores"

	// NestedKey records whether inner per-variable fan-out is active.
	NestedKey = "sweep.nested"

	// FailuresKey records how many variable fits failed in a run.
	FailuresKey = "sweep.failures"

	// RowsKey records the number of rows in the assembled result table.
	RowsKey = "sweep.rows"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)
