// Package regsweep fits one regression model per candidate variable over a
// shared dataset and collects every model's coefficient statistics into a
// single ordered table. A formula template holds the wildcard [*] where each
// variable is substituted; the variables are partitioned into blocks and
// fitted across a two-level worker pool. A variable whose fit fails never
// aborts the batch: it is recorded as a failure and, by default, kept in the
// table as an NA placeholder row.
//
// Typical use:
//
//	tbl, err := regsweep.Run(ctx, data,
//	    "outcome ~ [*] + age + sex",
//	    variables,
//	    nil, // built-in fitter for the family
//	    family.Logistic,
//	    regsweep.WithBlockSize(500),
//	    regsweep.WithCores(8),
//	    regsweep.WithNestedParallel(true),
//	    regsweep.WithExcludeTerms("age", "sex"),
//	    regsweep.WithPAdjust(padjust.BH),
//	)
//
// Custom model families are supported by passing a family.FitFunc that fits
// one rendered formula and returns a coefficient summary.
package regsweep
