// Package rtd reduces batches of solver quality traces into the empirical curves used to
// compare stochastic optimization algorithms.
//
// # Reading Guide
//
// Start with these files:
//   - trace.go: Observation, Trace and Batch, and the last-value-at-or-before lookup
//   - ranges.go: natural time/error windows of a batch and their narrowing by a Scale
//   - probability.go: fraction of runs that reached an error threshold by a given time
//   - curves.go: QRTD, SQD and convergence sweeps
//   - boxplot.go: worst final quality and per-run time to reach it
//
// Every function in this package is pure. A Batch is never mutated after construction,
// so curve builders may run concurrently over the same Batch.
//
// # Sub-packages
//
//   - rtd/tracefile/: trace file parsing, batch discovery and curve CSV output
//   - rtd/experiment/: YAML analysis configuration and the runner that executes it
package rtd
