// Package exitcodes defines the exit codes used by perf-selftest.
package exitcodes

// Failing checks are reported, not signalled: a run whose checks fail still
// exits with Success.
//
// * Success (0): the requested actions completed, or the command was rejected
// * RuntimeErr (2): a check faulted or the configuration was invalid
const (
	Success    = 0 // Actions completed
	RuntimeErr = 2 // Check faults or configuration errors
)
