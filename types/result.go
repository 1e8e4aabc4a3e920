// Package types contains the shared types of the self-test harness
package types

import "fmt"

// TestStatus represents the possible outcomes of running a test node
type TestStatus int

const (
	TestStatusPassed TestStatus = iota
	TestStatusFailed
	TestStatusSkipped
)

// String returns the status as it appears in the JSON summary
func (s TestStatus) String() string {
	switch s {
	case TestStatusPassed:
		return "passed"
	case TestStatusFailed:
		return "failed"
	case TestStatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Result captures the outcome of a single test node.
// Reason is only set for failed results and may be empty.
type Result struct {
	Status TestStatus
	Reason string
}

func Passed() Result {
	return Result{Status: TestStatusPassed}
}

func Failed(reason string) Result {
	return Result{Status: TestStatusFailed, Reason: reason}
}

// Failedf builds a failed result with a formatted reason
func Failedf(format string, args ...any) Result {
	return Failed(fmt.Sprintf(format, args...))
}

func Skipped() Result {
	return Result{Status: TestStatusSkipped}
}

// ResultFromBool maps a plain pass/fail check onto a Result.
func ResultFromBool(ok bool) Result {
	if ok {
		return Passed()
	}
	return Failed("")
}

func (r Result) IsPassed() bool  { return r.Status == TestStatusPassed }
func (r Result) IsFailed() bool  { return r.Status == TestStatusFailed }
func (r Result) IsSkipped() bool { return r.Status == TestStatusSkipped }

func (r Result) String() string {
	if r.IsFailed() && r.Reason != "" {
		return fmt.Sprintf("%s (%s)", r.Status, r.Reason)
	}
	return r.Status.String()
}
