package checks

import (
	"context"
	"errors"

	"github.com/ethereum-optimism/infra/perf-selftest/types"
)

// CounterOpener opens a performance counter and returns the function that
// releases it.
type CounterOpener func() (closeFn func() error, err error)

// FDSanity groups the file descriptor checks.
func FDSanity() *types.Node {
	return NewFDSanity(openInstructionsCounter)
}

func NewFDSanity(open CounterOpener) *types.Node {
	return types.NewGroup(
		"fd_sanity",
		"File descriptor sanity tests",
		types.NewTest(
			"perf_event_open",
			"perf_event_open sanity check",
			checkPerfEventOpen(open),
		),
	)
}

func checkPerfEventOpen(open CounterOpener) types.CheckFunc {
	return func(_ context.Context, settings types.Settings) (types.Result, error) {
		closeFn, err := open()
		if errors.Is(err, errors.ErrUnsupported) {
			return types.Skipped(), nil
		}
		if err != nil {
			if settings.Verbose {
				return types.Failedf("perf_event_open returned -1, which is an error code: %v", err), nil
			}
			return types.Failed("-1"), nil
		}
		if err := closeFn(); err != nil {
			return types.Failedf("failed to close perf event fd: %v", err), nil
		}
		return types.Passed(), nil
	}
}
