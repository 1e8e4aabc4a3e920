//go:build !linux

package checks

import (
	"errors"
	"fmt"
	"runtime"
)

func openInstructionsCounter() (func() error, error) {
	return nil, fmt.Errorf("perf_event_open on %s: %w", runtime.GOOS, errors.ErrUnsupported)
}
