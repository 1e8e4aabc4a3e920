package checks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/ethereum-optimism/infra/perf-selftest/types"
)

// CommandRunner runs a command to completion and returns its stdout.
// A non-zero exit is reported as an *exec.ExitError.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Libpfm4 checks the shared library cache for libpfm.
func Libpfm4() *types.Node {
	return NewLibpfm4(execCommand)
}

func NewLibpfm4(run CommandRunner) *types.Node {
	return types.NewTest(
		"has_libpfm4",
		"Checks for presence of libpfm4",
		checkForLibpfm4(run),
	)
}

func checkForLibpfm4(run CommandRunner) types.CheckFunc {
	return func(ctx context.Context, settings types.Settings) (types.Result, error) {
		out, err := run(ctx, "ldconfig", "-p")
		if err != nil {
			var exitErr *exec.ExitError
			if !errors.As(err, &exitErr) {
				return types.Result{}, fmt.Errorf("failed to run ldconfig: %w", err)
			}
			if settings.Verbose {
				return types.Failedf("ldconfig -p exited with status %d", exitErr.ExitCode()), nil
			}
			return types.Failed(""), nil
		}
		if bytes.Contains(out, []byte("libpfm")) {
			return types.Passed(), nil
		}
		if settings.Verbose {
			return types.Failed("libpfm not found in the shared library cache"), nil
		}
		return types.Failed(""), nil
	}
}
