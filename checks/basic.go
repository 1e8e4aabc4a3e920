// Package checks contains the leaf checks registered with the harness.
package checks

import (
	"context"
	"time"

	"github.com/ethereum-optimism/infra/perf-selftest/types"
)

// TODO: drop the basic checks once the registry carries enough real hardware
// checks to exercise pass, fail and grouping paths on its own.

func AlwaysPasses() *types.Node {
	return types.NewTest(
		"always_passes",
		"This test always passes",
		types.BoolCheck(func() bool { return true }),
	)
}

func AlwaysFails() *types.Node {
	return types.NewTest(
		"always_fails",
		"This test always fails",
		types.BoolCheck(func() bool { return false }),
	)
}

// PassesAfter returns a check that blocks for d before passing. The whole
// harness blocks with it.
func PassesAfter(d time.Duration) types.CheckFunc {
	return func(context.Context, types.Settings) (types.Result, error) {
		time.Sleep(d)
		return types.Passed(), nil
	}
}

func PassesAfterOneSecond() *types.Node {
	return types.NewTest(
		"passes_after_1sec",
		"This test passes after 1 second",
		PassesAfter(time.Second),
	)
}

func WithPointlessSubtests() *types.Node {
	return types.NewGroup(
		"subtest_test",
		"Test with many subtests",
		types.NewTest("pointless1", "This one passes", types.BoolCheck(func() bool { return true })),
		types.NewTest("pointless2", "This one fails", types.BoolCheck(func() bool { return false })),
		types.NewTest("pointless3", "This one also passes", types.BoolCheck(func() bool { return true })),
	)
}
