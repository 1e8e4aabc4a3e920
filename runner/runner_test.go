package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethereum-optimism/infra/perf-selftest/reporting"
	"github.com/ethereum-optimism/infra/perf-selftest/types"
)

// event is one reporter hook invocation
type event struct {
	hook   string
	path   string
	name   string
	result types.Result
}

type recordingReporter struct {
	events    []event
	summaries []*types.RunSummary
	completed bool
}

func (r *recordingReporter) NodeStarted(path string, node *types.Node) error {
	r.events = append(r.events, event{hook: "start", path: path, name: node.Name})
	return nil
}

func (r *recordingReporter) GroupStarted(path string, node *types.Node) error {
	r.events = append(r.events, event{hook: "group", path: path, name: node.Name})
	return nil
}

func (r *recordingReporter) NodeFinished(path string, node *types.Node, result types.Result) error {
	r.events = append(r.events, event{hook: "finish", path: path, name: node.Name, result: result})
	return nil
}

func (r *recordingReporter) RunFinished(summary *types.RunSummary) error {
	r.summaries = append(r.summaries, summary)
	return nil
}

func (r *recordingReporter) Complete() error {
	r.completed = true
	return nil
}

func (r *recordingReporter) paths(hook string) []string {
	var out []string
	for _, e := range r.events {
		if e.hook == hook {
			out = append(out, e.path)
		}
	}
	return out
}

// counter is an instrumented check that counts its invocations
type counter struct {
	calls  int
	result types.Result
	err    error
}

func (c *counter) Execute(context.Context, types.Settings) (types.Result, error) {
	c.calls++
	return c.result, c.err
}

func newRunner(t *testing.T, rep reporting.Reporter) TestRunner {
	t.Helper()
	r, err := NewTestRunner(Config{Reporter: rep, Log: log.New()})
	require.NoError(t, err)
	return r
}

func TestNewTestRunnerRequiresReporter(t *testing.T) {
	_, err := NewTestRunner(Config{})
	require.Error(t, err)
}

func TestRunNodeLeafReturnsCheckResultVerbatim(t *testing.T) {
	results := []types.Result{types.Passed(), types.Failed("reason"), types.Failed(""), types.Skipped()}
	for _, want := range results {
		t.Run(want.String(), func(t *testing.T) {
			c := &counter{result: want}
			r := newRunner(t, &recordingReporter{})
			got, err := r.RunNode(context.Background(), types.NewTest("leaf", "leaf", c), 0, false, "", types.Settings{})
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Equal(t, 1, c.calls)
		})
	}
}

func TestRunNodeThreadsSettings(t *testing.T) {
	var got types.Settings
	check := types.CheckFunc(func(_ context.Context, s types.Settings) (types.Result, error) {
		got = s
		return types.Passed(), nil
	})
	r := newRunner(t, &recordingReporter{})
	group := types.NewGroup("g", "g", types.NewTest("leaf", "leaf", check))
	_, err := r.RunNode(context.Background(), group, 0, false, "", types.Settings{Verbose: true})
	require.NoError(t, err)
	assert.Equal(t, types.Settings{Verbose: true}, got)
}

func TestRunNodeSkipIsShallowAndTerminal(t *testing.T) {
	leafCheck := &counter{result: types.Passed()}
	childA := &counter{result: types.Passed()}
	childB := &counter{result: types.Failed("x")}
	group := types.NewGroup("g", "group",
		types.NewTest("a", "a", childA),
		types.NewTest("b", "b", childB),
	)
	rep := &recordingReporter{}
	r := newRunner(t, rep)

	res, err := r.RunNode(context.Background(), types.NewTest("leaf", "leaf", leafCheck), 0, true, "", types.Settings{})
	require.NoError(t, err)
	assert.Equal(t, types.Skipped(), res)

	res, err = r.RunNode(context.Background(), group, 1, true, "", types.Settings{})
	require.NoError(t, err)
	assert.Equal(t, types.Skipped(), res)

	assert.Zero(t, leafCheck.calls)
	assert.Zero(t, childA.calls)
	assert.Zero(t, childB.calls)
	assert.Equal(t, []string{"0", "1"}, rep.paths("start"))
	assert.Empty(t, rep.paths("group"), "a skipped group is never expanded")
}

func TestGroupAggregation(t *testing.T) {
	tests := []struct {
		name     string
		children []types.Result
		want     types.Result
	}{
		{
			name:     "all passed",
			children: []types.Result{types.Passed(), types.Passed(), types.Passed()},
			want:     types.Passed(),
		},
		{
			name:     "one failed",
			children: []types.Result{types.Passed(), types.Failed("child reason"), types.Passed()},
			want:     types.Failed(""),
		},
		{
			name:     "all failed",
			children: []types.Result{types.Failed("a"), types.Failed("b")},
			want:     types.Failed(""),
		},
		{
			name:     "skipped children do not count",
			children: []types.Result{types.Skipped(), types.Passed(), types.Skipped()},
			want:     types.Passed(),
		},
		{
			name:     "only skipped children",
			children: []types.Result{types.Skipped(), types.Skipped()},
			want:     types.Passed(),
		},
		{
			name:     "skipped and failed",
			children: []types.Result{types.Skipped(), types.Failed("")},
			want:     types.Failed(""),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var checks []*counter
			var children []*types.Node
			for i, res := range tt.children {
				c := &counter{result: res}
				checks = append(checks, c)
				children = append(children, types.NewTest(fmt.Sprintf("c%d", i), "child", c))
			}
			ownCheck := &counter{result: types.Failed("never")}
			group := types.NewGroup("g", "group", children...)
			group.Check = ownCheck

			r := newRunner(t, &recordingReporter{})
			got, err := r.RunNode(context.Background(), group, 0, false, "", types.Settings{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Zero(t, ownCheck.calls, "group check must not run")
			for _, c := range checks {
				assert.Equal(t, 1, c.calls)
			}
		})
	}
}

func TestRunNodeDottedPaths(t *testing.T) {
	nested := types.NewGroup("inner", "inner",
		types.NewTest("x", "x", &counter{result: types.Passed()}),
		types.NewTest("y", "y", &counter{result: types.Passed()}),
	)
	group := types.NewGroup("outer", "outer",
		types.NewTest("a", "a", &counter{result: types.Passed()}),
		nested,
	)
	rep := &recordingReporter{}
	r := newRunner(t, rep)

	_, err := r.RunNode(context.Background(), group, 4, false, "", types.Settings{})
	require.NoError(t, err)

	assert.Equal(t, []string{"4", "4.0", "4.1", "4.1.0", "4.1.1"}, rep.paths("start"))
	assert.Equal(t, []string{"4", "4.1"}, rep.paths("group"))
	assert.Equal(t, []string{"4.0", "4.1.0", "4.1.1", "4.1", "4"}, rep.paths("finish"))
}

func TestRunAll(t *testing.T) {
	checks := []*counter{
		{result: types.Passed()},
		{result: types.Failed("nope")},
		{result: types.Passed()},
		{result: types.Passed()},
	}
	groupChildren := []*counter{
		{result: types.Passed()},
		{result: types.Failed("")},
		{result: types.Passed()},
	}
	tests := []*types.Node{
		types.NewTest("t0", "zero", checks[0]),
		types.NewTest("t1", "one", checks[1]),
		types.NewTest("t2", "two", checks[2]),
		types.NewGroup("t3", "three",
			types.NewTest("c0", "c0", groupChildren[0]),
			types.NewTest("c1", "c1", groupChildren[1]),
			types.NewTest("c2", "c2", groupChildren[2]),
		),
		types.NewTest("t4", "four", checks[3]),
	}

	rep := &recordingReporter{}
	r := newRunner(t, rep)
	summary, err := r.RunAll(context.Background(), tests, types.NewSkipSet(0, 2, 17), types.Settings{})
	require.NoError(t, err)

	assert.NotEmpty(t, summary.RunID)
	require.Len(t, summary.Results, 5)
	want := []types.Result{types.Skipped(), types.Failed("nope"), types.Skipped(), types.Failed(""), types.Passed()}
	for i, res := range summary.Results {
		assert.Equal(t, i, res.Index)
		assert.Equal(t, tests[i].Name, res.Name)
		assert.Equal(t, tests[i].Description, res.Description)
		assert.Equal(t, want[i], res.Result, "index %d", i)
	}

	assert.Zero(t, checks[0].calls)
	assert.Equal(t, 1, checks[1].calls)
	assert.Zero(t, checks[2].calls)
	assert.Equal(t, 1, checks[3].calls)
	for _, c := range groupChildren {
		assert.Equal(t, 1, c.calls)
	}

	stats := summary.Stats()
	assert.Equal(t, 5, stats.Available)
	assert.Equal(t, 2, stats.Skipped)
	assert.Equal(t, stats.Available-stats.Skipped, stats.Ran())
	assert.Equal(t, stats.Ran(), stats.Passed+stats.Failed)

	require.Len(t, rep.summaries, 1)
	assert.Same(t, summary, rep.summaries[0])
	assert.False(t, rep.completed, "completion is owned by the caller")
}

func TestRunAllWithoutSkips(t *testing.T) {
	c := &counter{result: types.Passed()}
	r := newRunner(t, &recordingReporter{})
	summary, err := r.RunAll(context.Background(), []*types.Node{types.NewTest("a", "a", c)}, nil, types.Settings{})
	require.NoError(t, err)
	assert.Equal(t, types.Passed(), summary.Results[0].Result)
	assert.Equal(t, 1, c.calls)
}

func TestRunAllAbortsOnFault(t *testing.T) {
	fault := errors.New("cannot spawn ldconfig")
	after := &counter{result: types.Passed()}
	sibling := &counter{result: types.Passed()}
	tests := []*types.Node{
		types.NewTest("ok", "ok", &counter{result: types.Passed()}),
		types.NewGroup("g", "group",
			types.NewTest("boom", "boom", &counter{err: fault}),
			types.NewTest("sibling", "sibling", sibling),
		),
		types.NewTest("after", "after", after),
	}
	rep := &recordingReporter{}
	r := newRunner(t, rep)

	summary, err := r.RunAll(context.Background(), tests, nil, types.Settings{})
	require.Error(t, err)
	assert.Nil(t, summary)
	assert.ErrorIs(t, err, fault)
	assert.Contains(t, err.Error(), "1.0")
	assert.Zero(t, sibling.calls)
	assert.Zero(t, after.calls)
	assert.Empty(t, rep.summaries)
}

func TestRunAllTextOutput(t *testing.T) {
	var buf bytes.Buffer
	r := newRunner(t, reporting.NewTextReporter(&buf, false))
	tests := []*types.Node{
		types.NewTest("a", "first", &counter{result: types.Passed()}),
		types.NewGroup("g", "group",
			types.NewTest("b", "second", &counter{result: types.Failed("why")}),
		),
	}
	_, err := r.RunAll(context.Background(), tests, nil, types.Settings{})
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSuffix(buf.Bytes(), []byte("\n")), []byte("\n"))
	require.Len(t, lines, 3)
	assert.True(t, bytes.HasPrefix(lines[0], []byte("  0: first")))
	assert.True(t, bytes.HasSuffix(lines[0], []byte(" : Ok")))
	assert.True(t, bytes.HasPrefix(lines[1], []byte("  1: group")))
	assert.True(t, bytes.HasSuffix(lines[1], []byte(" : ")))
	assert.True(t, bytes.HasPrefix(lines[2], []byte("1.0: second")))
	assert.True(t, bytes.HasSuffix(lines[2], []byte(" : FAILED! why")))
}
