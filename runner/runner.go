package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ethereum-optimism/infra/perf-selftest/metrics"
	"github.com/ethereum-optimism/infra/perf-selftest/reporting"
	"github.com/ethereum-optimism/infra/perf-selftest/types"
)

// TestRunner defines the interface for running the self-tests
type TestRunner interface {
	RunAll(ctx context.Context, tests []*types.Node, skip types.SkipSet, settings types.Settings) (*types.RunSummary, error)
	RunNode(ctx context.Context, node *types.Node, index int, skip bool, pathPrefix string, settings types.Settings) (types.Result, error)
}

// runner struct implements TestRunner interface
type runner struct {
	reporter reporting.Reporter
	log      log.Logger
	runID    string
	tracer   trace.Tracer
}

// Config holds configuration for creating a new runner
type Config struct {
	Reporter reporting.Reporter
	Log      log.Logger
}

// NewTestRunner creates a new test runner instance
func NewTestRunner(cfg Config) (TestRunner, error) {
	if cfg.Reporter == nil {
		return nil, errors.New("reporter is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided, using default")
	}
	return &runner{
		reporter: cfg.Reporter,
		log:      cfg.Log,
		tracer:   otel.Tracer("selftest runner"),
	}, nil
}

// RunAll runs every top-level test in registration order. Tests whose index
// is in skip are reported as skipped without being executed.
// A check fault aborts the run: the error is returned and no summary is
// produced.
func (r *runner) RunAll(ctx context.Context, tests []*types.Node, skip types.SkipSet, settings types.Settings) (*types.RunSummary, error) {
	r.runID = uuid.New().String()
	defer func() {
		r.runID = ""
	}()

	ctx, span := r.tracer.Start(ctx, "run", trace.WithAttributes(
		attribute.String("run_id", r.runID),
		attribute.Int("tests", len(tests)),
	))
	defer span.End()

	start := time.Now()
	r.log.Debug("Running all tests", "run_id", r.runID, "tests", len(tests), "skip", len(skip))

	summary := &types.RunSummary{
		RunID:   r.runID,
		Results: make([]types.TopLevelResult, 0, len(tests)),
	}
	for index, test := range tests {
		testStart := time.Now()
		result, err := r.RunNode(ctx, test, index, skip.Contains(index), "", settings)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "check fault")
			return nil, err
		}
		summary.Results = append(summary.Results, types.TopLevelResult{
			Index:       index,
			Name:        test.Name,
			Description: test.Description,
			Result:      result,
			Duration:    time.Since(testStart),
		})
	}
	summary.Duration = time.Since(start)

	stats := summary.Stats()
	metrics.RecordRun(r.runID, stats.Available, stats.Passed, stats.Failed, stats.Skipped, summary.Duration)
	r.log.Debug("Finished running tests", "run_id", r.runID,
		"passed", stats.Passed, "failed", stats.Failed, "skipped", stats.Skipped,
		"duration", summary.Duration)

	if err := r.reporter.RunFinished(summary); err != nil {
		return nil, fmt.Errorf("failed to report run: %w", err)
	}
	return summary, nil
}

// RunNode runs node and, for groups, all of its children in order.
//
// A skipped node is not executed and its children are not visited. A leaf
// returns the result of its check. A group fails if any child failed and
// passes otherwise; skipped children do not change the group result, and
// the group's own check is never invoked. Children cannot be skipped
// individually.
func (r *runner) RunNode(ctx context.Context, node *types.Node, index int, skip bool, pathPrefix string, settings types.Settings) (types.Result, error) {
	path := types.NodePath(pathPrefix, index)

	ctx, span := r.tracer.Start(ctx, fmt.Sprintf("%s %s", node.Kind(), node.Name), trace.WithAttributes(
		attribute.String("path", path),
		attribute.Bool("skip", skip),
	))
	defer span.End()

	if err := r.reporter.NodeStarted(path, node); err != nil {
		return types.Result{}, fmt.Errorf("failed to report test %s: %w", path, err)
	}

	start := time.Now()
	var (
		result types.Result
		err    error
	)
	switch {
	case skip:
		result = types.Skipped()
	case !node.IsGroup():
		result, err = node.Check.Execute(ctx, settings)
		if err != nil {
			err = fmt.Errorf("test %s (%s) failed to execute: %w", path, node.Name, err)
			r.log.Error("Check fault, aborting run", "run_id", r.runID, "path", path, "name", node.Name, "err", err)
			metrics.RecordErrorDetails("check_fault", err)
		}
	default:
		result, err = r.runGroup(ctx, node, pathPrefix, index, settings)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "check fault")
		return types.Result{}, err
	}

	duration := time.Since(start)
	span.SetAttributes(attribute.String("result", result.Status.String()))
	r.log.Debug("Test finished", "run_id", r.runID, "path", path, "name", node.Name,
		"kind", node.Kind(), "result", result, "duration", duration)
	metrics.RecordCheck(r.runID, node.Name, node.Kind(), result.Status.String(), duration)

	if err := r.reporter.NodeFinished(path, node, result); err != nil {
		return types.Result{}, fmt.Errorf("failed to report test %s: %w", path, err)
	}
	return result, nil
}

func (r *runner) runGroup(ctx context.Context, node *types.Node, pathPrefix string, index int, settings types.Settings) (types.Result, error) {
	path := types.NodePath(pathPrefix, index)
	if err := r.reporter.GroupStarted(path, node); err != nil {
		return types.Result{}, fmt.Errorf("failed to report group %s: %w", path, err)
	}

	prefix := types.ChildPrefix(pathPrefix, index)
	overall := types.Passed()
	for i, child := range node.Children {
		res, err := r.RunNode(ctx, child, i, false, prefix, settings)
		if err != nil {
			return types.Result{}, err
		}
		if res.IsFailed() {
			overall = types.Failed("")
		}
	}
	return overall, nil
}
