package selftest

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/log"

	"github.com/ethereum-optimism/infra/perf-selftest/metrics"
	"github.com/ethereum-optimism/infra/perf-selftest/registry"
	"github.com/ethereum-optimism/infra/perf-selftest/reporting"
	"github.com/ethereum-optimism/infra/perf-selftest/runner"
)

// SelfTest drives one invocation of the "test" command: it parses the
// command, then runs or lists the registered tests once per action.
type SelfTest struct {
	config   *Config
	registry *registry.Registry
	reporter reporting.Reporter
	runner   runner.TestRunner
}

func New(config *Config) (*SelfTest, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}
	if config.Out == nil {
		return nil, errors.New("output writer is required")
	}
	if config.Log == nil {
		config.Log = log.New()
		config.Log.Error("No logger provided, using default")
	}

	reg := registry.NewRegistry(registry.Config{
		Log:      config.Log,
		Assemble: config.Assemble,
	})
	reporter := reporting.New(config.Settings, config.Out, config.Colorize)
	testRunner, err := runner.NewTestRunner(runner.Config{
		Reporter: reporter,
		Log:      config.Log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create test runner: %w", err)
	}

	return &SelfTest{
		config:   config,
		registry: reg,
		reporter: reporter,
		runner:   testRunner,
	}, nil
}

// Run executes the configured command. An unknown command token prints a
// message and returns without running anything. A check fault aborts the
// remaining actions and is returned as a RuntimeError; no JSON summary is
// printed in that case.
func (s *SelfTest) Run(ctx context.Context) error {
	logger := s.config.Log

	cmd, err := ParseCommand(s.config.Command)
	if err != nil {
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			return NewRuntimeError(err)
		}
		logger.Debug("Rejected command", "token", parseErr.Token)
		_, werr := fmt.Fprintf(s.config.Out, "Incorrect parameter: %s\n", parseErr.Token)
		return werr
	}
	if len(s.config.Events) > 0 {
		logger.Debug("Ignoring --event values, the positional command takes precedence", "events", s.config.Events)
	}
	logger.Debug("Parsed command", "actions", cmd.Actions, "skip", len(cmd.Skip))

	tests := s.registry.Tests()
	for _, action := range cmd.Actions {
		switch action {
		case ActionList:
			err = reporting.ListTests(s.config.Out, tests)
		case ActionRunAll, ActionRunSome:
			_, err = s.runner.RunAll(ctx, tests, cmd.Skip, s.config.Settings)
		}
		if err != nil {
			return NewRuntimeError(errors.Join(err, s.exportMetrics()))
		}
	}

	if err := s.reporter.Complete(); err != nil {
		return NewRuntimeError(errors.Join(err, s.exportMetrics()))
	}
	if err := s.exportMetrics(); err != nil {
		return NewRuntimeError(err)
	}
	return nil
}

func (s *SelfTest) exportMetrics() error {
	if s.config.MetricsTextfile == "" {
		return nil
	}
	return metrics.WriteTextfile(s.config.MetricsTextfile)
}
