package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/honeycombio/otel-config-go/otelconfig"
	"github.com/urfave/cli/v2"

	selftest "github.com/ethereum-optimism/infra/perf-selftest"
	"github.com/ethereum-optimism/infra/perf-selftest/exitcodes"
	"github.com/ethereum-optimism/infra/perf-selftest/flags"
	"github.com/ethereum-optimism/optimism/devnet-sdk/telemetry"
	"github.com/ethereum-optimism/optimism/op-service/cliapp"
	"github.com/ethereum-optimism/optimism/op-service/ctxinterrupt"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := newApp()

	// Start telemetry
	ctx, shutdown, err := telemetry.SetupOpenTelemetry(
		context.Background(),
		otelconfig.WithServiceName(app.Name),
		otelconfig.WithServiceVersion(app.Version),
	)
	if err != nil {
		log.Crit("Failed to setup open telemetry", "message", err)
	}

	ctx = ctxinterrupt.WithSignalWaiterMain(ctx)
	err = app.RunContext(ctx, os.Args)
	if err != nil {
		log.Error("Application failed", "message", err)
	}
	// Flush spans of an aborted run before exiting
	shutdown()
	os.Exit(exitCode(err))
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "perf-selftest"
	app.Usage = "Self-test harness for hardware performance counter support"
	app.Description = "perf-selftest checks that perf_event_open and libpfm4 are usable on this machine"
	app.Commands = []*cli.Command{
		{
			Name:      "test",
			Usage:     "Run or list the self-tests",
			ArgsUsage: "[list | -s INDEX...]...",
			Flags:     cliapp.ProtectFlags(flags.Flags),
			Action:    runTest,
		},
	}
	// main exits once telemetry is shut down
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app
}

func exitCode(err error) int {
	var exitErr cli.ExitCoder
	switch {
	case err == nil:
		return exitcodes.Success
	case errors.As(err, &exitErr):
		return exitErr.ExitCode()
	default:
		// Check faults and configuration errors share one exit code
		return exitcodes.RuntimeErr
	}
}

func runTest(ctx *cli.Context) error {
	logCfg := oplog.ReadCLIConfig(ctx)
	log := oplog.NewLogger(ctx.App.ErrWriter, logCfg)
	oplog.SetGlobalLogHandler(log.Handler())

	cfg, err := selftest.NewConfig(ctx, log)
	if err != nil {
		return selftest.NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}
	cfg.Log.Debug("Config", "settings", cfg.Settings, "command", cfg.Command)

	st, err := selftest.New(cfg)
	if err != nil {
		return selftest.NewRuntimeError(fmt.Errorf("failed to create selftest: %w", err))
	}
	return st.Run(ctx.Context)
}
