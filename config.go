package selftest

import (
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/ethereum-optimism/infra/perf-selftest/flags"
	"github.com/ethereum-optimism/infra/perf-selftest/registry"
	"github.com/ethereum-optimism/infra/perf-selftest/types"
)

// Config holds the application configuration
type Config struct {
	Settings        types.Settings
	Events          []string           // Values of -e/--event, validated but superseded by Command
	Command         []string           // Positional command tokens
	MetricsTextfile string             // Optional path for the prometheus textfile export
	Colorize        bool               // Color the text report
	Out             io.Writer          // Destination of the report
	Assemble        registry.Assembler // Overrides the built-in test set when set
	Log             log.Logger
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, log log.Logger) (*Config, error) {
	events := ctx.StringSlice(flags.Event.Name)
	for _, e := range events {
		if _, err := ParseEvent(e); err != nil {
			return nil, fmt.Errorf("invalid --%s value: %w", flags.Event.Name, err)
		}
	}

	command := ctx.Args().Slice()
	if ctx.Bool(flags.Skip.Name) {
		command = append([]string{"--skip"}, command...)
	}

	settings := types.Settings{
		Verbose: ctx.Bool(flags.Verbose.Name),
		JSON:    ctx.Bool(flags.JSON.Name),
	}

	out := ctx.App.Writer
	if out == nil {
		out = os.Stdout
	}

	return &Config{
		Settings:        settings,
		Events:          events,
		Command:         command,
		MetricsTextfile: ctx.String(flags.MetricsTextfile.Name),
		Colorize:        !settings.JSON && isTerminal(out),
		Out:             out,
		Log:             log,
	}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
