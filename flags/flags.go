package flags

import (
	"github.com/urfave/cli/v2"

	opservice "github.com/ethereum-optimism/optimism/op-service"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"
)

const EnvVarPrefix = "PERF_SELFTEST"

var (
	Event = &cli.StringSliceFlag{
		Name:    "event",
		Aliases: []string{"e"},
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "EVENT"),
		Usage:   "Event to collect (repeatable). Superseded by the positional command",
	}
	JSON = &cli.BoolFlag{
		Name:    "json",
		Value:   false,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "JSON"),
		Usage:   "Print a single JSON summary instead of per-test lines",
	}
	Verbose = &cli.BoolFlag{
		Name:    "verbose",
		Value:   false,
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "VERBOSE"),
		Usage:   "Report detailed failure reasons",
	}
	MetricsTextfile = &cli.StringFlag{
		Name:    "metrics.textfile",
		Value:   "",
		EnvVars: opservice.PrefixEnvVar(EnvVarPrefix, "METRICS_TEXTFILE"),
		Usage:   "Write run metrics to this file in the prometheus text format (node_exporter textfile collector)",
	}
	// Skip stands in for the positional "-s"/"--skip" token, which would
	// otherwise be rejected as an unknown flag. Flags are only parsed before
	// the first positional argument, so it always leads the command.
	Skip = &cli.BoolFlag{
		Name:    "skip",
		Aliases: []string{"s"},
		Usage:   "Skip the tests whose indices follow, e.g. 'test -s 0 2'",
	}
)

var optionalFlags = []cli.Flag{
	Event,
	JSON,
	Verbose,
	MetricsTextfile,
}

// positionalFlags have no env var: they only make sense on the command line.
var positionalFlags = []cli.Flag{
	Skip,
}

var Flags []cli.Flag

func init() {
	optionalFlags = append(optionalFlags, oplog.CLIFlags(EnvVarPrefix)...)

	Flags = append(optionalFlags, positionalFlags...)
}
