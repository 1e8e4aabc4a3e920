// Package reporting renders test results either as colorized console lines
// or as a single JSON summary document.
package reporting

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ethereum-optimism/infra/perf-selftest/types"
)

const (
	pathWidth        = 3
	listIndexWidth   = 2
	descriptionWidth = 60
)

// Reporter receives the progress of a run. The runner calls the node hooks
// in pre-order; RunFinished is called once per Run action and Complete once
// per invocation.
type Reporter interface {
	NodeStarted(path string, node *types.Node) error
	GroupStarted(path string, node *types.Node) error
	NodeFinished(path string, node *types.Node, result types.Result) error
	RunFinished(summary *types.RunSummary) error
	Complete() error
}

// New returns the reporter selected by settings.JSON.
func New(settings types.Settings, w io.Writer, colorize bool) Reporter {
	if settings.JSON {
		return NewJSONReporter(w)
	}
	return NewTextReporter(w, colorize)
}

// ListTests prints the index and description of every top-level test. It
// never runs a check and never descends into groups.
func ListTests(w io.Writer, tests []*types.Node) error {
	for i, t := range tests {
		line := text.AlignRight.Apply(strconv.Itoa(i), listIndexWidth) + ": " +
			text.AlignLeft.Apply(t.Description, descriptionWidth) + "\n"
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}
