package reporting

import (
	"bufio"
	"io"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ethereum-optimism/infra/perf-selftest/types"
)

var (
	skipColors = text.Colors{text.FgYellow}
	failColors = text.Colors{text.FgRed}
)

// TextReporter prints one line per visited node as the run progresses.
// Every field is flushed as soon as it is written so that output of slow or
// hanging checks interleaves predictably.
type TextReporter struct {
	w        *bufio.Writer
	colorize bool
}

var _ Reporter = (*TextReporter)(nil)

func NewTextReporter(w io.Writer, colorize bool) *TextReporter {
	return &TextReporter{
		w:        bufio.NewWriter(w),
		colorize: colorize,
	}
}

func (r *TextReporter) NodeStarted(path string, node *types.Node) error {
	if err := r.writeField(text.AlignRight.Apply(path, pathWidth) + ": "); err != nil {
		return err
	}
	return r.writeField(text.AlignLeft.Apply(node.Description, descriptionWidth) + " : ")
}

// GroupStarted ends the header line of a group; its children follow on their
// own lines, indented only by their dotted path.
func (r *TextReporter) GroupStarted(string, *types.Node) error {
	return r.writeField("\n")
}

// NodeFinished prints the status of a leaf or of a skipped group. Executed
// groups have no status line of their own.
func (r *TextReporter) NodeFinished(_ string, node *types.Node, result types.Result) error {
	if node.IsGroup() && !result.IsSkipped() {
		return nil
	}
	return r.writeField(r.statusText(result) + "\n")
}

func (r *TextReporter) RunFinished(*types.RunSummary) error {
	return nil
}

func (r *TextReporter) Complete() error {
	return r.w.Flush()
}

func (r *TextReporter) statusText(result types.Result) string {
	switch result.Status {
	case types.TestStatusPassed:
		return "Ok"
	case types.TestStatusSkipped:
		return r.color(skipColors, "Skip")
	default:
		return r.color(failColors, "FAILED!") + " " + result.Reason
	}
}

func (r *TextReporter) color(c text.Colors, s string) string {
	if !r.colorize {
		return s
	}
	return c.Sprint(s)
}

func (r *TextReporter) writeField(s string) error {
	if _, err := r.w.WriteString(s); err != nil {
		return err
	}
	return r.w.Flush()
}
