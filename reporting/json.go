package reporting

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ethereum-optimism/infra/perf-selftest/types"
)

// Summary is the machine-readable document printed in JSON mode. It spans
// every run of an invocation, so the counters count executions: two run
// actions over five tests report tests_available 10, and each number
// appears once per run in Results.
type Summary struct {
	TestsAvailable int           `json:"tests_available"`
	TestsRan       int           `json:"tests_ran"`
	TestsPassed    int           `json:"tests_passed"`
	TestsFailed    int           `json:"tests_failed"`
	TestsSkipped   int           `json:"tests_skipped"`
	Results        []ResultEntry `json:"results"`
}

// ResultEntry is the JSON record of one top-level test
type ResultEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Result      string `json:"result"`
	Number      int    `json:"number"`
}

// JSONReporter suppresses per-node output and prints a single summary
// covering every Run action once the invocation completes.
type JSONReporter struct {
	w       io.Writer
	stats   types.ResultStats
	results []ResultEntry
	runs    int
}

var _ Reporter = (*JSONReporter)(nil)

func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{
		w:       w,
		results: []ResultEntry{},
	}
}

func (r *JSONReporter) NodeStarted(string, *types.Node) error                { return nil }
func (r *JSONReporter) GroupStarted(string, *types.Node) error               { return nil }
func (r *JSONReporter) NodeFinished(string, *types.Node, types.Result) error { return nil }

func (r *JSONReporter) RunFinished(summary *types.RunSummary) error {
	r.runs++
	for _, res := range summary.Results {
		r.stats.Add(res.Result)
		r.results = append(r.results, ResultEntry{
			Name:        res.Name,
			Description: res.Description,
			Result:      res.Result.Status.String(),
			Number:      res.Index,
		})
	}
	return nil
}

// Summary returns the document built from the runs seen so far.
func (r *JSONReporter) Summary() Summary {
	return Summary{
		TestsAvailable: r.stats.Available,
		TestsRan:       r.stats.Ran(),
		TestsPassed:    r.stats.Passed,
		TestsFailed:    r.stats.Failed,
		TestsSkipped:   r.stats.Skipped,
		Results:        r.results,
	}
}

// Complete prints the summary. Nothing is printed when no test was run.
func (r *JSONReporter) Complete() error {
	if r.runs == 0 {
		return nil
	}
	doc, err := json.MarshalIndent(r.Summary(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	_, err = fmt.Fprintln(r.w, string(doc))
	return err
}
