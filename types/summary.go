package types

import "time"

// TopLevelResult is the outcome of one registered node in a run. Group
// results carry the aggregated status only.
type TopLevelResult struct {
	Index       int
	Name        string
	Description string
	Result      Result
	Duration    time.Duration
}

// ResultStats tracks counts over a set of top-level results
type ResultStats struct {
	Available int
	Passed    int
	Failed    int
	Skipped   int
}

// Ran is the number of nodes that were not skipped.
func (s ResultStats) Ran() int {
	return s.Available - s.Skipped
}

// Add counts one result.
func (s *ResultStats) Add(r Result) {
	s.Available++
	switch r.Status {
	case TestStatusPassed:
		s.Passed++
	case TestStatusFailed:
		s.Failed++
	case TestStatusSkipped:
		s.Skipped++
	}
}

// RunSummary captures one executed Run action
type RunSummary struct {
	RunID    string
	Results  []TopLevelResult
	Duration time.Duration
}

// Stats computes the counts of the summary
func (s *RunSummary) Stats() ResultStats {
	var stats ResultStats
	for _, r := range s.Results {
		stats.Add(r.Result)
	}
	return stats
}
