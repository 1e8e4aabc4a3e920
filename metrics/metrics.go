package metrics

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	MetricsNamespace = "perf_selftest"
)

var (
	Debug                bool = true
	validResults              = []string{"passed", "failed", "skipped"}
	nonAlphanumericRegex      = regexp.MustCompile(`[^a-zA-Z ]+`)

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of errors",
	}, []string{
		"error",
	})

	checksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "checks_total",
		Help:      "Count of executed test nodes by result",
	}, []string{
		"run_id",
		"name",
		"kind",
		"result",
	})

	checkDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "check_duration_seconds",
		Help:      "Duration of the last execution of a test node",
	}, []string{
		"run_id",
		"name",
	})

	runTestsAvailable = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_tests_available",
		Help:      "Number of registered top-level tests in a run",
	}, []string{
		"run_id",
	})

	runTestsPassed = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_tests_passed",
		Help:      "Number of passed top-level tests in a run",
	}, []string{
		"run_id",
	})

	runTestsFailed = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_tests_failed",
		Help:      "Number of failed top-level tests in a run",
	}, []string{
		"run_id",
	})

	runTestsSkipped = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_tests_skipped",
		Help:      "Number of skipped top-level tests in a run",
	}, []string{
		"run_id",
	})

	runDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_duration_seconds",
		Help:      "Duration of a run",
	}, []string{
		"run_id",
	})
)

// errToLabel tries to make the error string a more valid Prometheus label
func errToLabel(err error) string {
	if err == nil {
		return "nil"
	}
	errClean := nonAlphanumericRegex.ReplaceAllString(err.Error(), "")
	errClean = strings.ReplaceAll(errClean, " ", "_")
	errClean = strings.ReplaceAll(errClean, "__", "_")
	return errClean
}

func RecordError(error string) {
	if Debug {
		log.Debug("metric inc",
			"m", "errors_total",
			"error", error,
		)
	}
	errorsTotal.WithLabelValues(error).Inc()
}

// RecordErrorDetails concats the error message to the label
// and also tries to clean the label to be a valid Prometheus label
func RecordErrorDetails(label string, err error) {
	if err == nil {
		return
	}
	label = fmt.Sprintf("%s.%s", label, errToLabel(err))
	RecordError(label)
}

func RecordCheck(runID string, name string, kind string, result string, duration time.Duration) {
	if !isValidResult(result) {
		log.Error("RecordCheck - invalid result", "result", result)
		return
	}
	if Debug {
		log.Debug("metric inc",
			"m", "checks_total",
			"run_id", runID,
			"name", name,
			"kind", kind,
			"result", result)
	}
	checksTotal.WithLabelValues(runID, name, kind, result).Inc()
	checkDuration.WithLabelValues(runID, name).Set(duration.Seconds())
}

func RecordRun(
	runID string,
	available int,
	passed int,
	failed int,
	skipped int,
	duration time.Duration,
) {
	runTestsAvailable.WithLabelValues(runID).Set(float64(available))
	runTestsPassed.WithLabelValues(runID).Set(float64(passed))
	runTestsFailed.WithLabelValues(runID).Set(float64(failed))
	runTestsSkipped.WithLabelValues(runID).Set(float64(skipped))
	runDuration.WithLabelValues(runID).Set(duration.Seconds())
}

// WriteTextfile writes every registered metric to path in the text
// exposition format, for pickup by the node_exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}

func isValidResult(result string) bool {
	return slices.Contains(validResults, result)
}
