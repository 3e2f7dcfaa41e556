package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeSuccess labels reports that produced rows.
	OutcomeSuccess = "success"
	// OutcomeEmpty labels reports where no activity matched the filter.
	OutcomeEmpty = "empty"
	// OutcomeError labels reports that failed for any other reason.
	OutcomeError = "error"
)

var (
	reportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agent_hours",
			Name:      "reports_total",
			Help:      "Total number of report generations, partitioned by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	reportDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "agent_hours",
			Name:      "report_seconds",
			Help:      "Report generation latency in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
		},
	)

	lowProductivityRows = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "agent_hours",
			Name:      "low_productivity_rows_total",
			Help:      "Report rows flagged below the productivity threshold.",
		},
	)

	hoursCommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agent_hours",
			Name:      "hours_commands_total",
			Help:      "Ledger commands applied, partitioned by command.",
		},
		[]string{"command"},
	)

	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "agent_hours",
			Name:      "active_sessions",
			Help:      "Sessions currently held in memory.",
		},
	)
)

// Register attaches the collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		reportsTotal,
		reportDurationSeconds,
		lowProductivityRows,
		hoursCommandsTotal,
		activeSessions,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveReport records a report generation of the given kind ("view" or "export").
func ObserveReport(kind string, duration time.Duration, outcome string, lowRows int) {
	reportsTotal.WithLabelValues(kind, outcome).Inc()
	if duration < 0 {
		duration = 0
	}
	reportDurationSeconds.Observe(duration.Seconds())
	if lowRows > 0 {
		lowProductivityRows.Add(float64(lowRows))
	}
}

func ObserveHoursCommand(command string) {
	hoursCommandsTotal.WithLabelValues(command).Inc()
}

func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}
