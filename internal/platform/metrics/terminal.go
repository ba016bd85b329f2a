package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Command outcomes reported by the terminal service.
const (
	OutcomeApplied  = "applied"
	OutcomeIgnored  = "ignored"
	OutcomeRejected = "rejected"
)

// TerminalMetrics records terminal command and persistence activity.
type TerminalMetrics struct {
	commands        *prometheus.CounterVec
	transactions    *prometheus.GaugeVec
	persistDuration prometheus.Histogram
	persistFailures prometheus.Counter
}

// NewTerminalMetrics registers the terminal metrics on the provided registerer.
func NewTerminalMetrics(reg prometheus.Registerer) *TerminalMetrics {
	if reg == nil {
		return &TerminalMetrics{}
	}
	commands := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_terminal_commands_total",
		Help: "Terminal commands by outcome.",
	}, []string{"command", "outcome"})
	transactions := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pos_terminal_transactions",
		Help: "Transactions held by the terminal, by status.",
	}, []string{"status"})
	persistDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pos_terminal_persist_duration_seconds",
		Help:    "Duration of terminal document saves in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	persistFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pos_terminal_persist_failures_total",
		Help: "Failed terminal document saves.",
	})
	reg.MustRegister(commands, transactions, persistDuration, persistFailures)
	return &TerminalMetrics{
		commands:        commands,
		transactions:    transactions,
		persistDuration: persistDuration,
		persistFailures: persistFailures,
	}
}

// IncCommand counts one command with its outcome.
func (m *TerminalMetrics) IncCommand(command, outcome string) {
	if m == nil || m.commands == nil {
		return
	}
	m.commands.WithLabelValues(normalizeLabel(command), normalizeLabel(outcome)).Inc()
}

// SetTransactions replaces the per-status transaction gauge.
func (m *TerminalMetrics) SetTransactions(byStatus map[string]int) {
	if m == nil || m.transactions == nil {
		return
	}
	m.transactions.Reset()
	for status, n := range byStatus {
		m.transactions.WithLabelValues(normalizeLabel(status)).Set(float64(n))
	}
}

// ObservePersist records one save attempt.
func (m *TerminalMetrics) ObservePersist(duration time.Duration, err error) {
	if m == nil || m.persistDuration == nil {
		return
	}
	m.persistDuration.Observe(duration.Seconds())
	if err != nil {
		m.persistFailures.Inc()
	}
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
