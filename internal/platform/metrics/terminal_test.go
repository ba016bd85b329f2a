package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalMetricsExportsCommandsAndPersistence(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewTerminalMetrics(reg)

	m.IncCommand("add_item", OutcomeApplied)
	m.IncCommand("add_item", OutcomeApplied)
	m.IncCommand("set_quantity", OutcomeRejected)
	m.SetTransactions(map[string]int{"active": 2, "parked": 1})
	m.ObservePersist(10*time.Millisecond, nil)
	m.ObservePersist(20*time.Millisecond, errors.New("boom"))

	mfs, err := reg.Gather()
	require.NoError(t, err)

	assert.Equal(t, 2.0, counterValue(t, mfs, "pos_terminal_commands_total", map[string]string{"command": "add_item", "outcome": "applied"}))
	assert.Equal(t, 1.0, counterValue(t, mfs, "pos_terminal_commands_total", map[string]string{"command": "set_quantity", "outcome": "rejected"}))
	assert.Equal(t, 2.0, gaugeValue(t, mfs, "pos_terminal_transactions", map[string]string{"status": "active"}))
	assert.Equal(t, 1.0, gaugeValue(t, mfs, "pos_terminal_transactions", map[string]string{"status": "parked"}))
	assert.Equal(t, 1.0, counterValue(t, mfs, "pos_terminal_persist_failures_total", nil))

	hist := findMetricFamily(mfs, "pos_terminal_persist_duration_seconds")
	require.NotNil(t, hist)
	assert.Equal(t, uint64(2), hist.GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestTerminalMetricsResetsStatusGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewTerminalMetrics(reg)

	m.SetTransactions(map[string]int{"parked": 1})
	m.SetTransactions(map[string]int{"active": 1})

	mfs, err := reg.Gather()
	require.NoError(t, err)
	mf := findMetricFamily(mfs, "pos_terminal_transactions")
	require.NotNil(t, mf)
	assert.Len(t, mf.GetMetric(), 1)
}

func TestTerminalMetricsNilSafe(t *testing.T) {
	var m *TerminalMetrics
	assert.NotPanics(t, func() {
		m.IncCommand("x", OutcomeApplied)
		m.SetTransactions(map[string]int{"active": 1})
		m.ObservePersist(time.Second, nil)
	})

	unregistered := NewTerminalMetrics(nil)
	assert.NotPanics(t, func() {
		unregistered.IncCommand("x", OutcomeIgnored)
		unregistered.ObservePersist(time.Second, errors.New("boom"))
	})
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func findMetric(t *testing.T, mfs []*dto.MetricFamily, name string, labels map[string]string) *dto.Metric {
	t.Helper()
	mf := findMetricFamily(mfs, name)
	require.NotNil(t, mf, "metric %q not found", name)
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric
		}
	}
	t.Fatalf("metric %q missing labels %v", name, labels)
	return nil
}

func counterValue(t *testing.T, mfs []*dto.MetricFamily, name string, labels map[string]string) float64 {
	return findMetric(t, mfs, name, labels).GetCounter().GetValue()
}

func gaugeValue(t *testing.T, mfs []*dto.MetricFamily, name string, labels map[string]string) float64 {
	return findMetric(t, mfs, name, labels).GetGauge().GetValue()
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, pair := range pairs {
		if v, ok := want[pair.GetName()]; ok && v == pair.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
