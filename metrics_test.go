package account

import (
	"testing"
	"time"
)

func TestMetricsDisabledCountsNothing(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	m.Inc(MetricPasswordChangeSuccess)

	if m.Value(MetricPasswordChangeSuccess) != 0 {
		t.Fatal("expected disabled metrics to stay zero")
	}
	snapshot := m.Snapshot()
	if len(snapshot.Counters) != 0 {
		t.Fatal("expected empty snapshot when disabled")
	}
}

func TestMetricsSnapshotCounters(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricEmailChangeSuccess)
	m.Inc(MetricEmailChangeSuccess)
	m.Inc(MetricCredentialReissued)

	snapshot := m.Snapshot()
	if snapshot.Counters[MetricEmailChangeSuccess] != 2 {
		t.Fatalf("expected 2, got %d", snapshot.Counters[MetricEmailChangeSuccess])
	}
	if snapshot.Counters[MetricCredentialReissued] != 1 {
		t.Fatalf("expected 1, got %d", snapshot.Counters[MetricCredentialReissued])
	}
	if snapshot.Counters[MetricTransportFailure] != 0 {
		t.Fatal("expected untouched counter to be zero")
	}
}

func TestMetricsLatencyBuckets(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})
	m.Observe(MetricRemoteLatency, 3*time.Millisecond)
	m.Observe(MetricRemoteLatency, 600*time.Millisecond)

	snapshot := m.Snapshot()
	buckets, ok := snapshot.Histograms[MetricRemoteLatency]
	if !ok {
		t.Fatal("expected latency histogram in snapshot")
	}
	if buckets[0] != 1 {
		t.Fatalf("expected one observation in the fastest bucket, got %d", buckets[0])
	}
	if buckets[len(buckets)-1] != 1 {
		t.Fatalf("expected one observation in the slowest bucket, got %d", buckets[len(buckets)-1])
	}
}

func TestMetricsObserveWithoutLatencyEnabled(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Observe(MetricRemoteLatency, time.Second)

	if len(m.Snapshot().Histograms) != 0 {
		t.Fatal("expected no histograms without latency enabled")
	}
}
