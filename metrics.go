package mmapffi

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordMap is called after each Map call. bytes is the mapped length
	// (0 on failure), err is nil if successful.
	RecordMap(bytes int64, duration time.Duration, err error)

	// RecordAdvise is called after each Advise call.
	RecordAdvise(advice Advice, err error)

	// RecordClose is called after each Close call that released resources.
	RecordClose(err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordMap(int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordAdvise(Advice, error)            {}
func (NoopMetricsCollector) RecordClose(error)                     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
// One collector may be shared by many files.
type BasicMetricsCollector struct {
	MapCount      atomic.Int64
	MapErrors     atomic.Int64
	MapTotalNanos atomic.Int64
	MappedBytes   atomic.Int64
	AdviseCount   atomic.Int64
	AdviseErrors  atomic.Int64
	CloseCount    atomic.Int64
	CloseErrors   atomic.Int64
}

// RecordMap implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMap(bytes int64, duration time.Duration, err error) {
	b.MapCount.Add(1)
	b.MapTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.MapErrors.Add(1)
		return
	}
	b.MappedBytes.Add(bytes)
}

// RecordAdvise implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdvise(_ Advice, err error) {
	b.AdviseCount.Add(1)
	if err != nil {
		b.AdviseErrors.Add(1)
	}
}

// RecordClose implements MetricsCollector.
func (b *BasicMetricsCollector) RecordClose(err error) {
	b.CloseCount.Add(1)
	if err != nil {
		b.CloseErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		MapCount:     b.MapCount.Load(),
		MapErrors:    b.MapErrors.Load(),
		MapAvgNanos:  b.getAvgMapNanos(),
		MappedBytes:  b.MappedBytes.Load(),
		AdviseCount:  b.AdviseCount.Load(),
		AdviseErrors: b.AdviseErrors.Load(),
		CloseCount:   b.CloseCount.Load(),
		CloseErrors:  b.CloseErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgMapNanos() int64 {
	count := b.MapCount.Load()
	if count == 0 {
		return 0
	}
	return b.MapTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	MapCount     int64
	MapErrors    int64
	MapAvgNanos  int64
	MappedBytes  int64 // total over all successful maps
	AdviseCount  int64
	AdviseErrors int64
	CloseCount   int64
	CloseErrors  int64
}
