package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus implements CodecHooks and SnapshotHooks with Prometheus
// collectors.
type Prometheus struct {
	codecOps      *prometheus.CounterVec
	codecBytes    *prometheus.CounterVec
	codecDuration *prometheus.HistogramVec

	snapshotOps      *prometheus.CounterVec
	snapshotBytes    *prometheus.CounterVec
	snapshotDuration *prometheus.HistogramVec
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		codecOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stablegraph",
			Subsystem: "codec",
			Name:      "operations_total",
			Help:      "Encode and decode operations by format and outcome.",
		}, []string{"op", "format", "status"}),
		codecBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stablegraph",
			Subsystem: "codec",
			Name:      "bytes_total",
			Help:      "Bytes produced by encoding or consumed by decoding.",
		}, []string{"op", "format"}),
		codecDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stablegraph",
			Subsystem: "codec",
			Name:      "duration_seconds",
			Help:      "Time spent encoding and decoding documents.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"op", "format"}),
		snapshotOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stablegraph",
			Subsystem: "snapshot",
			Name:      "operations_total",
			Help:      "Snapshot operations by backend and outcome.",
		}, []string{"op", "backend", "status"}),
		snapshotBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stablegraph",
			Subsystem: "snapshot",
			Name:      "bytes_total",
			Help:      "Snapshot bytes written and read.",
		}, []string{"op", "backend"}),
		snapshotDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stablegraph",
			Subsystem: "snapshot",
			Name:      "duration_seconds",
			Help:      "Latency of snapshot reads and writes.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "backend"}),
	}
	reg.MustRegister(
		p.codecOps, p.codecBytes, p.codecDuration,
		p.snapshotOps, p.snapshotBytes, p.snapshotDuration,
	)
	return p
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (p *Prometheus) OnEncode(_ context.Context, format string, size int, d time.Duration, err error) {
	p.codec("encode", format, size, d, err)
}

func (p *Prometheus) OnDecode(_ context.Context, format string, size int, d time.Duration, err error) {
	p.codec("decode", format, size, d, err)
}

func (p *Prometheus) codec(op, format string, size int, d time.Duration, err error) {
	p.codecOps.WithLabelValues(op, format, status(err)).Inc()
	p.codecDuration.WithLabelValues(op, format).Observe(d.Seconds())
	if err == nil {
		p.codecBytes.WithLabelValues(op, format).Add(float64(size))
	}
}

func (p *Prometheus) OnSave(_ context.Context, backend string, size int, d time.Duration, err error) {
	p.snapshotOps.WithLabelValues("save", backend, status(err)).Inc()
	p.snapshotDuration.WithLabelValues("save", backend).Observe(d.Seconds())
	if err == nil {
		p.snapshotBytes.WithLabelValues("save", backend).Add(float64(size))
	}
}

func (p *Prometheus) OnLoad(_ context.Context, backend string, hit bool, size int, d time.Duration, err error) {
	st := status(err)
	if err == nil && !hit {
		st = "miss"
	}
	p.snapshotOps.WithLabelValues("load", backend, st).Inc()
	p.snapshotDuration.WithLabelValues("load", backend).Observe(d.Seconds())
	if hit {
		p.snapshotBytes.WithLabelValues("load", backend).Add(float64(size))
	}
}

func (p *Prometheus) OnDelete(_ context.Context, backend string, err error) {
	p.snapshotOps.WithLabelValues("delete", backend, status(err)).Inc()
}

var (
	_ CodecHooks    = (*Prometheus)(nil)
	_ SnapshotHooks = (*Prometheus)(nil)
)
