package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusCodec(t *testing.T) {
	ctx := context.Background()
	p := NewPrometheus(prometheus.NewRegistry())

	p.OnEncode(ctx, "json", 100, time.Millisecond, nil)
	p.OnEncode(ctx, "json", 50, time.Millisecond, nil)
	p.OnDecode(ctx, "json", 70, time.Millisecond, errors.New("bad"))

	assert.Equal(t, 2.0, testutil.ToFloat64(p.codecOps.WithLabelValues("encode", "json", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.codecOps.WithLabelValues("decode", "json", "error")))
	assert.Equal(t, 150.0, testutil.ToFloat64(p.codecBytes.WithLabelValues("encode", "json")))
	assert.Equal(t, 1, testutil.CollectAndCount(p.codecBytes))
}

func TestPrometheusSnapshot(t *testing.T) {
	ctx := context.Background()
	p := NewPrometheus(prometheus.NewRegistry())

	p.OnSave(ctx, "redis", 10, time.Millisecond, nil)
	p.OnLoad(ctx, "redis", true, 10, time.Millisecond, nil)
	p.OnLoad(ctx, "redis", false, 0, time.Millisecond, nil)
	p.OnDelete(ctx, "redis", errors.New("down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(p.snapshotOps.WithLabelValues("save", "redis", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.snapshotOps.WithLabelValues("load", "redis", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.snapshotOps.WithLabelValues("load", "redis", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.snapshotOps.WithLabelValues("delete", "redis", "error")))
	assert.Equal(t, 10.0, testutil.ToFloat64(p.snapshotBytes.WithLabelValues("load", "redis")))
}

func TestPrometheusRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheus(reg)
	assert.Panics(t, func() { NewPrometheus(reg) })
}
