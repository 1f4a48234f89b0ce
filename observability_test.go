//go:build linux || darwin || freebsd

package mmapffi_test

import (
	"bytes"
	"context"
	"log/slog"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mmapffi "github.com/hildjj/mmap-ffi"
)

func TestBasicMetricsCollector(t *testing.T) {
	metrics := &mmapffi.BasicMetricsCollector{}

	f, _ := newFile(t, writeTemp(t, "abc123"), mmapffi.WithMetricsCollector(metrics))
	_, err := f.Map(context.Background())
	require.NoError(t, err)
	require.NoError(t, f.Advise(mmapffi.AdviceRandom))
	require.Error(t, f.Advise(mmapffi.Advice(42)))
	require.NoError(t, f.Close())
	require.NoError(t, f.Close())

	g, rec := newFile(t, writeTemp(t, "abc123"), mmapffi.WithMetricsCollector(metrics))
	rec.Fail("mmap", int32(syscall.ENOMEM))
	_, err = g.Map(context.Background())
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.MapCount)
	assert.Equal(t, int64(1), stats.MapErrors)
	assert.Equal(t, int64(6), stats.MappedBytes)
	assert.Equal(t, int64(2), stats.AdviseCount)
	assert.Equal(t, int64(1), stats.AdviseErrors)
	assert.Equal(t, int64(1), stats.CloseCount)
	assert.Zero(t, stats.CloseErrors)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := mmapffi.NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	f, rec := newFile(t, writeTemp(t, "abc123"), mmapffi.WithLogger(logger))
	_, err := f.Map(context.Background())
	require.NoError(t, err)

	rec.Fail("madvise", int32(syscall.EINVAL))
	require.Error(t, f.Advise(mmapffi.AdviceWillNeed))

	out := buf.String()
	assert.Contains(t, out, `"msg":"map completed"`)
	assert.Contains(t, out, `"bytes":6`)
	assert.Contains(t, out, `"mode":"read-only"`)
	assert.Contains(t, out, `"msg":"advise failed"`)
	assert.Contains(t, out, `"advice":"willneed"`)
	assert.Contains(t, out, `"path":"`+f.Path()+`"`)
}

func TestNoopLogger(t *testing.T) {
	logger := mmapffi.NoopLogger()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
	logger.LogClose(context.Background(), nil)
}
