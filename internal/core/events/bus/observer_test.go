package bus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/hotreload/internal/core/observability/log"
)

func TestLogObserver(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	b := New()
	b.AddObserver(NewLogObserver(log.FromZap(zap.New(core))))

	_, err := b.Subscribe("ok", func(Event) error { return nil })
	require.NoError(t, err)
	_, err = b.Subscribe("bad", func(Event) error { return errors.New("nope") })
	require.NoError(t, err)

	require.NoError(t, b.Publish(NewEvent("ok", "test", nil)))
	require.Error(t, b.Publish(NewEvent("bad", "test", nil)))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "ok", entries[0].ContextMap()["event"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "nope", entries[1].ContextMap()["error"])
	assert.EqualValues(t, 2, b.GetMetrics().Published)
}
