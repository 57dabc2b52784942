package helper

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyHandlerHandle(t *testing.T) {
	ctx := context.Background()

	t.Run("Writes level message and attributes on one line", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})

		record := slog.NewRecord(time.Date(2024, 5, 9, 14, 3, 7, 250e6, time.UTC), slog.LevelInfo, "Analyzed document", 0)
		record.AddAttrs(slog.Int("aspects", 3), slog.Float64("compound", -0.25))
		require.NoError(t, handler.Handle(ctx, record))

		output := buf.String()
		assert.Contains(t, output, "[14:03:07.250]")
		assert.Contains(t, output, "INFO:")
		assert.Contains(t, output, "Analyzed document")
		assert.Contains(t, output, `"aspects": 3`)
		assert.Contains(t, output, `"compound": -0.25`)
	})

	t.Run("Every level is labeled", func(t *testing.T) {
		for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
			var buf bytes.Buffer
			handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})
			require.NoError(t, handler.Handle(ctx, slog.NewRecord(time.Now(), level, "message", 0)))
			assert.Contains(t, buf.String(), level.String()+":")
		}
	})

	t.Run("Records without attributes print an empty object", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})
		require.NoError(t, handler.Handle(ctx, slog.NewRecord(time.Now(), slog.LevelWarn, "Failed to analyze document", 0)))
		assert.Contains(t, buf.String(), "{}")
	})

	t.Run("Levels below the minimum are disabled", func(t *testing.T) {
		handler := NewPrettyHandler(&bytes.Buffer{}, PrettyHandlerOptions{
			SlogOpts: slog.HandlerOptions{Level: slog.LevelWarn},
		})
		assert.False(t, handler.Enabled(ctx, slog.LevelInfo))
		assert.True(t, handler.Enabled(ctx, slog.LevelError))
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("Filters below the level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, slog.LevelWarn)

		logger.Info("hidden message")
		logger.Warn("visible message", "aspects", 3)

		output := buf.String()
		assert.NotContains(t, output, "hidden message")
		assert.Contains(t, output, "visible message")
		assert.Contains(t, output, "aspects")
	})

	t.Run("Concurrent writers do not interleave lines", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, slog.LevelInfo)

		var wg sync.WaitGroup
		for i := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				logger.Info("Analyzed document", "index", i)
			}()
		}
		wg.Wait()

		assert.Equal(t, 8, strings.Count(buf.String(), "Analyzed document"))
		for _, line := range strings.Split(buf.String(), "\n") {
			if strings.Contains(line, "INFO:") {
				assert.Contains(t, line, "Analyzed document")
			}
		}
	})
}
