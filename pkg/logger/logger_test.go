package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger(t *testing.T) {
	mock := NewMockLogger()

	mock.Info("Test message", "key", "value")
	mock.Debug("Debug message")
	mock.Warn("Warning message")
	mock.Error("Error message", "error", "test error")

	assert.Len(t, *mock.Messages, 4)
	assert.True(t, mock.HasMessage("INFO", "Test message"))
	assert.True(t, mock.HasMessageContaining("ERROR", "Error"))
	assert.False(t, mock.HasMessageContaining("ERROR", "Warning"))
	assert.Equal(t, 1, mock.Count("WARN"))

	withCtx := mock.With("user", "test-user")
	withCtx.Info("Context message")

	last := (*mock.Messages)[len(*mock.Messages)-1]
	assert.Equal(t, "Context message", last.Msg)
	assert.Equal(t, []any{"user", "test-user"}, last.Args)

	mock.Clear()
	assert.Empty(t, *mock.Messages)
}

func TestLoggerInterface(_ *testing.T) {
	var _ Logger = &SlogLogger{}
	var _ Logger = &MockLogger{}

	exercise := func(l Logger) {
		l.Info("test")
		l.Debug("debug")
		l.Warn("warn")
		l.Error("error")
		l.With("key", "value").Info("with context")
		l.WithGroup("group").Info("grouped")
	}

	exercise(NewMockLogger())
	exercise(NewLoggerTo(&bytes.Buffer{}, false, "text"))
}

func TestNewLoggerTo_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, false, "json")

	l.Debug("hidden")
	l.Info("Saved assessment", "assessment", "abc")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Saved assessment", entry["msg"])
	assert.Equal(t, "abc", entry["assessment"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestNewLoggerTo_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, true, "text")

	l.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestWithContext(t *testing.T) {
	prev := GetGlobalLogger()
	t.Cleanup(func() { SetGlobalLogger(prev) })

	mock := NewMockLogger()
	SetGlobalLogger(mock)

	WithContext(ContextWithRequestID(context.Background(), "req-1"), nil).Info("handled")
	WithContext(context.Background(), nil).Info("plain")

	msgs := *mock.Messages
	require.Len(t, msgs, 2)
	assert.Equal(t, []any{"request_id", "req-1"}, msgs[0].Args)
	assert.Empty(t, msgs[1].Args)

	other := NewMockLogger()
	WithContext(ContextWithRequestID(context.Background(), "req-2"), other).Warn("explicit")
	assert.True(t, other.HasMessage("WARN", "explicit"))
	assert.Len(t, *mock.Messages, 2)
}
