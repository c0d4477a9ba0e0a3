package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := New("restaurant-svc", &buf)

	l.Info("place_order", "req-1", "order placed", slog.Int("order_id", 7))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "order placed", entry["msg"])
	assert.Equal(t, "restaurant-svc", entry["service"])
	assert.Equal(t, "place_order", entry["action"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, float64(7), entry["order_id"])
}

func TestLogger_ErrorGroup(t *testing.T) {
	var buf bytes.Buffer
	l := New("agg-svc", &buf)

	l.Error("consume", "", "failed", errors.New("boom"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	errGroup, ok := entry["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "boom", errGroup["msg"])
}

func TestLogger_NilIsSilent(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Info("noop", "", "nothing") })
}

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")

	assert.Equal(t, "abc", RequestID(ctx))
	assert.Equal(t, "", RequestID(context.Background()))
}
