package logger_adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-client/internal/core/port"
)

func TestSlogAdapter_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelInfo, IsJSON: true})

	logger.WithFields(port.Fields{"component": "test"}).Error("request failed", errors.New("boom"), port.Fields{"status": 500})
	logger.Debug("hidden", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "request failed", record["msg"])
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "test", record["component"])
	assert.Equal(t, "boom", record["error"])
	assert.EqualValues(t, 500, record["status"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

type postedRecord struct {
	tag  string
	data map[string]interface{}
}

type fakeFluent struct {
	posts  []postedRecord
	closed bool
}

func (f *fakeFluent) Post(tag string, message interface{}) error {
	f.posts = append(f.posts, postedRecord{tag: tag, data: message.(map[string]interface{})})
	return nil
}

func (f *fakeFluent) Close() error {
	f.closed = true
	return nil
}

func TestFluentLoggerAdapter(t *testing.T) {
	client := &fakeFluent{}
	adapter, err := NewFluentLoggerAdapter(client, slog.LevelInfo)
	require.NoError(t, err)

	scoped := adapter.WithFields(port.Fields{"trace_id": "t-1"})
	scoped.Debug("skipped", nil)
	scoped.Error("save failed", errors.New("HTTP 500"), port.Fields{"property_id": int64(3)})

	require.Len(t, client.posts, 1)
	post := client.posts[0]
	assert.Equal(t, "error", post.tag)
	assert.Equal(t, "save failed", post.data["message"])
	assert.Equal(t, "t-1", post.data["trace_id"])
	assert.Equal(t, "HTTP 500", post.data["error"])
	assert.Equal(t, int64(3), post.data["property_id"])

	// поля родителя не меняются
	adapter.Info("plain", nil)
	require.Len(t, client.posts, 2)
	assert.NotContains(t, client.posts[1].data, "trace_id")

	require.NoError(t, adapter.Close())
	assert.True(t, client.closed)
}

func TestNewFluentLoggerAdapter_NilClient(t *testing.T) {
	_, err := NewFluentLoggerAdapter(nil, nil)
	require.Error(t, err)
}

func TestMultiLoggerAdapter(t *testing.T) {
	_, err := NewMultiLoggerAdapter()
	require.Error(t, err)

	first, second := &fakeFluent{}, &fakeFluent{}
	a, _ := NewFluentLoggerAdapter(first, slog.LevelDebug)
	b, _ := NewFluentLoggerAdapter(second, slog.LevelWarn)

	multi, err := NewMultiLoggerAdapter(a, nil, b)
	require.NoError(t, err)

	multi.WithFields(port.Fields{"component": "web"}).Info("hello", nil)
	multi.Warn("careful", nil)

	assert.Len(t, first.posts, 2)
	require.Len(t, second.posts, 1)
	assert.Equal(t, "careful", second.posts[0].data["message"])
	assert.Equal(t, "web", first.posts[0].data["component"])
}
