package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@gmail.com", MaskEmail("john.doe@gmail.com"))
	assert.Equal(t, "***@gmail.com", MaskEmail("@gmail.com"))
	assert.Equal(t, "***@***", MaskEmail("not-an-email"))
	assert.Equal(t, "", MaskEmail(""))
}

func TestMaskNationalID(t *testing.T) {
	assert.Equal(t, "***.***.***-01", MaskNationalID("12345678901"))
	assert.Equal(t, "***", MaskNationalID("1"))
}

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	New("prod", &buf).Info("hello", "key", "value")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "value", line["key"])
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, slog.Default(), FromContext(context.Background()))

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := WithLogger(context.Background(), custom)
	assert.Same(t, custom, FromContext(ctx))
}

func TestWithAccount(t *testing.T) {
	assert.False(t, Scoped(context.Background()))

	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)).With("request_id", "req-1"))
	ctx = WithAccount(ctx, "acc-1", "librarian")
	require.True(t, Scoped(ctx))

	FromContext(ctx).Info("loan issued")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "acc-1", line["account_id"])
	assert.Equal(t, "librarian", line["login"])
}
