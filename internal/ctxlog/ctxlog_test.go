package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext_Fallback(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))
	ctx = With(ctx, "request_id", "r-1")

	FromContext(ctx).Info("hello")
	assert.Contains(t, buf.String(), "request_id=r-1")
	assert.Contains(t, buf.String(), "msg=hello")
}
