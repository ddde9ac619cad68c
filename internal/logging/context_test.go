package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithTenantID(t *testing.T) {
	ctx := WithTenantID(context.Background(), "prod1")
	assert.Equal(t, "prod1", TenantIDFromContext(ctx))
}

func TestWithTenantID_PanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() {
		WithTenantID(context.Background(), "")
	})
}

func TestWithSessionID(t *testing.T) {
	ctx := WithSessionID(context.Background(), "sess-123")
	assert.Equal(t, "sess-123", SessionIDFromContext(ctx))
}

func TestWithRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
}

func TestWithToolName(t *testing.T) {
	ctx := WithToolName(context.Background(), "monitoringErrors")
	assert.Equal(t, "monitoringErrors", ToolNameFromContext(ctx))
}

func TestContextFields_EmptyContext(t *testing.T) {
	fields := ContextFields(context.Background())
	assert.Empty(t, fields)
}

func TestContextFields_AllSet(t *testing.T) {
	ctx := WithTenantID(context.Background(), "qa3")
	ctx = WithSessionID(ctx, "sess-1")
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithToolName(ctx, "monitoringErrorDetails")

	fields := ContextFields(ctx)
	assert.Len(t, fields, 4)
}

func TestFromContext_DefaultsToNop(t *testing.T) {
	logger := FromContext(context.Background())
	assert.NotNil(t, logger)
}

func TestWithLogger_RoundTrip(t *testing.T) {
	tl := NewTestLogger()
	ctx := WithLogger(context.Background(), tl.Logger)
	assert.Same(t, tl.Logger, FromContext(ctx))
}
</content>
