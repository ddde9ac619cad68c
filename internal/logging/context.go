// internal/logging/context.go
package logging

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"
)

// ContextFields extracts correlation data from context for attachment to
// every log line emitted within a request's lifetime.
func ContextFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 4)

	if tenant := TenantIDFromContext(ctx); tenant != "" {
		fields = append(fields, zap.String("tenant", tenant))
	}
	if sessionID := SessionIDFromContext(ctx); sessionID != "" {
		fields = append(fields, zap.String("session.id", sessionID))
	}
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		fields = append(fields, zap.String("request.id", requestID))
	}
	if tool := ToolNameFromContext(ctx); tool != "" {
		fields = append(fields, zap.String("tool", tool))
	}

	return fields
}

// Context key types.
type tenantCtxKey struct{}
type sessionCtxKey struct{}
type requestCtxKey struct{}
type toolCtxKey struct{}

const (
	maxFieldLen = 64
)

func validateField(value, name string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	if !utf8.ValidString(value) {
		return fmt.Errorf("%s contains invalid UTF-8", name)
	}
	if len(value) > maxFieldLen {
		return fmt.Errorf("%s exceeds max length %d", name, maxFieldLen)
	}
	return nil
}

// TenantIDFromContext extracts the tenant identifier from context.
func TenantIDFromContext(ctx context.Context) string {
	if t, ok := ctx.Value(tenantCtxKey{}).(string); ok {
		return t
	}
	return ""
}

// WithTenantID attaches a tenant identifier to context for correlation.
// Panics if tenantID is empty or implausibly long.
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	if err := validateField(tenantID, "tenantID"); err != nil {
		panic(fmt.Sprintf("logging: %v", err))
	}
	return context.WithValue(ctx, tenantCtxKey{}, tenantID)
}

// SessionIDFromContext extracts the MCP session ID from context.
func SessionIDFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(sessionCtxKey{}).(string); ok {
		return s
	}
	return ""
}

// WithSessionID attaches an MCP session ID to context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if err := validateField(sessionID, "sessionID"); err != nil {
		panic(fmt.Sprintf("logging: %v", err))
	}
	return context.WithValue(ctx, sessionCtxKey{}, sessionID)
}

// RequestIDFromContext extracts the JSON-RPC request ID from context.
func RequestIDFromContext(ctx context.Context) string {
	if r, ok := ctx.Value(requestCtxKey{}).(string); ok {
		return r
	}
	return ""
}

// WithRequestID attaches a JSON-RPC request ID to context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if err := validateField(requestID, "requestID"); err != nil {
		panic(fmt.Sprintf("logging: %v", err))
	}
	return context.WithValue(ctx, requestCtxKey{}, requestID)
}

// ToolNameFromContext extracts the name of the tool being dispatched.
func ToolNameFromContext(ctx context.Context) string {
	if n, ok := ctx.Value(toolCtxKey{}).(string); ok {
		return n
	}
	return ""
}

// WithToolName attaches the name of the tool being dispatched to context.
func WithToolName(ctx context.Context, tool string) context.Context {
	if err := validateField(tool, "tool"); err != nil {
		panic(fmt.Sprintf("logging: %v", err))
	}
	return context.WithValue(ctx, toolCtxKey{}, tool)
}

// loggerCtxKey is the context key for a *Logger.
type loggerCtxKey struct{}

// WithLogger stores a logger in context.
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, logger)
}

// FromContext retrieves the logger from context, falling back to a no-op
// logger when none was attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(*Logger); ok {
		return l
	}
	return &Logger{zap: zap.NewNop(), config: NewDefaultConfig()}
}
</content>
