// Package catalog declares the gateway's fixed tool catalog: one entry
// per MCP tool, binding a name and JSON-Schema-style input schema to a
// handler that talks to the upstream monitoring API through
// internal/upstream.
package catalog

import (
	"context"

	"github.com/fyrsmithlabs/oicgw/internal/tenant"
	"github.com/fyrsmithlabs/oicgw/internal/upstream"
)

// HandlerContext exposes the resolved tenant and upstream primitives a
// handler needs; it is built fresh by the dispatcher for every call.
type HandlerContext struct {
	Tenant   tenant.Tenant
	Upstream *upstream.Client
	// Tool is the name of the tool being invoked, threaded through to
	// internal/upstream so a non-2xx response's error message names the
	// tool that issued it rather than its request URL.
	Tool string
}

// HandlerFunc executes one tool call against the upstream API.
type HandlerFunc func(ctx context.Context, hc HandlerContext, args map[string]any) (any, error)

// ToolDefinition is a declarative binding: name, description, input
// schema, and handler. Definitions are constructed once at startup and
// never mutated.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any
	Handler     HandlerFunc
}
</content>
