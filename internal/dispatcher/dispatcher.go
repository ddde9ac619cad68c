// Package dispatcher resolves an MCP tools/call request against the
// catalog, validates its arguments, derives and authenticates the
// caller's tenant, and invokes the bound handler.
package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/fyrsmithlabs/oicgw/internal/catalog"
	"github.com/fyrsmithlabs/oicgw/internal/logging"
	"github.com/fyrsmithlabs/oicgw/internal/mcperr"
	"github.com/fyrsmithlabs/oicgw/internal/tenant"
	"github.com/fyrsmithlabs/oicgw/internal/tokencache"
	"github.com/fyrsmithlabs/oicgw/internal/upstream"
)

// Dispatcher resolves and executes tool calls against a fixed catalog.
type Dispatcher struct {
	tools      map[string]catalog.ToolDefinition
	tenants    *tenant.Registry
	tokens     *tokencache.Cache
	upstream   *upstream.Client
	logger     *logging.Logger
}

// New builds a dispatcher over the given catalog and dependencies.
func New(tools []catalog.ToolDefinition, tenants *tenant.Registry, tokens *tokencache.Cache, up *upstream.Client, logger *logging.Logger) *Dispatcher {
	index := make(map[string]catalog.ToolDefinition, len(tools))
	for _, t := range tools {
		index[t.Name] = t
	}
	if logger == nil {
		logger = logging.FromContext(context.Background())
	}
	return &Dispatcher{tools: index, tenants: tenants, tokens: tokens, upstream: up, logger: logger}
}

// Tools returns the catalog this dispatcher resolves against, for
// tools/list responses, sorted by tool name so repeated calls return
// the same order.
func (d *Dispatcher) Tools() []catalog.ToolDefinition {
	out := make([]catalog.ToolDefinition, 0, len(d.tools))
	for _, t := range d.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Call resolves name, validates args, authenticates the tenant, and
// invokes the bound handler, returning its raw result. Callers are
// responsible for wrapping the result (or error) in the MCP content
// envelope; see pkg/mcp.
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]any) (any, error) {
	tool, ok := d.tools[name]
	if !ok {
		return nil, mcperr.Unknown(name)
	}

	if err := validateArgs(tool.InputSchema, args); err != nil {
		return nil, err
	}

	tenantName, _ := args["tenant"].(string)
	t, err := d.tenants.ConfigFor(tenantName)
	if err != nil {
		return nil, classifyTenantError(err, tenantName)
	}

	ctx = logging.WithTenantID(ctx, orPlaceholder(t.ID))
	ctx = logging.WithToolName(ctx, name)

	// Pre-authenticate so a token-exchange failure is reported before any
	// handler work begins; the cache makes this a no-op once warm, and the
	// handler's own upstream calls reuse the same cached token.
	if _, err := d.tokens.Acquire(ctx, t); err != nil {
		return nil, classifyAcquireError(err)
	}

	hc := catalog.HandlerContext{Tenant: t, Upstream: d.upstream, Tool: name}

	d.logger.Info(ctx, "dispatching tool call")
	result, err := tool.Handler(ctx, hc, args)
	if err != nil {
		d.logger.Warn(ctx, "tool call failed", zap.Error(err))
		return nil, err
	}
	return result, nil
}

func orPlaceholder(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func classifyTenantError(err error, name string) error {
	if classified, ok := mcperr.As(err); ok {
		return classified
	}
	if errors.Is(err, tenant.ErrTenantNotConfigured) {
		return mcperr.TenantNotConfiguredErr(name)
	}
	return mcperr.UnknownTenantErr(name)
}

// classifyAcquireError converts a raw tokencache failure into the
// gateway's stable AuthenticationFailure diagnostic.
func classifyAcquireError(err error) error {
	if classified, ok := mcperr.As(err); ok {
		return classified
	}
	var authErr *tokencache.AuthenticationFailureError
	if errors.As(err, &authErr) {
		status := 0
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			status = retrieveErr.Response.StatusCode
		}
		return mcperr.AuthFailure(status, authErr.Error())
	}
	return mcperr.AuthFailure(0, err.Error())
}

// validateArgs checks args against an object-typed JSON-Schema-style
// schema: required properties, enum membership, and basic type
// consistency. Unknown extra properties are ignored.
func validateArgs(schema map[string]any, args map[string]any) error {
	required, _ := schema["required"].([]string)
	for _, field := range required {
		if _, ok := args[field]; !ok {
			return mcperr.Invalid(field, "required")
		}
	}

	properties, _ := schema["properties"].(map[string]any)
	for field, value := range args {
		if field == "tenant" {
			// Tenant resolution has its own dedicated classification
			// (UnknownTenant / TenantNotConfigured) one step further down
			// in Call; the schema's enum is descriptive only here.
			continue
		}
		propRaw, ok := properties[field]
		if !ok {
			continue // unknown extra properties are silently ignored
		}
		prop, ok := propRaw.(map[string]any)
		if !ok {
			continue
		}
		if err := validateProperty(field, prop, value); err != nil {
			return err
		}
	}
	return nil
}

func validateProperty(field string, prop map[string]any, value any) error {
	propType, _ := prop["type"].(string)
	switch propType {
	case "string":
		s, ok := value.(string)
		if !ok {
			return mcperr.Invalid(field, "must be a string")
		}
		if enum, ok := prop["enum"].([]string); ok && len(enum) > 0 {
			if !contains(enum, s) {
				return mcperr.Invalid(field, fmt.Sprintf("must be one of %v", enum))
			}
		}
	case "integer":
		if _, ok := value.(float64); !ok {
			if _, ok := value.(int); !ok {
				return mcperr.Invalid(field, "must be a number")
			}
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return mcperr.Invalid(field, "must be a boolean")
		}
	case "array":
		if _, ok := value.([]any); !ok {
			return mcperr.Invalid(field, "must be an array")
		}
	}
	return nil
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

// MarshalResult renders a handler's return value as the JSON text body
// of the MCP content envelope.
func MarshalResult(result any) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("dispatcher: marshaling result: %w", err)
	}
	return string(data), nil
}
</content>
