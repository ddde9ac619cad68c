// Package mcp implements the Model Context Protocol gateway surface over
// HTTP: JSON-RPC 2.0 framing shared by two transports (a legacy SSE push
// channel and a bidirectional streaming endpoint), with tool resolution
// delegated to internal/dispatcher.
//
// Example usage:
//
//	server := mcp.NewServer(e, d, tokens, m, cfg, logger)
//	server.RegisterRoutes()
package mcp

import (
	"encoding/json"
	"time"

	"github.com/fyrsmithlabs/oicgw/internal/mcperr"
)

// JSONRPCRequest represents a JSON-RPC 2.0 request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// JSONRPCResponse represents a successful JSON-RPC 2.0 response.
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Result  interface{} `json:"result"`
}

// JSONRPCError represents an error JSON-RPC 2.0 response.
type JSONRPCError struct {
	JSONRPC string       `json:"jsonrpc"`
	ID      string       `json:"id"`
	Error   *ErrorDetail `json:"error"`
}

// ErrorDetail carries a JSON-RPC error code, message, and optional
// debugging context.
type ErrorDetail struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// JSON-RPC 2.0 standard error codes.
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603
)

// Application-specific error codes (reserved range: -32000 to -32099),
// one per internal/mcperr.Kind.
const (
	CodeUnknownTool             = -32000
	CodeInvalidArguments        = -32001
	CodeUnknownTenant           = -32002
	CodeTenantNotConfigured     = -32003
	CodeAuthenticationFailure   = -32004
	CodeUpstreamAuthError       = -32005
	CodeUpstreamPermissionDenied = -32006
	CodeUpstreamNotFound        = -32007
	CodeUpstreamFailure         = -32008
	CodeUpstreamTransport       = -32009
	CodeRequestCancelled        = -32010
)

// kindCodes maps a classified gateway failure to its JSON-RPC error code.
var kindCodes = map[mcperr.Kind]int{
	mcperr.UnknownTool:              CodeUnknownTool,
	mcperr.InvalidArguments:         CodeInvalidArguments,
	mcperr.UnknownTenant:            CodeUnknownTenant,
	mcperr.TenantNotConfigured:      CodeTenantNotConfigured,
	mcperr.AuthenticationFailure:    CodeAuthenticationFailure,
	mcperr.UpstreamAuthError:        CodeUpstreamAuthError,
	mcperr.UpstreamPermissionDenied: CodeUpstreamPermissionDenied,
	mcperr.UpstreamNotFound:         CodeUpstreamNotFound,
	mcperr.UpstreamFailure:          CodeUpstreamFailure,
	mcperr.UpstreamTransport:        CodeUpstreamTransport,
	mcperr.RequestCancelled:         CodeRequestCancelled,
}

// codeForError returns the JSON-RPC error code for a classified gateway
// failure, falling back to InternalError for anything unclassified.
func codeForError(err error) int {
	if classified, ok := mcperr.As(err); ok {
		if code, ok := kindCodes[classified.Kind]; ok {
			return code
		}
	}
	return InternalError
}

// InitializeParams is the payload of the initialize method.
type InitializeParams struct {
	ProtocolVersion string                 `json:"protocolVersion"`
	Capabilities    map[string]interface{} `json:"capabilities"`
	ClientInfo      ClientInfo             `json:"clientInfo"`
}

// ClientInfo identifies the connecting MCP client.
type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// InitializeResult is the server's reply to initialize.
type InitializeResult struct {
	ProtocolVersion string              `json:"protocolVersion"`
	Capabilities    ServerCapabilities  `json:"capabilities"`
	ServerInfo      ServerInfo          `json:"serverInfo"`
}

// ServerCapabilities advertises which MCP capabilities this server
// supports. Only tools is ever populated; no prompts or resources
// capability is advertised.
type ServerCapabilities struct {
	Tools map[string]interface{} `json:"tools"`
}

// ServerInfo identifies this server to a connecting client.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ToolsCallParams is the payload of the tools/call method.
type ToolsCallParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// ToolsListResult is the payload of a tools/list response.
type ToolsListResult struct {
	Tools []ToolSummary `json:"tools"`
}

// ToolSummary is the wire shape of one catalog entry in tools/list.
type ToolSummary struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ContentBlock is one block of an MCP tool result's content array. Every
// tool call in this gateway returns exactly one text block.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolCallResult is the MCP content envelope a tools/call response
// carries, whether the underlying handler succeeded or failed.
type ToolCallResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// Session is one Transport B (bidirectional streaming) session, created
// on initialize and addressed thereafter via the Mcp-Session-Id header.
type Session struct {
	ID              string
	ProtocolVersion string
	ClientInfo      ClientInfo
	CreatedAt       time.Time
	LastAccessedAt  time.Time
}
</content>
