package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/fyrsmithlabs/oicgw/internal/dispatcher"
)

// supportedProtocolVersions are the MCP protocol versions this gateway
// understands, in preference order.
var supportedProtocolVersions = []string{"2025-03-26", "2024-11-05"}

// defaultProtocolVersion is negotiated when the client's requested
// version is unsupported.
const defaultProtocolVersion = "2025-03-26"

// negotiateProtocolVersion returns requested if supported, else the
// gateway's default.
func negotiateProtocolVersion(requested string) string {
	for _, supported := range supportedProtocolVersions {
		if requested == supported {
			return supported
		}
	}
	return defaultProtocolVersion
}

// SessionStore tracks Transport B sessions in memory, keyed by a
// server-generated opaque id (UUID) carried in the Mcp-Session-Id
// header.
type SessionStore struct {
	sessions sync.Map // map[string]*Session
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Create mints a new session for an initialize handshake.
func (s *SessionStore) Create(params InitializeParams) *Session {
	now := time.Now()
	session := &Session{
		ID:              uuid.New().String(),
		ProtocolVersion: negotiateProtocolVersion(params.ProtocolVersion),
		ClientInfo:      params.ClientInfo,
		CreatedAt:       now,
		LastAccessedAt:  now,
	}
	s.sessions.Store(session.ID, session)
	return session
}

// Get retrieves a session by id, bumping its last-accessed time. Returns
// nil if the session does not exist.
func (s *SessionStore) Get(sessionID string) *Session {
	val, ok := s.sessions.Load(sessionID)
	if !ok {
		return nil
	}
	session, ok := val.(*Session)
	if !ok {
		return nil
	}
	session.LastAccessedAt = time.Now()
	return session
}

// Delete retires a session so later requests naming it are rejected. An
// open GET /stream for it is not closed; it ends when the client
// disconnects.
func (s *SessionStore) Delete(sessionID string) {
	s.sessions.Delete(sessionID)
}

// handleInitialize processes the initialize method: negotiates a
// protocol version, creates a Transport B session, and returns server
// capabilities. Only the tools capability is ever advertised.
func (s *Server) handleInitialize(req JSONRPCRequest) (*Session, InitializeResult, error) {
	var params InitializeParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return nil, InitializeResult{}, fmt.Errorf("parsing initialize params: %w", err)
		}
	}

	session := s.sessions.Create(params)

	result := InitializeResult{
		ProtocolVersion: session.ProtocolVersion,
		Capabilities: ServerCapabilities{
			Tools: map[string]interface{}{},
		},
		ServerInfo: ServerInfo{
			Name:    "oicgw",
			Version: s.version,
		},
	}
	return session, result, nil
}

// handleToolsList builds the tools/list result from the live dispatcher
// catalog.
func (s *Server) handleToolsList() ToolsListResult {
	tools := s.dispatcher.Tools()
	summaries := make([]ToolSummary, 0, len(tools))
	for _, t := range tools {
		summaries = append(summaries, ToolSummary{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}
	return ToolsListResult{Tools: summaries}
}

// handleToolsCall parses tools/call params and dispatches the named tool,
// returning the MCP content envelope regardless of whether the handler
// succeeded.
func (s *Server) handleToolsCall(ctx context.Context, req JSONRPCRequest) (ToolCallResult, error) {
	var params ToolsCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return ToolCallResult{}, fmt.Errorf("parsing tools/call params: %w", err)
	}

	result, err := s.dispatcher.Call(ctx, params.Name, params.Arguments)
	if err != nil {
		return ToToolCallResult("", err), nil
	}

	text, err := dispatcher.MarshalResult(result)
	if err != nil {
		return ToToolCallResult("", err), nil
	}
	return ToToolCallResult(text, nil), nil
}

// dispatchMethod routes one JSON-RPC request to its method handler,
// returning either a result value (for JSONRPCSuccess) or an error
// classified with a JSON-RPC code (for a transport-level JSON-RPC
// error). It is shared by both transports so dispatch logic is never
// duplicated between them.
func (s *Server) dispatchMethod(ctx context.Context, req JSONRPCRequest) (interface{}, int, error) {
	switch req.Method {
	case "initialize":
		_, result, err := s.handleInitialize(req)
		if err != nil {
			return nil, InvalidParams, err
		}
		return result, 0, nil

	case "tools/list":
		return s.handleToolsList(), 0, nil

	case "tools/call":
		result, err := s.handleToolsCall(ctx, req)
		if err != nil {
			return nil, InvalidParams, err
		}
		return result, 0, nil

	case "notifications/initialized", "notifications/cancelled":
		// Notifications carry no id and expect no response; callers check
		// for this by method name before invoking dispatchMethod's reply path.
		return nil, 0, nil

	default:
		return nil, MethodNotFound, fmt.Errorf("unknown method: %s", req.Method)
	}
}

// isNotification reports whether method is a notification that never
// receives a JSON-RPC response.
func isNotification(method string) bool {
	return method == "notifications/initialized" || method == "notifications/cancelled"
}

// toolNameFor extracts the tool name from a tools/call request, for
// picking a call deadline before the request is actually dispatched. A
// malformed or non-tools/call request yields "", which resolves to the
// default (shorter) timeout.
func toolNameFor(req JSONRPCRequest) string {
	if req.Method != "tools/call" {
		return ""
	}
	var params ToolsCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return ""
	}
	return params.Name
}

// contextWithCallTimeout derives a bounded context for one JSON-RPC
// dispatch from the request's context, applying the tool-specific
// deadline chosen by Server.callTimeout.
func contextWithCallTimeout(c echo.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), timeout)
}
</content>
