package mcp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// pushSession is one open /sse connection: a channel the POST /messages
// handler writes a reply onto, and a done channel closed when the
// client disconnects or the hub evicts it.
type pushSession struct {
	id     string
	events chan []byte
	done   chan struct{}
}

// pushHub tracks Transport A's legacy SSE connections. A reply from
// POST /messages is always delivered onto the most-recently-opened
// session, per the legacy transport's single-active-listener contract.
type pushHub struct {
	mu      sync.Mutex
	current *pushSession
	nextID  int
}

func newPushHub() *pushHub {
	return &pushHub{}
}

func (h *pushHub) connect() *pushSession {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	s := &pushSession{
		id:     fmt.Sprintf("sse-%d", h.nextID),
		events: make(chan []byte, 16),
		done:   make(chan struct{}),
	}
	h.current = s
	return s
}

func (h *pushHub) disconnect(s *pushSession) {
	h.mu.Lock()
	defer h.mu.Unlock()
	select {
	case <-s.done:
		// Already closed by closeAll.
	default:
		close(s.done)
	}
	if h.current == s {
		h.current = nil
	}
}

// publish delivers data to the most-recently-opened session, if one is
// connected. Returns false if there is nowhere to deliver it.
func (h *pushHub) publish(data []byte) bool {
	h.mu.Lock()
	s := h.current
	h.mu.Unlock()
	if s == nil {
		return false
	}
	select {
	case s.events <- data:
		return true
	case <-s.done:
		return false
	}
}

func (h *pushHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current != nil {
		close(h.current.done)
		h.current = nil
	}
}

// handleSSEConnect opens the legacy push channel: GET /sse. The
// connection is held open and streams JSON-RPC responses as they are
// produced by POST /messages, with a heartbeat comment every 30s to
// survive intermediary idle timeouts.
func (s *Server) handleSSEConnect(c echo.Context) error {
	session := s.pushHub.connect()
	defer s.pushHub.disconnect(session)

	w := c.Response()
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case data := <-session.events:
			fmt.Fprintf(w, "event: message\ndata: %s\n\n", data)
			w.Flush()
		case <-ticker.C:
			fmt.Fprintf(w, ": heartbeat\n\n")
			w.Flush()
		case <-c.Request().Context().Done():
			return nil
		}
	}
}

// handleMessagesPost accepts one JSON-RPC request over Transport A: the
// reply is delivered onto the most-recently-opened /sse stream, not the
// HTTP response body, which is acknowledged with 202 regardless of the
// JSON-RPC outcome.
func (s *Server) handleMessagesPost(c echo.Context) error {
	var req JSONRPCRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		s.publishError("", ParseError, fmt.Errorf("parsing request body: %w", err))
		return c.NoContent(http.StatusAccepted)
	}

	if isNotification(req.Method) {
		return c.NoContent(http.StatusAccepted)
	}

	ctx, cancel := contextWithCallTimeout(c, s.callTimeout(toolNameFor(req)))
	defer cancel()

	result, code, err := s.dispatchMethod(ctx, req)
	if err != nil {
		s.publishError(req.ID, code, err)
		return c.NoContent(http.StatusAccepted)
	}

	s.publishResult(req.ID, result)
	return c.NoContent(http.StatusAccepted)
}

func (s *Server) publishResult(id string, result interface{}) {
	data, err := json.Marshal(JSONRPCResponse{JSONRPC: "2.0", ID: id, Result: result})
	if err != nil {
		return
	}
	s.pushHub.publish(data)
}

func (s *Server) publishError(id string, code int, cause error) {
	data, err := json.Marshal(JSONRPCError{
		JSONRPC: "2.0",
		ID:      id,
		Error: &ErrorDetail{
			Code:    code,
			Message: cause.Error(),
			Data:    map[string]interface{}{"timestamp": time.Now().Format(time.RFC3339)},
		},
	})
	if err != nil {
		return
	}
	s.pushHub.publish(data)
}
</content>
