package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/fyrsmithlabs/oicgw/internal/mcperr"
)

const sessionIDHeader = "Mcp-Session-Id"
const protocolVersionHeader = "Mcp-Protocol-Version"

var errMissingSessionID = errors.New("missing Mcp-Session-Id header")
var errUnknownSessionID = errors.New("unknown or expired session")

// streamJob is one JSON-RPC request queued to a session's worker,
// paired with the channel its result is delivered on.
type streamJob struct {
	ctx   context.Context
	req   JSONRPCRequest
	reply chan streamReply
}

type streamReply struct {
	result interface{}
	code   int
	err    error
}

// sessionWorker serializes every request belonging to one Transport B
// session through a single goroutine reading off a buffered channel, so
// replies are always produced in the order their requests were
// received even if the HTTP layer ever delivers them out of order.
type sessionWorker struct {
	jobs chan streamJob
	quit chan struct{}
}

func newSessionWorker(s *Server) *sessionWorker {
	w := &sessionWorker{
		jobs: make(chan streamJob, 32),
		quit: make(chan struct{}),
	}
	go w.run(s)
	return w
}

func (w *sessionWorker) run(s *Server) {
	for {
		select {
		case job := <-w.jobs:
			result, code, err := s.dispatchMethod(job.ctx, job.req)
			job.reply <- streamReply{result: result, code: code, err: err}
		case <-w.quit:
			return
		}
	}
}

func (w *sessionWorker) submit(ctx context.Context, req JSONRPCRequest) streamReply {
	reply := make(chan streamReply, 1)
	select {
	case w.jobs <- streamJob{ctx: ctx, req: req, reply: reply}:
	case <-ctx.Done():
		cancelled := mcperr.Cancelled(ctx.Err())
		return streamReply{err: cancelled, code: CodeRequestCancelled}
	}
	select {
	case r := <-reply:
		return r
	case <-ctx.Done():
		cancelled := mcperr.Cancelled(ctx.Err())
		return streamReply{err: cancelled, code: CodeRequestCancelled}
	}
}

func (w *sessionWorker) stop() {
	close(w.quit)
}

// streamWorkers tracks the per-session worker goroutines for Transport
// B, keyed by the session id minted on initialize.
type streamWorkers struct {
	mu      sync.Mutex
	workers map[string]*sessionWorker
}

func newStreamWorkers() *streamWorkers {
	return &streamWorkers{workers: make(map[string]*sessionWorker)}
}

func (sw *streamWorkers) getOrCreate(s *Server, sessionID string) *sessionWorker {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if w, ok := sw.workers[sessionID]; ok {
		return w
	}
	w := newSessionWorker(s)
	sw.workers[sessionID] = w
	return w
}

func (sw *streamWorkers) remove(sessionID string) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if w, ok := sw.workers[sessionID]; ok {
		w.stop()
		delete(sw.workers, sessionID)
	}
}

func (sw *streamWorkers) stopAll() {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	for id, w := range sw.workers {
		w.stop()
		delete(sw.workers, id)
	}
}

// handleStreamPost handles POST /stream: the primary Transport B
// request/response path. An initialize request needs no existing
// session; every other method requires a valid Mcp-Session-Id header.
func (s *Server) handleStreamPost(c echo.Context) error {
	var req JSONRPCRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return JSONRPCErrorWithContext(c, "", ParseError, err)
	}

	if req.Method == "initialize" {
		session, result, err := s.handleInitialize(req)
		if err != nil {
			return JSONRPCErrorWithContext(c, req.ID, InvalidParams, err)
		}
		s.streamWorkers.getOrCreate(s, session.ID)
		c.Response().Header().Set(sessionIDHeader, session.ID)
		c.Response().Header().Set(protocolVersionHeader, session.ProtocolVersion)
		return JSONRPCSuccess(c, req.ID, result)
	}

	if isNotification(req.Method) {
		if err := s.validateStreamSession(c); err != nil {
			return JSONRPCErrorWithContext(c, req.ID, InvalidRequest, err)
		}
		return c.NoContent(http.StatusAccepted)
	}

	sessionID, err := s.requireStreamSession(c)
	if err != nil {
		return JSONRPCErrorWithContext(c, req.ID, InvalidRequest, err)
	}

	ctx, cancel := contextWithCallTimeout(c, s.callTimeout(toolNameFor(req)))
	defer cancel()

	worker := s.streamWorkers.getOrCreate(s, sessionID)
	reply := worker.submit(ctx, req)
	if reply.err != nil {
		code := reply.code
		if code == 0 {
			code = InternalError
		}
		return JSONRPCErrorWithContext(c, req.ID, code, reply.err)
	}
	return JSONRPCSuccess(c, req.ID, reply.result)
}

// handleStreamGet handles GET /stream: an optional long-lived channel a
// client may open on an existing session to receive server-initiated
// messages. This gateway never pushes unsolicited notifications, so the
// stream stays open and writes nothing after its headers until the
// client disconnects.
func (s *Server) handleStreamGet(c echo.Context) error {
	if err := s.validateStreamSession(c); err != nil {
		return JSONRPCErrorWithContext(c, "", InvalidRequest, err)
	}

	w := c.Response()
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	<-c.Request().Context().Done()
	return nil
}

// handleStreamDelete handles DELETE /stream: explicit session
// termination. The session's worker goroutine is stopped and its
// entry removed so no further requests can be submitted against it.
func (s *Server) handleStreamDelete(c echo.Context) error {
	sessionID := c.Request().Header.Get(sessionIDHeader)
	if sessionID == "" {
		return c.NoContent(http.StatusBadRequest)
	}
	s.streamWorkers.remove(sessionID)
	s.sessions.Delete(sessionID)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) requireStreamSession(c echo.Context) (string, error) {
	sessionID := c.Request().Header.Get(sessionIDHeader)
	if sessionID == "" {
		return "", errMissingSessionID
	}
	if s.sessions.Get(sessionID) == nil {
		return "", errUnknownSessionID
	}
	return sessionID, nil
}

func (s *Server) validateStreamSession(c echo.Context) error {
	_, err := s.requireStreamSession(c)
	return err
}
</content>
