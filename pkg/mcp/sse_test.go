package mcp

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushHub_PublishWithNoSessionReturnsFalse(t *testing.T) {
	h := newPushHub()
	assert.False(t, h.publish([]byte("hi")))
}

func TestPushHub_ConnectPublishDisconnect(t *testing.T) {
	h := newPushHub()
	session := h.connect()

	require.True(t, h.publish([]byte("hello")))
	select {
	case data := <-session.events:
		assert.Equal(t, "hello", string(data))
	case <-time.After(time.Second):
		t.Fatal("expected published data on session.events")
	}

	h.disconnect(session)
	assert.False(t, h.publish([]byte("after close")))
}

func TestPushHub_MostRecentSessionReceivesPublish(t *testing.T) {
	h := newPushHub()
	first := h.connect()
	second := h.connect()

	require.True(t, h.publish([]byte("to-second")))
	select {
	case data := <-second.events:
		assert.Equal(t, "to-second", string(data))
	case <-time.After(time.Second):
		t.Fatal("expected data on second session")
	}

	select {
	case <-first.events:
		t.Fatal("first session should not have received the publish")
	default:
	}
}

func TestHandleMessagesPost_NotificationReturns202WithoutProcessing(t *testing.T) {
	s, _ := newTestServer(t)
	body := bytes.NewBufferString(`{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestHandleMessagesPost_MalformedBodyStillReturns202(t *testing.T) {
	s, _ := newTestServer(t)
	body := bytes.NewBufferString(`not json`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestHandleMessagesPost_DeliversReplyOnConnectedSession(t *testing.T) {
	s, _ := newTestServer(t)
	session := s.pushHub.connect()
	defer s.pushHub.disconnect(session)

	body := bytes.NewBufferString(`{"jsonrpc":"2.0","id":"1","method":"tools/list"}`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	select {
	case data := <-session.events:
		assert.Contains(t, string(data), `"tools"`)
	case <-time.After(time.Second):
		t.Fatal("expected the tools/list reply to be published to the session")
	}
}
</content>
