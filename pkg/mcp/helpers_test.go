package mcp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/oicgw/internal/mcperr"
)

func newTestEchoContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestJSONRPCSuccess_WritesEnvelope(t *testing.T) {
	c, rec := newTestEchoContext(http.MethodPost, "/stream")
	require.NoError(t, JSONRPCSuccess(c, "req-1", map[string]string{"ok": "yes"}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"jsonrpc":"2.0"`)
	assert.Contains(t, rec.Body.String(), `"req-1"`)
}

func TestJSONRPCErrorWithContext_IncludesRequestID(t *testing.T) {
	c, rec := newTestEchoContext(http.MethodPost, "/stream")
	c.Request().Header.Set(echo.HeaderXRequestID, "trace-abc")
	require.NoError(t, JSONRPCErrorWithContext(c, "req-2", MethodNotFound, assert.AnError))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "trace-abc")
}

func TestToToolCallResult_Success(t *testing.T) {
	result := ToToolCallResult(`{"ok":true}`, nil)
	assert.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.Equal(t, "text", result.Content[0].Type)
	assert.Equal(t, `{"ok":true}`, result.Content[0].Text)
}

func TestToToolCallResult_Failure(t *testing.T) {
	err := mcperr.UnknownTenantErr("prod9")
	result := ToToolCallResult("", err)
	assert.True(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.Contains(t, result.Content[0].Text, "prod9")
}
</content>
