package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/oicgw/internal/catalog"
	"github.com/fyrsmithlabs/oicgw/internal/config"
	"github.com/fyrsmithlabs/oicgw/internal/dispatcher"
	"github.com/fyrsmithlabs/oicgw/internal/metrics"
	"github.com/fyrsmithlabs/oicgw/internal/tenant"
	"github.com/fyrsmithlabs/oicgw/internal/tokencache"
	"github.com/fyrsmithlabs/oicgw/internal/upstream"
)

// newTestServer wires a full Server over a fake upstream that always
// returns an empty paginated result, with tenant "dev" configured via
// t.Setenv.
func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	resourceSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"items": []map[string]any{}, "totalRecordsCount": 0})
	}))
	t.Cleanup(resourceSrv.Close)

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "expires_in": 3600})
	}))
	t.Cleanup(tokenSrv.Close)

	t.Setenv("OIC_CLIENT_ID_DEV", "client")
	t.Setenv("OIC_CLIENT_SECRET_DEV", "secret")
	t.Setenv("OIC_TOKEN_URL_DEV", tokenSrv.URL)
	t.Setenv("OIC_API_BASE_URL_DEV", resourceSrv.URL)

	registry := tenant.LoadFromEnv()
	tc := tokencache.New(t.TempDir(), nil)
	up := upstream.New(tc, metrics.Noop(), nil)
	d := dispatcher.New(catalog.Catalog(), registry, tc, up, nil)

	e := echo.New()
	s := NewServer(e, d, tc, metrics.Noop(), &config.Config{Observability: config.ObservabilityConfig{MetricsEnabled: true}}, nil)
	s.RegisterRoutes()
	return s, resourceSrv
}

func TestNegotiateProtocolVersion_SupportedRequestEchoed(t *testing.T) {
	assert.Equal(t, "2024-11-05", negotiateProtocolVersion("2024-11-05"))
}

func TestNegotiateProtocolVersion_UnsupportedFallsBackToDefault(t *testing.T) {
	assert.Equal(t, defaultProtocolVersion, negotiateProtocolVersion("1999-01-01"))
}

func TestSessionStore_CreateGetDelete(t *testing.T) {
	store := NewSessionStore()
	session := store.Create(InitializeParams{ProtocolVersion: "2024-11-05"})
	require.NotEmpty(t, session.ID)

	got := store.Get(session.ID)
	require.NotNil(t, got)
	assert.Equal(t, session.ID, got.ID)

	store.Delete(session.ID)
	assert.Nil(t, store.Get(session.ID))
}

func TestSessionStore_GetUnknownReturnsNil(t *testing.T) {
	store := NewSessionStore()
	assert.Nil(t, store.Get("no-such-session"))
}

func TestServer_HandleInitialize_OnlyAdvertisesTools(t *testing.T) {
	s, _ := newTestServer(t)
	req := JSONRPCRequest{JSONRPC: "2.0", ID: "1", Method: "initialize"}
	session, result, err := s.handleInitialize(req)
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.NotNil(t, result.Capabilities.Tools)
	assert.Equal(t, "oicgw", result.ServerInfo.Name)
}

func TestServer_HandleToolsList_SourcedFromCatalog(t *testing.T) {
	s, _ := newTestServer(t)
	result := s.handleToolsList()
	assert.Len(t, result.Tools, len(catalog.Catalog()))
	for _, tool := range result.Tools {
		assert.NotEmpty(t, tool.Name)
		assert.NotNil(t, tool.InputSchema)
	}
}

func TestServer_HandleToolsCall_SuccessWrapsTextContent(t *testing.T) {
	s, _ := newTestServer(t)
	params, err := json.Marshal(ToolsCallParams{Name: "monitoringInstances", Arguments: map[string]interface{}{"tenant": "dev"}})
	require.NoError(t, err)

	req := JSONRPCRequest{JSONRPC: "2.0", ID: "2", Method: "tools/call", Params: params}
	result, err := s.handleToolsCall(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	require.Len(t, result.Content, 1)
}

func TestServer_HandleToolsCall_UnknownToolIsErrorContent(t *testing.T) {
	s, _ := newTestServer(t)
	params, err := json.Marshal(ToolsCallParams{Name: "noSuchTool", Arguments: map[string]interface{}{"tenant": "dev"}})
	require.NoError(t, err)

	req := JSONRPCRequest{JSONRPC: "2.0", ID: "3", Method: "tools/call", Params: params}
	result, err := s.handleToolsCall(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "unknown tool")
}

func TestDispatchMethod_UnknownMethod(t *testing.T) {
	s, _ := newTestServer(t)
	_, code, err := s.dispatchMethod(context.Background(), JSONRPCRequest{Method: "bogus"})
	require.Error(t, err)
	assert.Equal(t, MethodNotFound, code)
}

func TestDispatchMethod_Notification_NoResultNoError(t *testing.T) {
	s, _ := newTestServer(t)
	result, code, err := s.dispatchMethod(context.Background(), JSONRPCRequest{Method: "notifications/initialized"})
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Zero(t, code)
}

func TestIsNotification(t *testing.T) {
	assert.True(t, isNotification("notifications/initialized"))
	assert.True(t, isNotification("notifications/cancelled"))
	assert.False(t, isNotification("tools/list"))
}

func TestToolNameFor_ExtractsFromToolsCall(t *testing.T) {
	params, _ := json.Marshal(ToolsCallParams{Name: "monitoringInstances"})
	req := JSONRPCRequest{Method: "tools/call", Params: params}
	assert.Equal(t, "monitoringInstances", toolNameFor(req))
}

func TestToolNameFor_NonToolsCallReturnsEmpty(t *testing.T) {
	assert.Equal(t, "", toolNameFor(JSONRPCRequest{Method: "tools/list"}))
}
</content>
