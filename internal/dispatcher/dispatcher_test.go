package dispatcher

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/oicgw/internal/catalog"
	"github.com/fyrsmithlabs/oicgw/internal/mcperr"
	"github.com/fyrsmithlabs/oicgw/internal/metrics"
	"github.com/fyrsmithlabs/oicgw/internal/tenant"
	"github.com/fyrsmithlabs/oicgw/internal/tokencache"
	"github.com/fyrsmithlabs/oicgw/internal/upstream"
)

// fixedTokenServer serves a successful client-credentials grant on every
// request, so tests can focus on dispatcher behavior rather than the
// token exchange itself.
func fixedTokenServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "expires_in": 3600})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// newTestDispatcher wires a dispatcher over a real *tenant.Registry,
// populating tenantName's credentials via the same env vars
// tenant.LoadFromEnv reads, scoped to this test with t.Setenv.
func newTestDispatcher(t *testing.T, resourceSrv *httptest.Server, tenantName string) *Dispatcher {
	t.Helper()
	tokenSrv := fixedTokenServer(t)

	suffix := upperCase(tenantName)
	t.Setenv("OIC_CLIENT_ID_"+suffix, "client")
	t.Setenv("OIC_CLIENT_SECRET_"+suffix, "secret")
	t.Setenv("OIC_TOKEN_URL_"+suffix, tokenSrv.URL)
	t.Setenv("OIC_API_BASE_URL_"+suffix, resourceSrv.URL)

	registry := tenant.LoadFromEnv()
	tc := tokencache.New(t.TempDir(), nil)
	up := upstream.New(tc, metrics.Noop(), nil)
	return New(catalog.Catalog(), registry, tc, up, nil)
}

func upperCase(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

func TestDispatcher_UnknownTool(t *testing.T) {
	d := newTestDispatcher(t, httptest.NewServer(http.NotFoundHandler()), "dev")
	_, err := d.Call(t.Context(), "noSuchTool", map[string]any{"tenant": "dev"})
	require.Error(t, err)
	classified, ok := mcperr.As(err)
	require.True(t, ok)
	assert.Equal(t, mcperr.UnknownTool, classified.Kind)
}

func TestDispatcher_MissingTenantArgument(t *testing.T) {
	d := newTestDispatcher(t, httptest.NewServer(http.NotFoundHandler()), "dev")
	_, err := d.Call(t.Context(), "monitoringInstances", map[string]any{})
	require.Error(t, err)
	classified, ok := mcperr.As(err)
	require.True(t, ok)
	assert.Equal(t, mcperr.InvalidArguments, classified.Kind)
}

func TestDispatcher_UnknownTenant(t *testing.T) {
	d := newTestDispatcher(t, httptest.NewServer(http.NotFoundHandler()), "dev")
	_, err := d.Call(t.Context(), "monitoringInstances", map[string]any{"tenant": "prod9"})
	require.Error(t, err)
	classified, ok := mcperr.As(err)
	require.True(t, ok)
	assert.Equal(t, mcperr.UnknownTenant, classified.Kind)
}

func TestDispatcher_SuccessfulCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items":             []map[string]any{{"id": "1"}},
			"totalRecordsCount": 1,
		})
	}))
	defer srv.Close()

	d := newTestDispatcher(t, srv, "dev")
	result, err := d.Call(t.Context(), "monitoringInstances", map[string]any{"tenant": "dev"})
	require.NoError(t, err)

	page, ok := result.(*upstream.PageResult)
	require.True(t, ok)
	assert.Len(t, page.Items, 1)
}

func TestDispatcher_InvalidEnumArgument(t *testing.T) {
	d := newTestDispatcher(t, httptest.NewServer(http.NotFoundHandler()), "dev")
	_, err := d.Call(t.Context(), "monitoringInstances", map[string]any{
		"tenant": "dev",
		"status": "NOT_A_STATUS",
	})
	require.Error(t, err)
	classified, ok := mcperr.As(err)
	require.True(t, ok)
	assert.Equal(t, mcperr.InvalidArguments, classified.Kind)
}

func TestDispatcher_UnknownExtraPropertyIgnored(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"items": []map[string]any{}, "totalRecordsCount": 0})
	}))
	defer srv.Close()

	d := newTestDispatcher(t, srv, "dev")
	_, err := d.Call(t.Context(), "monitoringInstances", map[string]any{
		"tenant":       "dev",
		"unrelatedKey": "whatever",
	})
	require.NoError(t, err)
}

func TestDispatcher_UpstreamFailurePropagatesClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	d := newTestDispatcher(t, srv, "dev")
	_, err := d.Call(t.Context(), "monitoringInstances", map[string]any{"tenant": "dev"})
	require.Error(t, err)
	classified, ok := mcperr.As(err)
	require.True(t, ok)
	assert.Equal(t, mcperr.UpstreamPermissionDenied, classified.Kind)
}

func TestDispatcher_Tools_ReturnsFullCatalog(t *testing.T) {
	d := newTestDispatcher(t, httptest.NewServer(http.NotFoundHandler()), "dev")
	assert.Len(t, d.Tools(), len(catalog.Catalog()))
}

func TestMarshalResult_ProducesJSONText(t *testing.T) {
	text, err := MarshalResult(map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Contains(t, text, `"a"`)
}
</content>
