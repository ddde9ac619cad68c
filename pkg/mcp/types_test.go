package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fyrsmithlabs/oicgw/internal/mcperr"
)

func TestCodeForError_MapsEveryKind(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{mcperr.Unknown("x"), CodeUnknownTool},
		{mcperr.Invalid("f", "r"), CodeInvalidArguments},
		{mcperr.UnknownTenantErr("x"), CodeUnknownTenant},
		{mcperr.TenantNotConfiguredErr("x"), CodeTenantNotConfigured},
		{mcperr.AuthFailure(401, "no"), CodeAuthenticationFailure},
		{mcperr.UpstreamError("t", 401, "Unauthorized", "no"), CodeUpstreamAuthError},
		{mcperr.UpstreamError("t", 403, "Forbidden", "no"), CodeUpstreamPermissionDenied},
		{mcperr.UpstreamError("t", 404, "Not Found", "no"), CodeUpstreamNotFound},
		{mcperr.UpstreamError("t", 500, "Error", "no"), CodeUpstreamFailure},
		{mcperr.Transport(assert.AnError), CodeUpstreamTransport},
		{mcperr.Cancelled(assert.AnError), CodeRequestCancelled},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, codeForError(tc.err))
	}
}

func TestCodeForError_UnclassifiedFallsBackToInternalError(t *testing.T) {
	assert.Equal(t, InternalError, codeForError(assert.AnError))
}
</content>
