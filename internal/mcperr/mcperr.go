// Package mcperr classifies gateway failures into the small taxonomy the
// MCP layer renders as isError content, and formats each kind's
// user-visible message in a stable, test-assertable wording.
package mcperr

import "fmt"

// Kind identifies a class of gateway failure.
type Kind string

const (
	UnknownTool             Kind = "UnknownTool"
	InvalidArguments        Kind = "InvalidArguments"
	UnknownTenant           Kind = "UnknownTenant"
	TenantNotConfigured     Kind = "TenantNotConfigured"
	AuthenticationFailure   Kind = "AuthenticationFailure"
	UpstreamAuthError       Kind = "UpstreamAuthError"
	UpstreamPermissionDenied Kind = "UpstreamPermissionDenied"
	UpstreamNotFound        Kind = "UpstreamNotFound"
	UpstreamFailure         Kind = "UpstreamFailure"
	UpstreamTransport       Kind = "UpstreamTransport"
	RequestCancelled        Kind = "RequestCancelled"
)

// Error is a classified gateway failure carrying a stable, user-visible
// message alongside its Kind for programmatic branching (e.g. the
// upstream client's 401 retry-once logic).
type Error struct {
	Kind    Kind
	Message string
	Status  int // HTTP status, when applicable; 0 otherwise
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds a classified error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Unknown wraps a tool name not present in the catalog.
func Unknown(tool string) *Error {
	return &Error{Kind: UnknownTool, Message: fmt.Sprintf("unknown tool: %s", tool)}
}

// Invalid wraps an argument validation failure, naming the offending field.
func Invalid(field, reason string) *Error {
	return &Error{Kind: InvalidArguments, Message: fmt.Sprintf("invalid argument %q: %s", field, reason)}
}

// UnknownTenantErr wraps a tenant name outside the fixed set.
func UnknownTenantErr(tenant string) *Error {
	return &Error{Kind: UnknownTenant, Message: fmt.Sprintf("unknown tenant: %s", tenant)}
}

// TenantNotConfiguredErr wraps a known tenant missing required credentials.
func TenantNotConfiguredErr(tenant string) *Error {
	return &Error{Kind: TenantNotConfigured, Message: fmt.Sprintf("tenant not configured: %s", tenant)}
}

// AuthFailure wraps a failed token exchange or two consecutive 401s with a
// fresh token, including the upstream status and body in the message.
func AuthFailure(status int, body string) *Error {
	return &Error{
		Kind:    AuthenticationFailure,
		Status:  status,
		Message: fmt.Sprintf("Authentication failed (%d): %s", status, body),
	}
}

// UpstreamError classifies a non-2xx response from a resource endpoint by
// status code.
func UpstreamError(tool string, status int, statusText, body string) *Error {
	switch status {
	case 401:
		return &Error{Kind: UpstreamAuthError, Status: status, Message: "upstream returned 401"}
	case 403:
		return &Error{Kind: UpstreamPermissionDenied, Status: status,
			Message: fmt.Sprintf("Permission denied (403): %s", body)}
	case 404:
		return &Error{Kind: UpstreamNotFound, Status: status,
			Message: fmt.Sprintf("Resource not found (404): %s", body)}
	default:
		return &Error{Kind: UpstreamFailure, Status: status,
			Message: fmt.Sprintf("Error executing %s: %d %s - %s", tool, status, statusText, body)}
	}
}

// Transport wraps a network-level failure (DNS, TCP, TLS, truncated read)
// that occurred before a complete response was received.
func Transport(err error) *Error {
	return &Error{Kind: UpstreamTransport, Message: fmt.Sprintf("transport error: %v", err), Cause: err}
}

// Cancelled wraps context cancellation or client disconnect mid-request.
func Cancelled(err error) *Error {
	return &Error{Kind: RequestCancelled, Message: "request cancelled", Cause: err}
}

// As reports whether err is a classified *Error, returning it if so.
func As(err error) (*Error, bool) {
	e, ok := err.(*Error)
	return e, ok
}
</content>
