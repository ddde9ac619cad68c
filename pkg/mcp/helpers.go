package mcp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// JSONRPCSuccess writes a successful JSON-RPC 2.0 response.
func JSONRPCSuccess(c echo.Context, id string, result interface{}) error {
	return c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

// JSONRPCErrorWithContext writes a transport-level JSON-RPC 2.0 error
// response (malformed request, unknown method) — distinct from a
// tool-level failure, which is always a successful JSON-RPC response
// whose content carries isError=true (see ToToolCallResult).
func JSONRPCErrorWithContext(c echo.Context, id string, code int, err error) error {
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	if requestID == "" {
		requestID = c.Request().Header.Get(echo.HeaderXRequestID)
	}

	return c.JSON(http.StatusOK, JSONRPCError{
		JSONRPC: "2.0",
		ID:      id,
		Error: &ErrorDetail{
			Code:    code,
			Message: err.Error(),
			Data: map[string]interface{}{
				"request_id": requestID,
				"timestamp":  time.Now().Format(time.RFC3339),
			},
		},
	})
}

// ToToolCallResult wraps a tool invocation's outcome in the MCP content
// envelope: one text block on success, or isError=true with the
// classified diagnostic's message on failure.
func ToToolCallResult(resultText string, err error) ToolCallResult {
	if err != nil {
		return ToolCallResult{
			Content: []ContentBlock{{Type: "text", Text: err.Error()}},
			IsError: true,
		}
	}
	return ToolCallResult{
		Content: []ContentBlock{{Type: "text", Text: resultText}},
	}
}
</content>
