// Package upstream mediates authenticated HTTP exchanges against the
// monitoring REST API: single-resource GETs, date-keyed paginated GETs,
// and mutating POSTs, all with bearer-token retry-once-on-401 semantics.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/oicgw/internal/logging"
	"github.com/fyrsmithlabs/oicgw/internal/mcperr"
	"github.com/fyrsmithlabs/oicgw/internal/metrics"
	"github.com/fyrsmithlabs/oicgw/internal/tenant"
	"github.com/fyrsmithlabs/oicgw/internal/tokencache"
)

// defaultLimit is the canonical page size handlers use unless a caller
// overrides it explicitly (schemas may allow 1..1000).
const defaultLimit = 50

// offsetCap is the maximum cumulative offset the upstream accepts within
// one pagination window.
const offsetCap = 500

// maxBatches bounds the date-keyed batch loop so a misbehaving upstream
// can never pin the gateway in an unbounded pagination retry.
const maxBatches = 100

// dateFields is the ordered list of item fields tried when rewriting the
// filter to advance past the offset cap.
var dateFields = []string{"creation-date", "creationDate", "last-tracked-time", "lastTrackedTime", "date"}

// Client issues authenticated requests against one tenant's API base URL
// at a time, acquiring tokens from a shared tokencache.Cache.
type Client struct {
	httpCli *http.Client
	tokens  *tokencache.Cache
	metrics *metrics.Metrics
	logger  *logging.Logger
}

// New builds an upstream client.
func New(tokens *tokencache.Cache, m *metrics.Metrics, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.FromContext(context.Background())
	}
	if m == nil {
		m = metrics.Noop()
	}
	return &Client{
		httpCli: &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
		metrics: m,
		logger:  logger,
	}
}

// PageResult is the accumulated result of a date-keyed paginated fetch.
type PageResult struct {
	Items   []json.RawMessage
	Total   int
	Batches int
	Warning string
}

// GetSingle issues one authenticated GET and returns the raw JSON body.
// tool names the calling catalog tool, surfaced in a non-2xx response's
// classified error message.
func (c *Client) GetSingle(ctx context.Context, tool, rawURL string, params url.Values, t tenant.Tenant) (json.RawMessage, error) {
	body, _, err := c.doWithRetry(ctx, tool, http.MethodGet, rawURL, params, nil, t)
	return body, err
}

// Post issues one authenticated POST with a JSON body and returns the raw
// JSON response body. tool names the calling catalog tool, surfaced in a
// non-2xx response's classified error message.
func (c *Client) Post(ctx context.Context, tool, rawURL string, params url.Values, payload any, t tenant.Tenant) (json.RawMessage, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("upstream: marshaling request body: %w", err)
	}
	body, _, err := c.doWithRetry(ctx, tool, http.MethodPost, rawURL, params, encoded, t)
	return body, err
}

// GetPaginated fetches a full listing via date-keyed batches (windows),
// starting offset at 0 and advancing it by limit within a window until
// the offset cap is hit or a short page ends the listing, then, for the
// former, rewriting the filter's startdate clause and restarting a new
// window, up to maxBatches windows. A window's own request count is
// bounded only by offsetCap (at most ceil(offsetCap/limit)+1 requests),
// never by maxBatches: the two are independent bounds on independent
// quantities. tool names the calling catalog tool, surfaced in a
// non-2xx response's classified error message.
func (c *Client) GetPaginated(ctx context.Context, tool, rawURL string, params url.Values, t tenant.Tenant) (*PageResult, error) {
	limit := defaultLimit
	if v := params.Get("limit"); v != "" {
		if n, err := parseLimit(v); err == nil && n > 0 {
			limit = n
		}
	}

	result := &PageResult{}
	q := params.Get("q")
	windows := 0

	for windows < maxBatches {
		windows++
		c.metrics.PaginationBatchesTotal.WithLabelValues(t.ID).Inc()
		offset := 0
		var lastItem json.RawMessage
		var lastLen int

		for {
			batchParams := cloneValues(params)
			batchParams.Set("limit", fmt.Sprintf("%d", limit))
			batchParams.Set("offset", fmt.Sprintf("%d", offset))
			if q != "" {
				batchParams.Set("q", q)
			}

			body, _, err := c.doWithRetry(ctx, tool, http.MethodGet, rawURL, batchParams, nil, t)
			if err != nil {
				return nil, err
			}

			var page listingPage
			if err := json.Unmarshal(body, &page); err != nil {
				return nil, fmt.Errorf("upstream: decoding page: %w", err)
			}
			result.Items = append(result.Items, page.Items...)
			if result.Total == 0 && page.TotalRecordsCount > 0 {
				result.Total = page.TotalRecordsCount
			}

			lastLen = len(page.Items)
			if lastLen > 0 {
				lastItem = page.Items[lastLen-1]
			}

			if lastLen < limit {
				result.Batches = windows
				if result.Total == 0 {
					result.Total = len(result.Items)
				}
				return result, nil
			}

			offset += limit
			if offset > offsetCap {
				break
			}
		}

		lastDate := extractDate(lastItem)
		if lastDate == "" {
			break
		}
		q = rewriteStartDate(q, lastDate)
	}

	result.Batches = windows
	if windows >= maxBatches {
		result.Warning = fmt.Sprintf("pagination stopped after %d batches (safety bound)", maxBatches)
		c.logger.Warn(ctx, "pagination safety bound reached",
			zap.String("tenant", t.ID), zap.Int("batches", windows))
	}
	if result.Total == 0 {
		result.Total = len(result.Items)
	}
	return result, nil
}

type listingPage struct {
	Items             []json.RawMessage `json:"items"`
	TotalRecordsCount int               `json:"totalRecordsCount"`
}

// doWithRetry acquires a token, issues the request, and on a 401 from the
// resource endpoint evicts the token, re-acquires, and retries exactly
// once.
func (c *Client) doWithRetry(ctx context.Context, tool, method, rawURL string, params url.Values, body []byte, t tenant.Tenant) (json.RawMessage, int, error) {
	tok, err := c.tokens.Acquire(ctx, t)
	if err != nil {
		return nil, 0, err
	}

	respBody, status, err := c.do(ctx, tool, method, rawURL, params, body, tok.AccessToken, t)
	if err == nil {
		return respBody, status, nil
	}

	classified, ok := mcperr.As(err)
	if !ok || classified.Kind != mcperr.UpstreamAuthError {
		return nil, status, err
	}

	c.tokens.Evict(t.ID)
	c.logger.Warn(ctx, "upstream returned 401; refreshing token and retrying once",
		zap.String("tenant", t.ID))
	tok, acquireErr := c.tokens.Acquire(ctx, t)
	if acquireErr != nil {
		return nil, status, acquireErr
	}
	respBody, status, err = c.do(ctx, tool, method, rawURL, params, body, tok.AccessToken, t)
	if err != nil {
		if again, ok := mcperr.As(err); ok && again.Kind == mcperr.UpstreamAuthError {
			return nil, status, mcperr.AuthFailure(status, "two consecutive 401s with a fresh token")
		}
		return nil, status, err
	}
	return respBody, status, nil
}

func (c *Client) do(ctx context.Context, tool, method, rawURL string, params url.Values, body []byte, bearer string, t tenant.Tenant) (json.RawMessage, int, error) {
	full := rawURL
	if len(params) > 0 {
		full = rawURL + "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, full, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("upstream: building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpCli.Do(req)
	elapsed := time.Since(start)
	c.metrics.UpstreamRequestDuration.WithLabelValues(t.ID).Observe(elapsed.Seconds())

	if err != nil {
		if ctx.Err() != nil {
			c.metrics.UpstreamRequestsTotal.WithLabelValues(t.ID, "cancelled").Inc()
			return nil, 0, mcperr.Cancelled(ctx.Err())
		}
		c.metrics.UpstreamRequestsTotal.WithLabelValues(t.ID, "transport_error").Inc()
		return nil, 0, mcperr.Transport(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.UpstreamRequestsTotal.WithLabelValues(t.ID, "transport_error").Inc()
		return nil, resp.StatusCode, mcperr.Transport(err)
	}

	c.logger.Info(ctx, "upstream exchange",
		zap.String("tenant", t.ID),
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(respBody)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.UpstreamRequestsTotal.WithLabelValues(t.ID, "error").Inc()
		return nil, resp.StatusCode, mcperr.UpstreamError(tool, resp.StatusCode, resp.Status, string(respBody))
	}

	c.metrics.UpstreamRequestsTotal.WithLabelValues(t.ID, "success").Inc()
	return respBody, resp.StatusCode, nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

func parseLimit(v string) (int, error) {
	var n int
	_, err := fmt.Sscanf(v, "%d", &n)
	return n, err
}

// extractDate reads the first present date field from an item, trying
// dateFields in order.
func extractDate(item json.RawMessage) string {
	if len(item) == 0 {
		return ""
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		return ""
	}
	for _, key := range dateFields {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
	}
	return ""
}

// rewriteStartDate adds or replaces a startdate:'...' clause in an opaque
// brace-delimited filter expression.
func rewriteStartDate(q, date string) string {
	clause := fmt.Sprintf("startdate:'%s'", date)
	if q == "" {
		return "{" + clause + "}"
	}
	trimmed := q
	if len(trimmed) >= 2 && trimmed[0] == '{' && trimmed[len(trimmed)-1] == '}' {
		trimmed = trimmed[1 : len(trimmed)-1]
	}

	parts := splitClauses(trimmed)
	out := parts[:0]
	replaced := false
	for _, p := range parts {
		if hasPrefixFold(p, "startdate:") {
			out = append(out, clause)
			replaced = true
		} else if p != "" {
			out = append(out, p)
		}
	}
	if !replaced {
		out = append(out, clause)
	}
	return "{" + joinClauses(out) + "}"
}

func splitClauses(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '\'':
			depth ^= 1
		case ',':
			if depth == 0 {
				parts = append(parts, trimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, trimSpace(s[start:]))
	return parts
}

func joinClauses(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}
	return s[start:end]
}

func hasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		a, b := s[i], prefix[i]
		if a >= 'A' && a <= 'Z' {
			a += 'a' - 'A'
		}
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}
</content>
