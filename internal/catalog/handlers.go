package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/fyrsmithlabs/oicgw/internal/mcperr"
)

// maxBulkIDs bounds a bulk fan-out tool's id array; exceeding it fails
// with InvalidArguments before any upstream traffic is issued.
const maxBulkIDs = 50

// Bulk resubmit/discard wire shapes. See bulkHandlerForMode.
const (
	BulkModeFanout     = "fanout"
	BulkModeCollective = "collective"
)

// basePath is the fixed prefix every monitoring resource hangs off.
const basePath = "/ic/api/integration/v1/monitoring"

func resourceURL(apiBaseURL, path string) string {
	return strings.TrimRight(apiBaseURL, "/") + basePath + path
}

// requireString extracts a required string argument.
func requireString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", mcperr.Invalid(key, "required")
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", mcperr.Invalid(key, "must be a non-empty string")
	}
	return s, nil
}

// optString extracts an optional string argument, returning "" if absent.
func optString(args map[string]any, key string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// optBool extracts an optional boolean argument.
func optBool(args map[string]any, key string) bool {
	if v, ok := args[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// optInt extracts an optional numeric argument (JSON numbers decode as
// float64 through map[string]any).
func optInt(args map[string]any, key string) (int, bool) {
	v, ok := args[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}

// requireStringSlice extracts a required array-of-string argument,
// rejecting anything larger than maxBulkIDs.
func requireStringSlice(args map[string]any, key string) ([]string, error) {
	v, ok := args[key]
	if !ok {
		return nil, mcperr.Invalid(key, "required")
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, mcperr.Invalid(key, "must be an array of strings")
	}
	if len(raw) == 0 {
		return nil, mcperr.Invalid(key, "must not be empty")
	}
	if len(raw) > maxBulkIDs {
		return nil, mcperr.Invalid(key, fmt.Sprintf("must not exceed %d items", maxBulkIDs))
	}
	out := make([]string, len(raw))
	for i, item := range raw {
		s, ok := item.(string)
		if !ok || s == "" {
			return nil, mcperr.Invalid(key, "every item must be a non-empty string")
		}
		out[i] = s
	}
	return out, nil
}

// buildListParams assembles the common query parameters a listing
// endpoint accepts: integrationInstance (from tenant config), limit,
// offset, q (composed from duration/status when given directly, or
// passed through verbatim), orderBy, and fields.
func buildListParams(hc HandlerContext, args map[string]any) url.Values {
	params := url.Values{}
	if hc.Tenant.IntegrationInstance != "" {
		params.Set("integrationInstance", hc.Tenant.IntegrationInstance)
	}
	if limit, ok := optInt(args, "limit"); ok {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset, ok := optInt(args, "offset"); ok {
		params.Set("offset", strconv.Itoa(offset))
	}
	if orderBy := optString(args, "orderBy"); orderBy != "" {
		params.Set("orderBy", orderBy)
	}
	if fields := optString(args, "fields"); fields != "" {
		params.Set("fields", fields)
	}
	params.Set("q", composeFilter(args))
	return params
}

// composeFilter builds the opaque brace-delimited q expression from
// high-level parameters (duration, status), or passes q through verbatim
// when the caller already supplies one.
func composeFilter(args map[string]any) string {
	if q := optString(args, "q"); q != "" {
		return q
	}
	var clauses []string
	if d := optString(args, "duration"); d != "" {
		clauses = append(clauses, fmt.Sprintf("timewindow:'%s'", d))
	}
	if s := optString(args, "status"); s != "" {
		clauses = append(clauses, fmt.Sprintf("status:'%s'", s))
	}
	if len(clauses) == 0 {
		return ""
	}
	return "{" + strings.Join(clauses, ", ") + "}"
}

// listHandler builds a handler that GETs a listing resource and returns
// its full, paginated result.
func listHandler(path string) HandlerFunc {
	return func(ctx context.Context, hc HandlerContext, args map[string]any) (any, error) {
		params := buildListParams(hc, args)
		full := resourceURL(hc.Tenant.APIBaseURL, path)
		result, err := hc.Upstream.GetPaginated(ctx, hc.Tool, full, params, hc.Tenant)
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

// scopedListHandler builds a handler for a listing resource nested under
// a parent id, e.g. agent groups' member agents.
func scopedListHandler(pathTemplate, idArg string) HandlerFunc {
	return func(ctx context.Context, hc HandlerContext, args map[string]any) (any, error) {
		id, err := requireString(args, idArg)
		if err != nil {
			return nil, err
		}
		params := buildListParams(hc, args)
		full := resourceURL(hc.Tenant.APIBaseURL, strings.Replace(pathTemplate, "{id}", id, 1))
		result, err := hc.Upstream.GetPaginated(ctx, hc.Tool, full, params, hc.Tenant)
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

// detailHandler builds a handler that GETs one resource by id.
func detailHandler(pathTemplate, idArg string) HandlerFunc {
	return func(ctx context.Context, hc HandlerContext, args map[string]any) (any, error) {
		id, err := requireString(args, idArg)
		if err != nil {
			return nil, err
		}
		params := url.Values{}
		if hc.Tenant.IntegrationInstance != "" {
			params.Set("integrationInstance", hc.Tenant.IntegrationInstance)
		}
		full := resourceURL(hc.Tenant.APIBaseURL, strings.Replace(pathTemplate, "{id}", id, 1))
		body, err := hc.Upstream.GetSingle(ctx, hc.Tool, full, params, hc.Tenant)
		if err != nil {
			return nil, err
		}
		var out any
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, fmt.Errorf("catalog: decoding response: %w", err)
		}
		return out, nil
	}
}

// textHandler builds a handler that GETs a resource and returns it as
// raw text rather than a parsed JSON envelope, for the logs tool.
func textHandler(pathTemplate, idArg string) HandlerFunc {
	return func(ctx context.Context, hc HandlerContext, args map[string]any) (any, error) {
		id, err := requireString(args, idArg)
		if err != nil {
			return nil, err
		}
		params := url.Values{}
		if hc.Tenant.IntegrationInstance != "" {
			params.Set("integrationInstance", hc.Tenant.IntegrationInstance)
		}
		full := resourceURL(hc.Tenant.APIBaseURL, strings.Replace(pathTemplate, "{id}", id, 1))
		body, err := hc.Upstream.GetSingle(ctx, hc.Tool, full, params, hc.Tenant)
		if err != nil {
			return nil, err
		}
		if optBool(args, "text") {
			return string(body), nil
		}
		var out any
		if err := json.Unmarshal(body, &out); err != nil {
			return string(body), nil
		}
		return out, nil
	}
}

// postHandler builds a handler that POSTs an empty-body mutation to a
// per-id path (abort).
func postHandler(pathTemplate, idArg string) HandlerFunc {
	return func(ctx context.Context, hc HandlerContext, args map[string]any) (any, error) {
		id, err := requireString(args, idArg)
		if err != nil {
			return nil, err
		}
		full := resourceURL(hc.Tenant.APIBaseURL, strings.Replace(pathTemplate, "{id}", id, 1))
		body, err := hc.Upstream.Post(ctx, hc.Tool, full, url.Values{}, map[string]any{}, hc.Tenant)
		if err != nil {
			return nil, err
		}
		var out any
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, fmt.Errorf("catalog: decoding response: %w", err)
		}
		return out, nil
	}
}

// bulkDetail is one id's outcome within a bulk fan-out response.
type bulkDetail struct {
	ID      string `json:"id"`
	JobID   string `json:"jobId,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// bulkResult is the aggregate response of a bulk fan-out tool.
type bulkResult struct {
	TotalRequested  int          `json:"totalRequested"`
	SuccessCount    int          `json:"successCount"`
	FailedCount     int          `json:"failedCount"`
	RecoveryJobIDs  []string     `json:"recoveryJobIds"`
	Details         []bulkDetail `json:"details"`
}

// mutationResponse is the shape of a single-id mutation's JSON body.
type mutationResponse struct {
	RecoveryJobID      string `json:"recoveryJobId"`
	ResubmitSuccessful *bool  `json:"resubmitSuccessful"`
}

// bulkPostHandler fans out one POST per id, sequentially, aggregating
// individual successes and failures. In fan-out mode it backs both the
// single-id and bulk mutation tools: the single-id tools call it with a
// one-element slice.
func bulkPostHandler(pathTemplate string) HandlerFunc {
	return func(ctx context.Context, hc HandlerContext, args map[string]any) (any, error) {
		ids, err := requireStringSlice(args, "ids")
		if err != nil {
			return nil, err
		}

		result := bulkResult{TotalRequested: len(ids)}
		for _, id := range ids {
			full := resourceURL(hc.Tenant.APIBaseURL, strings.Replace(pathTemplate, "{id}", id, 1))
			body, err := hc.Upstream.Post(ctx, hc.Tool, full, url.Values{}, map[string]any{}, hc.Tenant)
			if err != nil {
				result.FailedCount++
				result.Details = append(result.Details, bulkDetail{ID: id, Success: false, Error: err.Error()})
				continue
			}
			var resp mutationResponse
			if err := json.Unmarshal(body, &resp); err != nil {
				result.FailedCount++
				result.Details = append(result.Details, bulkDetail{ID: id, Success: false, Error: "decoding response: " + err.Error()})
				continue
			}
			success := resp.ResubmitSuccessful == nil || *resp.ResubmitSuccessful
			if success {
				result.SuccessCount++
			} else {
				result.FailedCount++
			}
			if resp.RecoveryJobID != "" {
				result.RecoveryJobIDs = append(result.RecoveryJobIDs, resp.RecoveryJobID)
			}
			result.Details = append(result.Details, bulkDetail{
				ID: id, JobID: resp.RecoveryJobID, Success: success,
			})
		}
		return result, nil
	}
}

// collectiveDetail is one id's outcome as reported inside a collective
// bulk response body.
type collectiveDetail struct {
	ID                 string `json:"id"`
	RecoveryJobID      string `json:"recoveryJobId"`
	ResubmitSuccessful *bool  `json:"resubmitSuccessful"`
	Error              string `json:"error,omitempty"`
}

// collectivePostHandler issues a single POST carrying every id to a
// collective endpoint, for upstream deployments that reject the per-id
// fan-out form. The upstream is expected to report one collectiveDetail
// per requested id in its response array.
func collectivePostHandler(path string) HandlerFunc {
	return func(ctx context.Context, hc HandlerContext, args map[string]any) (any, error) {
		ids, err := requireStringSlice(args, "ids")
		if err != nil {
			return nil, err
		}

		full := resourceURL(hc.Tenant.APIBaseURL, path)
		body, err := hc.Upstream.Post(ctx, hc.Tool, full, url.Values{}, map[string]any{"ids": ids}, hc.Tenant)
		if err != nil {
			return nil, err
		}

		var details []collectiveDetail
		if err := json.Unmarshal(body, &details); err != nil {
			return nil, fmt.Errorf("catalog: decoding collective response: %w", err)
		}

		result := bulkResult{TotalRequested: len(ids)}
		for _, d := range details {
			success := d.Error == "" && (d.ResubmitSuccessful == nil || *d.ResubmitSuccessful)
			if success {
				result.SuccessCount++
			} else {
				result.FailedCount++
			}
			if d.RecoveryJobID != "" {
				result.RecoveryJobIDs = append(result.RecoveryJobIDs, d.RecoveryJobID)
			}
			result.Details = append(result.Details, bulkDetail{
				ID: d.ID, JobID: d.RecoveryJobID, Success: success, Error: d.Error,
			})
		}
		return result, nil
	}
}

// bulkHandlerForMode picks the fan-out or collective wire shape for a
// resubmit/discard tool family based on mode, defaulting to fan-out for
// any unrecognized value.
func bulkHandlerForMode(mode, perIDPath, collectivePath string) HandlerFunc {
	if mode == BulkModeCollective {
		return collectivePostHandler(collectivePath)
	}
	return bulkPostHandler(perIDPath)
}

// singleFromBulk adapts a bulk handler for single-id tool calls by
// wrapping the required idArg into a one-element ids array before
// delegating.
func singleFromBulk(idArg string, bulk HandlerFunc) HandlerFunc {
	return func(ctx context.Context, hc HandlerContext, args map[string]any) (any, error) {
		id, err := requireString(args, idArg)
		if err != nil {
			return nil, err
		}
		wrapped := map[string]any{"ids": []any{id}}
		return bulk(ctx, hc, wrapped)
	}
}
</content>
