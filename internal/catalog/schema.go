package catalog

import "github.com/fyrsmithlabs/oicgw/internal/tenant"

// objectSchema wraps a property map and required-field list in the
// object-typed JSON-Schema envelope every tool's InputSchema uses.
func objectSchema(properties map[string]any, required ...string) map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// tenantProperty is present, and required, on every tenant-scoped tool.
func tenantProperty() map[string]any {
	return map[string]any{
		"type":        "string",
		"description": "Deployment environment to query.",
		"enum":        tenant.Names,
	}
}

func idProperty(description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"description": description,
	}
}

func idsProperty(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"description": description,
		"items":       map[string]any{"type": "string"},
		"maxItems":    maxBulkIDs,
	}
}

func limitProperty() map[string]any {
	return map[string]any{
		"type":        "integer",
		"description": "Maximum number of items to return per accumulated page.",
		"default":     50,
		"minimum":     1,
		"maximum":     1000,
	}
}

func offsetProperty() map[string]any {
	return map[string]any{
		"type":        "integer",
		"description": "Not used as a starting offset: paginated listings always start each window at offset 0.",
		"default":     0,
		"minimum":     0,
	}
}

func durationProperty() map[string]any {
	return map[string]any{
		"type":        "string",
		"description": "Relative time window, e.g. \"1h\", \"24h\", \"7d\".",
	}
}

func statusProperty(values ...string) map[string]any {
	return map[string]any{
		"type":        "string",
		"description": "Filter by status.",
		"enum":        values,
	}
}

func orderByProperty() map[string]any {
	return map[string]any{
		"type":        "string",
		"description": "Upstream sort expression, e.g. \"creation-date:desc\".",
	}
}

func fieldsProperty() map[string]any {
	return map[string]any{
		"type":        "string",
		"description": "Comma-separated list of fields to return.",
	}
}

func textResponseProperty() map[string]any {
	return map[string]any{
		"type":        "boolean",
		"description": "Return the raw log text instead of a parsed JSON envelope.",
		"default":     false,
	}
}
</content>
