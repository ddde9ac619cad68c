package mcp

// paginatedTools names every catalog tool whose handler walks the
// upstream's date-keyed pagination loop (internal/catalog's listHandler
// and scopedListHandler), which can issue up to 100 sequential batches
// against the upstream. Everything else completes in at most a couple of
// upstream round trips and gets the shorter default deadline.
var paginatedTools = map[string]bool{
	"monitoringInstances":               true,
	"monitoringInstanceActivityStream":  true,
	"monitoringIntegrations":            true,
	"monitoringIntegrationHistory":      true,
	"monitoringAgentGroups":             true,
	"monitoringAgentsInGroup":           true,
	"monitoringErroredInstances":        true,
	"monitoringErrorRecoveryJobs":       true,
	"monitoringAuditRecords":            true,
	"monitoringScheduledRuns":           true,
	"monitoringConnections":             true,
}

func isPaginatedTool(name string) bool {
	return paginatedTools[name]
}
</content>
