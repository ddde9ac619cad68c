package catalog

// Catalog returns the gateway's fixed tool catalog built with the
// fan-out bulk shape, the default. Tests in this package use it, except
// those that call CatalogWithBulkMode directly.
func Catalog() []ToolDefinition {
	return CatalogWithBulkMode(BulkModeFanout)
}

// CatalogWithBulkMode returns the gateway's fixed tool catalog, built
// fresh on every call but identical in content across the process
// lifetime (tools/list is byte-identical across repeated calls within
// one run for a given mode). mode selects the wire shape of the bulk
// resubmit/discard tools: BulkModeFanout issues one POST per id against
// the per-id endpoint; BulkModeCollective issues a single POST carrying
// every id to the collective endpoint, for upstream deployments that
// only accept that form.
func CatalogWithBulkMode(mode string) []ToolDefinition {
	discard := bulkHandlerForMode(mode, "/errors/{id}/discard", "/errors/discard")
	resubmit := bulkHandlerForMode(mode, "/errors/{id}/resubmit", "/errors/resubmit")

	return []ToolDefinition{
		// Instances
		{
			Name:        "monitoringInstances",
			Description: "List integration flow instances for a tenant, optionally filtered by time window and status.",
			InputSchema: objectSchema(map[string]any{
				"tenant":   tenantProperty(),
				"duration": durationProperty(),
				"status":   statusProperty("RUNNING", "COMPLETED", "FAILED", "ABORTED"),
				"limit":    limitProperty(),
				"offset":   offsetProperty(),
				"orderBy":  orderByProperty(),
				"fields":   fieldsProperty(),
			}, "tenant"),
			Handler: listHandler("/instances"),
		},
		{
			Name:        "monitoringInstanceDetails",
			Description: "Fetch full detail for one integration flow instance by id.",
			InputSchema: objectSchema(map[string]any{
				"tenant": tenantProperty(),
				"id":     idProperty("Instance id."),
			}, "tenant", "id"),
			Handler: detailHandler("/instances/{id}", "id"),
		},
		{
			Name:        "monitoringInstanceActivityStream",
			Description: "List the activity-stream entries recorded for one instance.",
			InputSchema: objectSchema(map[string]any{
				"tenant": tenantProperty(),
				"id":     idProperty("Instance id."),
				"limit":  limitProperty(),
				"offset": offsetProperty(),
			}, "tenant", "id"),
			Handler: scopedListHandler("/instances/{id}/activity-stream", "id"),
		},
		{
			Name:        "monitoringInstanceActivityStreamDetail",
			Description: "Fetch one activity-stream entry by its own id.",
			InputSchema: objectSchema(map[string]any{
				"tenant": tenantProperty(),
				"id":     idProperty("Activity-stream entry id."),
			}, "tenant", "id"),
			Handler: detailHandler("/instances/activity-stream/{id}", "id"),
		},
		{
			Name:        "monitoringInstanceLogs",
			Description: "Fetch the diagnostic log for one instance, as text or a parsed envelope.",
			InputSchema: objectSchema(map[string]any{
				"tenant": tenantProperty(),
				"id":     idProperty("Instance id."),
				"text":   textResponseProperty(),
			}, "tenant", "id"),
			Handler: textHandler("/instances/{id}/logs", "id"),
		},
		{
			Name:        "monitoringAbortInstance",
			Description: "Abort one running integration flow instance.",
			InputSchema: objectSchema(map[string]any{
				"tenant": tenantProperty(),
				"id":     idProperty("Instance id to abort."),
			}, "tenant", "id"),
			Handler: postHandler("/instances/{id}/abort", "id"),
		},

		// Integrations
		{
			Name:        "monitoringIntegrations",
			Description: "List configured integration flows for a tenant.",
			InputSchema: objectSchema(map[string]any{
				"tenant":  tenantProperty(),
				"limit":   limitProperty(),
				"offset":  offsetProperty(),
				"orderBy": orderByProperty(),
				"fields":  fieldsProperty(),
			}, "tenant"),
			Handler: listHandler("/integrations"),
		},
		{
			Name:        "monitoringIntegrationDetails",
			Description: "Fetch full detail for one configured integration flow.",
			InputSchema: objectSchema(map[string]any{
				"tenant": tenantProperty(),
				"id":     idProperty("Integration id."),
			}, "tenant", "id"),
			Handler: detailHandler("/integrations/{id}", "id"),
		},
		{
			Name:        "monitoringIntegrationMessageCount",
			Description: "Fetch the processed-message count for one integration over its configured window.",
			InputSchema: objectSchema(map[string]any{
				"tenant": tenantProperty(),
				"id":     idProperty("Integration id."),
			}, "tenant", "id"),
			Handler: detailHandler("/integrations/{id}/message-count", "id"),
		},
		{
			Name:        "monitoringIntegrationHistory",
			Description: "List the run history for one integration flow.",
			InputSchema: objectSchema(map[string]any{
				"tenant":   tenantProperty(),
				"id":       idProperty("Integration id."),
				"duration": durationProperty(),
				"limit":    limitProperty(),
				"offset":   offsetProperty(),
			}, "tenant", "id"),
			Handler: scopedListHandler("/integrations/{id}/history", "id"),
		},

		// Agents
		{
			Name:        "monitoringAgentGroups",
			Description: "List connectivity agent groups for a tenant.",
			InputSchema: objectSchema(map[string]any{
				"tenant": tenantProperty(),
				"limit":  limitProperty(),
				"offset": offsetProperty(),
			}, "tenant"),
			Handler: listHandler("/agent-groups"),
		},
		{
			Name:        "monitoringAgentGroupDetails",
			Description: "Fetch full detail for one agent group.",
			InputSchema: objectSchema(map[string]any{
				"tenant": tenantProperty(),
				"id":     idProperty("Agent group id."),
			}, "tenant", "id"),
			Handler: detailHandler("/agent-groups/{id}", "id"),
		},
		{
			Name:        "monitoringAgentsInGroup",
			Description: "List the member agents of one agent group.",
			InputSchema: objectSchema(map[string]any{
				"tenant": tenantProperty(),
				"id":     idProperty("Agent group id."),
				"limit":  limitProperty(),
				"offset": offsetProperty(),
			}, "tenant", "id"),
			Handler: scopedListHandler("/agent-groups/{id}/agents", "id"),
		},
		{
			Name:        "monitoringAgentDetails",
			Description: "Fetch full detail for one connectivity agent.",
			InputSchema: objectSchema(map[string]any{
				"tenant": tenantProperty(),
				"id":     idProperty("Agent id."),
			}, "tenant", "id"),
			Handler: detailHandler("/agents/{id}", "id"),
		},

		// Errored instances
		{
			Name:        "monitoringErroredInstances",
			Description: "List instances that failed and are pending recovery for a tenant.",
			InputSchema: objectSchema(map[string]any{
				"tenant":   tenantProperty(),
				"duration": durationProperty(),
				"limit":    limitProperty(),
				"offset":   offsetProperty(),
			}, "tenant"),
			Handler: listHandler("/errors"),
		},
		{
			Name:        "monitoringErroredInstanceDetails",
			Description: "Fetch full detail for one errored instance.",
			InputSchema: objectSchema(map[string]any{
				"tenant": tenantProperty(),
				"id":     idProperty("Errored instance id."),
			}, "tenant", "id"),
			Handler: detailHandler("/errors/{id}", "id"),
		},
		{
			Name:        "monitoringDiscardErroredInstance",
			Description: "Discard one errored instance, abandoning recovery.",
			InputSchema: objectSchema(map[string]any{
				"tenant": tenantProperty(),
				"id":     idProperty("Errored instance id to discard."),
			}, "tenant", "id"),
			Handler: singleFromBulk("id", discard),
		},
		{
			Name:        "monitoringDiscardErroredInstances",
			Description: "Discard up to 50 errored instances in one call.",
			InputSchema: objectSchema(map[string]any{
				"tenant": tenantProperty(),
				"ids":    idsProperty("Errored instance ids to discard (max 50)."),
			}, "tenant", "ids"),
			Handler: discard,
		},
		{
			Name:        "monitoringResubmitErroredInstance",
			Description: "Resubmit one errored instance for recovery.",
			InputSchema: objectSchema(map[string]any{
				"tenant": tenantProperty(),
				"id":     idProperty("Errored instance id to resubmit."),
			}, "tenant", "id"),
			Handler: singleFromBulk("id", resubmit),
		},
		{
			Name:        "monitoringResubmitErroredInstances",
			Description: "Resubmit up to 50 errored instances in one call.",
			InputSchema: objectSchema(map[string]any{
				"tenant": tenantProperty(),
				"ids":    idsProperty("Errored instance ids to resubmit (max 50)."),
			}, "tenant", "ids"),
			Handler: resubmit,
		},

		// Error recovery jobs
		{
			Name:        "monitoringErrorRecoveryJobs",
			Description: "List error-recovery jobs (results of resubmit/discard) for a tenant.",
			InputSchema: objectSchema(map[string]any{
				"tenant": tenantProperty(),
				"limit":  limitProperty(),
				"offset": offsetProperty(),
			}, "tenant"),
			Handler: listHandler("/error-recovery-jobs"),
		},
		{
			Name:        "monitoringErrorRecoveryJobDetails",
			Description: "Fetch full detail and status for one error-recovery job.",
			InputSchema: objectSchema(map[string]any{
				"tenant": tenantProperty(),
				"id":     idProperty("Error recovery job id."),
			}, "tenant", "id"),
			Handler: detailHandler("/error-recovery-jobs/{id}", "id"),
		},

		// Audit records
		{
			Name:        "monitoringAuditRecords",
			Description: "List audit trail records for a tenant.",
			InputSchema: objectSchema(map[string]any{
				"tenant":   tenantProperty(),
				"duration": durationProperty(),
				"limit":    limitProperty(),
				"offset":   offsetProperty(),
			}, "tenant"),
			Handler: listHandler("/audit-records"),
		},

		// Scheduled runs
		{
			Name:        "monitoringScheduledRuns",
			Description: "List upcoming and past scheduled integration runs for a tenant.",
			InputSchema: objectSchema(map[string]any{
				"tenant":   tenantProperty(),
				"duration": durationProperty(),
				"limit":    limitProperty(),
				"offset":   offsetProperty(),
			}, "tenant"),
			Handler: listHandler("/scheduled-runs"),
		},

		// Connections (supplemented; see Design Notes)
		{
			Name:        "monitoringConnections",
			Description: "List configured adapter connections and their health for a tenant.",
			InputSchema: objectSchema(map[string]any{
				"tenant": tenantProperty(),
				"limit":  limitProperty(),
				"offset": offsetProperty(),
			}, "tenant"),
			Handler: listHandler("/connections"),
		},
		{
			Name:        "monitoringConnectionDetails",
			Description: "Fetch full detail for one adapter connection.",
			InputSchema: objectSchema(map[string]any{
				"tenant": tenantProperty(),
				"id":     idProperty("Connection id."),
			}, "tenant", "id"),
			Handler: detailHandler("/connections/{id}", "id"),
		},
	}
}
</content>
