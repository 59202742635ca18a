/*
Package log provides structured logging for the ingestion core, wrapping
zerolog with a global logger and a set of context-logger helpers keyed to
this domain's identifiers rather than generic request IDs.

	log.Init(log.Config{Level: log.InfoLevel, JSONOutput: true})

	watcherLog := log.WithStoreID(integration.StoreID)
	watcherLog.Info().Str("file", name).Msg("file discovered")

WithComponent, WithStoreID, WithIntegrationID, WithFileHash, and
WithDocumentType each return a child logger carrying one extra field, so
a FileWatcher's logs always carry store_id and a NAXMLParser's logs
always carry document_type without repeating the field at every call
site.
*/
package log
