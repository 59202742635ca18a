/*
Package metrics provides Prometheus metrics collection and exposition for
the ingestion core.

Metrics cover file discovery/processing outcomes, sync cycle duration,
transaction and fuel-movement ingest volume, and audit record status, all
registered at package init and exposed via Handler() for scraping. The
Collector refreshes gauges (integration counts by status) on a ticker,
since those reflect storage state rather than a single mutation.

	Counter: files discovered/processed/skipped, transactions ingested
	Histogram: file processing duration, sync cycle duration
	Gauge: integrations by POS type and status
*/
package metrics
