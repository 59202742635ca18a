package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Integration metrics
	IntegrationsTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "naxml_integrations_total",
			Help: "Total number of POS integrations by status",
		},
		[]string{"pos_type", "status"},
	)

	// File watcher metrics
	FilesDiscoveredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "naxml_files_discovered_total",
			Help: "Total number of files discovered in POS outboxes by document type",
		},
		[]string{"store_id", "document_type"},
	)

	FilesProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "naxml_files_processed_total",
			Help: "Total number of files processed by outcome",
		},
		[]string{"store_id", "document_type", "status"},
	)

	FileProcessingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "naxml_file_processing_duration_seconds",
			Help:    "Time taken to process one POS file end to end",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"document_type"},
	)

	FilesSkippedDuplicateTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "naxml_files_skipped_duplicate_total",
			Help: "Total number of files skipped because their content hash was already processed",
		},
		[]string{"store_id"},
	)

	// Sync cycle metrics
	SyncCycleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "naxml_sync_cycle_duration_seconds",
			Help:    "Time taken to run one integration sync cycle",
			Buckets: prometheus.DefBuckets,
		},
	)

	SyncCyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "naxml_sync_cycles_total",
			Help: "Total number of sync cycles by outcome",
		},
		[]string{"status"},
	)

	// Transaction ingest metrics
	TransactionsIngestedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "naxml_transactions_ingested_total",
			Help: "Total number of POS transactions ingested",
		},
		[]string{"store_id"},
	)

	TransactionBundleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "naxml_transaction_bundle_duration_seconds",
			Help:    "Time taken to persist one transaction bundle",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Fuel movement metrics
	FuelGradeMovementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "naxml_fuel_grade_movements_total",
			Help: "Total number of FGM documents folded into daily fuel sales",
		},
		[]string{"store_id"},
	)

	MeterReadingsAppendedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "naxml_meter_readings_appended_total",
			Help: "Total number of FPM meter readings appended",
		},
		[]string{"store_id"},
	)

	// Audit metrics
	AuditRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "naxml_audit_records_total",
			Help: "Total number of audit records by terminal status",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(IntegrationsTotal)
	prometheus.MustRegister(FilesDiscoveredTotal)
	prometheus.MustRegister(FilesProcessedTotal)
	prometheus.MustRegister(FileProcessingDuration)
	prometheus.MustRegister(FilesSkippedDuplicateTotal)
	prometheus.MustRegister(SyncCycleDuration)
	prometheus.MustRegister(SyncCyclesTotal)
	prometheus.MustRegister(TransactionsIngestedTotal)
	prometheus.MustRegister(TransactionBundleDuration)
	prometheus.MustRegister(FuelGradeMovementsTotal)
	prometheus.MustRegister(MeterReadingsAppendedTotal)
	prometheus.MustRegister(AuditRecordsTotal)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	duration := time.Since(t.start).Seconds()
	histogram.Observe(duration)
}

// ObserveDurationVec records the duration to a histogram vec with labels
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	duration := time.Since(t.start).Seconds()
	histogram.WithLabelValues(labels...).Observe(duration)
}

// Duration returns the elapsed time since timer started
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
