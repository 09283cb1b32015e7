package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// State metric names
const (
	MetricNameStateWrites        = "state_writes_total"
	MetricNameStateRejections    = "state_validation_rejections_total"
	MetricNameCorruptStateReads  = "state_corrupt_reads_total"
	MetricNameMigrationFallbacks = "state_migration_fallbacks_total"
	MetricNameFileTransfers      = "state_file_transfers_total"
	MetricNameShortfallComputed  = "shortfall_computations_total"
	MetricNameShortfallCacheHits = "shortfall_cache_hits_total"
	MetricNameCatalogEntries     = "catalog_entries"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// State metric help text
const (
	HelpTextStateWrites        = "Total number of persisted owned-state writes"
	HelpTextStateRejections    = "Total number of owned-state updates rejected by validation"
	HelpTextCorruptStateReads  = "Total number of reads that found an invalid stored state and fell back to defaults"
	HelpTextMigrationFallbacks = "Total number of migration steps that replaced an invalid record with defaults"
	HelpTextFileTransfers      = "Total number of state file exports and imports"
	HelpTextShortfallComputed  = "Total number of shortfall computations"
	HelpTextShortfallCacheHits = "Total number of shortfall results served from cache"
	HelpTextCatalogEntries     = "Number of entries in each loaded catalog table"
)

// ============================================================================
// Label Names
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelOperation = "operation"
	LabelVersion   = "version"
	LabelDirection = "direction"
	LabelResult    = "result"
	LabelTable     = "table"
)

// ============================================================================
// Label Values
// ============================================================================

// File transfer directions and results
const (
	DirectionExport = "export"
	DirectionImport = "import"

	ResultSuccess  = "success"
	ResultCanceled = "canceled"
	ResultFailed   = "failed"
)

// Path label used when no route matched
const PathUnmatched = "unmatched"

// HTTPLatencyBuckets are histogram buckets for a local API, in seconds
var HTTPLatencyBuckets = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1}
