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

// Lock metric names
const (
	MetricNameLockAcquisitions = "lock_acquisitions_total"
	MetricNameLockTimeouts     = "lock_timeouts_total"
)

// Ledger metric names
const (
	MetricNamePointsAwarded = "points_awarded_total"
	MetricNamePointsSpent   = "points_spent_total"
)

// Mail queue metric names
const (
	MetricNameJobsProcessed    = "mail_jobs_processed_total"
	MetricNameJobsDeadLettered = "mail_jobs_dead_lettered_total"
	MetricNameQueueDepth       = "mail_queue_depth"
	MetricNameDeadLetterDepth  = "mail_dead_letter_depth"
)

// ============================================================================
// Help Texts
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being served"

	HelpTextLockAcquisitions = "Total number of successful lock acquisitions"
	HelpTextLockTimeouts     = "Total number of lock acquisitions that timed out"

	HelpTextPointsAwarded = "Total points credited, by entry type"
	HelpTextPointsSpent   = "Total points debited"

	HelpTextJobsProcessed    = "Total mail jobs processed, by result"
	HelpTextJobsDeadLettered = "Total mail jobs moved to the dead-letter queue"
	HelpTextQueueDepth       = "Mail jobs currently waiting in the primary queue"
	HelpTextDeadLetterDepth  = "Mail jobs currently parked in the dead-letter queue"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelOperation = "operation"
	LabelEntryType = "entry_type"
	LabelResult    = "result"
)

// Result label values for mail job metrics
const (
	ResultSuccess = "success"
	ResultRetry   = "retry"
	ResultFailure = "failure"
)

// HTTPLatencyBuckets are the histogram buckets for request latency
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
