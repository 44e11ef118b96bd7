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

// Link flow metric names
const (
	MetricNameLinkFlowsStarted   = "link_flows_started_total"
	MetricNameLinkFlowsCompleted = "link_flows_completed_total"
	MetricNameLinkFlowsFailed    = "link_flows_failed_total"
	MetricNameNotifyFailures     = "notifications_failed_total"
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

// Link flow metric help text
const (
	HelpTextLinkFlowsStarted   = "Total number of link flows started"
	HelpTextLinkFlowsCompleted = "Total number of link flows completed successfully"
	HelpTextLinkFlowsFailed    = "Total number of link flows that failed, by reason"
	HelpTextNotifyFailures     = "Total number of chat notifications that failed to deliver"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelProvider = "provider"
	LabelReason   = "reason"
)

// Failure reason label values
const (
	ReasonInvalidState = "invalid_state"
	ReasonExchange     = "exchange_error"
	ReasonProfile      = "profile_error"
	ReasonStorage      = "storage_error"
	ReasonDenied       = "provider_denied"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
