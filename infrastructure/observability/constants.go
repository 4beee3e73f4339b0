package observability

// Metric name prefixes
const (
	MetricPrefix = "viralcast"
)

// Metric names
const (
	// Delivery metrics
	DeliveryAttemptsTotal = MetricPrefix + ".delivery.attempts_total"
	RotationDuration      = MetricPrefix + ".posting.rotation_duration"

	// Batch metrics
	BatchOutcomesTotal = MetricPrefix + ".batches.outcomes_total"

	// NATS metrics
	NATSEventsPublishedTotal = MetricPrefix + ".nats.events_published_total"
)

// Label keys
const (
	LabelPlatform      = "platform"
	LabelResult        = "result"
	LabelErrorCategory = "error_category"
	LabelStatus        = "status"
	LabelEventType     = "event_type"
)

// Delivery results
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)
