package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Tracing fields carried on the context through a request.
const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldComponent is the component/module name
	FieldComponent = "component"

	// FieldTitle is the movie title a request is about
	FieldTitle = "title"

	// FieldSource is the catalog source identifier
	FieldSource = "source"
)

// Metric fields attached per log entry, used for aggregation.
const (
	FieldDurationMs = "duration_ms"
	FieldCount      = "count"
	FieldStatus     = "status"
	FieldSize       = "size"

	// FieldOutcome is the tagged result of a poster lookup
	FieldOutcome = "outcome"
)
