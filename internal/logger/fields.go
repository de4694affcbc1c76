package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// ============================================
// Tracing Fields (Context level)
// Propagated through the call chain
// ============================================

const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldSessionID is the gallery session ID (UUID)
	FieldSessionID = "session_id"

	// FieldSearchTerm is the term the gallery is searching for
	FieldSearchTerm = "search_term"

	// FieldPage is the results page being requested
	FieldPage = "page"

	// FieldComponent is the component/module name
	FieldComponent = "component"
)

// ============================================
// Metric Fields (Entry level)
// Used for aggregation and alerting
// ============================================

const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldCount is a generic count field
	FieldCount = "count"

	// FieldTotal is the total number of hits reported upstream
	FieldTotal = "total"

	// FieldSize is the data size in bytes
	FieldSize = "size"

	// FieldStatus is the operation status
	FieldStatus = "status"

	// FieldResponseBody is the body of a failed upstream response
	FieldResponseBody = "response_body"
)
