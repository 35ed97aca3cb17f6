package ports

import "time"

// MetricsProvider records what the blog does. Labels are kept low cardinality:
// HTTP routes are the gin route pattern, never the raw path.
type MetricsProvider interface {
	HTTPRequestStarted()
	HTTPRequestFinished(method, route string, status int, duration time.Duration)

	IncrementDatabaseQueries(queryType string, success bool)
	RecordDatabaseQueryDuration(queryType string, duration time.Duration)

	IncrementCacheHits(cache string)
	IncrementCacheMisses(cache string)
	RecordCacheOperationDuration(operation string, duration time.Duration)

	IncrementPostOperations(operation string, success bool)
	IncrementCommentOperations(operation string, success bool)
	IncrementUserOperations(operation string, success bool)
	IncrementImageUploads(success bool)

	SetServiceHealth(healthy bool)
}
