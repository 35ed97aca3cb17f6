package prometheus

import (
	"strconv"
	"time"

	ports "blogicum/internal/domain/ports/output"
)

type PrometheusMetricsProvider struct{}

func NewPrometheusMetricsProvider() ports.MetricsProvider {
	return &PrometheusMetricsProvider{}
}

func (p *PrometheusMetricsProvider) HTTPRequestStarted() {
	httpRequestsInFlight.Inc()
}

func (p *PrometheusMetricsProvider) HTTPRequestFinished(method, route string, status int, duration time.Duration) {
	httpRequestsInFlight.Dec()
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (p *PrometheusMetricsProvider) IncrementDatabaseQueries(queryType string, success bool) {
	dbQueriesTotal.WithLabelValues(queryType, strconv.FormatBool(success)).Inc()
}

func (p *PrometheusMetricsProvider) RecordDatabaseQueryDuration(queryType string, duration time.Duration) {
	dbQueryDuration.WithLabelValues(queryType).Observe(duration.Seconds())
}

func (p *PrometheusMetricsProvider) IncrementCacheHits(cache string) {
	cacheLookupsTotal.WithLabelValues(cache, "hit").Inc()
}

func (p *PrometheusMetricsProvider) IncrementCacheMisses(cache string) {
	cacheLookupsTotal.WithLabelValues(cache, "miss").Inc()
}

func (p *PrometheusMetricsProvider) RecordCacheOperationDuration(operation string, duration time.Duration) {
	cacheOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (p *PrometheusMetricsProvider) IncrementPostOperations(operation string, success bool) {
	blogOperationsTotal.WithLabelValues("post", operation, strconv.FormatBool(success)).Inc()
}

func (p *PrometheusMetricsProvider) IncrementCommentOperations(operation string, success bool) {
	blogOperationsTotal.WithLabelValues("comment", operation, strconv.FormatBool(success)).Inc()
}

func (p *PrometheusMetricsProvider) IncrementUserOperations(operation string, success bool) {
	blogOperationsTotal.WithLabelValues("user", operation, strconv.FormatBool(success)).Inc()
}

func (p *PrometheusMetricsProvider) IncrementImageUploads(success bool) {
	imageUploadsTotal.WithLabelValues(strconv.FormatBool(success)).Inc()
}

func (p *PrometheusMetricsProvider) SetServiceHealth(healthy bool) {
	v := 0.0
	if healthy {
		v = 1
	}
	serviceHealth.Set(v)
}
