package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP 请求指标
var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxstudio_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "voxstudio_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	providerCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxstudio_provider_calls_total",
			Help: "Calls to the external voice provider",
		},
		[]string{"operation", "result"},
	)

	mergeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "voxstudio_merge_duration_seconds",
			Help:    "Audio merge pipeline duration",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)
)

// RecordHTTPRequest 记录一次HTTP请求
func RecordHTTPRequest(method, path, status string, seconds float64) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// RecordProviderCall 记录一次服务商调用
func RecordProviderCall(operation string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	providerCallsTotal.WithLabelValues(operation, result).Inc()
}

// RecordMergeDuration 记录一次混音耗时
func RecordMergeDuration(seconds float64) {
	mergeDuration.Observe(seconds)
}
