package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the metrics registry exposed on /api/metrics
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// Custom histogram buckets optimized for API response times ranging from milliseconds to 30+ seconds
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55}

	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Database Client Metrics (PostgreSQL)
	DBRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_client_operation_duration_seconds",
			Help:    "Database client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	DBRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_client_operation_total",
			Help: "Total number of database client operations",
		},
		[]string{"operation", "status"},
	)

	// Storage Client Metrics (S3-compatible object storage)
	StorageRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_client_operation_duration_seconds",
			Help:    "Storage client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	StorageRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_client_operation_total",
			Help: "Total number of storage client operations",
		},
		[]string{"operation", "status"},
	)

	// Cache Metrics
	CacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	// Business Metrics
	Signups = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outsmash_signups_total",
			Help: "Total number of account sign-ups",
		},
		[]string{"status"},
	)

	Logins = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outsmash_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"status"},
	)

	OnboardingStepAdvances = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outsmash_onboarding_step_advances_total",
			Help: "Total number of successful wizard step advances",
		},
		[]string{"step"},
	)

	OnboardingStepRejections = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outsmash_onboarding_step_rejections_total",
			Help: "Total number of wizard step advances blocked by validation",
		},
		[]string{"step"},
	)

	PhotoUploads = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outsmash_photo_uploads_total",
			Help: "Total number of photo upload attempts",
		},
		[]string{"status"},
	)

	ProfileSubmissions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outsmash_profile_submissions_total",
			Help: "Total number of profile submission attempts",
		},
		[]string{"status"},
	)

	// Infrastructure Metrics
	GoRoutines = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "go_runtime_goroutines",
			Help: "Number of running goroutines",
		},
	)

	HeapAlloc = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "go_runtime_heap_alloc_bytes",
			Help: "Bytes of allocated heap objects",
		},
	)
)

func init() {
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
