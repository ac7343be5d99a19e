package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	initOnce sync.Once

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	photosUploaded      prometheus.Counter
	photosDeleted       prometheus.Counter
	blobCleanupFailures prometheus.Counter
)

// InitMetrics registers the collectors. Safe to call more than once.
func InitMetrics() {
	initOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gallery_http_requests_total",
			Help: "HTTP requests processed, partitioned by method, route and status.",
		}, []string{"method", "route", "status"})

		requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gallery_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"})

		photosUploaded = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gallery_photos_uploaded_total",
			Help: "Photos successfully uploaded.",
		})

		photosDeleted = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gallery_photos_deleted_total",
			Help: "Photos successfully deleted.",
		})

		blobCleanupFailures = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gallery_blob_cleanup_failures_total",
			Help: "Compensating blob deletions that failed, leaving an orphaned object.",
		})

		prometheus.MustRegister(requestsTotal, requestDuration, photosUploaded, photosDeleted, blobCleanupFailures)
	})
}

// Middleware records request counts and latency per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		if requestsTotal != nil {
			requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		}
		if requestDuration != nil {
			requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
		}
	}
}

// Register attaches the Prometheus metrics endpoint to the router.
func Register(router *gin.Engine, path string) {
	router.GET(path, gin.WrapH(promhttp.Handler()))
}

// ObservePhotoUploaded increments the upload counter.
func ObservePhotoUploaded() {
	if photosUploaded != nil {
		photosUploaded.Inc()
	}
}

// ObservePhotoDeleted increments the delete counter.
func ObservePhotoDeleted() {
	if photosDeleted != nil {
		photosDeleted.Inc()
	}
}

// ObserveBlobCleanupFailure increments the orphaned-blob counter.
func ObserveBlobCleanupFailure() {
	if blobCleanupFailures != nil {
		blobCleanupFailures.Inc()
	}
}
