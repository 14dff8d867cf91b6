package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkwell_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inkwell_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	versionSnapshotsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkwell_version_snapshots_total",
			Help: "Blog version snapshots created, by trigger",
		},
		[]string{"trigger"},
	)
)

// Metrics records Prometheus request counters and latency histograms. The
// route template (c.FullPath) is used instead of the raw URL so path
// parameters do not explode label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		httpRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
		).Observe(time.Since(start).Seconds())
	}
}

// CountSnapshot increments the snapshot counter for a trigger such as
// "manual", "publish" or "restore"
func CountSnapshot(trigger string) {
	versionSnapshotsTotal.WithLabelValues(trigger).Inc()
}
