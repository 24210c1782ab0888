package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "schoolhub", Name: "http_requests_total", Help: "Processed HTTP requests",
	}, []string{"method", "path", "status"})
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "schoolhub", Name: "http_request_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
	SessionValidations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "schoolhub", Name: "session_validations_total", Help: "Session token validations",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, SessionValidations)
}

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler { return promhttp.Handler() }

// ObserveSessionValidation records a session validation outcome
// (valid, expired, not_found, disabled, invalid).
func ObserveSessionValidation(outcome string) {
	SessionValidations.WithLabelValues(outcome).Inc()
}

// Middleware records request counts and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
