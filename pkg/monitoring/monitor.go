package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "skillbloom",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route template and status",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "skillbloom",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "route"},
	)

	// 按测评类型统计提交次数
	AssessmentSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "skillbloom",
			Name:      "assessment_submissions_total",
			Help:      "Scored assessment submissions by test type",
		},
		[]string{"test_type"},
	)

	// AI 调用失败或返回不可用时走兜底逻辑的次数
	AICompletionFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "skillbloom",
			Name:      "ai_completion_fallbacks_total",
			Help:      "AI completions replaced by a deterministic fallback",
		},
		[]string{"operation"},
	)

	BabyStreams = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "skillbloom",
		Name:      "baby_stream_connections",
		Help:      "Open baby monitor websocket streams",
	})
)

var registerOnce sync.Once

// Init 注册到默认 registry，重复调用安全
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			AssessmentSubmissions,
			AICompletionFallbacks,
			BabyStreams,
		)
	})
}

func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := routeLabel(c)
		RequestCounter.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
