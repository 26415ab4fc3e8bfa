// Package metrics holds the Prometheus collectors of the payment engine.
package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "agentpay"

var (
	// HTTPRequestsTotal counts HTTP requests by method, route and status bucket.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route pattern and status class.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and route.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// ComplianceChecksTotal counts policy compliance decisions.
	ComplianceChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "compliance_checks_total",
		Help:      "Policy compliance checks by result.",
	}, []string{"result"}) // "compliant", "violation"

	// PolicyFallbacksTotal counts policy reads that fell back to the default.
	PolicyFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policy_fallbacks_total",
		Help:      "Policy reads served from defaults because the ledger was unavailable.",
	})

	// PaymentsTotal counts payment executions by outcome.
	PaymentsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_total",
		Help:      "Payment executions by outcome and action.",
	}, []string{"action", "outcome"}) // outcome: "success", "failed", "rejected", "dispatch_error", "status_unknown"

	// PaymentDispatchDuration observes how long chain dispatch takes.
	PaymentDispatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "payment_dispatch_duration_seconds",
		Help:      "Chain action dispatch latency in seconds.",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
	})

	// NonceReplaysTotal counts executions rejected because the nonce was already consumed.
	NonceReplaysTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "nonce_replays_total",
		Help:      "Execution attempts rejected for a consumed nonce.",
	})

	// RiskAssessmentsTotal counts risk assessments by level.
	RiskAssessmentsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "risk_assessments_total",
		Help:      "Risk assessments by resulting level.",
	}, []string{"level"})

	// ActiveSessions tracks in-memory payment sessions.
	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Number of payment sessions currently held in memory.",
	})

	// LastGasPriceGwei is the most recent gas price observed when preparing a payment.
	LastGasPriceGwei = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "gas_price_gwei",
		Help:      "Last observed gas price in gwei.",
	})

	// DBAcquiredConns tracks pgx pool connections in use.
	DBAcquiredConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Name: "db_acquired_connections",
		Help: "Number of acquired database connections.",
	})
	// DBIdleConns tracks idle pgx pool connections.
	DBIdleConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Name: "db_idle_connections",
		Help: "Number of idle database connections.",
	})
	// GoroutineCount tracks the current number of goroutines.
	GoroutineCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Name: "goroutines",
		Help: "Current number of goroutines.",
	})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		ComplianceChecksTotal,
		PolicyFallbacksTotal,
		PaymentsTotal,
		PaymentDispatchDuration,
		NonceReplaysTotal,
		RiskAssessmentsTotal,
		ActiveSessions,
		LastGasPriceGwei,
		DBAcquiredConns,
		DBIdleConns,
		GoroutineCount,
	)
}

// PoolStater is satisfied by *pgxpool.Pool.
type PoolStater interface {
	Stat() *pgxpool.Stat
}

// StartPoolStatsCollector samples pool statistics until ctx is done.
// A nil pool only samples the goroutine count.
func StartPoolStatsCollector(ctx context.Context, pool PoolStater, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if pool != nil {
				stat := pool.Stat()
				DBAcquiredConns.Set(float64(stat.AcquiredConns()))
				DBIdleConns.Set(float64(stat.IdleConns()))
			}
			GoroutineCount.Set(float64(runtime.NumGoroutine()))
		}
	}
}

// Middleware records request count and latency per route pattern.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		timer := prometheus.NewTimer(HTTPRequestDuration.WithLabelValues(c.Request.Method, path))

		c.Next()

		timer.ObserveDuration()
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, statusClass(c.Writer.Status())).Inc()
	}
}

// Handler exposes the default registry for /metrics.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

func statusClass(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
