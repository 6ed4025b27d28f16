package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the service's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "session_service",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "session_service",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "session_service",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "session_service",
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Total number of login attempts.",
		},
		[]string{"result"},
	)

	logouts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "session_service",
			Subsystem: "auth",
			Name:      "logouts_total",
			Help:      "Total number of logouts.",
		},
	)

	verifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "session_service",
			Subsystem: "auth",
			Name:      "verifications_total",
			Help:      "Total number of credential verifications.",
		},
		[]string{"valid"},
	)

	providerLogins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "session_service",
			Subsystem: "auth",
			Name:      "provider_logins_total",
			Help:      "Total number of OAuth provider logins.",
		},
		[]string{"provider", "result"},
	)

	tenantSwitches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "session_service",
			Subsystem: "tenants",
			Name:      "switches_total",
			Help:      "Total number of tenant switch attempts.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		logins,
		logouts,
		verifications,
		providerLogins,
		tenantSwitches,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one handled HTTP request.
func ObserveRequest(method, path string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RequestStarted marks a request in flight; call the returned func when done.
func RequestStarted() func() {
	httpInFlight.Inc()
	return httpInFlight.Dec
}

// RecordLogin records a login attempt.
func RecordLogin(success bool) {
	logins.WithLabelValues(result(success)).Inc()
}

// RecordLogout records a logout.
func RecordLogout() {
	logouts.Inc()
}

// RecordVerification records a credential verification verdict.
func RecordVerification(valid bool) {
	verifications.WithLabelValues(strconv.FormatBool(valid)).Inc()
}

// RecordProviderLogin records an OAuth provider login attempt.
func RecordProviderLogin(provider string, success bool) {
	if provider == "" {
		provider = "unknown"
	}
	providerLogins.WithLabelValues(provider, result(success)).Inc()
}

// RecordTenantSwitch records a tenant switch attempt.
func RecordTenantSwitch(success bool) {
	tenantSwitches.WithLabelValues(result(success)).Inc()
}

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
