// Package metrics exposes Prometheus collectors for the analysis pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roastboard",
		Name:      "analyses_total",
		Help:      "Analysis requests by outcome (ok, degraded, rejected).",
	}, []string{"outcome"})

	extractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roastboard",
		Name:      "extractions_total",
		Help:      "Result extractions by strategy (fence, brace_span, whole, failed).",
	}, []string{"strategy"})

	persistenceErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "roastboard",
		Name:      "persistence_errors_total",
		Help:      "Leaderboard inserts that failed and were swallowed.",
	})

	nicknameFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "roastboard",
		Name:      "nickname_fallbacks_total",
		Help:      "Nickname generations that fell back to the preset pool.",
	})

	agentLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "roastboard",
		Name:      "agent_run_duration_seconds",
		Help:      "Wall time of remote agent runs, including the wait for completion.",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roastboard",
		Name:      "http_requests_total",
		Help:      "HTTP requests by path, method and status.",
	}, []string{"path", "method", "status"})
)

// RecordAnalysis counts one completed analysis request by outcome.
func RecordAnalysis(outcome string) { analysesTotal.WithLabelValues(outcome).Inc() }

// RecordExtraction counts one extraction attempt by the strategy that
// handled it ("failed" when no strategy produced a result).
func RecordExtraction(strategy string) { extractionsTotal.WithLabelValues(strategy).Inc() }

// RecordPersistenceError counts a swallowed leaderboard insert failure.
func RecordPersistenceError() { persistenceErrors.Inc() }

// RecordNicknameFallback counts a nickname served from the preset pool.
func RecordNicknameFallback() { nicknameFallbacks.Inc() }

// ObserveAgentRun records the duration of one remote agent run in seconds.
func ObserveAgentRun(seconds float64) { agentLatency.Observe(seconds) }

// RecordHTTPRequest counts one served HTTP request.
func RecordHTTPRequest(path, method, status string) {
	httpRequests.WithLabelValues(path, method, status).Inc()
}

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler { return promhttp.Handler() }
