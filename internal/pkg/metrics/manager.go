package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Manager struct {
	registry *prometheus.Registry

	// counters
	CounterRequests      *prometheus.CounterVec
	CounterAICalls       *prometheus.CounterVec
	CounterCache         *prometheus.CounterVec
	CounterPanics        prometheus.Counter
	CounterTrackerEvents *prometheus.CounterVec

	// gauges
	GaugeRequests prometheus.Gauge

	// histograms
	HistRequestDuration *prometheus.HistogramVec
	HistAICallDuration  *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("fitforge", "test_server", prometheus.NewRegistry())
}

func NewManager(namespace, subsystem string, reg *prometheus.Registry) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "path", "status"})
	counterAICalls := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "ai_calls",
		Help:      "The total number of AI provider calls",
	}, []string{"provider", "result"})
	counterCache := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "ai_cache",
		Help:      "AI response cache lookups",
	}, []string{"result"})
	counterPanics := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterTrackerEvents := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "tracker_events",
		Help:      "Tracker state changes by kind",
	}, []string{"event"})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})

	histReqDuration := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
			Name:      "request_duration_seconds",
			Help:      "Total duration of requests in seconds",
		},
		[]string{"path"},
	)
	histAICallDuration := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30, 60, 120},
			Name:      "ai_call_duration_seconds",
			Help:      "Duration of AI provider calls in seconds",
		},
		[]string{"provider"},
	)

	return &Manager{
		registry:             reg,
		CounterRequests:      counterRequests,
		CounterAICalls:       counterAICalls,
		CounterCache:         counterCache,
		CounterPanics:        counterPanics,
		CounterTrackerEvents: counterTrackerEvents,
		GaugeRequests:        gaugeRequests,
		HistRequestDuration:  histReqDuration,
		HistAICallDuration:   histAICallDuration,
	}
}

// Handler exposes the registry for scraping.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
