package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	activeRoomsGauge      prometheus.Gauge
	connectedClientsGauge prometheus.Gauge
	handsStartedCounter   prometheus.Counter
	handsFinishedCounter  *prometheus.CounterVec
	actionsCounter        *prometheus.CounterVec
	engineFaultsCounter   prometheus.Counter
	rateLimitedCounter    prometheus.Counter
}

// SetActiveRooms records the number of rooms held by the registry
func (m *metrics) SetActiveRooms(count int) {
	m.activeRoomsGauge.Set(float64(count))
}

func (m *metrics) ClientConnected() {
	m.connectedClientsGauge.Inc()
}

func (m *metrics) ClientDisconnected() {
	m.connectedClientsGauge.Dec()
}

func (m *metrics) HandStarted() {
	m.handsStartedCounter.Inc()
}

// HandFinished counts a resolved hand by how it ended (early_end, showdown, refund)
func (m *metrics) HandFinished(reason string) {
	m.handsFinishedCounter.WithLabelValues(reason).Inc()
}

// ActionReceived counts an inbound client action and whether the room accepted it
func (m *metrics) ActionReceived(action string, accepted bool) {
	result := "accepted"
	if !accepted {
		result = "rejected"
	}

	m.actionsCounter.WithLabelValues(action, result).Inc()
}

func (m *metrics) EngineFault() {
	m.engineFaultsCounter.Inc()
}

func (m *metrics) RateLimited() {
	m.rateLimitedCounter.Inc()
}

// Handler exposes the default registry
func (m *metrics) Handler() http.Handler {
	return promhttp.Handler()
}

// Metrics is the process-wide instrumentation
var Metrics = &metrics{
	activeRoomsGauge: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "holdem_active_rooms",
		Help: "Number of rooms currently held by the registry",
	}),
	connectedClientsGauge: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "holdem_connected_clients",
		Help: "Number of open websocket sessions",
	}),
	handsStartedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "holdem_hands_started_total",
		Help: "Total number of hands dealt",
	}),
	handsFinishedCounter: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "holdem_hands_finished_total",
		Help: "Total number of hands resolved, by end reason",
	}, []string{"reason"}),
	actionsCounter: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "holdem_actions_total",
		Help: "Total number of client actions, by action and result",
	}, []string{"action", "result"}),
	engineFaultsCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "holdem_engine_faults_total",
		Help: "Total number of recovered engine faults that forced a room restart",
	}),
	rateLimitedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "holdem_rate_limited_messages_total",
		Help: "Total number of inbound messages dropped by the per-client rate limit",
	}),
}
