package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the VOD coordinator.
type Metrics struct {
	registry            *prometheus.Registry
	requestsTotal       prometheus.Counter
	errorsTotal         prometheus.Counter
	streamsStartedTotal prometheus.Counter
	streamsStoppedTotal prometheus.Counter
	seeksTotal          prometheus.Counter
	clientExitsTotal    prometheus.Counter
	sessionsReapedTotal prometheus.Counter
	connectedClients    prometheus.Gauge
	streamingClients    prometheus.Gauge
}

// New creates and registers Prometheus metrics for the coordinator.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vod_requests_total",
			Help: "Total number of HTTP requests received",
		}),
		errorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vod_errors_total",
			Help: "Total number of HTTP responses with error status (4xx or 5xx)",
		}),
		streamsStartedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vod_streams_started_total",
			Help: "Total number of playback sessions started",
		}),
		streamsStoppedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vod_streams_stopped_total",
			Help: "Total number of playback sessions stopped voluntarily",
		}),
		seeksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vod_seeks_total",
			Help: "Total number of seek requests applied",
		}),
		clientExitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vod_client_exits_total",
			Help: "Total number of client disconnects",
		}),
		sessionsReapedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vod_sessions_reaped_total",
			Help: "Total number of idle sessions reaped",
		}),
		connectedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vod_connected_clients",
			Help: "Number of currently connected clients",
		}),
		streamingClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vod_streaming_clients",
			Help: "Number of clients currently streaming",
		}),
	}

	registry.MustRegister(
		m.requestsTotal,
		m.errorsTotal,
		m.streamsStartedTotal,
		m.streamsStoppedTotal,
		m.seeksTotal,
		m.clientExitsTotal,
		m.sessionsReapedTotal,
		m.connectedClients,
		m.streamingClients,
	)

	return m
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// IncStreamsStarted increments the started-streams counter.
func (m *Metrics) IncStreamsStarted() {
	m.streamsStartedTotal.Inc()
}

// IncStreamsStopped increments the stopped-streams counter.
func (m *Metrics) IncStreamsStopped() {
	m.streamsStoppedTotal.Inc()
}

// IncSeeks increments the seeks counter.
func (m *Metrics) IncSeeks() {
	m.seeksTotal.Inc()
}

// IncClientExits increments the client exits counter.
func (m *Metrics) IncClientExits() {
	m.clientExitsTotal.Inc()
}

// AddSessionsReaped adds n to the reaped-sessions counter.
func (m *Metrics) AddSessionsReaped(n int) {
	m.sessionsReapedTotal.Add(float64(n))
}

// SetConnectedClients sets the connected clients gauge.
func (m *Metrics) SetConnectedClients(n int) {
	m.connectedClients.Set(float64(n))
}

// SetStreamingClients sets the streaming clients gauge.
func (m *Metrics) SetStreamingClients(n int) {
	m.streamingClients.Set(float64(n))
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values
// (connected and streaming client counts).
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
