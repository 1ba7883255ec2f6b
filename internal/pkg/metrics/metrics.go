/*
Package metrics exposes Prometheus collectors for the relay.

A Registry owns its own prometheus.Registry so several instances can coexist in tests.
All recording methods are safe to call on a nil *Registry, which records nothing.
*/
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "relaychat"

// Registry wraps the Prometheus collectors used by the relay.
type Registry struct {
	reg *prometheus.Registry

	connectionsActive prometheus.Gauge
	connectionsTotal  prometheus.Counter
	framesReceived    prometheus.Counter
	framesMalformed   prometheus.Counter
	broadcasts        *prometheus.CounterVec
	deliveries        prometheus.Counter
	sendsDropped      prometheus.Counter
	commands          *prometheus.CounterVec
	reaps             prometheus.Counter
}

// NewRegistry creates the collectors and registers them, together with the Go and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Registry{
		reg: reg,
		connectionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_active",
			Help:      "Number of open WebSocket connections",
		}),
		connectionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Total number of accepted WebSocket connections",
		}),
		framesReceived: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_received_total",
			Help:      "Total number of inbound frames",
		}),
		framesMalformed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_malformed_total",
			Help:      "Total number of inbound frames dropped as malformed",
		}),
		broadcasts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcasts_total",
			Help:      "Total number of broadcast rounds by kind",
		}, []string{"kind"}),
		deliveries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Total number of outbound frames handed to a connection",
		}),
		sendsDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sends_dropped_total",
			Help:      "Total number of outbound frames dropped by a closed or full connection",
		}),
		commands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Total number of commands interpreted, by command name",
		}, []string{"command"}),
		reaps: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reaps_total",
			Help:      "Total number of dead pool entries reaped",
		}),
	}
}

// Handler returns an HTTP handler exposing this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Gatherer returns the underlying registry for inspection.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// ConnectionOpened records an accepted WebSocket connection.
func (r *Registry) ConnectionOpened() {
	if r == nil {
		return
	}
	r.connectionsActive.Inc()
	r.connectionsTotal.Inc()
}

// ConnectionClosed records the end of a WebSocket connection.
func (r *Registry) ConnectionClosed() {
	if r == nil {
		return
	}
	r.connectionsActive.Dec()
}

// FrameReceived counts one inbound text frame.
func (r *Registry) FrameReceived() {
	if r == nil {
		return
	}
	r.framesReceived.Inc()
}

// FrameMalformed counts an inbound frame rejected before dispatch.
func (r *Registry) FrameMalformed() {
	if r == nil {
		return
	}
	r.framesMalformed.Inc()
}

// Broadcast records one broadcast round of the given kind and its delivery count.
func (r *Registry) Broadcast(kind string, delivered int) {
	if r == nil {
		return
	}
	r.broadcasts.WithLabelValues(kind).Inc()
	r.deliveries.Add(float64(delivered))
}

// SendDropped counts a frame that could not be handed to a recipient.
func (r *Registry) SendDropped() {
	if r == nil {
		return
	}
	r.sendsDropped.Inc()
}

// Command counts one interpreted command by name.
func (r *Registry) Command(name string) {
	if r == nil {
		return
	}
	r.commands.WithLabelValues(name).Inc()
}

// Reaped counts one dead connection removed from the pool.
func (r *Registry) Reaped() {
	if r == nil {
		return
	}
	r.reaps.Inc()
}
