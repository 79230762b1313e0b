// Package metrics exposes this server's Prometheus instrumentation: a
// gauge of live sessions and sources, a counter of RTP packets sent per
// transport kind, and a counter of source broadcast overflows. Grounded on
// arzzra-soft_phone's pkg/dialog/metrics.go promauto wiring, trimmed to the
// handful of series spec §4.3/§4.4 actually produce events for.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every series this server exports. Use New to construct
// one, or NewUnregistered for tests that don't want to touch the default
// registry. The source and session managers also accept a nil *Metrics, in
// which case they record nothing.
type Metrics struct {
	SessionsActive    prometheus.Gauge
	SourcesActive     prometheus.Gauge
	PacketsSentTotal  *prometheus.CounterVec
	SourceOverflow    *prometheus.CounterVec
}

// New registers every series on the default Prometheus registry.
func New() *Metrics {
	return newWith(promauto.With(prometheus.DefaultRegisterer))
}

// NewUnregistered builds the same series bound to a fresh registry, useful
// for tests that construct more than one Metrics in the same process.
func NewUnregistered() *Metrics {
	return newWith(promauto.With(prometheus.NewRegistry()))
}

func newWith(f promauto.Factory) *Metrics {
	return &Metrics{
		SessionsActive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "rtsp",
			Name:      "sessions_active",
			Help:      "Number of Sessions currently registered with the SessionManager.",
		}),
		SourcesActive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "rtsp",
			Name:      "sources_active",
			Help:      "Number of Sources currently registered with the SourceManager.",
		}),
		PacketsSentTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rtsp",
			Name:      "packets_sent_total",
			Help:      "RTP/RTCP buffers delivered to a Session's target, by transport kind.",
		}, []string{"transport"}),
		SourceOverflow: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rtsp",
			Name:      "source_overflow_total",
			Help:      "Broadcast evictions of a slow packet subscriber, by source path.",
		}, []string{"path"}),
	}
}
