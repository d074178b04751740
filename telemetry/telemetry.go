package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector captures events emitted by a channel and its blocking adapters.
//
// Implementations may forward metrics to Prometheus, loggers or other
// monitoring systems. They should be inexpensive to call because hooks are
// executed inline with send and receive paths.
type Collector interface {
	// IncSent records one message accepted into the channel buffer.
	IncSent(channel string)
	// IncReceived records one message handed to the consumer.
	IncReceived(channel string)
	// IncRejected records one send that failed because the receiver was gone.
	IncRejected(channel string)
	// IncParked records one slow-path park of a calling goroutine.
	// Side is "send" or "recv".
	IncParked(channel, side string)
	// SetOccupancy reports the current number of buffered messages.
	SetOccupancy(channel string, n int)
}

type noopCollector struct{}

// Noop returns a collector that discards all events.
func Noop() Collector {
	return noopCollector{}
}

func (noopCollector) IncSent(string)           {}
func (noopCollector) IncReceived(string)       {}
func (noopCollector) IncRejected(string)       {}
func (noopCollector) IncParked(string, string) {}
func (noopCollector) SetOccupancy(string, int) {}

// PrometheusCollector exposes channel activity via Prometheus.
type PrometheusCollector struct {
	sent      *prometheus.CounterVec
	received  *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	parked    *prometheus.CounterVec
	occupancy *prometheus.GaugeVec
}

// NewPrometheusCollector registers the channel metrics with the provided
// registerer. Passing nil uses prometheus.DefaultRegisterer. Registration is
// idempotent: an AlreadyRegisteredError yields the existing collector.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	sent, err := registerCounter(reg, prometheus.CounterOpts{
		Name: "mpsc_channel_sent_total",
		Help: "Number of messages accepted into the channel buffer.",
	}, []string{"channel"})
	if err != nil {
		return nil, err
	}
	received, err := registerCounter(reg, prometheus.CounterOpts{
		Name: "mpsc_channel_received_total",
		Help: "Number of messages handed to the consumer.",
	}, []string{"channel"})
	if err != nil {
		return nil, err
	}
	rejected, err := registerCounter(reg, prometheus.CounterOpts{
		Name: "mpsc_channel_rejected_total",
		Help: "Number of sends rejected because the receiver was gone.",
	}, []string{"channel"})
	if err != nil {
		return nil, err
	}
	parked, err := registerCounter(reg, prometheus.CounterOpts{
		Name: "mpsc_channel_parked_total",
		Help: "Number of slow-path parks of calling goroutines.",
	}, []string{"channel", "side"})
	if err != nil {
		return nil, err
	}
	occupancy, err := registerGauge(reg, prometheus.GaugeOpts{
		Name: "mpsc_channel_occupancy",
		Help: "Current number of buffered messages per channel.",
	}, []string{"channel"})
	if err != nil {
		return nil, err
	}
	return &PrometheusCollector{
		sent:      sent,
		received:  received,
		rejected:  rejected,
		parked:    parked,
		occupancy: occupancy,
	}, nil
}

func registerCounter(reg prometheus.Registerer, opts prometheus.CounterOpts, labels []string) (*prometheus.CounterVec, error) {
	counter := prometheus.NewCounterVec(opts, labels)
	if err := reg.Register(counter); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, opts prometheus.GaugeOpts, labels []string) (*prometheus.GaugeVec, error) {
	gauge := prometheus.NewGaugeVec(opts, labels)
	if err := reg.Register(gauge); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return gauge, nil
}

// IncSent implements Collector.
func (c *PrometheusCollector) IncSent(channel string) {
	c.sent.WithLabelValues(channel).Inc()
}

// IncReceived implements Collector.
func (c *PrometheusCollector) IncReceived(channel string) {
	c.received.WithLabelValues(channel).Inc()
}

// IncRejected implements Collector.
func (c *PrometheusCollector) IncRejected(channel string) {
	c.rejected.WithLabelValues(channel).Inc()
}

// IncParked implements Collector.
func (c *PrometheusCollector) IncParked(channel, side string) {
	c.parked.WithLabelValues(channel, side).Inc()
}

// SetOccupancy implements Collector.
func (c *PrometheusCollector) SetOccupancy(channel string, n int) {
	c.occupancy.WithLabelValues(channel).Set(float64(n))
}
