// Package metrics exposes Prometheus metrics for headless simulation runs.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the simulation metrics, labeled by scenario.
type Collector struct {
	gatherer prometheus.Gatherer

	Ticks        *prometheus.CounterVec
	Transfers    *prometheus.CounterVec
	TickDuration *prometheus.HistogramVec
	Visible      *prometheus.GaugeVec
	Agents       *prometheus.GaugeVec
}

// NewCollector registers the simulation metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	ticks, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tag_ticks_total",
		Help: "Total number of simulation ticks, labeled by scenario.",
	}, []string{"scenario"}), "tag_ticks_total")
	if err != nil {
		return nil, err
	}

	transfers, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tag_transfers_total",
		Help: "Total number of tag transfers, labeled by scenario.",
	}, []string{"scenario"}), "tag_transfers_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tag_tick_duration_seconds",
		Help:    "Wall time of a single simulation tick in seconds.",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
	}, []string{"scenario"}), "tag_tick_duration_seconds")
	if err != nil {
		return nil, err
	}

	visible, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "tag_visible_agents",
		Help: "Agents inside the tagged agent's view after the last tick.",
	}, []string{"scenario"}), "tag_visible_agents")
	if err != nil {
		return nil, err
	}

	agents, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "tag_agents",
		Help: "Population of the running world.",
	}, []string{"scenario"}), "tag_agents")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:     gatherer,
		Ticks:        ticks,
		Transfers:    transfers,
		TickDuration: durations,
		Visible:      visible,
		Agents:       agents,
	}, nil
}

// SetAgents records the population of a freshly built world.
func (c *Collector) SetAgents(scenario string, n int) {
	if c == nil {
		return
	}
	c.Agents.WithLabelValues(scenario).Set(float64(n))
}

// ObserveTick records one completed tick.
func (c *Collector) ObserveTick(scenario string, d time.Duration, tagged bool, visible int) {
	if c == nil {
		return
	}
	c.Ticks.WithLabelValues(scenario).Inc()
	if tagged {
		c.Transfers.WithLabelValues(scenario).Inc()
	}
	c.TickDuration.WithLabelValues(scenario).Observe(d.Seconds())
	c.Visible.WithLabelValues(scenario).Set(float64(visible))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("metrics: collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("metrics: collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("metrics: collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
