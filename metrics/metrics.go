// Package metrics exposes dial engine and layout activity as Prometheus metrics
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/tzdial/event"
)

// Collector bundles the dial metrics. A nil *Collector is a valid no-op
type Collector struct {
	gatherer prometheus.Gatherer

	HapticPulses      *prometheus.CounterVec
	Resets            *prometheus.CounterVec
	Gestures          prometheus.Counter
	Coasts            prometheus.Counter
	Settles           prometheus.Counter
	RejectedSamples   prometheus.Counter
	LayoutConflicts   prometheus.Gauge
	PlacementDuration prometheus.Histogram
}

// NewCollector registers the dial metrics against reg, defaulting to the
// global Prometheus registry when nil
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	pulses, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tzdial_haptic_pulses_total",
		Help: "Haptic pulses requested by the rotation engine, labeled by strength.",
	}, []string{"strength"}), "tzdial_haptic_pulses_total")
	if err != nil {
		return nil, err
	}
	resets, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tzdial_resets_total",
		Help: "Scripted reset animations started, labeled by kind.",
	}, []string{"kind"}), "tzdial_resets_total")
	if err != nil {
		return nil, err
	}
	gestures, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tzdial_gestures_total",
		Help: "Drag gestures started.",
	}), "tzdial_gestures_total")
	if err != nil {
		return nil, err
	}
	coasts, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tzdial_coasts_total",
		Help: "Releases fast enough to coast.",
	}), "tzdial_coasts_total")
	if err != nil {
		return nil, err
	}
	settles, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tzdial_settles_total",
		Help: "Rotations that came to rest on an exact target.",
	}), "tzdial_settles_total")
	if err != nil {
		return nil, err
	}
	rejected, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tzdial_rejected_samples_total",
		Help: "Pointer samples rejected as NaN or infinite.",
	}), "tzdial_rejected_samples_total")
	if err != nil {
		return nil, err
	}
	conflicts, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tzdial_layout_conflicts",
		Help: "Labels that fit on neither ring in the latest layout.",
	}), "tzdial_layout_conflicts")
	if err != nil {
		return nil, err
	}
	placement, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tzdial_placement_duration_seconds",
		Help:    "Time spent assigning labels to rings.",
		Buckets: []float64{1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3, 5e-3},
	}), "tzdial_placement_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:          gatherer,
		HapticPulses:      pulses,
		Resets:            resets,
		Gestures:          gestures,
		Coasts:            coasts,
		Settles:           settles,
		RejectedSamples:   rejected,
		LayoutConflicts:   conflicts,
		PlacementDuration: placement,
	}, nil
}

// ObserveEvent counts one engine event; suitable as the Rotor observer
func (c *Collector) ObserveEvent(ev event.DialEvent) {
	if c == nil {
		return
	}
	switch p := ev.Payload.(type) {
	case *event.HapticPayload:
		c.HapticPulses.WithLabelValues(p.Strength.String()).Inc()
	case *event.ResetPayload:
		c.Resets.WithLabelValues(string(p.Kind)).Inc()
	case *event.PhasePayload:
		if p.To == "coasting" {
			c.Coasts.Inc()
		}
	case *event.SampleRejectedPayload:
		c.RejectedSamples.Inc()
	}
	switch ev.Type {
	case event.EventGestureStart:
		c.Gestures.Inc()
	case event.EventSettled:
		c.Settles.Inc()
	}
}

// ObserveLayout records a label placement pass
func (c *Collector) ObserveLayout(conflicts int, took time.Duration) {
	if c == nil {
		return
	}
	c.LayoutConflicts.Set(float64(conflicts))
	c.PlacementDuration.Observe(took.Seconds())
}

// Handler exposes a ready-to-use /metrics handler
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}
