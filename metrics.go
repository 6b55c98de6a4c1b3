package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	steps    prometheus.Counter
	laps     prometheus.Counter
	commands *prometheus.CounterVec
	dropped  prometheus.Counter
	step     prometheus.Gauge
	lap      prometheus.Gauge
	state    *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		steps: factory.NewCounter(prometheus.CounterOpts{
			Name: "looper_steps_total",
			Help: "The total number of steps the sequencer moved",
		}),
		laps: factory.NewCounter(prometheus.CounterOpts{
			Name: "looper_laps_total",
			Help: "The total number of lap boundaries crossed",
		}),
		commands: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "looper_commands_total",
			Help: "Commands handled by the sequencer",
		}, []string{"command", "result"}),
		dropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "looper_events_undelivered_total",
			Help: "Events published while nobody was subscribed",
		}),
		step: factory.NewGauge(prometheus.GaugeOpts{
			Name: "looper_step",
			Help: "Current step of the sequencer",
		}),
		lap: factory.NewGauge(prometheus.GaugeOpts{
			Name: "looper_lap",
			Help: "Current lap of the sequencer",
		}),
		state: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "looper_state",
			Help: "1 for the state the sequencer is in, 0 otherwise",
		}, []string{"state"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveCommand(cmd Command, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.commands.WithLabelValues(string(cmd), result).Inc()
}

func (m *Metrics) ObserveMove(steps int, laps uint64, step int, lap uint64) {
	n := uint(steps)
	if steps < 0 {
		n = -n
	}
	m.steps.Add(float64(n))
	m.laps.Add(float64(laps))
	m.step.Set(float64(step))
	m.lap.Set(float64(lap))
}

func (m *Metrics) ObserveState(s SequencerState) {
	for _, st := range []SequencerState{StateIdle, StatePlaying, StateDone} {
		v := 0.0
		if st == s {
			v = 1
		}
		m.state.WithLabelValues(string(st)).Set(v)
	}
}

func (m *Metrics) ObserveUndelivered() {
	m.dropped.Inc()
}
