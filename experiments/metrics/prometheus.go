package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Counters exported by PrometheusCollector, labelled by algorithm.
var (
	expansionsDesc  = prometheus.CounterOpts{Namespace: "pacai", Name: "expansions_total", Help: "Search nodes expanded."}
	evaluationsDesc = prometheus.CounterOpts{Namespace: "pacai", Name: "evaluations_total", Help: "Leaf states evaluated."}
	cutoffsDesc     = prometheus.CounterOpts{Namespace: "pacai", Name: "cutoffs_total", Help: "Alpha-beta cutoffs."}
	episodesDesc    = prometheus.CounterOpts{Namespace: "pacai", Name: "episodes_total", Help: "Training episodes completed."}
)

// PrometheusCollector counts like the in-memory collector and mirrors every
// increment into Prometheus counters.
type PrometheusCollector struct {
	collector
	expansions  *prometheus.CounterVec
	evaluations *prometheus.CounterVec
	cutoffs     *prometheus.CounterVec
	episodes    *prometheus.CounterVec
}

func NewPrometheusCollector(registerer prometheus.Registerer) (*PrometheusCollector, error) {
	p := &PrometheusCollector{
		expansions:  prometheus.NewCounterVec(expansionsDesc, []string{"algorithm"}),
		evaluations: prometheus.NewCounterVec(evaluationsDesc, []string{"algorithm"}),
		cutoffs:     prometheus.NewCounterVec(cutoffsDesc, []string{"algorithm"}),
		episodes:    prometheus.NewCounterVec(episodesDesc, []string{"algorithm"}),
	}
	for _, c := range []prometheus.Collector{p.expansions, p.evaluations, p.cutoffs, p.episodes} {
		if err := registerer.Register(c); err != nil {
			return nil, errors.Wrap(err, "failed to register search counters")
		}
	}
	return p, nil
}

func (p *PrometheusCollector) AddExpansion() {
	p.collector.AddExpansion()
	p.expansions.WithLabelValues(p.algorithm).Inc()
}

func (p *PrometheusCollector) AddEvaluation() {
	p.collector.AddEvaluation()
	p.evaluations.WithLabelValues(p.algorithm).Inc()
}

func (p *PrometheusCollector) AddCutoff() {
	p.collector.AddCutoff()
	p.cutoffs.WithLabelValues(p.algorithm).Inc()
}

func (p *PrometheusCollector) AddEpisode() {
	p.collector.AddEpisode()
	p.episodes.WithLabelValues(p.algorithm).Inc()
}
