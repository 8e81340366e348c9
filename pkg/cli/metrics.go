package cli

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "phenosim"

type metrics struct {
	predictions   *prometheus.CounterVec
	missingVideos *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "predictions_total",
			Help:      "Number of growth predictions by phenotype label.",
		}, []string{"label"}),
		missingVideos: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "missing_videos_total",
			Help:      "Number of times a phenotype video was requested but not found.",
		}, []string{"label"}),
	}
	reg.MustRegister(m.predictions, m.missingVideos)
	return m
}

func (m *metrics) observe(sim *Simulation) {
	label := string(sim.Result.Label)
	m.predictions.WithLabelValues(label).Inc()
	if !sim.HasVideo() {
		m.missingVideos.WithLabelValues(label).Inc()
	}
}
