package triage

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/linnemanlabs/gabay/internal/assistant"
)

// Metrics holds Prometheus metrics for the triage subsystem.
type Metrics struct {
	TriagesTotal     *prometheus.CounterVec
	SymptomsDetected *prometheus.CounterVec
	RedFlagsTotal    prometheus.Counter
	ERTotal          prometheus.Counter
}

// NewMetrics registers and returns triage metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TriagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gabay_triages_total",
			Help: "Total triage runs by resulting urgency.",
		}, []string{"urgency"}),
		SymptomsDetected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gabay_symptoms_detected_total",
			Help: "Total symptom detections by category.",
		}, []string{"symptom"}),
		RedFlagsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gabay_red_flags_total",
			Help: "Total red flags raised across triage runs.",
		}),
		ERTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gabay_er_escalations_total",
			Help: "Total triage runs escalated to ER urgency.",
		}),
	}

	reg.MustRegister(
		m.TriagesTotal,
		m.SymptomsDetected,
		m.RedFlagsTotal,
		m.ERTotal,
	)

	return m
}

func (m *Metrics) observe(r *Result) {
	m.TriagesTotal.WithLabelValues(string(r.Safety.Urgency)).Inc()
	for _, s := range r.DetectedSymptoms {
		m.SymptomsDetected.WithLabelValues(s).Inc()
	}
	m.RedFlagsTotal.Add(float64(len(r.Safety.RedFlags)))
	if r.Safety.Urgency == assistant.UrgencyER {
		m.ERTotal.Inc()
	}
}
