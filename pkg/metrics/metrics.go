package metrics

import "github.com/prometheus/client_golang/prometheus"

// ScheduleMetrics exposes counters/histograms for the proposal flow.
type ScheduleMetrics struct {
	proposalsTotal    *prometheus.CounterVec
	calendarFallbacks prometheus.Counter
	suggestionsParsed prometheus.Histogram
	llmAnalysisTotal  *prometheus.CounterVec
}

func NewScheduleMetrics(reg prometheus.Registerer) *ScheduleMetrics {
	m := &ScheduleMetrics{
		proposalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "schedule_proposer",
			Subsystem: "engine",
			Name:      "proposals_total",
			Help:      "Total proposal decisions by outcome",
		}, []string{"outcome"}),
		calendarFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "schedule_proposer",
			Subsystem: "calendar",
			Name:      "fallback_total",
			Help:      "Calendar fetch failures answered with placeholder slots",
		}),
		suggestionsParsed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "schedule_proposer",
			Subsystem: "engine",
			Name:      "suggestions_parsed",
			Help:      "Number of parsed suggestions per proposal",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13},
		}),
		llmAnalysisTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "schedule_proposer",
			Subsystem: "llm",
			Name:      "analysis_total",
			Help:      "LLM analysis calls by status",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.proposalsTotal, m.calendarFallbacks, m.suggestionsParsed, m.llmAnalysisTotal)
	return m
}

func (m *ScheduleMetrics) ObserveProposal(outcome string) {
	if m == nil {
		return
	}
	m.proposalsTotal.WithLabelValues(outcome).Inc()
}

func (m *ScheduleMetrics) ObserveCalendarFallback() {
	if m == nil {
		return
	}
	m.calendarFallbacks.Inc()
}

func (m *ScheduleMetrics) ObserveSuggestions(n int) {
	if m == nil {
		return
	}
	m.suggestionsParsed.Observe(float64(n))
}

func (m *ScheduleMetrics) ObserveLLMAnalysis(status string) {
	if m == nil {
		return
	}
	m.llmAnalysisTotal.WithLabelValues(status).Inc()
}
