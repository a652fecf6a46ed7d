// Package metrics provides Prometheus-based metrics recording for interview
// sessions.
package metrics

import (
	"bytes"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Question source labels.
const (
	SourceLibrary   = "library"
	SourceGenerated = "generated"
	SourceGeneric   = "generic"
)

// Recorder collects interview session metrics. A nil Recorder is valid and
// records nothing, so callers can leave metrics unwired.
type Recorder struct {
	registry *prometheus.Registry

	turnsTotal          *prometheus.CounterVec
	validationFailures  *prometheus.CounterVec
	forcedAccepts       *prometheus.CounterVec
	questionsTotal      *prometheus.CounterVec
	generationFallbacks prometheus.Counter
	llmRequestDuration  *prometheus.HistogramVec
}

// NewRecorder creates a recorder backed by its own registry.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		turnsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interview_turns_total",
				Help: "Total number of conversation turns by stage",
			},
			[]string{"stage"},
		),
		validationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interview_validation_failures_total",
				Help: "Total number of rejected candidate inputs by field",
			},
			[]string{"field"},
		),
		forcedAccepts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interview_forced_accepts_total",
				Help: "Total number of inputs accepted after exhausting retries",
			},
			[]string{"field"},
		),
		questionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interview_questions_total",
				Help: "Total number of technical questions served by source",
			},
			[]string{"source"},
		),
		generationFallbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "interview_generation_fallbacks_total",
				Help: "Total number of times question synthesis fell back to static questions",
			},
		),
		llmRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "llm_request_duration_seconds",
				Help:    "Duration of LLM requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"purpose"},
		),
	}
}

// ObserveTurn records a processed conversation turn.
func (r *Recorder) ObserveTurn(stage string) {
	if r == nil {
		return
	}
	r.turnsTotal.WithLabelValues(stage).Inc()
}

// IncValidationFailure records a rejected input for a field.
func (r *Recorder) IncValidationFailure(field string) {
	if r == nil {
		return
	}
	r.validationFailures.WithLabelValues(field).Inc()
}

// IncForcedAccept records an input stored despite failing validation.
func (r *Recorder) IncForcedAccept(field string) {
	if r == nil {
		return
	}
	r.forcedAccepts.WithLabelValues(field).Inc()
}

// AddQuestions records questions served from the given source.
func (r *Recorder) AddQuestions(source string, count int) {
	if r == nil || count <= 0 {
		return
	}
	r.questionsTotal.WithLabelValues(source).Add(float64(count))
}

// IncGenerationFallback records a question-synthesis fallback.
func (r *Recorder) IncGenerationFallback() {
	if r == nil {
		return
	}
	r.generationFallbacks.Inc()
}

// ObserveLLMRequest records the duration of a single LLM call.
func (r *Recorder) ObserveLLMRequest(purpose string, duration time.Duration) {
	if r == nil {
		return
	}
	r.llmRequestDuration.WithLabelValues(purpose).Observe(duration.Seconds())
}

// Dump renders all collected metrics in the Prometheus text exposition
// format. The CLI has no scrape endpoint, so this is how operators inspect
// session metrics.
func (r *Recorder) Dump() (string, error) {
	if r == nil {
		return "", nil
	}

	families, err := r.registry.Gather()
	if err != nil {
		return "", fmt.Errorf("failed to gather metrics: %w", err)
	}

	var buf bytes.Buffer
	encoder := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return "", fmt.Errorf("failed to encode metric family %s: %w", family.GetName(), err)
		}
	}
	return buf.String(), nil
}
