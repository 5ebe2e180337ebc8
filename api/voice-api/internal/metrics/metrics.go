package internal_metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CallsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "voicebot_calls_active",
		Help: "Currently active call sessions",
	})

	CallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voicebot_calls_total",
		Help: "Total calls started",
	})

	TurnsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voicebot_turns_total",
		Help: "Total speech turns processed",
	})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "voicebot_stage_duration_seconds",
		Help:    "Per-stage latency",
		Buckets: []float64{0.05, 0.1, 0.2, 0.3, 0.5, 0.8, 1.0, 2.0, 5.0, 10.0},
	}, []string{"stage"})

	NLUFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voicebot_nlu_fallbacks_total",
		Help: "Fallback replies served instead of an NLU answer",
	}, []string{"reason"})

	TTSRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voicebot_tts_requests_total",
		Help: "Speech synthesis outcomes",
	}, []string{"result"})

	SessionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voicebot_session_errors_total",
		Help: "Session protocol errors by kind",
	}, []string{"kind"})
)

const (
	StageNLU = "nlu"
	StageTTS = "tts"
)
