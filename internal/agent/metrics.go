package agent

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TurnsTotal counts conversational turns by plan decision.
	// Labels: plan (SEARCH, BUILD, UNDERSTAND, DIRECT)
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "advisord",
			Subsystem: "agent",
			Name:      "turns_total",
			Help:      "Total number of conversational turns",
		},
		[]string{"plan"},
	)

	// ToolCallsTotal counts tool dispatches requested by the engine.
	// Labels: tool
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "advisord",
			Subsystem: "agent",
			Name:      "tool_calls_total",
			Help:      "Total number of tool dispatches",
		},
		[]string{"tool"},
	)

	// ReflectionsTotal counts reflection passes.
	ReflectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "advisord",
			Subsystem: "agent",
			Name:      "reflections_total",
			Help:      "Total number of reflection passes",
		},
	)

	// TurnFailuresTotal counts turns aborted by engine failure.
	TurnFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "advisord",
			Subsystem: "agent",
			Name:      "turn_failures_total",
			Help:      "Total number of conversational turns aborted by completion failure",
		},
	)
)

func observeTurn(plan PlanDecision) {
	TurnsTotal.WithLabelValues(string(plan)).Inc()
}

func observeToolCall(tool string) {
	ToolCallsTotal.WithLabelValues(tool).Inc()
}

func observeReflection() {
	ReflectionsTotal.Inc()
}

func observeTurnFailure() {
	TurnFailuresTotal.Inc()
}
