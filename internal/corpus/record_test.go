package corpus

import (
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "collapses whitespace", in: "  a \n\t b  ", want: "a b"},
		{name: "strips bold markers", in: "**Trading** bot", want: "Trading bot"},
		{name: "strips emphasis and code", in: "*fast* `inline`", want: "fast inline"},
		{name: "plain text untouched", in: "Healthcare diagnostics agent", want: "Healthcare diagnostics agent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDetectComplexity(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want Complexity
	}{
		{name: "default is medium", desc: "an agent that summarizes documents", want: ComplexityMedium},
		{name: "simple marks low", desc: "A simple chatbot", want: ComplexityLow},
		{name: "basic marks low", desc: "Basic retrieval over FAQs", want: ComplexityLow},
		{name: "multi-agent marks high", desc: "Multi-agent research pipeline", want: ComplexityHigh},
		{name: "orchestration marks high", desc: "Complex orchestration of workers", want: ComplexityHigh},
		{name: "low wins over high", desc: "simple but advanced", want: ComplexityLow},
		{name: "case insensitive", desc: "ADVANCED planner", want: ComplexityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectComplexity(tt.desc); got != tt.want {
				t.Errorf("DetectComplexity(%q) = %q, want %q", tt.desc, got, tt.want)
			}
		})
	}
}

func TestNormalizeFramework(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		title string
		desc  string
		want  string
	}{
		{name: "canonicalizes case", raw: "crewai", want: "CrewAI"},
		{name: "keeps exact match", raw: "LangGraph", want: "LangGraph"},
		{name: "detects from title", raw: "", title: "AutoGen trading crew", want: "AutoGen"},
		{name: "detects from description", raw: "", desc: "built with langgraph state machines", want: "LangGraph"},
		{name: "unknown when absent", raw: "", title: "Chat bot", desc: "plain scripting", want: FrameworkUnknown},
		{name: "unrecognized raw falls through to detection", raw: "Rasa", title: "crewai helper", want: "CrewAI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeFramework(tt.raw, tt.title, tt.desc); got != tt.want {
				t.Errorf("NormalizeFramework(%q, %q, %q) = %q, want %q", tt.raw, tt.title, tt.desc, got, tt.want)
			}
		})
	}
}
