package agent

import (
	"fmt"
	"strings"
)

// PlanDecision classifies a user query into one of four handling strategies.
type PlanDecision string

const (
	// PlanSearch routes queries looking for existing agent use cases.
	PlanSearch PlanDecision = "SEARCH"
	// PlanBuild routes queries asking for help designing or building an agent.
	PlanBuild PlanDecision = "BUILD"
	// PlanUnderstand routes queries about agent concepts and frameworks.
	PlanUnderstand PlanDecision = "UNDERSTAND"
	// PlanDirect is the fallback for simple questions and for any
	// classification output that does not match a known decision.
	PlanDirect PlanDecision = "DIRECT"
)

// ParsePlanDecision maps raw classifier output onto the closed decision set.
// Anything that does not mention a known decision falls back to PlanDirect.
func ParsePlanDecision(raw string) PlanDecision {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.Contains(upper, string(PlanSearch)):
		return PlanSearch
	case strings.Contains(upper, string(PlanBuild)):
		return PlanBuild
	case strings.Contains(upper, string(PlanUnderstand)):
		return PlanUnderstand
	default:
		return PlanDirect
	}
}

func planPrompt(query string) string {
	return fmt.Sprintf(`Analyze this user query and determine the best approach:

Query: %s

Determine if the user wants to:
1. SEARCH - Find existing agent use cases
2. BUILD - Get help building/planning their own agent
3. UNDERSTAND - Learn about agents, frameworks, concepts
4. DIRECT - Simple question that can be answered directly

Respond with just one word: SEARCH, BUILD, UNDERSTAND, or DIRECT`, query)
}
