// Package corpus loads and normalizes the use-case corpus.
//
// A corpus record describes one AI-agent project: what it does, which
// industry it serves, which framework it is built on, and where it lives.
// Records are scraped externally and arrive as raw JSON; this package
// cleans them, tags complexity, and produces the processed corpus that the
// retriever indexes.
package corpus

import (
	"errors"
	"strings"
)

// Sentinel errors for corpus operations.
var (
	// ErrCorpusNotFound is returned when neither the processed nor the raw
	// corpus file exists.
	ErrCorpusNotFound = errors.New("corpus file not found")

	// ErrEmptyCorpus is returned when the corpus file contains no records.
	ErrEmptyCorpus = errors.New("corpus contains no records")
)

// Complexity is a coarse implementation-effort estimate derived from the
// record description.
type Complexity string

const (
	ComplexityLow    Complexity = "Low"
	ComplexityMedium Complexity = "Medium"
	ComplexityHigh   Complexity = "High"
)

// FrameworkUnknown is the framework value for records whose framework
// could not be determined. Records never carry an empty framework.
const FrameworkUnknown = "Unknown"

// knownFrameworks are the agent frameworks the scraper recognizes, in
// detection order. Detection is a substring match on title + description.
var knownFrameworks = []string{"CrewAI", "AutoGen", "LangGraph", "Agno"}

// RawRecord is one scraped use-case entry before processing.
type RawRecord struct {
	UseCase     string `json:"use_case"`
	Industry    string `json:"industry"`
	Description string `json:"description"`
	GithubLink  string `json:"github_link"`
	Framework   string `json:"framework,omitempty"`
}

// Record is a processed, immutable use-case entry.
//
// Invariants: UseCase is non-empty after cleaning, Complexity is always one
// of Low/Medium/High, and Framework is never empty (FrameworkUnknown is the
// default).
type Record struct {
	ID             string     `json:"id"`
	UseCase        string     `json:"use_case"`
	Industry       string     `json:"industry"`
	Description    string     `json:"description"`
	Framework      string     `json:"framework"`
	Complexity     Complexity `json:"complexity"`
	GithubLink     string     `json:"github_link"`
	SearchableText string     `json:"searchable_text"`
}

// CleanText collapses whitespace and strips markdown emphasis markers.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.Join(strings.Fields(text), " ")
	replacer := strings.NewReplacer("**", "", "*", "", "`", "")
	return strings.TrimSpace(replacer.Replace(text))
}

// complexity keyword sets. Checked against the lowercased description;
// low-complexity keywords win over high when both appear.
var (
	lowKeywords  = []string{"simple", "basic", "easy"}
	highKeywords = []string{"complex", "advanced", "multi-agent", "orchestration"}
)

// DetectComplexity estimates complexity from description keywords.
func DetectComplexity(description string) Complexity {
	lower := strings.ToLower(description)
	for _, w := range lowKeywords {
		if strings.Contains(lower, w) {
			return ComplexityLow
		}
	}
	for _, w := range highKeywords {
		if strings.Contains(lower, w) {
			return ComplexityHigh
		}
	}
	return ComplexityMedium
}

// DetectFramework returns the first known framework mentioned in the title
// or description, or FrameworkUnknown.
func DetectFramework(title, description string) string {
	haystack := strings.ToLower(title + " " + description)
	for _, fw := range knownFrameworks {
		if strings.Contains(haystack, strings.ToLower(fw)) {
			return fw
		}
	}
	return FrameworkUnknown
}

// NormalizeFramework maps a raw framework value onto the known set. Values
// that match a known framework case-insensitively are canonicalized; empty
// or unrecognized values become FrameworkUnknown unless detection on the
// record text finds one.
func NormalizeFramework(raw, title, description string) string {
	raw = strings.TrimSpace(raw)
	for _, fw := range knownFrameworks {
		if strings.EqualFold(raw, fw) {
			return fw
		}
	}
	return DetectFramework(title, description)
}
