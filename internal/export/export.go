// Package export renders retrieval results in the formats the CLI can write
// out: JSON, CSV, and Markdown.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fyrsmithlabs/advisord/internal/retriever"
)

// Format names accepted by the CLI.
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

// ErrUnknownFormat is returned for format names outside the supported set.
var ErrUnknownFormat = errors.New("unknown export format")

// csvHeader fixes the column order for CSV output.
var csvHeader = []string{
	"use_case", "industry", "framework", "complexity",
	"relevance_score", "github_link", "description",
}

// Write renders results in the named format.
func Write(w io.Writer, format string, results []retriever.Result) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, results)
	case FormatCSV:
		return WriteCSV(w, results)
	case FormatMarkdown:
		return WriteMarkdown(w, results)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// WriteJSON renders results as an indented JSON array.
func WriteJSON(w io.Writer, results []retriever.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if results == nil {
		results = []retriever.Result{}
	}
	return enc.Encode(results)
}

// WriteCSV renders results as CSV with a fixed header row.
func WriteCSV(w io.Writer, results []retriever.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range results {
		row := []string{
			r.UseCase,
			r.Industry,
			r.Framework,
			r.Complexity,
			strconv.FormatFloat(r.RelevanceScore, 'f', 4, 64),
			r.GithubLink,
			r.Description,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMarkdown renders results as a numbered list with per-result detail
// lines, suitable for pasting into a document.
func WriteMarkdown(w io.Writer, results []retriever.Result) error {
	var b strings.Builder
	b.WriteString("# Use Case Recommendations\n\n")
	if len(results) == 0 {
		b.WriteString("No matching use cases found.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	for i, r := range results {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, r.UseCase)
		fmt.Fprintf(&b, "- **Industry**: %s\n", r.Industry)
		fmt.Fprintf(&b, "- **Framework**: %s\n", r.Framework)
		fmt.Fprintf(&b, "- **Complexity**: %s\n", r.Complexity)
		fmt.Fprintf(&b, "- **Relevance**: %.2f\n", r.RelevanceScore)
		if r.GithubLink != "" {
			fmt.Fprintf(&b, "- **Repository**: %s\n", r.GithubLink)
		}
		if r.Description != "" {
			fmt.Fprintf(&b, "\n%s\n", r.Description)
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
