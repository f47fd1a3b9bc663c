package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/advisord/internal/export"
	"github.com/fyrsmithlabs/advisord/internal/retriever"
)

var (
	searchMaxResults int
	searchIndustry   string
	searchFramework  string
	searchExport     string
	searchOutput     string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the use case corpus",
	Long: `Search the use case corpus with optional industry and framework filters.

Examples:
  # Plain search
  advisorctl search "customer support automation"

  # Filtered search with more results
  advisorctl search "fraud detection" --industry Finance --max-results 10

  # Export results
  advisorctl search "healthcare agents" --export csv --output results.csv
  advisorctl search "healthcare agents" --export markdown > results.md`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchMaxResults, "max-results", 5, "maximum number of results (1-20)")
	searchCmd.Flags().StringVar(&searchIndustry, "industry", "", "filter by industry")
	searchCmd.Flags().StringVar(&searchFramework, "framework", "", "filter by framework")
	searchCmd.Flags().StringVar(&searchExport, "export", "", "export format: json, csv, or markdown")
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "", "write exported results to a file instead of stdout")
}

// searchResponse mirrors internal/server SearchResponse.
type searchResponse struct {
	Query   string             `json:"query"`
	Results []retriever.Result `json:"results"`
	Total   int                `json:"total"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	req := map[string]any{
		"query":       args[0],
		"max_results": searchMaxResults,
	}
	if searchIndustry != "" {
		req["industry"] = searchIndustry
	}
	if searchFramework != "" {
		req["framework"] = searchFramework
	}

	var resp searchResponse
	if err := postJSON("/api/search", req, &resp); err != nil {
		return err
	}

	if searchExport != "" {
		out := os.Stdout
		if searchOutput != "" {
			f, err := os.Create(searchOutput)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()
			out = f
		}
		return export.Write(out, searchExport, resp.Results)
	}
	if searchOutput != "" {
		return fmt.Errorf("--output requires --export")
	}

	if resp.Total == 0 {
		fmt.Println("No matching use cases found.")
		return nil
	}
	for i, r := range resp.Results {
		fmt.Printf("%d. %s (%.2f)\n", i+1, r.UseCase, r.RelevanceScore)
		fmt.Printf("   Industry: %s | Framework: %s | Complexity: %s\n", r.Industry, r.Framework, r.Complexity)
		if r.GithubLink != "" {
			fmt.Printf("   %s\n", r.GithubLink)
		}
		if r.Description != "" {
			fmt.Printf("   %s\n", strings.TrimSpace(r.Description))
		}
		fmt.Println()
	}
	return nil
}
