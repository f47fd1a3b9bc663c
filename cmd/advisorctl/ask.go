package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/advisord/internal/retriever"
)

var (
	askThreadID    string
	askInteractive bool
)

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Ask the advisor a question",
	Long: `Ask the conversational advisor a natural language question. The advisor
classifies the query, searches the corpus when useful, and replies with
recommendations and follow-up suggestions.

Examples:
  advisorctl ask "Which framework should I use for a support bot?"
  advisorctl ask "Find me legal document agents" --thread legal-research

  # Multi-turn session with local history
  advisorctl ask --interactive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askThreadID, "thread", "default", "conversation thread ID")
	askCmd.Flags().BoolVarP(&askInteractive, "interactive", "i", false, "start an interactive session")
}

// askResponse mirrors internal/server AgentQueryResponse.
type askResponse struct {
	Response        string             `json:"response"`
	Recommendations []retriever.Result `json:"recommendations"`
	Suggestions     []string           `json:"suggestions"`
	Plan            string             `json:"plan"`
}

// historyEntry mirrors internal/agent Message.
type historyEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	if askInteractive {
		return runInteractive()
	}
	if len(args) != 1 {
		return fmt.Errorf("a query argument is required unless --interactive is set")
	}

	resp, err := askOnce(args[0], nil)
	if err != nil {
		return err
	}
	printReply(resp)
	return nil
}

func askOnce(query string, history []historyEntry) (*askResponse, error) {
	req := map[string]any{
		"query":     query,
		"thread_id": askThreadID,
	}
	if len(history) > 0 {
		req["conversation_history"] = history
	}

	var resp askResponse
	if err := postJSON("/api/agent-query", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func runInteractive() error {
	fmt.Println("AI Agent Advisor. Type your question, or 'quit' to exit.")

	var history []historyEntry
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		switch strings.ToLower(query) {
		case "quit", "exit", "q":
			return nil
		}

		resp, err := askOnce(query, history)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		printReply(resp)

		history = append(history,
			historyEntry{Role: "user", Content: query},
			historyEntry{Role: "assistant", Content: resp.Response},
		)
	}
}

func printReply(resp *askResponse) {
	fmt.Println(resp.Response)

	if len(resp.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		for i, r := range resp.Recommendations {
			fmt.Printf("  %d. %s (%s, %s)\n", i+1, r.UseCase, r.Industry, r.Framework)
		}
	}
	if len(resp.Suggestions) > 0 {
		fmt.Println("\nYou could also ask:")
		for _, s := range resp.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
	}
}
