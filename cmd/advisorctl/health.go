package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check advisord server health",
	Long: `Check the health status of the advisord HTTP server.

Examples:
  # Check health
  advisorctl health

  # Check health on a different server
  advisorctl health --server http://localhost:9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp struct {
			Status string `json:"status"`
		}
		if err := getJSON("/health", &resp); err != nil {
			return err
		}
		fmt.Printf("Server status: %s\n", resp.Status)
		return nil
	},
}
