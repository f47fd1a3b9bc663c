package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var industriesCmd = &cobra.Command{
	Use:   "industries",
	Short: "List industries in the corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp struct {
			Industries []string `json:"industries"`
			Total      int      `json:"total"`
		}
		if err := getJSON("/api/industries", &resp); err != nil {
			return err
		}
		for _, item := range resp.Industries {
			fmt.Println(item)
		}
		return nil
	},
}

var frameworksCmd = &cobra.Command{
	Use:   "frameworks",
	Short: "List agent frameworks in the corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp struct {
			Frameworks []string `json:"frameworks"`
			Total      int      `json:"total"`
		}
		if err := getJSON("/api/frameworks", &resp); err != nil {
			return err
		}
		for _, item := range resp.Frameworks {
			fmt.Println(item)
		}
		return nil
	},
}
