package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/membership/scenario"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range scenario.Scripts() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", s.Name, s.Description)
			}
			return nil
		},
	}
}
