package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/membership/scenario"
)

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario>",
		Short: "Run a scenario and print the events it produced",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ok := scenario.Lookup(args[0])
			if !ok {
				return fmt.Errorf("no such scenario %q, see %q", args[0], "membersim list")
			}

			events, err := s.Run()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s\n", s.Name, s.Description)
			for _, e := range events {
				fmt.Fprintf(out, "  %v\n", e)
			}
			return nil
		},
	}
}
