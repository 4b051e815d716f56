// Command membersim drives the membership/relocation model from the
// command line: list the built-in scenarios or run one and print the
// journal of events it produced.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "membersim",
	Short: "Run membership and relocation protocol scenarios",
	Long: `membersim drives the section membership and relocation model through
scripted scenarios and prints the resulting event journal, for manual
inspection or CI smoke-testing outside of go test.`,
}

func main() {
	rootCmd.AddCommand(runCmd(), listCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
