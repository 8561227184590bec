package main

import (
	"fmt"
	"os"

	"github.com/aretw0/fable/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <story.yaml>...",
	Short: "Check stories for consistency",
	Long: `Loads each story and reports structural, reference, reachability, flow,
content, cycle, expression and state issues. Exits non-zero if any story has errors.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		asJSON, _ := cmd.Flags().GetBool("json")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		reports, err := cli.ValidateFiles(ctx, args)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		ok, err := cli.WriteReports(os.Stdout, reports, asJSON)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		if !ok {
			os.Exit(1)
		}
	},
}

func init() {
	validateCmd.Flags().Bool("json", false, "Print reports as JSON")
	rootCmd.AddCommand(validateCmd)
}
