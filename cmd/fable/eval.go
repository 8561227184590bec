package main

import (
	"fmt"
	"os"

	"github.com/aretw0/fable/internal/cli"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a condition expression",
	Long: `Evaluates an expression the way stories do, against variables given with
--var name=value. Useful for checking choice conditions before writing them.`,
	Example: `  fable eval "gold >= 10 && name !== ''" --var gold=12 --var name=Ada`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pairs, _ := cmd.Flags().GetStringArray("var")

		vars, err := cli.ParseVars(pairs)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		result, err := cli.EvalExpression(args[0], vars)
		if err != nil {
			fmt.Printf("Invalid expression: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(result)
	},
}

func init() {
	evalCmd.Flags().StringArray("var", nil, "Variable as name=value (repeatable)")
	rootCmd.AddCommand(evalCmd)
}
