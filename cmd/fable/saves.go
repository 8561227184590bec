package main

import (
	"fmt"
	"os"

	"github.com/aretw0/fable/internal/adapters"
	"github.com/aretw0/fable/internal/cli"
	"github.com/spf13/cobra"
)

var savesCmd = &cobra.Command{
	Use:   "saves [dir]",
	Short: "List the save files in a directory",
	Long:  `Lists the .json saves in dir (default: FABLE_SAVE_DIR, or the working directory).`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := mustLoadConfig().SaveDir
		if len(args) > 0 {
			dir = args[0]
		}
		if dir == "" {
			dir = "."
		}

		if err := cli.ListSaves(cmd.Context(), adapters.NewFileStore(dir), os.Stdout); err != nil {
			fmt.Printf("Error listing saves: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(savesCmd)
}
