package main

import (
	"fmt"
	"os"

	"github.com/aretw0/fable/internal/cli"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play <story.yaml>",
	Short: "Play a story in the terminal",
	Long: `Plays a story interactively. Type a choice number (or its id) to move on,
'save' to write the save file given by --save, and 'quit' to leave.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.PlayOptions{StoryPath: args[0]}
		opts.Entry, _ = cmd.Flags().GetString("entry")
		opts.LoadPath, _ = cmd.Flags().GetString("load")
		opts.SavePath, _ = cmd.Flags().GetString("save")
		opts.Plain, _ = cmd.Flags().GetBool("plain")
		opts.Verbose, _ = cmd.Flags().GetBool("verbose")
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		if metrics, _ := cmd.Flags().GetBool("metrics"); metrics {
			opts.MetricsOut = os.Stderr
		}

		cfg := mustLoadConfig()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		if err := cli.RunPlay(ctx, opts, cfg, os.Stdin, os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	playCmd.Flags().String("entry", "", "Node to start from instead of the start passage")
	playCmd.Flags().String("load", "", "Resume from a save file")
	playCmd.Flags().String("save", "", "Save file written by the 'save' command and on exit")
	playCmd.Flags().Bool("plain", false, "Disable markdown rendering and the banner")
	playCmd.Flags().BoolP("verbose", "v", false, "Show the runtime events behind each frame")
	playCmd.Flags().Bool("json", false, "Exchange JSON lines instead of text menus")
	playCmd.Flags().Bool("debug", false, "Log lifecycle events to stderr")
	playCmd.Flags().Bool("metrics", false, "Print session metrics to stderr on exit")
	rootCmd.AddCommand(playCmd)
}
