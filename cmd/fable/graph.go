package main

import (
	"fmt"
	"os"

	"github.com/aretw0/fable/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <story.yaml>",
	Short: "Export the story graph visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the story. With --save, the nodes
visited in that save are highlighted and its current node is marked.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		savePath, _ := cmd.Flags().GetString("save")

		output, err := cli.RenderGraph(cmd.Context(), args[0], savePath)
		if err != nil {
			fmt.Printf("Error generating graph: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(output)
	},
}

func init() {
	graphCmd.Flags().String("save", "", "Overlay progress from a save file")
	rootCmd.AddCommand(graphCmd)
}
