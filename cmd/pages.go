package cmd

import (
	"fmt"

	"github.com/itsmostafa/catpage/internal/render"
	"github.com/itsmostafa/catpage/internal/runner"
	"github.com/spf13/cobra"
)

var pagesWindow int

var pagesCmd = &cobra.Command{
	Use:   "pages <category>",
	Short: "List the pages of one category",
	Long: `List the pages of a category with their output paths and neighbours.
--window n also prints the n page numbers a pager around each page would show.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := runner.Build(runner.Config{Project: projectConfig, DryRun: true})
		if err != nil {
			return err
		}

		c, ok := result.Index.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown category: %s", args[0])
		}

		render.FormatPages(cmd.OutOrStdout(), result.Index, c, pagesWindow)
		return nil
	},
}

func init() {
	pagesCmd.Flags().IntVarP(&pagesWindow, "window", "n", 0, "Show a window of n page numbers around each page")

	rootCmd.AddCommand(pagesCmd)
}
