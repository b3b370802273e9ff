package cmd

import (
	"github.com/itsmostafa/catpage/internal/render"
	"github.com/itsmostafa/catpage/internal/runner"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the category tree",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := runner.Build(runner.Config{Project: projectConfig, DryRun: true})
		if err != nil {
			return err
		}

		render.FormatTree(cmd.OutOrStdout(), result.Index)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
