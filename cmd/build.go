package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/itsmostafa/catpage/internal/runner"
	"github.com/spf13/cobra"
)

var buildWatch bool
var buildDryRun bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build category pages and write the manifest",
	Long: `Load content and category options, paginate every configured category and
write the merged manifest to the output directory. With --watch the build
reruns whenever the content or categories directories change.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := runner.Config{
			Project: projectConfig,
			Output:  cmd.OutOrStdout(),
			DryRun:  buildDryRun,
		}

		if buildWatch {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runner.Watch(ctx, cfg)
		}

		_, err := runner.Run(cfg)
		return err
	},
}

func init() {
	buildCmd.Flags().BoolVarP(&buildWatch, "watch", "w", false, "Rebuild when content or category options change")
	buildCmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "Build without writing the manifest")

	rootCmd.AddCommand(buildCmd)
}
