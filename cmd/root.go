package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/itsmostafa/catpage/internal/config"
	"github.com/itsmostafa/catpage/internal/version"
	"github.com/spf13/cobra"
)

var cfgFile string
var projectConfig config.Config

var rootCmd = &cobra.Command{
	Use:   "catpage",
	Short: "Category pagination for static sites",
	Long: `catpage files content items into a tree of dot-delimited categories
(news.world belongs to news.world, news and the default bucket), sorts and
paginates every configured category, and writes a manifest of the pages the
rendering stage should produce.

Category options live in one file per key under the categories directory:
news.json, news.world.yaml, default.jsonc.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		projectConfig = cfg
		return nil
	},
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("catpage %s\n", version.String()))

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./catpage.yaml)")
	flags.String("content", "content", "content directory")
	flags.String("categories", "categories", "directory of per-category option files")
	flags.String("out", "public", "output directory for the manifest")
	flags.String("manifest", "manifest.json", "manifest file name inside the output directory")
	flags.String("policy", "unrestricted", "which key prefixes become categories (unrestricted, configured-only)")
	flags.StringSlice("only", nil, "paginate only these category keys; each must have items")
	flags.Duration("expr-timeout", time.Second, "time limit for one sortBy/groupBy/filter evaluation")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
