package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var outDir string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the published site as static files",
	Long: `The build command fetches every published post from Contentful and writes
the site to the output directory. Drafts are never exported.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		stats, err := newApp(appConfig).Build(cmd.Context(), outDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Built %d posts into %s (%d skipped)\n", stats.Posts, outDir, stats.Skipped)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&outDir, "out", "o", "public", "output directory")
	rootCmd.AddCommand(buildCmd)
}
