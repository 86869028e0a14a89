package main

import (
	"centrum/internal/version"

	"github.com/spf13/cobra"
)

var (
	// configDir is the CLI --config-dir flag value
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "centrum",
	Short: "centrum - server-side rendering for the clinic website",
	Long: `centrum serves the clinic website with per-route server-side rendering:
it classifies incoming paths, fetches the content a page needs from the data
API, and splices generated SEO metadata and initial state into the HTML
template before handing the rest of the page to the client application.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("centrum version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".",
		"Directory containing centrum.json")
}
