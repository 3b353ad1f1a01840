// Package cli implements the pagesmith command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the version string shown by the version command.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "pagesmith",
	Short: "AI-assisted document generation and export",
	Long: `pagesmith turns a topic brief into a structured document and exports
it to HTML, Markdown, EPUB, PPTX or PDF.

The pipeline has three stages: generation (an LLM produces a content
model from the brief), layout (each section is assigned a visual
arrangement) and export (the model is serialized into the requested
format).

Examples:
  pagesmith generate "Remote work onboarding" -o model.json
  pagesmith export model.json -f epub -o onboarding.epub
  pagesmith serve --addr :8080`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pagesmith version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pagesmith %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
