package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type providerInfo struct {
	Name         string
	DefaultModel string
	EnvKey       string
	Description  string
}

var knownProviders = []providerInfo{
	{
		Name:         "anthropic",
		DefaultModel: "claude-sonnet-4-0",
		EnvKey:       "ANTHROPIC_API_KEY",
		Description:  "Anthropic Claude API",
	},
	{
		Name:         "openai",
		DefaultModel: "gpt-4o",
		EnvKey:       "OPENAI_API_KEY",
		Description:  "OpenAI GPT API",
	},
	{
		Name:         "gemini",
		DefaultModel: "gemini-2.5-flash",
		EnvKey:       "GOOGLE_API_KEY",
		Description:  "Google Gemini API",
	},
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List available LLM providers",
	Long: `List the LLM providers available for document generation.

Each provider needs its API key set in the corresponding environment
variable (or in the config file).

Examples:
  pagesmith generate "Launch plan" --provider anthropic
  pagesmith generate "Launch plan" --provider openai --model gpt-4o-mini`,
	Run: runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "PROVIDER\tDEFAULT MODEL\tENV VAR\tSTATUS\tDESCRIPTION")
	fmt.Fprintln(w, "--------\t-------------\t-------\t------\t-----------")

	for _, p := range knownProviders {
		status := checkProviderStatus(p)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.Name, p.DefaultModel, p.EnvKey, status, p.Description)
	}
}

func checkProviderStatus(p providerInfo) string {
	if os.Getenv(p.EnvKey) != "" {
		return "✓ configured"
	}
	return "✗ not set"
}
