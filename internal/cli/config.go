package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/skylarmartinex/pagesmith/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage the pagesmith configuration.

Config file location: ~/.pagesmith/config.yaml

Subcommands:
  show    display the current configuration
  init    create a default config file
  set     change a configuration value
  path    print the config file path`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the current configuration",
	Long: `Display the configuration as it is stored on disk.

API keys referencing environment variables are shown unexpanded. The
table below the config lists which of those variables are set.`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long: `Create a default config file at ~/.pagesmith/config.yaml.

Fails if the file already exists. Use --force to overwrite it.`,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a configuration value",
	Long: `Change a configuration value and save the file.

Supported keys:
  default_provider   default LLM provider (anthropic, openai, gemini)
  server.addr        HTTP listen address
  storage.backend    project store backend (memory, redis)
  pdf.engine         PDF rasterizer (chrome, local)
  export.template    default PDF template (minimal, magazine, slide-deck)

Examples:
  pagesmith config set default_provider openai
  pagesmith config set pdf.engine local`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Run: func(cmd *cobra.Command, args []string) {
		loader, err := config.NewLoader()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			return
		}
		fmt.Println(loader.ConfigPath())
	},
}

var configForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	loader, err := config.NewLoader()
	if err != nil {
		return fmt.Errorf("initializing config loader: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if loader.Exists() {
		fmt.Fprintf(cmd.OutOrStdout(), "config file: %s\n\n", loader.ConfigPath())
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "config file: (using defaults)\n\n")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("rendering config: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	fmt.Fprintln(cmd.OutOrStdout(), "environment:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	envVars := []struct {
		key   string
		desc  string
		value string
	}{
		{"ANTHROPIC_API_KEY", "Anthropic API key", maskAPIKey(os.Getenv("ANTHROPIC_API_KEY"))},
		{"OPENAI_API_KEY", "OpenAI API key", maskAPIKey(os.Getenv("OPENAI_API_KEY"))},
		{"GOOGLE_API_KEY", "Google API key", maskAPIKey(os.Getenv("GOOGLE_API_KEY"))},
		{"UNSPLASH_ACCESS_KEY", "Unsplash access key", maskAPIKey(os.Getenv("UNSPLASH_ACCESS_KEY"))},
		{"PEXELS_API_KEY", "Pexels API key", maskAPIKey(os.Getenv("PEXELS_API_KEY"))},
	}

	for _, ev := range envVars {
		status := "(not set)"
		if ev.value != "" {
			status = ev.value
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", ev.key, ev.desc, status)
	}
	w.Flush()

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	loader, err := config.NewLoader()
	if err != nil {
		return fmt.Errorf("initializing config loader: %w", err)
	}

	if loader.Exists() && !configForce {
		return fmt.Errorf("config file already exists: %s\nuse --force to overwrite", loader.ConfigPath())
	}

	if err := loader.Save(config.DefaultConfig()); err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "config file created: %s\n", loader.ConfigPath())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	loader, err := config.NewLoader()
	if err != nil {
		return fmt.Errorf("initializing config loader: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	switch key {
	case "default_provider":
		validProviders := []string{"anthropic", "openai", "gemini"}
		if !contains(validProviders, value) {
			return fmt.Errorf("invalid provider: %s (supported: %s)", value, strings.Join(validProviders, ", "))
		}
		cfg.DefaultProvider = value

	case "server.addr":
		if value == "" {
			return fmt.Errorf("server address cannot be empty")
		}
		cfg.Server.Addr = value

	case "storage.backend":
		validBackends := []string{"memory", "redis"}
		if !contains(validBackends, value) {
			return fmt.Errorf("invalid storage backend: %s (supported: %s)", value, strings.Join(validBackends, ", "))
		}
		cfg.Storage.Backend = value

	case "pdf.engine":
		validEngines := []string{"chrome", "local"}
		if !contains(validEngines, value) {
			return fmt.Errorf("invalid pdf engine: %s (supported: %s)", value, strings.Join(validEngines, ", "))
		}
		cfg.PDF.Engine = value

	case "export.template":
		validTemplates := []string{"minimal", "magazine", "slide-deck"}
		if !contains(validTemplates, value) {
			return fmt.Errorf("invalid template: %s (supported: %s)", value, strings.Join(validTemplates, ", "))
		}
		cfg.Export.TemplateID = value

	default:
		return fmt.Errorf("unknown config key: %s\nsupported keys: default_provider, server.addr, storage.backend, pdf.engine, export.template", key)
	}

	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "config updated: %s = %s\n", key, value)
	return nil
}

func maskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
