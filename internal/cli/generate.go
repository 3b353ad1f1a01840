package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skylarmartinex/pagesmith/internal/generate"
	"github.com/skylarmartinex/pagesmith/internal/images"
	"github.com/skylarmartinex/pagesmith/internal/layout"
)

var (
	generateProvider string
	generateModel    string
	generateOutline  []string
	generateSections int
	generateVoice    string
	generatePersona  string
	generateOutput   string
	generateNoLayout bool
	generateNoImages bool
	generateVerbose  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate a document model from a topic brief",
	Long: `Generate a structured content model from a topic brief using the
configured LLM provider.

The result is the document model as JSON, with section layouts already
assigned. Feed it to the export command to produce a document, or edit
it first.

Examples:
  pagesmith generate "Remote work onboarding"
  pagesmith generate "Q3 product update" --sections 4 -o model.json
  pagesmith generate "API design guide" --outline "Why it matters" --outline "Core rules"
  pagesmith generate "Launch plan" --provider openai --voice "casual and direct"`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateProvider, "provider", "p", "", "LLM provider (anthropic, openai, gemini)")
	generateCmd.Flags().StringVarP(&generateModel, "model", "m", "", "model name override")
	generateCmd.Flags().StringArrayVar(&generateOutline, "outline", nil, "fixed section title (repeatable)")
	generateCmd.Flags().IntVar(&generateSections, "sections", 0, "number of sections (default 6, ignored with --outline)")
	generateCmd.Flags().StringVar(&generateVoice, "voice", "", "brand voice for the writing")
	generateCmd.Flags().StringVar(&generatePersona, "persona", "", "target reader persona")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output file path (default: stdout)")
	generateCmd.Flags().BoolVar(&generateNoLayout, "no-layout", false, "skip layout assignment")
	generateCmd.Flags().BoolVar(&generateNoImages, "no-images", false, "skip stock image search")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	provider, err := buildProvider(ctx, cfg, generateProvider)
	if err != nil {
		return err
	}
	if err := provider.Validate(); err != nil {
		return fmt.Errorf("provider %s not ready: %w", provider.Name(), err)
	}

	opts := generate.DefaultOptions()
	if pc, ok := cfg.GetProvider(provider.Name()); ok {
		if pc.MaxTokens > 0 {
			opts.MaxTokens = pc.MaxTokens
		}
		if pc.Temperature > 0 {
			opts.Temperature = pc.Temperature
		}
	}
	if generateModel != "" {
		opts.Model = generateModel
	}

	req := generate.Request{
		Topic:         args[0],
		Outline:       generateOutline,
		SectionCount:  generateSections,
		BrandVoice:    generateVoice,
		TargetPersona: generatePersona,
	}

	if generateVerbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "generating with %s...\n", provider.Name())
	}

	result, err := provider.Generate(ctx, req, opts)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	m := result.Model
	if !generateNoImages {
		logger, lerr := newLogger(generateVerbose)
		if lerr != nil {
			return lerr
		}
		defer logger.Sync()
		m = images.Attach(ctx, buildSearcher(cfg), logger, m)
	}
	if !generateNoLayout {
		m = layout.ApplyModel(m)
	}

	if generateVerbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "generated %d sections (%d tokens)\n",
			len(m.Sections), result.Usage.TotalTokens)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}
	data = append(data, '\n')

	if err := writeOutput(generateOutput, data); err != nil {
		return err
	}
	if generateOutput != "" && generateVerbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "model written: %s\n", generateOutput)
	}
	return nil
}
