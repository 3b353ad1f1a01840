package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skylarmartinex/pagesmith/internal/export"
	"github.com/skylarmartinex/pagesmith/internal/layout"
)

var (
	exportFormat   string
	exportOutput   string
	exportTemplate string
	exportLayout   bool
	exportVerbose  bool
)

var exportCmd = &cobra.Command{
	Use:   "export <model.json>",
	Short: "Export a document model to a target format",
	Long: `Export a content model (JSON, as produced by the generate command)
to one of the supported formats: html, markdown, epub, pptx, pdf.

Use "-" as the model path to read from stdin. Without -o the output
filename is derived from the document title.

Examples:
  pagesmith export model.json -f html -o report.html
  pagesmith export model.json -f epub
  pagesmith export model.json -f pdf --template magazine
  pagesmith generate "Launch plan" | pagesmith export - -f pptx`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "html", "output format (html, markdown, epub, pptx, pdf)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file path (default: derived from title)")
	exportCmd.Flags().StringVar(&exportTemplate, "template", "", "pdf template (minimal, magazine, slide-deck)")
	exportCmd.Flags().BoolVar(&exportLayout, "layout", true, "run layout assignment before export")
	exportCmd.Flags().BoolVarP(&exportVerbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(exportVerbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	formats, err := buildFormats(cfg, logger)
	if err != nil {
		return err
	}
	serializer, err := formats.Get(exportFormat)
	if err != nil {
		return err
	}

	m, err := readModel(args[0])
	if err != nil {
		return err
	}
	if exportLayout {
		m = layout.ApplyModel(m)
	}

	opts := exportOptions(cfg)
	if exportTemplate != "" {
		opts.TemplateID = exportTemplate
	}

	data, err := serializer.Serialize(cmd.Context(), m, opts)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	out := exportOutput
	if out == "" {
		out = export.Filename(m, serializer)
	}
	if err := writeOutput(out, data); err != nil {
		return err
	}

	if exportVerbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "exported %s (%d bytes): %s\n",
			serializer.Format(), len(data), out)
	}
	return nil
}
