package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skylarmartinex/pagesmith/internal/layout"
)

var (
	layoutOutput string
	layoutPretty bool
)

var layoutCmd = &cobra.Command{
	Use:   "layout <model.json>",
	Short: "Assign section layouts to a document model",
	Long: `Run the layout pipeline over a content model: each section gets a
visual arrangement chosen from its content, with monotony breaks and
side alternation applied across the document.

Layouts already set on sections are kept when they still fit the
section's content.

Examples:
  pagesmith layout model.json -o laid-out.json
  pagesmith layout - < model.json`,
	Args: cobra.ExactArgs(1),
	RunE: runLayout,
}

func init() {
	layoutCmd.Flags().StringVarP(&layoutOutput, "output", "o", "", "output file path (default: stdout)")
	layoutCmd.Flags().BoolVar(&layoutPretty, "pretty", true, "indent JSON output")

	rootCmd.AddCommand(layoutCmd)
}

func runLayout(cmd *cobra.Command, args []string) error {
	m, err := readModel(args[0])
	if err != nil {
		return err
	}

	m = layout.ApplyModel(m)

	var data []byte
	if layoutPretty {
		data, err = json.MarshalIndent(m, "", "  ")
	} else {
		data, err = json.Marshal(m)
	}
	if err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}
	data = append(data, '\n')

	return writeOutput(layoutOutput, data)
}
