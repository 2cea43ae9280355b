package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tarteel-labs/qul-indexer/internal/core/services"
)

var (
	fiqhInputDir  string
	fiqhOutputDir string
)

var fiqhCmd = &cobra.Command{
	Use:   "fiqh",
	Short: "Fiqh card extraction commands",
}

var fiqhConvertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Extract structured issues from fiqh card DOCX files",
	Long: `Reads every DOCX file in the input directory, extracts one
structured issue per card table using the configured model, and writes
one JSON file per input into the output directory.`,
	RunE: runFiqhConvert,
}

func init() {
	fiqhConvertCmd.Flags().StringVar(&fiqhInputDir, "input", ".", "directory with DOCX card files")
	fiqhConvertCmd.Flags().StringVar(&fiqhOutputDir, "output", "fiqh-json", "directory for extracted JSON")
	fiqhCmd.AddCommand(fiqhConvertCmd)
	rootCmd.AddCommand(fiqhCmd)
}

func runFiqhConvert(cmd *cobra.Command, _ []string) error {
	llm, err := newLLMService()
	if err != nil {
		return err
	}

	cmd.Println(dimStyle.Render("Using model " + llm.ModelName()))
	if err := services.NewFiqhConverter(llm).ConvertDirectory(cmd.Context(), fiqhInputDir, fiqhOutputDir); err != nil {
		return fmt.Errorf("convert failed: %w", err)
	}

	cmd.Println(successStyle.Render("Conversion complete: " + fiqhOutputDir))
	return nil
}
