package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
	"github.com/tarteel-labs/qul-indexer/internal/core/services"
)

var ingestOutputDir string

var ingestCmd = &cobra.Command{
	Use:   "ingest [tafsir]",
	Short: "Upload section artifacts and submit ingest jobs",
	Long: `Uploads every materialised section artifact to the per-section
backend and submits one ingest job per surah. Surahs whose uploads all
fail are abandoned without a job; a failed job submission never stops
the remaining surahs.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestOutputDir, "output-dir", DefaultOutputDir, "directory with section artifacts")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	store, err := newIngestStore()
	if err != nil {
		return err
	}

	reports, err := services.NewIngestor(store, ingestOutputDir, args[0]).IngestAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Println(headingStyle.Render("Ingest " + args[0]))
	for _, report := range reports {
		line := fmt.Sprintf("  surah %03d: %s (%d uploaded, %d skipped, %d failed)",
			report.Surah, report.Outcome, report.Uploaded, report.Skipped, report.Failed)
		switch report.Outcome {
		case domain.OutcomeJobCreated:
			cmd.Println(successStyle.Render(line + " job " + report.JobID))
		case domain.OutcomeNoArtifacts:
			cmd.Println(dimStyle.Render(line))
		default:
			cmd.Println(errorStyle.Render(line))
		}
	}
	return nil
}
