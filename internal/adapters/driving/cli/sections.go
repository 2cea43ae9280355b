package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tarteel-labs/qul-indexer/internal/adapters/driven/source/sqlite"
	"github.com/tarteel-labs/qul-indexer/internal/core/services"
)

var (
	sectionsFrom         int
	sectionsTo           int
	sectionsOutputDir    string
	sectionsDownloadsDir string
)

var sectionsCmd = &cobra.Command{
	Use:   "sections [tafsir]",
	Short: "Materialise per-section artifacts on disk",
	Long: `Writes one plain-text file and one metadata sidecar per commentary
section under the output directory, grouped by surah. These artifacts
are what the ingest command uploads.`,
	Args: cobra.ExactArgs(1),
	RunE: runSections,
}

func init() {
	sectionsCmd.Flags().IntVar(&sectionsFrom, "from", 1, "first surah (inclusive)")
	sectionsCmd.Flags().IntVar(&sectionsTo, "to", 114, "last surah (inclusive)")
	sectionsCmd.Flags().StringVar(&sectionsOutputDir, "output-dir", DefaultOutputDir, "directory for section artifacts")
	sectionsCmd.Flags().StringVar(&sectionsDownloadsDir, "downloads-dir", DefaultDownloadsDir, "directory with downloaded exports")
	rootCmd.AddCommand(sectionsCmd)
}

func runSections(cmd *cobra.Command, args []string) error {
	tafsir := args[0]

	store, err := sqlite.NewStore(filepath.Join(sectionsDownloadsDir, tafsir+".sqlite"))
	if err != nil {
		return err
	}
	defer store.Close()

	m := services.NewMaterialiser(store, sectionsOutputDir, tafsir)
	written, skipped, err := m.MaterialiseSurahs(cmd.Context(), sectionsFrom, sectionsTo)
	if err != nil {
		return fmt.Errorf("materialise failed: %w", err)
	}

	cmd.Println(successStyle.Render(fmt.Sprintf("%d artifacts written", written)))
	if skipped > 0 {
		cmd.Println(warnStyle.Render(fmt.Sprintf("%d sections skipped", skipped)))
	}
	return nil
}
