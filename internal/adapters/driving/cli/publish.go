package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tarteel-labs/qul-indexer/internal/adapters/driven/source/sqlite"
	"github.com/tarteel-labs/qul-indexer/internal/core/ports/driving"
	"github.com/tarteel-labs/qul-indexer/internal/core/services"
)

var (
	publishFrom         int
	publishTo           int
	publishFailFast     bool
	publishCorpusKey    string
	publishDownloadsDir string
)

var publishCmd = &cobra.Command{
	Use:   "publish [tafsir]",
	Short: "Publish whole-surah documents to the corpus backend",
	Long: `Builds one composite document per surah from a downloaded export and
replaces it in the whole-document backend. Surahs with no extractable
commentary are skipped without touching the backend.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().IntVar(&publishFrom, "from", 1, "first surah (inclusive)")
	publishCmd.Flags().IntVar(&publishTo, "to", 114, "last surah (inclusive)")
	publishCmd.Flags().BoolVar(&publishFailFast, "fail-fast", false, "abort on the first backend failure")
	publishCmd.Flags().StringVar(&publishCorpusKey, "corpus-key", "", "corpus key (default from config)")
	publishCmd.Flags().StringVar(&publishDownloadsDir, "downloads-dir", DefaultDownloadsDir, "directory with downloaded exports")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	tafsir := args[0]

	key := publishCorpusKey
	if key == "" {
		var err error
		if key, err = corpusKey(); err != nil {
			return err
		}
	}

	corpus, err := newCorpusStore()
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(filepath.Join(publishDownloadsDir, tafsir+".sqlite"))
	if err != nil {
		return err
	}
	defer store.Close()

	publisher := services.NewPublisher(services.NewBuilder(store), corpus, key, tafsir, publishDownloadsDir)
	report, err := publisher.PublishSurahs(cmd.Context(), driving.PublishOptions{
		From:     publishFrom,
		To:       publishTo,
		FailFast: publishFailFast,
	})
	if err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}

	cmd.Println(headingStyle.Render(fmt.Sprintf("Publish %s (%d-%d)", tafsir, publishFrom, publishTo)))
	cmd.Println(successStyle.Render(fmt.Sprintf("  published: %d", report.Published)))
	cmd.Println(dimStyle.Render(fmt.Sprintf("  skipped:   %d", report.Skipped)))
	if report.Failed > 0 {
		cmd.Println(errorStyle.Render(fmt.Sprintf("  failed:    %d", report.Failed)))
	}
	return nil
}
