package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tarteel-labs/qul-indexer/internal/adapters/driven/download"
	"github.com/tarteel-labs/qul-indexer/internal/adapters/driven/source/sqlite"
	"github.com/tarteel-labs/qul-indexer/internal/core/ports/driven"
	"github.com/tarteel-labs/qul-indexer/internal/core/services"
)

var (
	pipelineFrom         int
	pipelineTo           int
	pipelineFailFast     bool
	pipelineCorpusKey    string
	pipelineDownloadsDir string
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline [tafsir]",
	Short: "Run download, mapping and publish in one go",
	Long: `Runs the full whole-document flow for one tafsir: download the
export, dump the ayah mapping and publish the surah range.`,
	Args: cobra.ExactArgs(1),
	RunE: runPipeline,
}

func init() {
	pipelineCmd.Flags().IntVar(&pipelineFrom, "from", 1, "first surah (inclusive)")
	pipelineCmd.Flags().IntVar(&pipelineTo, "to", 114, "last surah (inclusive)")
	pipelineCmd.Flags().BoolVar(&pipelineFailFast, "fail-fast", false, "abort on the first backend failure")
	pipelineCmd.Flags().StringVar(&pipelineCorpusKey, "corpus-key", "", "corpus key (default from config)")
	pipelineCmd.Flags().StringVar(&pipelineDownloadsDir, "downloads-dir", DefaultDownloadsDir, "directory for downloaded exports")
	rootCmd.AddCommand(pipelineCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	tafsir := args[0]

	key := pipelineCorpusKey
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

	pipeline := services.NewPipeline(
		download.NewDownloader(pipelineDownloadsDir, nil),
		func(path string) (driven.TafsirStore, error) { return sqlite.NewStore(path) },
		corpus,
		services.PipelineConfig{
			Tafsir:       tafsir,
			CorpusKey:    key,
			DownloadsDir: pipelineDownloadsDir,
			From:         pipelineFrom,
			To:           pipelineTo,
			FailFast:     pipelineFailFast,
		},
	)

	if err := pipeline.Run(cmd.Context()); err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	cmd.Println(successStyle.Render("Pipeline complete."))
	return nil
}
