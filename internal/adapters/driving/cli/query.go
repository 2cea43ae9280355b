package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
	"github.com/tarteel-labs/qul-indexer/internal/core/services"
)

var (
	queryFromAyah  string
	queryToAyah    string
	queryLimit     int
	queryJSON      bool
	queryCorpusKey string
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Run a verification query against published documents",
	Long: `Searches the whole-document backend, optionally restricted to a
verse range given as "surah:ayah" keys.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryFromAyah, "from-ayah", "", `range start as "surah:ayah"`)
	queryCmd.Flags().StringVar(&queryToAyah, "to-ayah", "", `range end as "surah:ayah"`)
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", 0, "maximum number of results")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	queryCmd.Flags().StringVar(&queryCorpusKey, "corpus-key", "", "corpus key (default from config)")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	var fromOrder, toOrder int
	if queryFromAyah != "" || queryToAyah != "" {
		var err error
		if fromOrder, err = domain.VerseKeyToOrder(queryFromAyah); err != nil {
			return fmt.Errorf("--from-ayah: %w", err)
		}
		if toOrder, err = domain.VerseKeyToOrder(queryToAyah); err != nil {
			return fmt.Errorf("--to-ayah: %w", err)
		}
	}

	key := queryCorpusKey
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

	results, err := services.NewQueryService(corpus, key).Query(cmd.Context(), args[0], fromOrder, toOrder, queryLimit)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println(headingStyle.Render("Results"))
	for i, result := range results {
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, result.DocumentID, result.Score)
		if key, ok := result.Metadata["ayah_key"].(string); ok {
			cmd.Println(dimStyle.Render("      ayah " + key))
		}
		cmd.Printf("      %s\n", result.Text)
		cmd.Println()
	}
	return nil
}
