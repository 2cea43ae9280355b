package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tarteel-labs/qul-indexer/internal/adapters/driven/source/sqlite"
	"github.com/tarteel-labs/qul-indexer/internal/core/services"
)

var mappingDownloadsDir string

var mappingCmd = &cobra.Command{
	Use:   "mapping [tafsir]",
	Short: "Dump the ayah to group-ayah mapping",
	Long: `Reads a downloaded tafsir export and writes its ayah_key to
group_ayah_key mapping as a JSON file next to the export.`,
	Args: cobra.ExactArgs(1),
	RunE: runMapping,
}

func init() {
	mappingCmd.Flags().StringVar(&mappingDownloadsDir, "downloads-dir", DefaultDownloadsDir, "directory with downloaded exports")
	rootCmd.AddCommand(mappingCmd)
}

func runMapping(cmd *cobra.Command, args []string) error {
	tafsir := args[0]

	store, err := sqlite.NewStore(filepath.Join(mappingDownloadsDir, tafsir+".sqlite"))
	if err != nil {
		return err
	}
	defer store.Close()

	path, err := services.WriteAyahMapping(cmd.Context(), store, mappingDownloadsDir, tafsir)
	if err != nil {
		return fmt.Errorf("write mapping: %w", err)
	}

	cmd.Println(successStyle.Render("Mapping written: " + path))
	return nil
}
