package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tarteel-labs/qul-indexer/internal/adapters/driven/download"
)

var downloadDir string

var downloadCmd = &cobra.Command{
	Use:   "download [tafsir]",
	Short: "Download a tafsir export",
	Long: `Downloads the named tafsir export from the CDN and decompresses it
into the downloads directory. Already-downloaded exports are kept as-is.

Known exports: ` + knownExports() + `.`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVar(&downloadDir, "downloads-dir", DefaultDownloadsDir, "directory for downloaded exports")
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	d := download.NewDownloader(downloadDir, nil)

	path, err := d.Fetch(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	cmd.Println(successStyle.Render("Downloaded: " + path))
	return nil
}

// knownExports lists the built-in export names for help text.
func knownExports() string {
	names := make([]string, 0, len(download.DefaultExports))
	for name := range download.DefaultExports {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
