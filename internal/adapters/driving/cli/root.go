// Package cli implements the qul command surface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tarteel-labs/qul-indexer/internal/adapters/driven/agentset"
	"github.com/tarteel-labs/qul-indexer/internal/adapters/driven/config/file"
	"github.com/tarteel-labs/qul-indexer/internal/adapters/driven/llm/anthropic"
	"github.com/tarteel-labs/qul-indexer/internal/adapters/driven/vectara"
	"github.com/tarteel-labs/qul-indexer/internal/core/ports/driven"
	"github.com/tarteel-labs/qul-indexer/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Default local directories.
const (
	DefaultDownloadsDir = "downloads"
	DefaultOutputDir    = "output"
)

// Injectable backends. Left nil in production and resolved lazily from
// configuration; tests set them directly.
var (
	configStore driven.ConfigStore
	corpusStore driven.CorpusStore
	ingestStore driven.IngestStore
	llmService  driven.LLMService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "qul",
	Short: "Qul tafsir indexing toolkit",
	Long: `qul downloads Qul tafsir exports, converts the commentary into
search-ready documents and publishes them to the configured backends.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging to stderr")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

// config returns the injected config store, opening the default one on
// first use.
func config() (driven.ConfigStore, error) {
	if configStore != nil {
		return configStore, nil
	}

	store, err := file.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	configStore = store
	return store, nil
}

// newCorpusStore resolves the whole-document backend client.
func newCorpusStore() (driven.CorpusStore, error) {
	if corpusStore != nil {
		return corpusStore, nil
	}

	cfg, err := config()
	if err != nil {
		return nil, err
	}

	return vectara.NewClient(vectara.Config{
		APIKey:            cfg.GetString("vectara.api_key"),
		OAuthClientID:     cfg.GetString("vectara.oauth_client_id"),
		OAuthClientSecret: cfg.GetString("vectara.oauth_client_secret"),
		OAuthTokenURL:     cfg.GetString("vectara.oauth_token_url"),
		BaseURL:           cfg.GetString("vectara.base_url"),
	})
}

// newIngestStore resolves the per-section backend client.
func newIngestStore() (driven.IngestStore, error) {
	if ingestStore != nil {
		return ingestStore, nil
	}

	cfg, err := config()
	if err != nil {
		return nil, err
	}

	return agentset.NewClient(agentset.Config{
		APIToken:    cfg.GetString("agentset.api_token"),
		NamespaceID: cfg.GetString("agentset.namespace_id"),
		BaseURL:     cfg.GetString("agentset.base_url"),
	})
}

// newLLMService resolves the extraction model client.
func newLLMService() (driven.LLMService, error) {
	if llmService != nil {
		return llmService, nil
	}

	cfg, err := config()
	if err != nil {
		return nil, err
	}

	return anthropic.NewLLMService(anthropic.Config{
		APIKey: cfg.GetString("anthropic.api_key"),
		Model:  cfg.GetString("anthropic.model"),
	})
}

// corpusKey returns the configured Vectara corpus key.
func corpusKey() (string, error) {
	cfg, err := config()
	if err != nil {
		return "", err
	}

	key := cfg.GetString("vectara.corpus_key")
	if key == "" {
		key = "tafsirs"
	}
	return key, nil
}
