// Package driven defines the interfaces the pipeline core depends on:
// the tafsir row source, the two publishing backends, the export
// downloader, the LLM service and the config store. Adapters under
// internal/adapters/driven implement them.
package driven
