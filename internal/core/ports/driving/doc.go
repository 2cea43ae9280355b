// Package driving defines the interfaces through which the CLI, the
// MCP server and the interactive review drive the pipeline services.
package driving
