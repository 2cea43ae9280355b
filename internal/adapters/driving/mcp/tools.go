package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
)

// QueryInput is the input schema for the tafsir query tool.
type QueryInput struct {
	Query    string `json:"query" jsonschema:"the search query to run against published tafsir"`
	FromAyah string `json:"from_ayah,omitempty" jsonschema:"range start as surah:ayah, e.g. 2:1"`
	ToAyah   string `json:"to_ayah,omitempty" jsonschema:"range end as surah:ayah, e.g. 2:255"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// QueryOutput is the output schema for the tafsir query tool.
type QueryOutput struct {
	Results []QueryResultOutput `json:"results"`
	Count   int                 `json:"count"`
}

// QueryResultOutput represents a single query result.
type QueryResultOutput struct {
	DocumentID string  `json:"document_id"`
	AyahKey    string  `json:"ayah_key,omitempty"`
	Score      float64 `json:"score"`
	Text       string  `json:"text"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "tafsir_query",
		Description: "Search published Quranic commentary, optionally restricted to a verse range",
	}, s.handleQuery)
}

// handleQuery handles the tafsir query tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	var fromOrder, toOrder int
	if input.FromAyah != "" || input.ToAyah != "" {
		var err error
		if fromOrder, err = domain.VerseKeyToOrder(input.FromAyah); err != nil {
			return nil, QueryOutput{}, err
		}
		if toOrder, err = domain.VerseKeyToOrder(input.ToAyah); err != nil {
			return nil, QueryOutput{}, err
		}
	}

	results, err := s.ports.Querier.Query(ctx, input.Query, fromOrder, toOrder, limit)
	if err != nil {
		return nil, QueryOutput{}, err
	}

	output := QueryOutput{
		Results: make([]QueryResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		ayahKey, _ := results[i].Metadata["ayah_key"].(string)
		output.Results[i] = QueryResultOutput{
			DocumentID: results[i].DocumentID,
			AyahKey:    ayahKey,
			Score:      results[i].Score,
			Text:       results[i].Text,
		}
	}

	return nil, output, nil
}
