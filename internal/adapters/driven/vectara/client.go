// Package vectara provides the whole-document corpus adapter over the
// Vectara v2 REST API.
package vectara

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
	"github.com/tarteel-labs/qul-indexer/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.CorpusStore = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.vectara.io"
	DefaultTimeout = 30 * time.Second

	// CreateTimeout covers whole-document uploads, which carry a full
	// surah of commentary and can take minutes server-side.
	CreateTimeout = 900 * time.Second
)

// Config holds configuration for the Vectara client. Either APIKey or
// the OAuth client credentials must be set; the API key wins when both
// are present.
type Config struct {
	// APIKey is the Vectara personal API key.
	APIKey string

	// OAuthClientID and OAuthClientSecret enable client-credentials
	// authentication instead of an API key.
	OAuthClientID     string
	OAuthClientSecret string

	// OAuthTokenURL is the token endpoint for client credentials.
	OAuthTokenURL string

	// BaseURL is the API base URL (default: https://api.vectara.io).
	BaseURL string

	// Timeout is the request timeout for everything except document
	// creation (default: 30s).
	Timeout time.Duration
}

// Client talks to the Vectara v2 API. Two HTTP clients are kept: the
// default one for short calls and a long-timeout one for document
// creation.
type Client struct {
	client       *http.Client
	createClient *http.Client
	baseURL      string
	apiKey       string
}

// NewClient creates a Vectara client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" && (cfg.OAuthClientID == "" || cfg.OAuthClientSecret == "") {
		return nil, fmt.Errorf("vectara: %w: set an API key or OAuth client credentials", domain.ErrBackendUnavailable)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	client := &http.Client{Timeout: cfg.Timeout}
	createClient := &http.Client{Timeout: CreateTimeout}

	if cfg.APIKey == "" {
		oauthCfg := &clientcredentials.Config{
			ClientID:     cfg.OAuthClientID,
			ClientSecret: cfg.OAuthClientSecret,
			TokenURL:     cfg.OAuthTokenURL,
		}
		// The oauth2 transport caches and refreshes the token itself.
		client = oauthCfg.Client(context.Background())
		client.Timeout = cfg.Timeout
		createClient = oauthCfg.Client(context.Background())
		createClient.Timeout = CreateTimeout
	}

	return &Client{
		client:       client,
		createClient: createClient,
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
	}, nil
}

// APIError is a non-2xx response from the Vectara API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vectara: status %d: %s", e.StatusCode, e.Message)
}

// DeleteDocument removes a document by id. A missing document fails
// with an error wrapping domain.ErrNotFound.
func (c *Client) DeleteDocument(ctx context.Context, corpusKey, documentID string) error {
	path := fmt.Sprintf("/v2/corpora/%s/documents/%s", url.PathEscape(corpusKey), url.PathEscape(documentID))
	resp, err := c.do(ctx, c.client, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
	case resp.StatusCode >= 300:
		return apiError(resp)
	}
	return nil
}

// CreateDocument uploads one whole-document payload using the extended
// timeout client.
func (c *Client) CreateDocument(ctx context.Context, corpusKey string, doc *domain.DocumentUnit) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	path := fmt.Sprintf("/v2/corpora/%s/documents", url.PathEscape(corpusKey))
	resp, err := c.do(ctx, c.createClient, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return apiError(resp)
	}
	return nil
}

// queryRequest is the Vectara v2 corpus query format.
type queryRequest struct {
	Query  string      `json:"query"`
	Search querySearch `json:"search"`
}

type querySearch struct {
	Limit          int    `json:"limit"`
	MetadataFilter string `json:"metadata_filter,omitempty"`
}

// queryResponse is the Vectara v2 corpus query response format.
type queryResponse struct {
	SearchResults []queryHit `json:"search_results"`
}

type queryHit struct {
	Text             string         `json:"text"`
	Score            float64        `json:"score"`
	DocumentID       string         `json:"document_id"`
	PartMetadata     map[string]any `json:"part_metadata"`
	DocumentMetadata map[string]any `json:"document_metadata"`
}

// Query runs a ranked search restricted by a metadata filter expression.
func (c *Client) Query(ctx context.Context, corpusKey, query, metadataFilter string, limit int) ([]domain.QueryResult, error) {
	body, err := json.Marshal(queryRequest{
		Query: query,
		Search: querySearch{
			Limit:          limit,
			MetadataFilter: metadataFilter,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	path := fmt.Sprintf("/v2/corpora/%s/query", url.PathEscape(corpusKey))
	resp, err := c.do(ctx, c.client, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, apiError(resp)
	}

	var decoded queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode query response: %w", err)
	}

	results := make([]domain.QueryResult, 0, len(decoded.SearchResults))
	for _, hit := range decoded.SearchResults {
		results = append(results, domain.QueryResult{
			DocumentID: hit.DocumentID,
			Text:       hit.Text,
			Score:      hit.Score,
			Metadata:   hit.PartMetadata,
		})
	}
	return results, nil
}

// do issues one API request with auth headers set.
func (c *Client) do(ctx context.Context, client *http.Client, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	return resp, nil
}

// apiError reads a failed response into an APIError. The body is
// truncated to keep error output readable.
func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return &APIError{StatusCode: resp.StatusCode, Message: string(body)}
}
