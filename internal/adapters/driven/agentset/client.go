// Package agentset provides the per-section ingest adapter over the
// Agentset namespace API.
package agentset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
	"github.com/tarteel-labs/qul-indexer/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.IngestStore = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.agentset.ai"
	DefaultTimeout = 60 * time.Second

	// DefaultRequestsPerSecond bounds API calls. Uploads to pre-signed
	// URLs go straight to object storage and are not throttled.
	DefaultRequestsPerSecond = 5
)

// Config holds configuration for the Agentset client.
type Config struct {
	// APIToken is the bearer token (required).
	APIToken string

	// NamespaceID scopes every call (required).
	NamespaceID string

	// BaseURL is the API base URL (default: https://api.agentset.ai).
	BaseURL string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration

	// RequestsPerSecond overrides the API rate limit (default: 5).
	RequestsPerSecond float64
}

// Client talks to the Agentset API for one namespace.
type Client struct {
	client    *http.Client
	baseURL   string
	token     string
	namespace string
	limiter   *rate.Limiter
}

// NewClient creates an Agentset client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIToken == "" || cfg.NamespaceID == "" {
		return nil, fmt.Errorf("agentset: %w: set an API token and namespace id", domain.ErrBackendUnavailable)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &Client{
		client:    &http.Client{Timeout: cfg.Timeout},
		baseURL:   cfg.BaseURL,
		token:     cfg.APIToken,
		namespace: cfg.NamespaceID,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}, nil
}

// APIError is a non-2xx response from the Agentset API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("agentset: status %d: %s", e.StatusCode, e.Message)
}

type createUploadRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	FileSize    int64  `json:"fileSize"`
}

type createUploadResponse struct {
	Data struct {
		URL string `json:"url"`
		Key string `json:"key"`
	} `json:"data"`
}

// CreateUpload requests a pre-signed upload slot for one file.
func (c *Client) CreateUpload(ctx context.Context, fileName, contentType string, size int64) (*domain.UploadTicket, error) {
	var decoded createUploadResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/namespace/"+url.PathEscape(c.namespace)+"/uploads",
		createUploadRequest{FileName: fileName, ContentType: contentType, FileSize: size}, &decoded)
	if err != nil {
		return nil, err
	}

	return &domain.UploadTicket{
		UploadURL: decoded.Data.URL,
		ObjectKey: decoded.Data.Key,
	}, nil
}

// Upload PUTs raw bytes to a pre-signed URL. The URL carries its own
// authorisation, so no bearer token is attached.
func (c *Client) Upload(ctx context.Context, uploadURL string, body io.Reader, size int64, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, body)
	if err != nil {
		return fmt.Errorf("create upload request: %w", err)
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("put upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return apiError(resp)
	}
	return nil
}

type ingestJobRequest struct {
	Name       string           `json:"name,omitempty"`
	ExternalID string           `json:"externalId,omitempty"`
	Payload    ingestJobPayload `json:"payload"`
	Config     ingestJobConfig  `json:"config"`
}

type ingestJobPayload struct {
	Type  string          `json:"type"`
	Items []ingestJobItem `json:"items"`
}

type ingestJobItem struct {
	Type     string         `json:"type"`
	Key      string         `json:"key"`
	FileName string         `json:"fileName"`
	Name     string         `json:"name,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type ingestJobConfig struct {
	ChunkSize    int `json:"chunkSize"`
	MaxChunkSize int `json:"maxChunkSize"`
	ChunkOverlap int `json:"chunkOverlap"`
}

type ingestJobResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// CreateIngestJob submits one batch referencing uploaded object keys.
func (c *Client) CreateIngestJob(ctx context.Context, job *domain.IngestJob) (string, error) {
	items := make([]ingestJobItem, 0, len(job.Items))
	for _, item := range job.Items {
		items = append(items, ingestJobItem{
			Type:     "MANAGED_FILE",
			Key:      item.ObjectKey,
			FileName: item.FileName,
			Name:     item.Meta.GroupAyahKey,
			Metadata: metaToMap(item.Meta),
		})
	}

	req := ingestJobRequest{
		Name:       job.Name,
		ExternalID: job.ExternalID,
		Payload:    ingestJobPayload{Type: "BATCH", Items: items},
		Config: ingestJobConfig{
			ChunkSize:    job.Chunk.ChunkSize,
			MaxChunkSize: job.Chunk.MaxChunkSize,
			ChunkOverlap: job.Chunk.ChunkOverlap,
		},
	}

	var decoded ingestJobResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/namespace/"+url.PathEscape(c.namespace)+"/ingest-jobs", req, &decoded)
	if err != nil {
		return "", err
	}
	return decoded.Data.ID, nil
}

type listDocumentsResponse struct {
	Data       []listedDocJSON `json:"data"`
	Pagination struct {
		NextCursor string `json:"nextCursor"`
	} `json:"pagination"`
}

type listedDocJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListDocuments pages through the namespace's document listing.
func (c *Client) ListDocuments(ctx context.Context, cursor string, pageSize int) (*driven.DocumentPage, error) {
	query := url.Values{}
	query.Set("perPage", strconv.Itoa(pageSize))
	if cursor != "" {
		query.Set("cursor", cursor)
	}

	var decoded listDocumentsResponse
	path := "/v1/namespace/" + url.PathEscape(c.namespace) + "/documents?" + query.Encode()
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &decoded); err != nil {
		return nil, err
	}

	page := &driven.DocumentPage{
		NextCursor: decoded.Pagination.NextCursor,
		HasMore:    decoded.Pagination.NextCursor != "",
	}
	for _, doc := range decoded.Data {
		page.Documents = append(page.Documents, domain.ListedDocument{
			ID:        doc.ID,
			Name:      doc.Name,
			CreatedAt: doc.CreatedAt,
		})
	}
	return page, nil
}

// DeleteDocument removes a listed document by id.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	path := "/v1/namespace/" + url.PathEscape(c.namespace) + "/documents/" + url.PathEscape(id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// doJSON issues one rate-limited API call with an optional JSON body,
// decoding into out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", path, domain.ErrNotFound)
	case resp.StatusCode >= 300:
		return apiError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// metaToMap flattens fragment metadata into the per-file metadata map.
func metaToMap(meta domain.FragmentMeta) map[string]any {
	return map[string]any{
		"ayah_key":       meta.AyahKey,
		"group_ayah_key": meta.GroupAyahKey,
		"from_ayah":      meta.FromAyah,
		"to_ayah":        meta.ToAyah,
		"from_ayah_int":  meta.FromAyahInt,
		"to_ayah_int":    meta.ToAyahInt,
		"ayah_keys":      meta.AyahKeys,
	}
}

// apiError reads a failed response into an APIError.
func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return &APIError{StatusCode: resp.StatusCode, Message: string(body)}
}
