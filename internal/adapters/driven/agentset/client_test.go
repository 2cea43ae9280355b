package agentset

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		APIToken:          "test-token",
		NamespaceID:       "ns-1",
		BaseURL:           srv.URL,
		RequestsPerSecond: 1000,
	})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{APIToken: "t"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
}

func TestCreateUpload(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/namespace/ns-1/uploads", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req createUploadRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "section-2-1.txt", req.FileName)
		assert.Equal(t, int64(42), req.FileSize)

		var resp createUploadResponse
		resp.Data.URL = "https://storage.test/put-here"
		resp.Data.Key = "obj-123"
		json.NewEncoder(w).Encode(resp)
	}))

	ticket, err := client.CreateUpload(context.Background(), "section-2-1.txt", "text/plain", 42)
	require.NoError(t, err)
	assert.Equal(t, "https://storage.test/put-here", ticket.UploadURL)
	assert.Equal(t, "obj-123", ticket.ObjectKey)
}

func TestUploadPutsRawBytesWithoutAuth(t *testing.T) {
	var gotBody string
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		gotAuth = r.Header.Get("Authorization")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
	}))
	defer srv.Close()

	client := newTestClient(t, http.NotFoundHandler())
	err := client.Upload(context.Background(), srv.URL, strings.NewReader("section text"), 12, "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "section text", gotBody)
	assert.Empty(t, gotAuth)
}

func TestCreateIngestJob(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/namespace/ns-1/ingest-jobs", r.URL.Path)

		var req ingestJobRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "src-surah-002", req.Name)
		assert.Equal(t, "BATCH", req.Payload.Type)
		assert.Equal(t, 512, req.Config.ChunkSize)
		assert.Equal(t, 1024, req.Config.MaxChunkSize)
		assert.Equal(t, 50, req.Config.ChunkOverlap)
		require.Len(t, req.Payload.Items, 1)
		assert.Equal(t, "MANAGED_FILE", req.Payload.Items[0].Type)
		assert.Equal(t, "obj-123", req.Payload.Items[0].Key)
		assert.Equal(t, "2:1", req.Payload.Items[0].Metadata["group_ayah_key"])

		var resp ingestJobResponse
		resp.Data.ID = "job-9"
		json.NewEncoder(w).Encode(resp)
	}))

	jobID, err := client.CreateIngestJob(context.Background(), &domain.IngestJob{
		Name:       "src-surah-002",
		ExternalID: "ext-1",
		Items: []domain.IngestItem{{
			ObjectKey: "obj-123",
			FileName:  "section-2-1.txt",
			Meta:      domain.FragmentMeta{AyahKey: "2:1", GroupAyahKey: "2:1"},
		}},
		Chunk: domain.DefaultChunkConfig,
	})
	require.NoError(t, err)
	assert.Equal(t, "job-9", jobID)
}

func TestListDocumentsPagination(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/namespace/ns-1/documents", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("perPage"))

		var resp listDocumentsResponse
		if r.URL.Query().Get("cursor") == "" {
			resp.Data = append(resp.Data, listedDocJSON{
				ID:        "a",
				Name:      "src-surah-001",
				CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			})
			resp.Pagination.NextCursor = "cursor-2"
		}
		json.NewEncoder(w).Encode(resp)
	}))

	page, err := client.ListDocuments(context.Background(), "", 50)
	require.NoError(t, err)
	require.Len(t, page.Documents, 1)
	assert.Equal(t, "a", page.Documents[0].ID)
	assert.True(t, page.HasMore)
	assert.Equal(t, "cursor-2", page.NextCursor)

	page, err = client.ListDocuments(context.Background(), "cursor-2", 50)
	require.NoError(t, err)
	assert.Empty(t, page.Documents)
	assert.False(t, page.HasMore)
}

func TestDeleteDocumentNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	err := client.DeleteDocument(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
