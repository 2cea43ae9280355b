package cli

import (
	"context"
	"io"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
	"github.com/tarteel-labs/qul-indexer/internal/core/ports/driven"
)

type fakeCorpusStore struct {
	deleted []string
	created []*domain.DocumentUnit
	results []domain.QueryResult
}

func (f *fakeCorpusStore) DeleteDocument(_ context.Context, _, documentID string) error {
	f.deleted = append(f.deleted, documentID)
	return nil
}

func (f *fakeCorpusStore) CreateDocument(_ context.Context, _ string, doc *domain.DocumentUnit) error {
	f.created = append(f.created, doc)
	return nil
}

func (f *fakeCorpusStore) Query(context.Context, string, string, string, int) ([]domain.QueryResult, error) {
	return f.results, nil
}

type fakeIngestStore struct {
	docs    []domain.ListedDocument
	deleted []string
}

func (f *fakeIngestStore) CreateUpload(_ context.Context, fileName, _ string, _ int64) (*domain.UploadTicket, error) {
	return &domain.UploadTicket{UploadURL: "https://uploads.test/" + fileName, ObjectKey: "obj-" + fileName}, nil
}

func (f *fakeIngestStore) Upload(context.Context, string, io.Reader, int64, string) error {
	return nil
}

func (f *fakeIngestStore) CreateIngestJob(context.Context, *domain.IngestJob) (string, error) {
	return "job-1", nil
}

func (f *fakeIngestStore) ListDocuments(context.Context, string, int) (*driven.DocumentPage, error) {
	return &driven.DocumentPage{Documents: f.docs}, nil
}

func (f *fakeIngestStore) DeleteDocument(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}
