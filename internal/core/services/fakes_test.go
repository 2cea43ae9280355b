package services

import (
	"context"
	"fmt"
	"io"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
	"github.com/tarteel-labs/qul-indexer/internal/core/ports/driven"
)

type fakeTafsirStore struct {
	sections map[int][]domain.Section
	mapping  map[string]string
	err      error
}

func (f *fakeTafsirStore) SectionsForSurah(_ context.Context, surah int) ([]domain.Section, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sections[surah], nil
}

func (f *fakeTafsirStore) AyahMapping(context.Context) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.mapping, nil
}

func (f *fakeTafsirStore) Close() error { return nil }

type fakeCorpusStore struct {
	deleted   []string
	created   []*domain.DocumentUnit
	deleteErr error
	createErr error
	results   []domain.QueryResult

	lastQuery  string
	lastFilter string
	lastLimit  int
}

func (f *fakeCorpusStore) DeleteDocument(_ context.Context, _, documentID string) error {
	f.deleted = append(f.deleted, documentID)
	return f.deleteErr
}

func (f *fakeCorpusStore) CreateDocument(_ context.Context, _ string, doc *domain.DocumentUnit) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, doc)
	return nil
}

func (f *fakeCorpusStore) Query(_ context.Context, _, query, filter string, limit int) ([]domain.QueryResult, error) {
	f.lastQuery = query
	f.lastFilter = filter
	f.lastLimit = limit
	return f.results, nil
}

type fakeIngestStore struct {
	uploadErrFor map[string]error
	jobErr       error
	uploaded     []string
	jobs         []*domain.IngestJob
	pages        []*driven.DocumentPage
	pageIdx      int
	deleted      []string
	deleteErrFor map[string]error
}

func (f *fakeIngestStore) CreateUpload(_ context.Context, fileName, _ string, _ int64) (*domain.UploadTicket, error) {
	if err := f.uploadErrFor[fileName]; err != nil {
		return nil, err
	}
	return &domain.UploadTicket{
		UploadURL: "https://uploads.test/" + fileName,
		ObjectKey: "obj-" + fileName,
	}, nil
}

func (f *fakeIngestStore) Upload(_ context.Context, uploadURL string, _ io.Reader, _ int64, _ string) error {
	f.uploaded = append(f.uploaded, uploadURL)
	return nil
}

func (f *fakeIngestStore) CreateIngestJob(_ context.Context, job *domain.IngestJob) (string, error) {
	if f.jobErr != nil {
		return "", f.jobErr
	}
	f.jobs = append(f.jobs, job)
	return fmt.Sprintf("job-%d", len(f.jobs)), nil
}

func (f *fakeIngestStore) ListDocuments(context.Context, string, int) (*driven.DocumentPage, error) {
	if f.pageIdx >= len(f.pages) {
		return &driven.DocumentPage{}, nil
	}
	page := f.pages[f.pageIdx]
	f.pageIdx++
	return page, nil
}

func (f *fakeIngestStore) DeleteDocument(_ context.Context, id string) error {
	if err := f.deleteErrFor[id]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeLLM struct {
	response string
	err      error
	prompts  []string
	prefill  string
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.prefill = opts.Prefill
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) ModelName() string { return "fake-model" }
