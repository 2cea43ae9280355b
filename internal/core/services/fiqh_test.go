package services

import (
	"archive/zip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
)

const cardDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Question</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Is it permissible?</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`

func writeCardDocx(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "card.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(cardDocumentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return path
}

func TestConvertFile(t *testing.T) {
	llm := &fakeLLM{response: `{"issue_number": 1, "question": "Is it permissible?"}`}
	c := NewFiqhConverter(llm)

	issues, err := c.ConvertFile(context.Background(), writeCardDocx(t, t.TempDir()))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, 1, issues[0].IssueNumber)
	assert.Equal(t, "Is it permissible?", issues[0].Question)

	// The prompt carries the rendered card and the JSON prefill is set.
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "Is it permissible?")
	assert.Equal(t, "{", llm.prefill)
}

func TestConvertFileSkipsFailingTable(t *testing.T) {
	llm := &fakeLLM{response: "not json at all"}
	c := NewFiqhConverter(llm)

	issues, err := c.ConvertFile(context.Background(), writeCardDocx(t, t.TempDir()))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestConvertDirectory(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "out")
	writeCardDocx(t, inputDir)

	llm := &fakeLLM{response: `{"issue_number": 7, "question": "q"}`}
	require.NoError(t, NewFiqhConverter(llm).ConvertDirectory(context.Background(), inputDir, outputDir))

	data, err := os.ReadFile(filepath.Join(outputDir, "card.json"))
	require.NoError(t, err)

	var issues []domain.FiqhIssue
	require.NoError(t, json.Unmarshal(data, &issues))
	require.Len(t, issues, 1)
	assert.Equal(t, 7, issues[0].IssueNumber)
}
