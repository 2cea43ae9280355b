package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
	"github.com/tarteel-labs/qul-indexer/internal/core/ports/driven"
	"github.com/tarteel-labs/qul-indexer/internal/fiqh"
	"github.com/tarteel-labs/qul-indexer/internal/logger"
)

// fiqhExtractionPrompt frames one card table for structured extraction.
// The %s placeholders are the schema and the markdown table.
const fiqhExtractionPrompt = `You are an expert in Islamic jurisprudence (fiqh). I will provide you with text from a fiqh card that contains information about a specific Islamic legal issue.

Please extract the information and return it as valid JSON matching this exact schema:

%s

Here is the fiqh card content:

%s

Important instructions:
1. Extract the issue number from text like "مسألة (1)" - the number should be an integer
2. The question is typically found in the first row after the issue number
3. For opinions (الأقوال ونسبتها), carefully separate different positions and their associated scholars
4. Scholars are often separated by "/" within a position
5. Evidence (الأدلة) may be marked with ٭ symbols - create separate evidence entries for each
6. Return ONLY valid JSON, no preamble or explanation
7. If a field is not present in the text, use an empty string for strings, empty array for arrays, or empty object for objects

JSON Output:`

// fiqhIssueSchema documents the expected output shape for the model.
const fiqhIssueSchema = `{
  "type": "object",
  "properties": {
    "issue_number": {"type": "integer", "description": "The issue number extracted from 'مسألة (X)'"},
    "question": {"type": "string", "description": "The main fiqh question being addressed"},
    "context": {"type": "string", "description": "Background and context of the disagreement (تحرير محل الخلاف)"},
    "opinions": {
      "type": "array",
      "description": "Different scholarly opinions",
      "items": {
        "type": "object",
        "properties": {
          "position": {"type": "string", "description": "The opinion/position on the issue"},
          "scholars": {"type": "array", "items": {"type": "string"}, "description": "List of scholars who hold this opinion"}
        }
      }
    },
    "disagreement_reason": {"type": "string", "description": "The reason for disagreement among scholars (سبب الخلاف)"},
    "evidence": {"type": "object", "description": "Evidence for different positions (الأدلة)", "additionalProperties": {"type": "string"}},
    "preferred_opinion": {"type": "string", "description": "The preferred/strongest opinion (الراجح)"},
    "practical_impact": {"type": "string", "description": "Practical impact of the ruling (ثمرة الخلاف)"},
    "references": {"type": "string", "description": "References for this issue (مراجع المسألة)"}
  }
}`

// maxFiqhTokens caps the extraction completion length.
const maxFiqhTokens = 16384

// FiqhConverter extracts structured issues from scanned fiqh cards via
// a large-language-model call per card table.
type FiqhConverter struct {
	llm driven.LLMService
}

// NewFiqhConverter creates a fiqh card converter.
func NewFiqhConverter(llm driven.LLMService) *FiqhConverter {
	return &FiqhConverter{llm: llm}
}

// ConvertFile extracts one issue per table of a DOCX card file.
// A failing table is logged and skipped, never aborting the file.
func (c *FiqhConverter) ConvertFile(ctx context.Context, path string) ([]domain.FiqhIssue, error) {
	tables, err := fiqh.TablesFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var issues []domain.FiqhIssue
	for i, table := range tables {
		logger.Info("processing table %d/%d of %s", i+1, len(tables), filepath.Base(path))

		issue, err := c.extract(ctx, table.Markdown())
		if err != nil {
			logger.Warn("table %d of %s failed: %v", i+1, filepath.Base(path), err)
			continue
		}
		issues = append(issues, issue)
	}

	return issues, nil
}

// ConvertDirectory converts every DOCX file in a directory, writing one
// JSON output per input next to its stem.
func (c *FiqhConverter) ConvertDirectory(ctx context.Context, inputDir, outputDir string) error {
	matches, err := filepath.Glob(filepath.Join(inputDir, "*.docx"))
	if err != nil {
		return fmt.Errorf("glob %s: %w", inputDir, err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, path := range matches {
		issues, err := c.ConvertFile(ctx, path)
		if err != nil {
			logger.Error("convert %s: %v", filepath.Base(path), err)
			continue
		}

		data, err := json.MarshalIndent(issues, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal issues: %w", err)
		}

		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		outPath := filepath.Join(outputDir, stem+".json")
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}

		logger.Info("converted %s (%d issues)", filepath.Base(path), len(issues))
	}

	return nil
}

// extract runs one model call with a "{" prefill to force JSON output.
func (c *FiqhConverter) extract(ctx context.Context, markdown string) (domain.FiqhIssue, error) {
	prompt := fmt.Sprintf(fiqhExtractionPrompt, fiqhIssueSchema, markdown)

	text, err := c.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens: maxFiqhTokens,
		Prefill:   "{",
	})
	if err != nil {
		return domain.FiqhIssue{}, fmt.Errorf("generate: %w", err)
	}

	var issue domain.FiqhIssue
	if err := json.Unmarshal([]byte(text), &issue); err != nil {
		return domain.FiqhIssue{}, fmt.Errorf("parse model output: %w", err)
	}
	return issue, nil
}
