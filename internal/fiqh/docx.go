// Package fiqh reads fiqh card DOCX files and renders their tables as
// markdown suitable for model extraction.
package fiqh

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Table is one card table as rows of cell texts. Merged cells repeat
// the same text in every spanned column, as the DOCX layout engine
// stores them.
type Table struct {
	Rows [][]string
}

// docXML mirrors the subset of word/document.xml we care about. Field
// tags carry no namespace so any WordprocessingML prefix matches.
type docXML struct {
	Body struct {
		Tables []tableXML `xml:"tbl"`
	} `xml:"body"`
}

type tableXML struct {
	Rows []struct {
		Cells []struct {
			Paragraphs []struct {
				Runs []struct {
					Text string `xml:"t"`
				} `xml:"r"`
			} `xml:"p"`
		} `xml:"tc"`
	} `xml:"tr"`
}

// TablesFromFile extracts every table of a DOCX file.
func TablesFromFile(path string) ([]Table, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open document.xml: %w", err)
		}
		defer rc.Close()
		return parseTables(rc)
	}

	return nil, fmt.Errorf("no word/document.xml in %s", path)
}

func parseTables(r io.Reader) ([]Table, error) {
	var doc docXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse document.xml: %w", err)
	}

	var tables []Table
	for _, t := range doc.Body.Tables {
		var table Table
		for _, row := range t.Rows {
			var cells []string
			for _, cell := range row.Cells {
				var paras []string
				for _, p := range cell.Paragraphs {
					var sb strings.Builder
					for _, run := range p.Runs {
						sb.WriteString(run.Text)
					}
					paras = append(paras, sb.String())
				}
				cells = append(cells, strings.Join(paras, "\n"))
			}
			table.Rows = append(table.Rows, cells)
		}
		tables = append(tables, table)
	}
	return tables, nil
}

// Markdown renders the table for extraction. Each row becomes a
// heading with its value; rows with more than one value column list
// them as numbered options. Consecutive identical cells collapse,
// since merged cells repeat their text per spanned column.
func (t Table) Markdown() string {
	var lines []string

	for _, row := range t.Rows {
		var cells []string
		prev := ""
		seeded := false
		for _, cell := range row {
			if !seeded || cell != prev {
				cells = append(cells, strings.TrimSpace(cell))
				prev = cell
				seeded = true
			}
		}

		if len(cells) < 2 {
			continue
		}

		lines = append(lines, "## "+cells[0])
		if len(cells) > 2 {
			for i := 1; i < len(cells); i++ {
				lines = append(lines, fmt.Sprintf("### Option %d", i))
				lines = append(lines, cells[i])
				lines = append(lines, "")
			}
		} else {
			lines = append(lines, cells[1])
			lines = append(lines, "")
		}
	}

	return strings.Join(lines, "\n")
}
