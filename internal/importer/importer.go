// Package importer loads question/answer pairs from card files.
package importer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/leitner/internal/model"
)

// Entry is one question/answer pair read from a file.
type Entry struct {
	Question string
	Answer   string
}

// Result counts what an import did.
type Result struct {
	Imported int
	Skipped  int
}

// Adder stores a validated card.
type Adder interface {
	AddCard(ctx context.Context, question, answer string) (model.Card, error)
}

// ParseFile reads entries from path, choosing the format by extension:
// .md and .txt use Q:/A: blocks, .csv and .xlsx use the first two columns.
func ParseFile(path string) ([]Entry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".txt":
		return parseMarkdownFile(path)
	case ".csv":
		return parseCSVFile(path)
	case ".xlsx":
		return parseXLSXFile(path)
	default:
		return nil, fmt.Errorf("unsupported card file %q (want .md, .txt, .csv or .xlsx)", path)
	}
}

// Import adds every entry. Entries rejected by validation are skipped; any
// other error stops the import.
func Import(ctx context.Context, adder Adder, entries []Entry) (Result, error) {
	var res Result
	for _, e := range entries {
		_, err := adder.AddCard(ctx, e.Question, e.Answer)
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			res.Skipped++
			continue
		}
		if err != nil {
			return res, err
		}
		res.Imported++
	}
	return res, nil
}

// isHeader reports whether a row looks like a question/answer header.
func isHeader(row []string) bool {
	if len(row) < 2 {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(row[0]), "question") &&
		strings.EqualFold(strings.TrimSpace(row[1]), "answer")
}

func entriesFromRows(rows [][]string) []Entry {
	if len(rows) > 0 && isHeader(rows[0]) {
		rows = rows[1:]
	}
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		var e Entry
		if len(row) > 0 {
			e.Question = row[0]
		}
		if len(row) > 1 {
			e.Answer = row[1]
		}
		if strings.TrimSpace(e.Question) == "" && strings.TrimSpace(e.Answer) == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}
