// Package report renders cards as plain text tables.
package report

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/leitner/internal/model"
)

// MaxCellWidth caps question and answer columns.
const MaxCellWidth = 40

// CardTable renders cards as aligned rows under an ID/Box/Question/Answer
// header. Long text is truncated and newlines are flattened.
func CardTable(cards []model.Card) []string {
	headers := []string{"ID", "Box", "Question", "Answer"}
	rows := make([][]string, 0, len(cards))
	for _, card := range cards {
		rows = append(rows, []string{
			strconv.FormatInt(card.ID, 10),
			strconv.Itoa(card.Box),
			cell(card.Question),
			cell(card.Answer),
		})
	}
	return formatTable(headers, rows, map[int]bool{0: true, 1: true})
}

func cell(value string) string {
	value = strings.Join(strings.Fields(value), " ")
	return runewidth.Truncate(value, MaxCellWidth, "…")
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount; i++ {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			if w := runewidth.StringWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		value := ""
		if i < len(row) {
			value = row[i]
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(padCell(value, widths[i], rightAlignCols[i]))
	}
	return strings.TrimRight(b.String(), " ")
}

func padCell(value string, width int, rightAlign bool) string {
	if rightAlign {
		return runewidth.FillLeft(value, width)
	}
	return runewidth.FillRight(value, width)
}
