package utils

import (
	"regexp"
	"strings"

	"github.com/Aashish23092/planilla-ledger/dto"
)

var columnGap = regexp.MustCompile(`\s{2,}|\t`)

// RowsFromText turns OCR output into raw rows: one row per line, cells split
// on tabs or runs of two or more spaces.
func RowsFromText(text string) []dto.RawRow {
	var rows []dto.RawRow
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, dto.RawRow(columnGap.Split(strings.TrimSpace(line), -1)))
	}
	return rows
}
