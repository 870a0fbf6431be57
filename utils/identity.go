package utils

import (
	"strings"

	"github.com/Aashish23092/planilla-ledger/dto"
)

// maxLeadingIDCells bounds how many numeric cells may precede the name and
// still be read as correlative/code columns.
const maxLeadingIDCells = 2

// IdentitySplit is the identity part of a row plus the value cells that
// follow the numeric boundary.
type IdentitySplit struct {
	Identity dto.IdentityFields
	// Boundary is the index of the first numeric cell, len(row) when none.
	Boundary int
	// Values are the cleaned numeric and placeholder cells after Boundary.
	Values []string
}

// SplitIdentity recovers sequence, code and name from the leading cells of a
// row. Layouts where the identifier is not contiguous at the row start are
// not guaranteed to split correctly.
func SplitIdentity(row dto.RawRow, h Heuristics) IdentitySplit {
	cells := make([]string, len(row))
	for i, c := range row {
		cells[i] = CleanCell(c)
	}

	var presetSeq, presetCode string
	start := leadingIDCells(cells, h, &presetSeq, &presetCode)

	boundary := len(cells)
	for i := start; i < len(cells); i++ {
		if cells[i] != "" && h.NumericPattern.MatchString(cells[i]) {
			boundary = i
			break
		}
	}

	var blob []string
	for i := start; i < boundary; i++ {
		if cells[i] == "" || IsPlaceholderCell(cells[i], h) {
			continue
		}
		blob = append(blob, cells[i])
	}

	var values []string
	for i := boundary; i < len(cells); i++ {
		c := cells[i]
		if c == "" {
			continue
		}
		if h.NumericPattern.MatchString(c) || IsPlaceholderCell(c, h) {
			values = append(values, c)
		}
	}

	id := splitBlob(strings.Join(blob, " "), presetSeq, presetCode, h)

	// A short integer heading a surplus numeric run is a correlative that
	// leaked out of the identity columns.
	if id.Sequence == "" && len(values) > h.SchemaSize() && h.SequencePattern.MatchString(values[0]) {
		id.Sequence = values[0]
	}

	return IdentitySplit{
		Identity: id,
		Boundary: boundary,
		Values:   values,
	}
}

// leadingIDCells consumes numeric cells that precede the first text cell,
// reading them as sequence and code. It returns the index to resume from.
func leadingIDCells(cells []string, h Heuristics, seq, code *string) int {
	firstText := -1
	var numeric []int
	for i, c := range cells {
		if c == "" || IsPlaceholderCell(c, h) {
			continue
		}
		if !h.NumericPattern.MatchString(c) {
			firstText = i
			break
		}
		numeric = append(numeric, i)
	}
	if firstText < 0 || len(numeric) == 0 || len(numeric) > maxLeadingIDCells {
		return 0
	}

	for _, i := range numeric {
		switch c := cells[i]; {
		case *seq == "" && h.SequencePattern.MatchString(c):
			*seq = c
		case *code == "" && h.CodePattern.MatchString(c):
			*code = c
		}
	}
	return firstText
}

func splitBlob(blob, seq, code string, h Heuristics) dto.IdentityFields {
	tokens := strings.Fields(blob)
	if len(tokens) == 0 {
		return dto.IdentityFields{Sequence: seq, Code: code}
	}

	if seq == "" && len(tokens) > 1 &&
		h.SequencePattern.MatchString(tokens[0]) && !h.CodePattern.MatchString(tokens[0]) {
		seq = tokens[0]
		tokens = tokens[1:]
	}

	if code == "" {
		if len(tokens) > 1 && h.CodePattern.MatchString(tokens[0]) {
			code = tokens[0]
			tokens = tokens[1:]
		} else {
			code = h.CodeSentinel
		}
	}

	if seq == "" && len(tokens) > 1 && h.SequencePattern.MatchString(tokens[len(tokens)-1]) {
		seq = tokens[len(tokens)-1]
		tokens = tokens[:len(tokens)-1]
	}

	return dto.IdentityFields{
		Sequence: seq,
		Code:     code,
		Name:     strings.Join(tokens, " "),
	}
}
