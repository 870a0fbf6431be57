package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Aashish23092/planilla-ledger/dto"
)

// Decision is the classifier verdict for one row.
type Decision struct {
	Keep   bool
	Reason dto.DiscardReason
	Marker string
}

// ClassifyRow decides whether a raw row is an employee record. Checks run in
// priority order: empty, marker, undersized.
func ClassifyRow(row dto.RawRow, h Heuristics) Decision {
	nonEmpty := CountNonEmpty(row)
	if nonEmpty == 0 {
		return Decision{Reason: dto.ReasonEmpty}
	}

	if marker, ok := MatchMarker(FoldText(JoinRow(row)), h.Markers); ok {
		return Decision{Reason: dto.ReasonMarker, Marker: marker}
	}

	if nonEmpty < h.MinCells {
		return Decision{Reason: dto.ReasonUndersized}
	}

	return Decision{Keep: true}
}

// MatchMarker returns the first marker contained in folded row text.
func MatchMarker(folded string, markers []string) (string, bool) {
	for _, m := range markers {
		fm := FoldText(m)
		if fm == "" {
			continue
		}
		if strings.Contains(folded, fm) {
			return m, true
		}
	}
	return "", false
}

// JoinRow joins the cleaned, non-empty cells of a row with single spaces.
func JoinRow(row dto.RawRow) string {
	parts := make([]string, 0, len(row))
	for _, cell := range row {
		if c := CleanCell(cell); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}

// CountNonEmpty counts cells holding non-whitespace text.
func CountNonEmpty(row dto.RawRow) int {
	n := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			n++
		}
	}
	return n
}

// FoldText uppercases s and strips diacritics, so "Página" reads "PAGINA".
func FoldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToUpper(folded)
}
