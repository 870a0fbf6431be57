package utils

import (
	"github.com/shopspring/decimal"

	"github.com/Aashish23092/planilla-ledger/dto"
)

// AssembleRecord aligns the value cells of a split row onto the schema and
// parses every field in its mode.
func AssembleRecord(split IdentitySplit, h Heuristics) dto.CanonicalRecord {
	aligned := AlignRight(split.Values, h.SchemaSize(), "")

	fields := make([]decimal.Decimal, len(h.Schema))
	for i, spec := range h.Schema {
		if spec.Integer {
			fields[i] = ParseDays(aligned[i], h.Format)
		} else {
			fields[i] = ParseAmount(aligned[i], h.Format)
		}
	}

	return dto.CanonicalRecord{
		Identity: split.Identity,
		Fields:   fields,
	}
}

// BuildRecord runs classification, identity splitting and assembly for one
// row. ok is false when the row was discarded; reason tells why.
func BuildRecord(row dto.RawRow, h Heuristics) (rec dto.CanonicalRecord, reason dto.DiscardReason, ok bool) {
	decision := ClassifyRow(row, h)
	if !decision.Keep {
		return dto.CanonicalRecord{}, decision.Reason, false
	}

	split := SplitIdentity(row, h)
	if split.Identity.Name == "" {
		return dto.CanonicalRecord{}, dto.ReasonNoIdentity, false
	}

	return AssembleRecord(split, h), dto.ReasonNone, true
}
