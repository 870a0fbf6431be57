package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// TotalsName is the identity name carried by the synthetic grand-total record.
const TotalsName = "TOTAL GENERAL"

// RawRow is one table row as emitted by the extractor. An absent cell is "".
type RawRow []string

// Page holds the rows of one page in extraction order.
type Page struct {
	Number int      `json:"number"`
	Rows   []RawRow `json:"rows"`
}

type DiscardReason string

const (
	ReasonNone       DiscardReason = ""
	ReasonEmpty      DiscardReason = "empty"
	ReasonMarker     DiscardReason = "marker"
	ReasonUndersized DiscardReason = "undersized"
	ReasonNoIdentity DiscardReason = "no_identity"
)

// DiscardReasons lists every discard reason in reporting order.
var DiscardReasons = []DiscardReason{ReasonEmpty, ReasonMarker, ReasonUndersized, ReasonNoIdentity}

type IdentityFields struct {
	Sequence string `json:"sequence"`
	Code     string `json:"code"`
	Name     string `json:"name"`
}

// FieldSpec describes one column of the financial schema.
type FieldSpec struct {
	Key     string `json:"key" yaml:"key"`
	Label   string `json:"label" yaml:"label"`
	Integer bool   `json:"integer,omitempty" yaml:"integer,omitempty"`
}

type CanonicalRecord struct {
	Identity IdentityFields    `json:"identity"`
	Fields   []decimal.Decimal `json:"fields"`
}

// MarshalJSON writes the financial fields as JSON numbers.
func (r CanonicalRecord) MarshalJSON() ([]byte, error) {
	fields := make([]json.Number, len(r.Fields))
	for i, f := range r.Fields {
		fields[i] = json.Number(f.String())
	}
	return json.Marshal(struct {
		Identity IdentityFields `json:"identity"`
		Fields   []json.Number  `json:"fields"`
	}{r.Identity, fields})
}

// RowOutcome traces what happened to a single raw row.
type RowOutcome struct {
	Page   int           `json:"page"`
	Row    int           `json:"row"`
	Kept   bool          `json:"kept"`
	Reason DiscardReason `json:"reason,omitempty"`
	Text   string        `json:"text,omitempty"`
}

// Ledger is the reconstructed payroll: records in document order plus the
// trailing totals record.
type Ledger struct {
	Schema   []FieldSpec       `json:"schema"`
	Records  []CanonicalRecord `json:"records"`
	Totals   *CanonicalRecord  `json:"totals,omitempty"`
	Outcomes []RowOutcome      `json:"-"`
}

// Rows returns the records followed by the totals record, if any.
func (l *Ledger) Rows() []CanonicalRecord {
	rows := make([]CanonicalRecord, 0, len(l.Records)+1)
	rows = append(rows, l.Records...)
	if l.Totals != nil {
		rows = append(rows, *l.Totals)
	}
	return rows
}

// IsEmpty reports whether no employee row was accepted.
func (l *Ledger) IsEmpty() bool {
	return len(l.Records) == 0
}

// DiscardCounts tallies discarded rows per reason.
func (l *Ledger) DiscardCounts() map[DiscardReason]int {
	counts := make(map[DiscardReason]int)
	for _, o := range l.Outcomes {
		if !o.Kept {
			counts[o.Reason]++
		}
	}
	return counts
}
