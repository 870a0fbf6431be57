package utils

import (
	"github.com/shopspring/decimal"

	"github.com/Aashish23092/planilla-ledger/dto"
)

// AggregateTotals sums every field across the whole record set into the
// single grand-total record.
func AggregateTotals(records []dto.CanonicalRecord, n int) dto.CanonicalRecord {
	sums := make([]decimal.Decimal, n)
	for i := range sums {
		sums[i] = decimal.Zero
	}

	for _, rec := range records {
		for i := 0; i < n && i < len(rec.Fields); i++ {
			sums[i] = sums[i].Add(rec.Fields[i])
		}
	}

	return dto.CanonicalRecord{
		Identity: dto.IdentityFields{Name: dto.TotalsName},
		Fields:   sums,
	}
}
