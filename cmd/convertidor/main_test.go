package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aashish23092/planilla-ledger/dto"
)

func TestPrintDiagnosticsSummaryOrder(t *testing.T) {
	ledger := &dto.Ledger{Outcomes: []dto.RowOutcome{
		{Page: 1, Row: 1, Reason: dto.ReasonNoIdentity, Text: "15 25.00"},
		{Page: 1, Row: 2, Reason: dto.ReasonMarker, Text: "PLANILLA"},
		{Page: 1, Row: 3, Kept: true, Text: "A001 JUAN PEREZ"},
		{Page: 2, Row: 1, Reason: dto.ReasonMarker, Text: "Página 2"},
		{Page: 2, Row: 2, Reason: dto.ReasonEmpty},
	}}

	for i := 0; i < 5; i++ {
		var out bytes.Buffer
		printDiagnostics(&out, ledger)

		assert.Equal(t, ""+
			"p1 r1 no_identity 15 25.00\n"+
			"p1 r2 marker      PLANILLA\n"+
			"p2 r1 marker      Página 2\n"+
			"p2 r2 empty       \n"+
			"empty: 1\n"+
			"marker: 2\n"+
			"undersized: 0\n"+
			"no_identity: 1\n", out.String())
	}
}
