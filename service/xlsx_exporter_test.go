package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Aashish23092/planilla-ledger/utils"
)

func TestExportWritesHeaderRecordsAndTotals(t *testing.T) {
	ledger, err := NewLedgerBuilder(utils.DefaultHeuristics(), 2).Build(context.Background(), twoPageDocument())
	require.NoError(t, err)

	data, err := NewXLSXExporter().Export(ledger)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 6)

	header := rows[0]
	require.Len(t, header, 3+17)
	assert.Equal(t, "Corr.", header[0])
	assert.Equal(t, "Nombre", header[2])
	assert.Equal(t, "Días Laborados", header[3])
	assert.Equal(t, "Líquido a Recibir", header[19])

	assert.Equal(t, []string{"1", "A001", "JUAN PEREZ"}, rows[1][:3])
	assert.Equal(t, "100", rows[1][19])

	totals := rows[5]
	assert.Equal(t, "", totals[0])
	assert.Equal(t, "TOTAL GENERAL", totals[2])
	assert.Equal(t, "650.5", totals[19])
}

func TestDownloadStoreRoundTrip(t *testing.T) {
	store := NewDownloadStore(DefaultDownloadTTL)

	id := store.Save("planilla_convertida.xlsx", []byte("xlsx"))
	assert.NotEmpty(t, id)

	data, name, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
	assert.Equal(t, "planilla_convertida.xlsx", name)

	_, _, err = store.Get("missing")
	assert.Error(t, err)
}
