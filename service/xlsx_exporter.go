package service

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Aashish23092/planilla-ledger/dto"
)

const (
	SheetName = "Planilla"
	XLSXMime  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// IdentityHeaders label the identity columns that precede the schema fields.
var IdentityHeaders = []string{"Corr.", "Código", "Nombre"}

type XLSXExporter struct{}

func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Export writes the ledger as a single-sheet workbook: a header row, one row
// per record and the trailing totals row.
func (e *XLSXExporter) Export(ledger *dto.Ledger) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, 0, len(IdentityHeaders)+len(ledger.Schema))
	for _, h := range IdentityHeaders {
		header = append(header, h)
	}
	for _, spec := range ledger.Schema {
		header = append(header, spec.Label)
	}
	if err := setRow(f, 1, header); err != nil {
		return nil, err
	}

	for i, rec := range ledger.Rows() {
		row := make([]interface{}, 0, len(IdentityHeaders)+len(rec.Fields))
		row = append(row, rec.Identity.Sequence, rec.Identity.Code, rec.Identity.Name)
		for _, v := range rec.Fields {
			row = append(row, v.InexactFloat64())
		}
		if err := setRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}
