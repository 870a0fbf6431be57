package service

import (
	"context"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/Aashish23092/planilla-ledger/dto"
	"github.com/Aashish23092/planilla-ledger/utils"
)

// OCRClient reads the text of a scanned page image.
type OCRClient interface {
	ExtractTextFromImage(img image.Image) (string, error)
}

type PayrollService struct {
	pdfProcessor PDFProcessor
	ocr          OCRClient
	builder      *LedgerBuilder
	exporter     *XLSXExporter
}

// NewPayrollService wires the conversion pipeline. A nil ocr disables the
// scanned-document fallback.
func NewPayrollService(
	pdfProcessor PDFProcessor,
	ocr OCRClient,
	builder *LedgerBuilder,
	exporter *XLSXExporter,
) *PayrollService {
	return &PayrollService{
		pdfProcessor: pdfProcessor,
		ocr:          ocr,
		builder:      builder,
		exporter:     exporter,
	}
}

type ConversionResult struct {
	Ledger   *dto.Ledger
	Pages    int
	Workbook []byte
}

// BuildLedger extracts the rows of a payroll PDF and reconstructs its ledger.
// The ledger may be empty; callers decide how to surface that.
func (s *PayrollService) BuildLedger(ctx context.Context, pdfData []byte, password string) (*dto.Ledger, int, error) {
	pages, err := s.pdfProcessor.ExtractPages(pdfData, password)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to extract rows: %w", err)
	}

	if countRows(pages) == 0 && s.ocr != nil {
		log.Printf("PDF has no text rows, attempting OCR fallback")
		if ocrPages := s.ocrPages(pdfData, password, pages); len(ocrPages) > 0 {
			pages = ocrPages
		}
	}

	ledger, err := s.builder.Build(ctx, pages)
	if err != nil {
		return nil, len(pages), fmt.Errorf("failed to build ledger: %w", err)
	}

	return ledger, len(pages), nil
}

// Convert builds the ledger and renders it as a workbook. A document with no
// employee rows returns dto.ErrNoData.
func (s *PayrollService) Convert(ctx context.Context, pdfData []byte, password string) (*ConversionResult, error) {
	start := time.Now()

	ledger, pages, err := s.BuildLedger(ctx, pdfData, password)
	if err != nil {
		return nil, err
	}

	counts := ledger.DiscardCounts()
	log.Printf("Processed %d pages: %d records, discarded %d empty, %d marker, %d undersized, %d without identity",
		pages, len(ledger.Records),
		counts[dto.ReasonEmpty], counts[dto.ReasonMarker], counts[dto.ReasonUndersized], counts[dto.ReasonNoIdentity])

	if ledger.IsEmpty() {
		return nil, dto.ErrNoData
	}

	workbook, err := s.exporter.Export(ledger)
	if err != nil {
		return nil, fmt.Errorf("failed to export ledger: %w", err)
	}

	log.Printf("Conversion finished in %s", time.Since(start))

	return &ConversionResult{
		Ledger:   ledger,
		Pages:    pages,
		Workbook: workbook,
	}, nil
}

// ocrPages fills the text-layer pages with OCR rows, matching every image to
// the page it came from. Pages without images keep zero rows.
func (s *PayrollService) ocrPages(pdfData []byte, password string, pages []dto.Page) []dto.Page {
	images, err := s.pdfProcessor.ExtractImages(pdfData, password)
	if err != nil || len(images) == 0 {
		log.Printf("Failed to extract images for OCR: %v", err)
		return nil
	}

	out := make([]dto.Page, len(pages))
	copy(out, pages)
	index := make(map[int]int, len(out))
	for i, p := range out {
		index[p.Number] = i
	}

	for _, img := range images {
		i, ok := index[img.Page]
		if !ok {
			out = append(out, dto.Page{Number: img.Page})
			i = len(out) - 1
			index[img.Page] = i
		}

		text, err := s.ocr.ExtractTextFromImage(img.Image)
		if err != nil {
			log.Printf("OCR failed for page %d: %v", img.Page, err)
			continue
		}
		out[i].Rows = append(out[i].Rows, utils.RowsFromText(text)...)
	}
	return out
}

func countRows(pages []dto.Page) int {
	n := 0
	for _, p := range pages {
		n += len(p.Rows)
	}
	return n
}
