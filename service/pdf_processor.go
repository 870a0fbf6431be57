package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/maruel/natural"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/Aashish23092/planilla-ledger/dto"
)

// ExtractOptions are the upstream row-extraction tolerances. They change row
// quality, never pipeline logic.
type ExtractOptions struct {
	// ColumnGap is the horizontal gap, in points, that starts a new cell.
	ColumnGap float64
	// WordGap is the gap that inserts a space inside a cell.
	WordGap float64
}

func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		ColumnGap: 8.0,
		WordGap:   1.5,
	}
}

type PDFProcessor interface {
	ExtractPages(pdfData []byte, password string) ([]dto.Page, error)
	ExtractImages(pdfData []byte, password string) ([]PageImage, error)
}

type pdfProcessor struct {
	opts ExtractOptions
}

func NewPDFProcessor(opts ExtractOptions) PDFProcessor {
	return &pdfProcessor{opts: opts}
}

// ExtractPages reads the text layer page by page and splits every text row
// into cells. A page that cannot be read yields zero rows.
func (p *pdfProcessor) ExtractPages(pdfData []byte, password string) ([]dto.Page, error) {
	if password != "" {
		decrypted, err := decryptPDF(pdfData, password)
		if err != nil {
			return nil, err
		}
		pdfData = decrypted
	}

	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	totalPage := r.NumPage()
	pages := make([]dto.Page, 0, totalPage)

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := dto.Page{Number: pageIndex}

		pg := r.Page(pageIndex)
		if pg.V.IsNull() {
			pages = append(pages, page)
			continue
		}

		rows, err := pg.GetTextByRow()
		if err != nil {
			log.Printf("Warning: failed to read rows of page %d: %v", pageIndex, err)
			pages = append(pages, page)
			continue
		}

		for _, row := range rows {
			if cells := splitCells(row.Content, p.opts); len(cells) > 0 {
				page.Rows = append(page.Rows, cells)
			}
		}
		pages = append(pages, page)
	}

	return pages, nil
}

// splitCells groups the glyph runs of one text row into cells by horizontal gap.
func splitCells(texts pdf.TextHorizontal, opts ExtractOptions) dto.RawRow {
	if len(texts) == 0 {
		return nil
	}

	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var cells dto.RawRow
	var cell strings.Builder
	prevEnd := sorted[0].X

	for i, t := range sorted {
		if i > 0 {
			gap := t.X - prevEnd
			switch {
			case gap > opts.ColumnGap:
				cells = append(cells, cell.String())
				cell.Reset()
			case gap > opts.WordGap:
				cell.WriteByte(' ')
			}
		}
		cell.WriteString(t.S)
		if end := t.X + t.W; end > prevEnd || i == 0 {
			prevEnd = end
		}
	}
	cells = append(cells, cell.String())

	return cells
}

func decryptPDF(pdfData []byte, password string) ([]byte, error) {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password

	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(pdfData), &out, conf); err != nil {
		return nil, fmt.Errorf("failed to decrypt pdf: %w", err)
	}
	return out.Bytes(), nil
}

// PageImage is an embedded image and the page it was found on.
type PageImage struct {
	Page  int
	Image image.Image
}

// ExtractImages pulls the embedded page images of a scanned payroll, in page
// order, for the OCR fallback.
func (p *pdfProcessor) ExtractImages(pdfData []byte, password string) ([]PageImage, error) {
	tempDir, err := os.MkdirTemp("", "planilla_images")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempFile, err := os.CreateTemp("", "planilla-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(pdfData); err != nil {
		tempFile.Close()
		return nil, fmt.Errorf("failed to write pdf data: %w", err)
	}
	tempFile.Close()

	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
	}

	if err := api.ExtractImagesFile(tempFile.Name(), tempDir, nil, conf); err != nil {
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}

	base := strings.TrimSuffix(filepath.Base(tempFile.Name()), filepath.Ext(tempFile.Name()))

	var images []PageImage
	for _, file := range orderImageFiles(names, base) {
		imgFile, err := os.Open(filepath.Join(tempDir, file.name))
		if err != nil {
			continue
		}
		img, _, err := image.Decode(imgFile)
		imgFile.Close()
		if err != nil {
			log.Printf("Warning: skipping undecodable image %s: %v", file.name, err)
			continue
		}
		images = append(images, PageImage{Page: file.page, Image: img})
	}

	return images, nil
}

type imageFile struct {
	name string
	page int
}

// orderImageFiles reads the page number from pdfcpu's <base>_<page>_<object>.<ext>
// names and sorts by page, then by object name. Names without a page number
// are numbered after the last known page.
func orderImageFiles(names []string, base string) []imageFile {
	files := make([]imageFile, 0, len(names))
	var unknown []string
	lastPage := 0

	for _, name := range names {
		page, ok := imagePage(name, base)
		if !ok {
			log.Printf("Warning: no page number in image name %s", name)
			unknown = append(unknown, name)
			continue
		}
		files = append(files, imageFile{name: name, page: page})
		lastPage = max(lastPage, page)
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].page != files[j].page {
			return files[i].page < files[j].page
		}
		return natural.Less(files[i].name, files[j].name)
	})

	sort.Sort(natural.StringSlice(unknown))
	for _, name := range unknown {
		lastPage++
		files = append(files, imageFile{name: name, page: lastPage})
	}

	return files
}

func imagePage(name, base string) (int, bool) {
	rest, ok := strings.CutPrefix(name, base+"_")
	if !ok {
		return 0, false
	}
	pageNr, _, ok := strings.Cut(rest, "_")
	if !ok {
		return 0, false
	}
	page, err := strconv.Atoi(pageNr)
	if err != nil || page < 1 {
		return 0, false
	}
	return page, true
}
