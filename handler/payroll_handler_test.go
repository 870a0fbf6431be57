package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/planilla-ledger/dto"
	"github.com/Aashish23092/planilla-ledger/service"
	"github.com/Aashish23092/planilla-ledger/utils"
)

type stubPDFProcessor struct {
	pages []dto.Page
}

func (s *stubPDFProcessor) ExtractPages(pdfData []byte, password string) ([]dto.Page, error) {
	return s.pages, nil
}

func (s *stubPDFProcessor) ExtractImages(pdfData []byte, password string) ([]service.PageImage, error) {
	return nil, nil
}

func employeePage(names ...string) dto.Page {
	page := dto.Page{Number: 1, Rows: []dto.RawRow{{"PLANILLA POR CENTRO COSTO"}}}
	for _, name := range names {
		row := dto.RawRow{name, "15"}
		for i := 0; i < 16; i++ {
			row = append(row, "25.00")
		}
		page.Rows = append(page.Rows, row)
	}
	return page
}

func setupRouter(pages ...dto.Page) *gin.Engine {
	gin.SetMode(gin.TestMode)

	payrollService := service.NewPayrollService(
		&stubPDFProcessor{pages: pages},
		nil,
		service.NewLedgerBuilder(utils.DefaultHeuristics(), 2),
		service.NewXLSXExporter(),
	)
	h := NewPayrollHandler(payrollService, service.NewDownloadStore(service.DefaultDownloadTTL), 1024)

	router := gin.New()
	RegisterRoutes(router, h)
	return router
}

func uploadRequest(t *testing.T, path, fileName string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if fileName != "" {
		part, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.WriteField("password", ""))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestConvertReturnsWorkbook(t *testing.T) {
	router := setupRouter(employeePage("A001 JUAN PEREZ 1", "A002 ANA RUIZ 2"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "/api/v1/payroll/convert", "planilla.pdf", []byte("%PDF-1.4")))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.XLSXMime, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), OutputFileName)
	assert.NotZero(t, rec.Body.Len())
}

func TestPreviewThenDownload(t *testing.T) {
	router := setupRouter(employeePage("A001 JUAN PEREZ 1", "A002 ANA RUIZ 2"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "/api/v1/payroll/preview", "planilla.PDF", []byte("%PDF-1.4")))
	require.Equal(t, http.StatusOK, rec.Code)

	var preview struct {
		DownloadID string `json:"download_id"`
		Ledger     struct {
			Records []dto.CanonicalRecord `json:"records"`
			Totals  dto.CanonicalRecord   `json:"totals"`
		} `json:"ledger"`
		DiscardCounts map[string]int `json:"discard_counts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &preview))

	assert.Contains(t, rec.Body.String(), `"fields":[15,`)
	require.NotEmpty(t, preview.DownloadID)
	require.Len(t, preview.Ledger.Records, 2)
	assert.Equal(t, "ANA RUIZ", preview.Ledger.Records[1].Identity.Name)
	assert.Equal(t, dto.TotalsName, preview.Ledger.Totals.Identity.Name)
	assert.Equal(t, "50", preview.Ledger.Totals.Fields[16].String())
	assert.Equal(t, 1, preview.DiscardCounts["marker"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/payroll/download/"+preview.DownloadID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.XLSXMime, rec.Header().Get("Content-Type"))
}

func TestConvertWithoutEmployeeRows(t *testing.T) {
	router := setupRouter(employeePage())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "/api/v1/payroll/convert", "planilla.pdf", []byte("%PDF-1.4")))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "NO_DATA_FOUND", decodeError(t, rec).Error)
}

func TestConvertRejectsInvalidUploads(t *testing.T) {
	router := setupRouter(employeePage("A001 JUAN PEREZ 1"))

	cases := map[string]*http.Request{
		"missing file": uploadRequest(t, "/api/v1/payroll/convert", "", nil),
		"not a pdf":    uploadRequest(t, "/api/v1/payroll/convert", "planilla.xlsx", []byte("PK")),
		"too large":    uploadRequest(t, "/api/v1/payroll/convert", "planilla.pdf", bytes.Repeat([]byte("x"), 2048)),
	}
	for name, req := range cases {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
		assert.Equal(t, "INVALID_REQUEST", decodeError(t, rec).Error, name)
	}
}

func TestDownloadUnknownID(t *testing.T) {
	router := setupRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/payroll/download/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "DOWNLOAD_NOT_FOUND", decodeError(t, rec).Error)
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	setupRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
