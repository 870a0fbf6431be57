package handler

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/planilla-ledger/dto"
	"github.com/Aashish23092/planilla-ledger/service"
)

// OutputFileName is the name of every generated workbook.
const OutputFileName = "planilla_convertida.xlsx"

type PayrollHandler struct {
	payrollService *service.PayrollService
	downloads      *service.DownloadStore
	maxFileSize    int64
}

func NewPayrollHandler(payrollService *service.PayrollService, downloads *service.DownloadStore, maxFileSize int64) *PayrollHandler {
	return &PayrollHandler{
		payrollService: payrollService,
		downloads:      downloads,
		maxFileSize:    maxFileSize,
	}
}

// Convert handles POST /payroll/convert and answers with the workbook itself
func (h *PayrollHandler) Convert(c *gin.Context) {
	req, data, ok := h.readUpload(c)
	if !ok {
		return
	}

	log.Printf("Converting payroll %s (%d bytes)", req.File.Filename, len(data))

	result, err := h.payrollService.Convert(c.Request.Context(), data, req.Password)
	if err != nil {
		h.sendError(c, "Failed to convert payroll", err)
		return
	}

	sendWorkbook(c, OutputFileName, result.Workbook)
}

// Preview handles POST /payroll/preview: the ledger as JSON plus a download id
// for the generated workbook
func (h *PayrollHandler) Preview(c *gin.Context) {
	req, data, ok := h.readUpload(c)
	if !ok {
		return
	}

	log.Printf("Previewing payroll %s (%d bytes)", req.File.Filename, len(data))

	result, err := h.payrollService.Convert(c.Request.Context(), data, req.Password)
	if err != nil {
		h.sendError(c, "Failed to convert payroll", err)
		return
	}

	c.JSON(http.StatusOK, dto.PreviewResponse{
		DownloadID:    h.downloads.Save(OutputFileName, result.Workbook),
		FileName:      OutputFileName,
		Pages:         result.Pages,
		Ledger:        result.Ledger,
		DiscardCounts: result.Ledger.DiscardCounts(),
		ProcessedAt:   time.Now().Format(time.RFC3339),
	})
}

// Download handles GET /payroll/download/:id
func (h *PayrollHandler) Download(c *gin.Context) {
	data, fileName, err := h.downloads.Get(c.Param("id"))
	if err != nil {
		h.sendError(c, "Download unavailable", err)
		return
	}

	sendWorkbook(c, fileName, data)
}

func (h *PayrollHandler) readUpload(c *gin.Context) (*dto.ConvertRequest, []byte, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, "Failed to read upload", dto.ErrMissingFile)
		return nil, nil, false
	}

	req := &dto.ConvertRequest{
		File:     fileHeader,
		Password: c.PostForm("password"),
	}
	if err := req.Validate(h.maxFileSize); err != nil {
		h.sendError(c, "Invalid upload", err)
		return nil, nil, false
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.sendError(c, "Failed to open upload", err)
		return nil, nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		h.sendError(c, "Failed to read upload", err)
		return nil, nil, false
	}

	return req, data, true
}

func sendWorkbook(c *gin.Context, fileName string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Data(http.StatusOK, service.XLSXMime, data)
}

// sendError maps an error onto a status code and a structured error response
func (h *PayrollHandler) sendError(c *gin.Context, message string, err error) {
	statusCode := http.StatusInternalServerError
	code := "CONVERSION_FAILED"

	switch {
	case errors.Is(err, dto.ErrMissingFile), errors.Is(err, dto.ErrNotPDF), errors.Is(err, dto.ErrFileTooLarge):
		statusCode, code = http.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, dto.ErrNoData):
		statusCode, code = http.StatusUnprocessableEntity, "NO_DATA_FOUND"
	case errors.Is(err, dto.ErrDownloadNotFound):
		statusCode, code = http.StatusNotFound, "DOWNLOAD_NOT_FOUND"
	}

	log.Printf("Error: %s - %v", message, err)

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: err.Error(),
		Code:    statusCode,
	})
}
