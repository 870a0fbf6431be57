package dto

import "errors"

// Custom errors
var (
	ErrMissingFile      = errors.New("a payroll PDF file is required")
	ErrNotPDF           = errors.New("only PDF files are supported")
	ErrFileTooLarge     = errors.New("file exceeds the maximum upload size")
	ErrNoData           = errors.New("no se encontró información procesable")
	ErrDownloadNotFound = errors.New("download not found or expired")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// PreviewResponse is returned by the preview endpoint
type PreviewResponse struct {
	DownloadID    string                `json:"download_id"`
	FileName      string                `json:"file_name"`
	Pages         int                   `json:"pages"`
	Ledger        *Ledger               `json:"ledger"`
	DiscardCounts map[DiscardReason]int `json:"discard_counts"`
	ProcessedAt   string                `json:"processed_at"`
}
