package dto

import (
	"mime/multipart"
	"path/filepath"
	"strings"
)

// ConvertRequest represents an uploaded payroll PDF
type ConvertRequest struct {
	File     *multipart.FileHeader `form:"file" binding:"required"`
	Password string                `form:"password"`
}

// Validate performs basic validation on the request
func (r *ConvertRequest) Validate(maxFileSize int64) error {
	if r.File == nil {
		return ErrMissingFile
	}
	if !strings.EqualFold(filepath.Ext(r.File.Filename), ".pdf") {
		return ErrNotPDF
	}
	if maxFileSize > 0 && r.File.Size > maxFileSize {
		return ErrFileTooLarge
	}
	return nil
}
