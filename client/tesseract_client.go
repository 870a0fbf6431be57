package client

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/otiai10/gosseract/v2"
)

type TesseractClient struct {
	dataPath string
	language string
}

func NewTesseractClient(dataPath, language string) *TesseractClient {
	if language == "" {
		language = "spa"
	}
	return &TesseractClient{
		dataPath: dataPath,
		language: language,
	}
}

// ExtractTextFromImage runs OCR over a decoded page image. Runs of spaces
// between words are preserved so table columns stay apart.
func (tc *TesseractClient) ExtractTextFromImage(img image.Image) (string, error) {
	tempFile, err := saveImageToTempFile(img)
	if err != nil {
		return "", err
	}
	defer os.Remove(tempFile)

	return tc.ExtractText(tempFile)
}

// ExtractText runs OCR over an image file.
func (tc *TesseractClient) ExtractText(filePath string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if tc.dataPath != "" {
		client.SetTessdataPrefix(tc.dataPath)
	}

	if err := client.SetLanguage(tc.language); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetVariable("preserve_interword_spaces", "1"); err != nil {
		return "", fmt.Errorf("failed to configure tesseract: %w", err)
	}

	if err := client.SetImage(filePath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	return text, nil
}

// saveImageToTempFile saves an image.Image to a temporary PNG file.
func saveImageToTempFile(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "planilla-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image file: %w", err)
	}
	defer tempFile.Close()

	if err := png.Encode(tempFile, img); err != nil {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("failed to encode image to PNG: %w", err)
	}

	return tempFile.Name(), nil
}

// Close performs cleanup
func (tc *TesseractClient) Close() {
	log.Println("Tesseract client closed")
}
