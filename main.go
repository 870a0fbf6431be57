package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/planilla-ledger/client"
	"github.com/Aashish23092/planilla-ledger/config"
	"github.com/Aashish23092/planilla-ledger/handler"
	"github.com/Aashish23092/planilla-ledger/service"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	heuristics, err := cfg.Heuristics()
	if err != nil {
		log.Fatalf("Failed to load heuristics: %v", err)
	}
	log.Printf("Heuristics: %d markers, min %d cells, %d schema fields",
		len(heuristics.Markers), heuristics.MinCells, heuristics.SchemaSize())

	// OCR fallback for scanned payrolls is opt-in
	var ocr service.OCRClient
	if cfg.OCRFallback {
		tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath, cfg.TesseractLanguage)
		defer tesseractClient.Close()
		ocr = tesseractClient
		log.Println("OCR fallback enabled, TESSDATA_PREFIX:", cfg.TesseractDataPath)
	}

	// Initialize service layer
	payrollService := service.NewPayrollService(
		service.NewPDFProcessor(service.DefaultExtractOptions()),
		ocr,
		service.NewLedgerBuilder(heuristics, cfg.LedgerWorkers),
		service.NewXLSXExporter(),
	)
	downloads := service.NewDownloadStore(cfg.DownloadTTL)

	// Initialize handler layer
	payrollHandler := handler.NewPayrollHandler(payrollService, downloads, cfg.MaxFileSize)

	// Setup Gin router
	router := gin.Default()
	router.MaxMultipartMemory = 32 << 20

	handler.RegisterRoutes(router, payrollHandler)

	// Start server
	log.Printf("Starting Payroll Ledger Converter on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
