package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort        string
	TesseractDataPath string
	TesseractLanguage string
	MaxFileSize       int64
	HeuristicsFile    string
	StrictRows        bool
	DecimalComma      bool
	LedgerWorkers     int
	OCRFallback       bool
	DownloadTTL       time.Duration
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, relying on environment variables and defaults")
	}

	maxFileMB := getEnvInt("MAX_FILE_SIZE_MB", 10)

	downloadTTL, err := time.ParseDuration(getEnv("DOWNLOAD_TTL", "15m"))
	if err != nil {
		log.Printf("WARNING: invalid DOWNLOAD_TTL, using 15m: %v", err)
		downloadTTL = 15 * time.Minute
	}

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		TesseractDataPath: getEnv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/"),
		TesseractLanguage: getEnv("TESSERACT_LANG", "spa"),
		MaxFileSize:       int64(maxFileMB) * 1024 * 1024,
		HeuristicsFile:    os.Getenv("HEURISTICS_FILE"),
		StrictRows:        getEnvBool("STRICT_ROWS", false),
		DecimalComma:      getEnvBool("DECIMAL_COMMA", false),
		LedgerWorkers:     getEnvInt("LEDGER_WORKERS", 4),
		OCRFallback:       getEnvBool("OCR_FALLBACK", false),
		DownloadTTL:       downloadTTL,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("WARNING: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("WARNING: invalid %s=%q, using %t", key, v, fallback)
		return fallback
	}
	return b
}
