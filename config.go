package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// config is built once at startup and never mutated afterwards.
type config struct {
	HTTPAddr     string
	ModelPath    string
	DBURL        string // optional; when set, reports are stored in Postgres
	ReportDir    string
	ReportFormat string
	CORSOrigins  []string
	LogMode      string
}

// loadConfig reads .env (if present) and then the process environment.
func loadConfig() (config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := config{
		HTTPAddr:     envString("HTTP_ADDR", "localhost:3000"),
		ModelPath:    envString("MODEL_PATH", filepath.Join("models", "diet_model.yaml")),
		DBURL:        envString("DB_URL", ""),
		ReportDir:    envString("REPORT_DIR", filepath.Join(os.TempDir(), "diet-reports")),
		ReportFormat: strings.ToLower(envString("REPORT_FORMAT", "pdf")),
		CORSOrigins:  envList("CORS_ORIGINS", []string{"*"}),
		LogMode:      envString("LOG_MODE", "development"),
	}

	if _, ok := reportFormats[cfg.ReportFormat]; !ok {
		return config{}, fmt.Errorf("REPORT_FORMAT must be one of: pdf, png (got %q)", cfg.ReportFormat)
	}
	return cfg, nil
}

func envString(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

// envList splits a comma-separated variable, dropping blank entries.
func envList(name string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
