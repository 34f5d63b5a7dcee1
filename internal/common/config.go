package common

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds all application configuration
type Config struct {
	Workspace WorkspaceConfig
	Tools     ToolsConfig
	Journal   JournalConfig
}

// WorkspaceConfig locates the working root that holds the input/, ocr_output/,
// images/ and metadata/ directories.
type WorkspaceConfig struct {
	Root string
}

// ToolsConfig holds the external tool binaries and their shared settings.
type ToolsConfig struct {
	Pdffonts  string // binary name or absolute path; if empty -> "pdffonts"
	OCRmyPDF  string // binary name or absolute path; if empty -> "ocrmypdf"
	Pdfimages string // binary name or absolute path; if empty -> "pdfimages"

	OCRLanguage string // passed to ocrmypdf --language when set

	// Timeout bounds each external invocation. 0 keeps the historical
	// behavior: a hung tool blocks the batch indefinitely.
	Timeout time.Duration
}

// JournalConfig holds run-journal configuration.
type JournalConfig struct {
	Path string // sqlite file; empty -> <root>/paper_ingest.db
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			Root: getEnv("INGEST_ROOT", "."),
		},
		Tools: ToolsConfig{
			Pdffonts:    getEnv("PDFFONTS_BIN", "pdffonts"),
			OCRmyPDF:    getEnv("OCRMYPDF_BIN", "ocrmypdf"),
			Pdfimages:   getEnv("PDFIMAGES_BIN", "pdfimages"),
			OCRLanguage: getEnv("OCR_LANGUAGE", ""),
			Timeout:     getEnvAsDuration("TOOL_TIMEOUT", 0),
		},
		Journal: JournalConfig{
			Path: getEnv("JOURNAL_PATH", ""),
		},
	}
}

// JournalPath resolves the journal location against the workspace root.
func (c *Config) JournalPath() string {
	if c.Journal.Path != "" {
		return c.Journal.Path
	}
	return filepath.Join(c.Workspace.Root, "paper_ingest.db")
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Workspace.Root == "" {
		return NewAppError("CONFIG_ERROR", "INGEST_ROOT is required", ErrInvalidInput)
	}
	if c.Tools.Pdffonts == "" || c.Tools.OCRmyPDF == "" || c.Tools.Pdfimages == "" {
		return NewAppError("CONFIG_ERROR", "tool binaries cannot be blank", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
