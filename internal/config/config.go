package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the global config file.
const (
	EnvLastName   = "BBL2RMAP_LAST_NAME"
	EnvMaxAuthors = "BBL2RMAP_MAX_AUTHORS"
	EnvFormat     = "BBL2RMAP_FORMAT"
	EnvPDFDir     = "BBL2RMAP_PDF_DIR"
)

// Defaults applied when nothing else sets a value.
const (
	DefaultMaxAuthors = 5
	DefaultFormat     = "csv"
	DefaultWorkers    = 1
)

var (
	// ErrInvalidMaxAuthors is returned when max_authors resolves below 1.
	ErrInvalidMaxAuthors = errors.New("max_authors must be at least 1")
	// ErrInvalidWorkers is returned when workers resolves below 1.
	ErrInvalidWorkers = errors.New("workers must be at least 1")
)

// Config is the resolved configuration for a conversion.
type Config struct {
	LastName   string `json:"last_name"`
	MaxAuthors int    `json:"max_authors"`
	Format     string `json:"format"`
	Workers    int    `json:"workers"`
	PDFDir     string `json:"pdf_dir,omitempty"`
	LogJSON    bool   `json:"log_json"`
	ConfigPath string `json:"config_path"`
}

// Overrides holds command-line values. A nil pointer means the flag was
// not given.
type Overrides struct {
	LastName   *string
	MaxAuthors *int
	Format     *string
	Workers    *int
	PDFDir     *string
}

// LoadDotEnv loads .env from the working directory if present.
// Variables already set in the environment are not overwritten.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// Resolve merges flags, environment, the global config file and defaults,
// in that order of precedence.
func Resolve(o Overrides) (*Config, error) {
	global, err := LoadGlobalConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LastName:   global.LastName,
		MaxAuthors: global.MaxAuthors,
		Format:     global.Format,
		Workers:    global.Workers,
		PDFDir:     global.PDFDir,
		LogJSON:    global.LogJSON,
		ConfigPath: GlobalConfigPath(),
	}
	if cfg.MaxAuthors == 0 {
		cfg.MaxAuthors = DefaultMaxAuthors
	}
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}

	if v := os.Getenv(EnvLastName); v != "" {
		cfg.LastName = v
	}
	if v := os.Getenv(EnvMaxAuthors); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidMaxAuthors, EnvMaxAuthors, v)
		}
		cfg.MaxAuthors = n
	}
	if v := os.Getenv(EnvFormat); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv(EnvPDFDir); v != "" {
		cfg.PDFDir = ExpandPath(v)
	}

	if o.LastName != nil && *o.LastName != "" {
		cfg.LastName = *o.LastName
	}
	if o.MaxAuthors != nil {
		cfg.MaxAuthors = *o.MaxAuthors
	}
	if o.Format != nil {
		cfg.Format = *o.Format
	}
	if o.Workers != nil {
		cfg.Workers = *o.Workers
	}
	if o.PDFDir != nil {
		cfg.PDFDir = ExpandPath(*o.PDFDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks numeric settings and the PDF directory.
func (c *Config) Validate() error {
	if c.MaxAuthors < 1 {
		return fmt.Errorf("%w (got %d)", ErrInvalidMaxAuthors, c.MaxAuthors)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w (got %d)", ErrInvalidWorkers, c.Workers)
	}
	return ValidatePDFDir(c.PDFDir)
}

// ValidatePDFDir checks that the PDF directory exists and is a directory.
func ValidatePDFDir(path string) error {
	if path == "" {
		return nil // PDF enrichment is off
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("pdf directory does not exist: %s", path)
	}
	if !info.IsDir() {
		return fmt.Errorf("pdf path is not a directory: %s", path)
	}

	return nil
}
