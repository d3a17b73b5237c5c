// Package config provides configuration loading and validation for gxpassess.
package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/gxpassess/pkg/pathutil"
)

// Known PDF renderer names, tried in the configured order.
const (
	RendererRod         = "rod"
	RendererWkhtmltopdf = "wkhtmltopdf"
	RendererWeasyprint  = "weasyprint"
	RendererChromium    = "chromium"
)

var (
	storageBackends = []string{"memory", "file", "sqlite"}
	pdfRenderers    = []string{RendererRod, RendererWkhtmltopdf, RendererWeasyprint, RendererChromium}
)

// Config is the complete runtime configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Catalog CatalogConfig `yaml:"catalog,omitempty"`
	Storage StorageConfig `yaml:"storage"`
	Report  ReportConfig  `yaml:"report"`
}

// StorageConfig selects and configures the key-value backend.
type StorageConfig struct {
	Backend    string        `yaml:"backend"`
	DataDir    string        `yaml:"data_dir,omitempty"`
	SQLitePath string        `yaml:"sqlite_path,omitempty"`
	SaveDelay  time.Duration `yaml:"save_delay,omitempty"` // Simulated latency before finalizing writes
}

// CatalogConfig points at an optional YAML catalog replacing the built-in one.
type CatalogConfig struct {
	Path string `yaml:"path,omitempty"`
}

// ReportConfig controls report output.
type ReportConfig struct {
	S3           *S3Config `yaml:"s3,omitempty"`
	OutputDir    string    `yaml:"output_dir"`
	GuidancePath string    `yaml:"guidance_path,omitempty"` // YAML overrides for per-area remediation guidance
	PDF          PDFConfig `yaml:"pdf"`
}

// PDFConfig controls HTML to PDF rasterization.
type PDFConfig struct {
	ChromePath string        `yaml:"chrome_path,omitempty"`
	Renderers  []string      `yaml:"renderers"`
	Timeout    time.Duration `yaml:"timeout"`
}

// S3Config enables publishing generated reports to a bucket.
type S3Config struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix,omitempty"`
	Region string `yaml:"region,omitempty"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: "file",
			DataDir: "data",
		},
		Report: ReportConfig{
			OutputDir: "reports",
			PDF: PDFConfig{
				Renderers: slices.Clone(pdfRenderers),
				Timeout:   60 * time.Second,
			},
		},
		Server: ServerConfig{Addr: "127.0.0.1:8080"},
	}
}

// LoadConfig reads a YAML configuration file over the defaults.
func LoadConfig(path string) (*Config, error) {
	validPath, err := pathutil.ValidateConfigPath(path)
	if err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}

	data, err := os.ReadFile(validPath) // #nosec G304 - path is validated above
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Load returns the defaults when path is empty and LoadConfig otherwise.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadConfig(path)
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if !slices.Contains(storageBackends, c.Storage.Backend) {
		return fmt.Errorf("storage.backend must be one of %s, got %q", strings.Join(storageBackends, ", "), c.Storage.Backend)
	}
	if c.Storage.Backend == "file" && c.Storage.DataDir == "" {
		return fmt.Errorf("storage.data_dir is required for the file backend")
	}
	if c.Storage.Backend == "sqlite" && c.Storage.SQLitePath == "" {
		return fmt.Errorf("storage.sqlite_path is required for the sqlite backend")
	}
	if c.Storage.SaveDelay < 0 {
		return fmt.Errorf("storage.save_delay must not be negative")
	}

	if c.Catalog.Path != "" {
		if _, err := pathutil.ValidateConfigPath(c.Catalog.Path); err != nil {
			return fmt.Errorf("catalog.path: %w", err)
		}
	}

	if c.Report.GuidancePath != "" {
		if _, err := pathutil.ValidateConfigPath(c.Report.GuidancePath); err != nil {
			return fmt.Errorf("report.guidance_path: %w", err)
		}
	}
	if c.Report.OutputDir == "" {
		return fmt.Errorf("report.output_dir is required")
	}
	if len(c.Report.PDF.Renderers) == 0 {
		return fmt.Errorf("report.pdf.renderers must list at least one renderer")
	}
	for _, r := range c.Report.PDF.Renderers {
		if !slices.Contains(pdfRenderers, r) {
			return fmt.Errorf("unknown PDF renderer %q (known: %s)", r, strings.Join(pdfRenderers, ", "))
		}
	}
	if c.Report.PDF.Timeout <= 0 {
		return fmt.Errorf("report.pdf.timeout must be positive")
	}
	if c.Report.S3 != nil && c.Report.S3.Bucket == "" {
		return fmt.Errorf("report.s3.bucket is required when s3 publishing is configured")
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}

	return nil
}

// StorageLocation returns the path the selected backend stores data at.
func (c *Config) StorageLocation() string {
	if c.Storage.Backend == "sqlite" {
		return c.Storage.SQLitePath
	}
	return c.Storage.DataDir
}
