package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "data", cfg.StorageLocation())
	assert.Equal(t, []string{"rod", "wkhtmltopdf", "weasyprint", "chromium"}, cfg.Report.PDF.Renderers)
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		check   func(t *testing.T, cfg *Config)
		name    string
		yaml    string
		errMsg  string
		wantErr bool
	}{
		{
			name: "complete config",
			yaml: `storage:
  backend: sqlite
  sqlite_path: /var/lib/gxpassess/gxp.db
  save_delay: 1500ms

catalog:
  path: catalog.yaml

report:
  output_dir: out
  pdf:
    renderers: [weasyprint, rod]
    timeout: 2m
    chrome_path: /usr/bin/chromium
  s3:
    bucket: gxp-reports
    prefix: acme
    region: eu-central-1

server:
  addr: ":9090"
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "sqlite", cfg.Storage.Backend)
				assert.Equal(t, "/var/lib/gxpassess/gxp.db", cfg.StorageLocation())
				assert.Equal(t, 1500*time.Millisecond, cfg.Storage.SaveDelay)
				assert.Equal(t, []string{"weasyprint", "rod"}, cfg.Report.PDF.Renderers)
				assert.Equal(t, 2*time.Minute, cfg.Report.PDF.Timeout)
				require.NotNil(t, cfg.Report.S3)
				assert.Equal(t, "gxp-reports", cfg.Report.S3.Bucket)
				assert.Equal(t, ":9090", cfg.Server.Addr)
			},
		},
		{
			name: "partial config keeps defaults",
			yaml: `storage:
  backend: memory
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "memory", cfg.Storage.Backend)
				assert.Equal(t, "reports", cfg.Report.OutputDir)
				assert.Equal(t, 60*time.Second, cfg.Report.PDF.Timeout)
				assert.Nil(t, cfg.Report.S3)
			},
		},
		{
			name:    "unknown backend",
			yaml:    "storage:\n  backend: redis\n",
			wantErr: true,
			errMsg:  "storage.backend must be one of",
		},
		{
			name:    "sqlite without path",
			yaml:    "storage:\n  backend: sqlite\n",
			wantErr: true,
			errMsg:  "sqlite_path is required",
		},
		{
			name:    "unknown renderer",
			yaml:    "report:\n  pdf:\n    renderers: [prince]\n",
			wantErr: true,
			errMsg:  "unknown PDF renderer",
		},
		{
			name:    "s3 without bucket",
			yaml:    "report:\n  s3:\n    prefix: x\n",
			wantErr: true,
			errMsg:  "report.s3.bucket is required",
		},
		{
			name:    "bad duration",
			yaml:    "storage:\n  save_delay: soon\n",
			wantErr: true,
			errMsg:  "parsing config YAML",
		},
		{
			name:    "negative delay",
			yaml:    "storage:\n  save_delay: -1s\n",
			wantErr: true,
			errMsg:  "save_delay must not be negative",
		},
		{
			name:    "invalid YAML",
			yaml:    "storage: [unclosed\n",
			wantErr: true,
			errMsg:  "parsing config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "gxpassess.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0600))

			cfg, err := LoadConfig(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig_PathErrors(t *testing.T) {
	_, err := LoadConfig("config.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config path")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate_GuidancePath(t *testing.T) {
	cfg := Default()
	cfg.Report.GuidancePath = "guidance.yaml"
	require.NoError(t, cfg.Validate())

	cfg.Report.GuidancePath = "guidance.txt"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "report.guidance_path")
}
