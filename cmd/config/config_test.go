package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/gxpassess/internal/config"
)

func TestSummary(t *testing.T) {
	cfg := config.Default()
	cfg.Report.S3 = &config.S3Config{Bucket: "reports", Prefix: "gxp"}

	out := Summary(cfg, 12)
	assert.Contains(t, out, "Backend: file")
	assert.Contains(t, out, "Location: data")
	assert.Contains(t, out, "Built-in")
	assert.Contains(t, out, "Areas: 12")
	assert.Contains(t, out, "rod, wkhtmltopdf, weasyprint, chromium")
	assert.Contains(t, out, "s3://reports/gxp")
	assert.Contains(t, out, "Server: 127.0.0.1:8080")
}

func TestRun(t *testing.T) {
	require.EqualError(t, Run(nil), "subcommand required: validate")
	require.EqualError(t, Run([]string{"show"}), "unknown subcommand: show")
	require.EqualError(t, Run([]string{"validate"}), "--config flag is required")

	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("storage:\n  backend: memory\n"), 0o600))
	require.NoError(t, Run([]string{"validate", "--config", good}))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("storage:\n  backend: redis\n"), 0o600))
	err := Run([]string{"validate", "--config", bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration is invalid")
}
