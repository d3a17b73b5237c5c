package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/gxpassess/internal/config"
	"github.com/Veraticus/gxpassess/internal/models"
	"github.com/Veraticus/gxpassess/pkg/logger"
)

func TestOpen_MemoryBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Backend = "memory"

	env, err := Open(context.Background(), cfg, logger.NewMockLogger())
	require.NoError(t, err)
	defer func() { assert.NoError(t, env.Close()) }()

	assert.Len(t, env.Catalog.Areas, 12)
	_, err = env.Service.Register(context.Background(), models.CompanyProfile{
		Name: "Acme", Segment: "CRO", ContactEmail: "qa@acme.example",
	})
	require.NoError(t, err)

	pub, err := env.Publisher(context.Background())
	require.NoError(t, err)
	assert.Nil(t, pub)
}

func TestOpen_FileBackendPersists(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.DataDir = t.TempDir()
	ctx := context.Background()

	env, err := Open(ctx, cfg, logger.NewMockLogger())
	require.NoError(t, err)
	_, err = env.Service.Register(ctx, models.CompanyProfile{Name: "Acme", Segment: "CRO", ContactEmail: "qa@acme.example"})
	require.NoError(t, err)
	require.NoError(t, env.Close())
	require.NoError(t, env.Close(), "closing twice is harmless")

	env, err = Open(ctx, cfg, logger.NewMockLogger())
	require.NoError(t, err)
	defer env.Close()
	profile, ok := env.Service.Company(ctx)
	require.True(t, ok)
	assert.Equal(t, "Acme", profile.Name)
}

func TestLoadCatalog_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: test
areas:
  - id: a
    name: Area A
    weight: 60
    questions:
      - {id: a1, text: First}
  - id: b
    name: Area B
    weight: 30
    questions:
      - {id: b1, text: Second}
`), 0o600))

	cfg := config.Default()
	cfg.Catalog.Path = path
	log := logger.NewMockLogger()

	c, err := LoadCatalog(cfg, log)
	require.NoError(t, err)
	assert.Equal(t, "test", c.Version)
	assert.Len(t, c.Areas, 2)
	assert.True(t, log.HasMessage("WARN", "Catalog warning"))
}

func TestOpenPath_InvalidConfig(t *testing.T) {
	_, err := OpenPath(context.Background(), "settings.json", logger.NewMockLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}
