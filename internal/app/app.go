// Package app wires configuration, storage and services together for the
// command line entry points.
package app

import (
	"context"
	"flag"
	"fmt"

	"github.com/Veraticus/gxpassess/internal/assessment"
	"github.com/Veraticus/gxpassess/internal/catalog"
	"github.com/Veraticus/gxpassess/internal/config"
	"github.com/Veraticus/gxpassess/internal/report"
	"github.com/Veraticus/gxpassess/internal/storage"
	"github.com/Veraticus/gxpassess/pkg/logger"
)

// Env is an opened runtime environment.
type Env struct {
	Config  *config.Config
	Catalog *catalog.Catalog
	Store   *storage.Store
	Service *assessment.Service
	Reports *report.Generator
	Logger  logger.Logger
	kv      storage.KV
}

// ConfigFlag registers the --config flag on fs.
func ConfigFlag(fs *flag.FlagSet) *string {
	return fs.String("config", "", "Configuration file (YAML); defaults are used when empty")
}

// OpenPath loads the configuration at path and opens the environment.
func OpenPath(ctx context.Context, path string, log logger.Logger) (*Env, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return Open(ctx, cfg, log)
}

// Open builds the catalog, storage backend, assessment service and report
// generator described by cfg. Close releases the backend.
func Open(_ context.Context, cfg *config.Config, log logger.Logger) (*Env, error) {
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	c, err := LoadCatalog(cfg, log)
	if err != nil {
		return nil, err
	}

	kv, err := storage.Open(cfg.Storage.Backend, cfg.StorageLocation(), log)
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", cfg.Storage.Backend, err)
	}
	store := storage.NewStore(kv,
		storage.WithLogger(log),
		storage.WithSaveDelay(cfg.Storage.SaveDelay),
	)

	pdf, err := report.NewPDFRenderer(cfg.Report.PDF, log)
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("configuring PDF renderer: %w", err)
	}
	genOpts := []report.Option{report.WithLogger(log), report.WithPDFRenderer(pdf)}
	if cfg.Report.GuidancePath != "" {
		table, fallback, err := report.LoadGuidance(cfg.Report.GuidancePath)
		if err != nil {
			_ = kv.Close()
			return nil, err
		}
		genOpts = append(genOpts, report.WithGuidance(table, fallback))
	}
	gen, err := report.NewGenerator(c, genOpts...)
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("creating report generator: %w", err)
	}

	log.Debug("Opened environment",
		"backend", cfg.Storage.Backend,
		"location", cfg.StorageLocation(),
		"catalog", c.Version,
		"areas", len(c.Areas))

	return &Env{
		Config:  cfg,
		Catalog: c,
		Store:   store,
		Service: assessment.New(store, c, assessment.WithLogger(log)),
		Reports: gen,
		Logger:  log,
		kv:      kv,
	}, nil
}

// LoadCatalog returns the configured catalog file, or the built-in catalog
// when none is set.
func LoadCatalog(cfg *config.Config, log logger.Logger) (*catalog.Catalog, error) {
	if cfg.Catalog.Path == "" {
		return catalog.Default(), nil
	}
	c, warnings, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	for _, w := range warnings {
		log.Warn("Catalog warning", "path", cfg.Catalog.Path, "warning", w)
	}
	return c, nil
}

// Publisher returns the S3 publisher, or nil when publishing is not
// configured.
func (e *Env) Publisher(ctx context.Context) (*report.S3Publisher, error) {
	if e.Config.Report.S3 == nil {
		return nil, nil
	}
	return report.NewS3PublisherFromConfig(ctx, *e.Config.Report.S3, e.Logger)
}

// Close releases the storage backend.
func (e *Env) Close() error {
	if e.kv == nil {
		return nil
	}
	err := e.kv.Close()
	e.kv = nil
	if err != nil {
		return fmt.Errorf("closing storage: %w", err)
	}
	return nil
}
