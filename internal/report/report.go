// Package report derives the GxP assessment report from a finalized record
// and renders it as HTML, PDF, JSON, markdown or a remediation action plan.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/gxpassess/internal/apperr"
	"github.com/Veraticus/gxpassess/internal/catalog"
	"github.com/Veraticus/gxpassess/internal/models"
	"github.com/Veraticus/gxpassess/internal/scoring"
	"github.com/Veraticus/gxpassess/pkg/logger"
	"github.com/Veraticus/gxpassess/pkg/pathutil"
)

const fileNamePrefix = "GxP_Assessment_Report"

// Completion summarizes how much of the catalog a record covers.
type Completion struct {
	Percent        int `json:"percent" yaml:"percent"`
	AreasCompleted int `json:"areas_completed" yaml:"areas_completed"`
	TotalAreas     int `json:"total_areas" yaml:"total_areas"`
}

// Report is the fully derived report content.
type Report struct {
	GeneratedAt     time.Time                `json:"generated_at"`
	Record          *models.AssessmentRecord `json:"-"`
	Company         models.CompanyProfile    `json:"company"`
	Source          SourceKind               `json:"source"`
	Label           string                   `json:"label,omitempty"`
	BaseName        string                   `json:"-"`
	AreaScores      []models.AreaScore       `json:"area_scores"`
	Compliance      []ComplianceEstimate     `json:"compliance"`
	Gaps            []models.Gap             `json:"critical_gaps"`
	Recommendations []Recommendation         `json:"recommendations"`
	Costs           CostSummary              `json:"costs"`
	Completion      Completion               `json:"completion"`
	OverallScore    int                      `json:"overall_score"`
}

// IsDemo reports whether the report was built from demo data.
func (r *Report) IsDemo() bool { return r.Source == SourceDemo }

// FileName returns the artifact name for a file extension.
func (r *Report) FileName(ext string) string {
	return r.BaseName + "." + strings.TrimPrefix(ext, ".")
}

// BaseFileName returns the deterministic name stem of a report, based on the
// company and the completion date of the record.
func BaseFileName(rec *models.AssessmentRecord, demo bool) string {
	parts := []string{fileNamePrefix}
	if demo {
		parts = append(parts, "DEMO")
	}
	parts = append(parts, pathutil.Slug(rec.CompanyName), rec.CompletionDate.UTC().Format("2006-01-02"))
	return strings.Join(parts, "_")
}

// Generator builds and renders reports.
type Generator struct {
	catalog  *catalog.Catalog
	guidance *GuidanceSet
	logger   logger.Logger
	pdf      PDFRenderer
	now      func() time.Time
}

// Option configures a Generator.
type Option func(*generatorOptions)

type generatorOptions struct {
	logger   logger.Logger
	pdf      PDFRenderer
	now      func() time.Time
	table    map[string]Guidance
	fallback Guidance
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(o *generatorOptions) { o.logger = log }
}

// WithPDFRenderer sets the renderer used by the pdf format.
func WithPDFRenderer(r PDFRenderer) Option {
	return func(o *generatorOptions) { o.pdf = r }
}

// WithClock sets the source of the generation timestamp.
func WithClock(now func() time.Time) Option {
	return func(o *generatorOptions) { o.now = now }
}

// WithGuidance replaces the guidance table and its default entry.
func WithGuidance(table map[string]Guidance, fallback Guidance) Option {
	return func(o *generatorOptions) {
		o.table = table
		o.fallback = fallback
	}
}

// NewGenerator creates a generator for catalog c. It fails when the guidance
// table does not cover every catalog area.
func NewGenerator(c *catalog.Catalog, opts ...Option) (*Generator, error) {
	o := generatorOptions{
		logger:   logger.GetGlobalLogger(),
		now:      time.Now,
		table:    BuiltinGuidance,
		fallback: DefaultGuidance,
	}
	for _, opt := range opts {
		opt(&o)
	}

	guidance, err := NewGuidanceSet(c, o.table, o.fallback)
	if err != nil {
		return nil, fmt.Errorf("validating guidance: %w", err)
	}

	return &Generator{
		catalog:  c,
		guidance: guidance,
		logger:   o.logger,
		pdf:      o.pdf,
		now:      o.now,
	}, nil
}

// Catalog returns the catalog reports are derived against.
func (g *Generator) Catalog() *catalog.Catalog { return g.catalog }

// Build derives the report content from src.
func (g *Generator) Build(src Source) (*Report, error) {
	rec := src.Record
	if rec == nil {
		return nil, apperr.ReportGeneration("build report", fmt.Errorf("no assessment record"))
	}

	if !scoring.Consistent(g.catalog, rec) {
		g.logger.Warn("Stored area scores differ from catalog scoring", "assessment", rec.ID)
	}

	r := &Report{
		GeneratedAt:  g.now().UTC(),
		Record:       rec,
		Company:      rec.CompanyData,
		Source:       src.Kind,
		BaseName:     BaseFileName(rec, src.IsDemo()),
		AreaScores:   append([]models.AreaScore(nil), rec.AreaScores...),
		OverallScore: rec.OverallScore,
		Completion: Completion{
			Percent:        scoring.OverallCompletion(g.catalog, rec.Responses),
			AreasCompleted: scoring.AreasCompleted(g.catalog, rec.Responses),
			TotalAreas:     len(g.catalog.Areas),
		},
		Compliance:      EstimateCompliance(rec.OverallScore),
		Gaps:            CriticalGaps(g.catalog, rec, g.guidance),
		Costs:           AggregateCosts(src.Systems),
		Recommendations: Recommendations(),
	}
	if r.Company.Name == "" {
		r.Company.Name = rec.CompanyName
		r.Company.Segment = rec.CompanySegment
	}
	if src.IsDemo() {
		r.Label = DemoLabel
	}

	g.logger.Debug("Built report",
		"assessment", rec.ID,
		"source", src.Kind,
		"gaps", len(r.Gaps),
		"systems", len(r.Costs.Systems))
	return r, nil
}

// Render renders r in the named format.
func (g *Generator) Render(ctx context.Context, r *Report, format string) ([]byte, error) {
	f, err := GetFormat(format, FormatDeps{Logger: g.logger, PDF: g.pdf})
	if err != nil {
		return nil, err
	}
	data, err := f.Render(ctx, r)
	if err != nil {
		if apperr.IsReportGeneration(err) {
			return nil, err
		}
		return nil, apperr.ReportGeneration("render "+format, err)
	}
	return data, nil
}

// Artifact is a rendered report written to disk.
type Artifact struct {
	Format string
	Path   string
}

// WriteFiles renders r in every format and writes the results to dir.
func (g *Generator) WriteFiles(ctx context.Context, r *Report, formats []string, dir string) ([]Artifact, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, apperr.ReportGeneration("create output directory", err)
	}

	artifacts := make([]Artifact, 0, len(formats))
	for _, name := range formats {
		f, err := GetFormat(name, FormatDeps{Logger: g.logger, PDF: g.pdf})
		if err != nil {
			return artifacts, err
		}
		data, err := g.Render(ctx, r, name)
		if err != nil {
			return artifacts, err
		}

		path, err := pathutil.ValidateOutputPath(filepath.Join(dir, r.FileName(f.Extension())))
		if err != nil {
			return artifacts, apperr.ReportGeneration("write "+name, err)
		}
		if err := os.WriteFile(path, data, 0600); err != nil {
			return artifacts, apperr.ReportGeneration("write "+name, err)
		}

		g.logger.Info("Generated report", "format", name, "path", path, "demo", r.IsDemo())
		artifacts = append(artifacts, Artifact{Format: name, Path: path})
	}
	return artifacts, nil
}
