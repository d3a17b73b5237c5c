package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/gxpassess/internal/remediation"
	"github.com/Veraticus/gxpassess/pkg/logger"
)

// Format names of the built-in formats.
const (
	FormatHTML       = "html"
	FormatPDF        = "pdf"
	FormatJSON       = "json"
	FormatMarkdown   = "markdown"
	FormatActionPlan = "action-plan"
)

// Format represents a report rendering strategy.
type Format interface {
	// Render produces the artifact bytes for r.
	Render(ctx context.Context, r *Report) ([]byte, error)
	// Name returns the format identifier (e.g., "html", "pdf").
	Name() string
	// Extension returns the file extension without the dot.
	Extension() string
	// Description returns a human-readable description of the format.
	Description() string
}

// FormatDeps are the collaborators a format may need.
type FormatDeps struct {
	Logger logger.Logger
	PDF    PDFRenderer
}

// FormatFactory creates instances of report formats.
type FormatFactory func(deps FormatDeps) (Format, error)

var (
	formatRegistry = make(map[string]FormatFactory)
	registryMutex  sync.RWMutex
)

// RegisterFormat registers a new report format factory.
func RegisterFormat(name string, factory FormatFactory) {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	if factory == nil {
		panic(fmt.Sprintf("report: RegisterFormat factory is nil for format %q", name))
	}
	if _, dup := formatRegistry[name]; dup {
		panic(fmt.Sprintf("report: RegisterFormat called twice for format %q", name))
	}
	formatRegistry[name] = factory
}

// GetFormat creates an instance of the specified report format.
func GetFormat(name string, deps FormatDeps) (Format, error) {
	registryMutex.RLock()
	factory, exists := formatRegistry[name]
	registryMutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unknown report format: %s", name)
	}
	if deps.Logger == nil {
		deps.Logger = logger.GetGlobalLogger()
	}
	return factory(deps)
}

// ListFormats returns the registered format names in sorted order.
func ListFormats() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	formats := make([]string, 0, len(formatRegistry))
	for name := range formatRegistry {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}

type htmlFormat struct{}

func (htmlFormat) Render(_ context.Context, r *Report) ([]byte, error) { return RenderHTML(r) }
func (htmlFormat) Name() string { return FormatHTML }
func (htmlFormat) Extension() string { return "html" }
func (htmlFormat) Description() string {
	return "Print-ready HTML report with one page per section"
}

type pdfFormat struct {
	renderer PDFRenderer
	logger   logger.Logger
}

func (f *pdfFormat) Render(ctx context.Context, r *Report) ([]byte, error) {
	html, err := RenderHTML(r)
	if err != nil {
		return nil, err
	}
	f.logger.Debug("Rendering PDF", "assessment", r.Record.ID, "html_bytes", len(html))
	return f.renderer.Render(ctx, html)
}
func (f *pdfFormat) Name() string { return FormatPDF }
func (f *pdfFormat) Extension() string { return "pdf" }
func (f *pdfFormat) Description() string { return "Multi-page A4 PDF rendered from the HTML report" }

type jsonFormat struct{}

// jsonDocument adds the demo flag to the serialized report.
type jsonDocument struct {
	*Report
	Demo         bool   `json:"demo"`
	AssessmentID string `json:"assessment_id"`
}

func (jsonFormat) Render(_ context.Context, r *Report) ([]byte, error) {
	data, err := json.MarshalIndent(jsonDocument{Report: r, Demo: r.IsDemo(), AssessmentID: r.Record.ID}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling report: %w", err)
	}
	return append(data, '\n'), nil
}
func (jsonFormat) Name() string { return FormatJSON }
func (jsonFormat) Extension() string { return "json" }
func (jsonFormat) Description() string { return "Machine-readable JSON report" }

type markdownFormat struct{}

func (markdownFormat) Render(_ context.Context, r *Report) ([]byte, error) { return RenderMarkdown(r), nil }
func (markdownFormat) Name() string { return FormatMarkdown }
func (markdownFormat) Extension() string { return "md" }
func (markdownFormat) Description() string { return "Markdown summary report" }

type actionPlanFormat struct {
	planner *remediation.Planner
}

func (f *actionPlanFormat) Render(_ context.Context, r *Report) ([]byte, error) {
	plan := f.planner.Build(remediation.PlanInfo{
		GeneratedAt:  r.GeneratedAt,
		AssessmentID: r.Record.ID,
		Company:      r.Company.Name,
		Label:        r.Label,
	}, r.Gaps)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(plan); err != nil {
		return nil, fmt.Errorf("encoding action plan: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding action plan: %w", err)
	}
	return buf.Bytes(), nil
}
func (f *actionPlanFormat) Name() string { return FormatActionPlan }
func (f *actionPlanFormat) Extension() string { return "yaml" }
func (f *actionPlanFormat) Description() string {
	return "YAML remediation plan grouping the critical gaps into actions"
}

// Register built-in formats during package initialization.
func init() {
	RegisterFormat(FormatHTML, func(FormatDeps) (Format, error) {
		return htmlFormat{}, nil
	})

	RegisterFormat(FormatPDF, func(deps FormatDeps) (Format, error) {
		if deps.PDF == nil {
			return nil, fmt.Errorf("pdf format requires a PDF renderer")
		}
		return &pdfFormat{renderer: deps.PDF, logger: deps.Logger}, nil
	})

	RegisterFormat(FormatJSON, func(FormatDeps) (Format, error) {
		return jsonFormat{}, nil
	})

	RegisterFormat(FormatMarkdown, func(FormatDeps) (Format, error) {
		return markdownFormat{}, nil
	})

	RegisterFormat(FormatActionPlan, func(deps FormatDeps) (Format, error) {
		return &actionPlanFormat{planner: remediation.NewPlanner(deps.Logger)}, nil
	})
}
