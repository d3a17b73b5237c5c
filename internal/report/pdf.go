package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/Veraticus/gxpassess/internal/apperr"
	"github.com/Veraticus/gxpassess/internal/config"
	"github.com/Veraticus/gxpassess/pkg/logger"
)

// A4 in inches.
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// ErrRendererUnavailable is returned by a renderer whose tool is not installed.
var ErrRendererUnavailable = errors.New("pdf renderer not available")

// PDFRenderer converts an HTML document into a multi-page A4 PDF.
type PDFRenderer interface {
	Render(ctx context.Context, html []byte) ([]byte, error)
}

// RodRenderer prints through a headless Chrome driven by go-rod.
type RodRenderer struct {
	// Bin is the browser binary; empty lets the launcher find or download one.
	Bin     string
	Timeout time.Duration
}

// Render implements PDFRenderer.
func (r *RodRenderer) Render(ctx context.Context, html []byte) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	l := launcher.New().Headless(true).Context(ctx)
	if r.Bin != "" {
		l = l.Bin(r.Bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}
	defer l.Kill()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	defer func() { _ = browser.Close() }()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	if err := page.SetDocumentContent(string(html)); err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait for document: %w", err)
	}

	width, height := a4Width, a4Height
	stream, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:        &width,
		PaperHeight:       &height,
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}
	return io.ReadAll(stream)
}

// CommandRenderer shells out to an HTML to PDF converter.
type CommandRenderer struct {
	// LookPath resolves Command, exec.LookPath when nil.
	LookPath func(file string) (string, error)
	// Args builds the command line from the input and output paths.
	Args    func(in, out string) []string
	Name    string
	Command string
}

// Render implements PDFRenderer.
func (r *CommandRenderer) Render(ctx context.Context, html []byte) ([]byte, error) {
	lookPath := r.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	bin, err := lookPath(r.Command)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.Name, ErrRendererUnavailable)
	}

	dir, err := os.MkdirTemp("", "gxpassess-pdf-")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	in := filepath.Join(dir, "report.html")
	out := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(in, html, 0600); err != nil {
		return nil, fmt.Errorf("writing html: %w", err)
	}

	// #nosec G204 - bin comes from a fixed converter table or configuration
	cmd := exec.CommandContext(ctx, bin, r.Args(in, out)...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%s failed: %w: %s", r.Name, err, strings.TrimSpace(string(output)))
	}

	data, err := os.ReadFile(out) // #nosec G304 - path inside our temp dir
	if err != nil {
		return nil, fmt.Errorf("%s produced no output: %w", r.Name, err)
	}
	return data, nil
}

// WkhtmltopdfRenderer returns the wkhtmltopdf converter.
func WkhtmltopdfRenderer() *CommandRenderer {
	return &CommandRenderer{
		Name:    config.RendererWkhtmltopdf,
		Command: "wkhtmltopdf",
		Args: func(in, out string) []string {
			return []string{
				"--enable-local-file-access",
				"--print-media-type",
				"--orientation", "Portrait",
				"--page-size", "A4",
				"--margin-top", "18mm",
				"--margin-bottom", "18mm",
				"--margin-left", "15mm",
				"--margin-right", "15mm",
				in, out,
			}
		},
	}
}

// WeasyprintRenderer returns the weasyprint converter.
func WeasyprintRenderer() *CommandRenderer {
	return &CommandRenderer{
		Name:    config.RendererWeasyprint,
		Command: "weasyprint",
		Args:    func(in, out string) []string { return []string{in, out} },
	}
}

// ChromiumRenderer returns a converter running a headless Chromium binary.
func ChromiumRenderer(command string) *CommandRenderer {
	if command == "" {
		command = "chromium"
	}
	return &CommandRenderer{
		Name:    config.RendererChromium,
		Command: command,
		Args: func(in, out string) []string {
			return []string{
				"--headless",
				"--disable-gpu",
				"--no-sandbox",
				"--no-pdf-header-footer",
				"--print-to-pdf=" + out,
				in,
			}
		},
	}
}

// NamedRenderer pairs a renderer with a name for logging.
type NamedRenderer struct {
	Renderer PDFRenderer
	Name     string
}

// ChainRenderer tries each renderer in order until one succeeds.
type ChainRenderer struct {
	logger    logger.Logger
	renderers []NamedRenderer
}

// NewChainRenderer creates a chain over renderers.
func NewChainRenderer(log logger.Logger, renderers ...NamedRenderer) *ChainRenderer {
	return &ChainRenderer{logger: log, renderers: renderers}
}

// Render implements PDFRenderer. All failures are reported as one
// report generation error.
func (c *ChainRenderer) Render(ctx context.Context, html []byte) ([]byte, error) {
	var errs []error
	for _, r := range c.renderers {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		data, err := r.Renderer.Render(ctx, html)
		if err == nil {
			c.logger.Info("Converted HTML to PDF", "converter", r.Name, "bytes", len(data))
			return data, nil
		}

		if errors.Is(err, ErrRendererUnavailable) {
			c.logger.Debug("PDF converter not found", "converter", r.Name)
		} else {
			c.logger.Debug("Converter failed", "converter", r.Name, "error", err)
		}
		errs = append(errs, err)
	}

	names := make([]string, 0, len(c.renderers))
	for _, r := range c.renderers {
		names = append(names, r.Name)
	}
	err := fmt.Errorf("no PDF converter succeeded (tried %s): %w", strings.Join(names, ", "), errors.Join(errs...))
	return nil, apperr.ReportGeneration("render pdf", err)
}

// NewPDFRenderer builds the renderer chain named by cfg.
func NewPDFRenderer(cfg config.PDFConfig, log logger.Logger) (*ChainRenderer, error) {
	var renderers []NamedRenderer
	for _, name := range cfg.Renderers {
		var r PDFRenderer
		switch name {
		case config.RendererRod:
			r = &RodRenderer{Bin: cfg.ChromePath, Timeout: cfg.Timeout}
		case config.RendererWkhtmltopdf:
			r = WkhtmltopdfRenderer()
		case config.RendererWeasyprint:
			r = WeasyprintRenderer()
		case config.RendererChromium:
			r = ChromiumRenderer(cfg.ChromePath)
		default:
			return nil, fmt.Errorf("unknown PDF renderer: %s", name)
		}
		renderers = append(renderers, NamedRenderer{Name: name, Renderer: r})
	}
	if len(renderers) == 0 {
		return nil, fmt.Errorf("no PDF renderers configured")
	}
	return NewChainRenderer(log, renderers...), nil
}
