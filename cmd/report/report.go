// Package report implements the report command for generating assessment
// reports.
package report

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Veraticus/gxpassess/internal/app"
	"github.com/Veraticus/gxpassess/internal/apperr"
	"github.com/Veraticus/gxpassess/internal/assessment"
	"github.com/Veraticus/gxpassess/internal/report"
	"github.com/Veraticus/gxpassess/pkg/logger"
)

// Options represents report command options.
type Options struct {
	ConfigFile string
	Assessment string
	OutputDir  string
	Formats    []string
	Demo       bool
	Publish    bool
	List       bool
}

// Run executes the report command.
func Run(args []string) error {
	opts := &Options{}

	fs := flag.NewFlagSet("report", flag.ExitOnError)
	fs.StringVar(&opts.ConfigFile, "config", "", "Configuration file (YAML)")
	fs.StringVar(&opts.Assessment, "assessment", "latest", "Assessment id (or 'latest')")
	fs.StringVar(&opts.OutputDir, "output", "", "Output directory (default: report.output_dir from config)")
	fs.BoolVar(&opts.Demo, "demo", false, "Render the labeled demo report")
	fs.BoolVar(&opts.Publish, "publish", false, "Upload the generated files to the configured S3 bucket")
	fs.BoolVar(&opts.List, "list-formats", false, "List available formats and exit")

	var formatFlag string
	fs.StringVar(&formatFlag, "format", report.FormatHTML, "Report format(s), comma separated: "+strings.Join(report.ListFormats(), ","))

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: gxpassess report [options]

Generate a report from a completed assessment. Without any completed
assessment a demo report is generated and labeled as demo data.

Options:`)
		fs.PrintDefaults()
		fmt.Fprintln(os.Stderr, `
Examples:
  gxpassess report
  gxpassess report --assessment 3f1c2a7e-... --format html,pdf
  gxpassess report --format json,action-plan --output out --publish`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if opts.List {
		printFormats()
		return nil
	}

	opts.Formats = ParseFormats(formatFlag)
	if len(opts.Formats) == 0 {
		return fmt.Errorf("--format must name at least one format")
	}

	ctx := context.Background()
	env, err := app.OpenPath(ctx, opts.ConfigFile, logger.GetGlobalLogger())
	if err != nil {
		return err
	}
	defer env.Close()

	if opts.OutputDir == "" {
		opts.OutputDir = env.Config.Report.OutputDir
	}

	src, err := ResolveSource(ctx, env.Service, env.Reports, opts.Assessment, opts.Demo)
	if err != nil {
		return err
	}
	if src.IsDemo() {
		logger.Warn("No completed assessment found; generating demo report", "label", report.DemoLabel)
	}

	logger.WithAssessment(src.Record.ID).Info("Generating report",
		"source", src.Kind,
		"formats", opts.Formats,
		"output", opts.OutputDir,
	)

	r, err := env.Reports.Build(src)
	if err != nil {
		return err
	}
	artifacts, err := env.Reports.WriteFiles(ctx, r, opts.Formats, opts.OutputDir)
	if err != nil {
		return err
	}

	fmt.Println("📄 Generated reports:") //nolint:forbidigo
	for _, a := range artifacts {
		fmt.Printf("   %-12s %s\n", a.Format, a.Path) //nolint:forbidigo
	}

	if !opts.Publish {
		return nil
	}
	pub, err := env.Publisher(ctx)
	if err != nil {
		return fmt.Errorf("configuring publisher: %w", err)
	}
	if pub == nil {
		return fmt.Errorf("--publish requires report.s3 in the configuration")
	}
	keys, err := pub.Publish(ctx, src.Record.ID, artifacts)
	if err != nil {
		return err
	}
	fmt.Printf("☁️  Published %d file(s) to s3://%s\n", len(keys), env.Config.Report.S3.Bucket) //nolint:forbidigo
	return nil
}

// ParseFormats splits a comma separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// ResolveSource picks the record a report is built from. The latest
// assessment falls back to demo data when none exists; an explicit id that
// does not exist is an error.
func ResolveSource(ctx context.Context, svc *assessment.Service, gen *report.Generator, id string, demo bool) (report.Source, error) {
	if demo {
		return report.DemoSource(gen.Catalog()), nil
	}
	rec, err := svc.Resolve(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) && (id == "" || id == "latest") {
			return report.DemoSource(gen.Catalog()), nil
		}
		return report.Source{}, err
	}
	return report.RealSource(rec, svc.Systems(ctx, rec.ID)), nil
}

func printFormats() {
	fmt.Println("Available formats:") //nolint:forbidigo
	deps := report.FormatDeps{Logger: logger.GetGlobalLogger(), PDF: noPDF{}}
	for _, name := range report.ListFormats() {
		f, err := report.GetFormat(name, deps)
		if err != nil {
			continue
		}
		fmt.Printf("  %-12s %s\n", name, f.Description()) //nolint:forbidigo
	}
}

type noPDF struct{}

func (noPDF) Render(context.Context, []byte) ([]byte, error) { return nil, report.ErrRendererUnavailable }
