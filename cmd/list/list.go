// Package list implements the list command for viewing completed assessments.
package list

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Veraticus/gxpassess/internal/app"
	"github.com/Veraticus/gxpassess/internal/models"
	"github.com/Veraticus/gxpassess/pkg/logger"
)

// Options represents list command options.
type Options struct {
	ConfigFile string
	Company    string
	Format     string
	Limit      int
}

// Run executes the list command.
func Run(args []string) error {
	opts := &Options{}

	fs := flag.NewFlagSet("list", flag.ExitOnError)
	fs.StringVar(&opts.ConfigFile, "config", "", "Configuration file (YAML)")
	fs.StringVar(&opts.Company, "company", "", "Filter by company name")
	fs.IntVar(&opts.Limit, "limit", 10, "Maximum number of assessments to show (0 for all)")
	fs.StringVar(&opts.Format, "format", "table", "Output format (table, json)")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: gxpassess list [options]

List completed assessments, newest first.

Options:`)
		fs.PrintDefaults()
		fmt.Fprintln(os.Stderr, `
Examples:
  gxpassess list
  gxpassess list --limit 20
  gxpassess list --format json`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	env, err := app.OpenPath(ctx, opts.ConfigFile, logger.GetGlobalLogger())
	if err != nil {
		return err
	}
	defer env.Close()

	summaries := Filter(env.Service.List(ctx), opts.Company, opts.Limit)
	if len(summaries) == 0 {
		logger.Info("No assessments found")
		return nil
	}

	switch opts.Format {
	case "json":
		return displayJSON(summaries)
	default:
		return displayTable(summaries, time.Now())
	}
}

// Filter keeps summaries whose company contains company, case-insensitively,
// capped at limit entries when limit is positive.
func Filter(summaries []models.AssessmentSummary, company string, limit int) []models.AssessmentSummary {
	var out []models.AssessmentSummary
	for _, s := range summaries {
		if company != "" && !strings.Contains(strings.ToLower(s.CompanyName), strings.ToLower(company)) {
			continue
		}
		out = append(out, s)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func displayTable(summaries []models.AssessmentSummary, now time.Time) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(w, "ID\tCOMPANY\tSEGMENT\tSCORE\tAREAS\tCOMPLETED"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 80)); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}

	for _, s := range summaries {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%d%%\t%d/%d\t%s\n",
			s.ID,
			s.CompanyName,
			s.CompanySegment,
			s.OverallScore,
			s.AreasCompleted,
			s.TotalAreas,
			FormatTimeAgo(s.CompletionDate, now),
		); err != nil {
			return fmt.Errorf("writing assessment entry: %w", err)
		}
	}

	return w.Flush()
}

func displayJSON(summaries []models.AssessmentSummary) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summaries); err != nil {
		return fmt.Errorf("encoding assessments: %w", err)
	}
	return nil
}

// FormatTimeAgo renders how long before now t was.
func FormatTimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}
