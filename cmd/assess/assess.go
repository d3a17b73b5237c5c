// Package assess implements the assess command, which runs the assessment
// wizard in the terminal or finalizes answers from a YAML file.
package assess

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/gxpassess/internal/app"
	"github.com/Veraticus/gxpassess/internal/assessment"
	"github.com/Veraticus/gxpassess/internal/models"
	"github.com/Veraticus/gxpassess/internal/ui"
	"github.com/Veraticus/gxpassess/internal/wizard"
	"github.com/Veraticus/gxpassess/pkg/logger"
	"github.com/Veraticus/gxpassess/pkg/pathutil"
)

// Options represents assess command options.
type Options struct {
	ConfigFile  string
	AnswersFile string
	EditID      string
	Fresh       bool
}

// Run executes the assess command.
func Run(args []string) error {
	opts := &Options{}

	fs := flag.NewFlagSet("assess", flag.ExitOnError)
	fs.StringVar(&opts.ConfigFile, "config", "", "Configuration file (YAML)")
	fs.StringVar(&opts.AnswersFile, "answers", "", "YAML file of answers (area -> question -> 0-5); skips the interactive wizard")
	fs.StringVar(&opts.EditID, "edit", "", "Start from the answers of an existing assessment")
	fs.BoolVar(&opts.Fresh, "fresh", false, "Discard the saved draft and start over")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: gxpassess assess [options]

Run the GxP self-assessment. The wizard autosaves a draft and resumes it on
the next run.

Options:`)
		fs.PrintDefaults()
		fmt.Fprintln(os.Stderr, `
Examples:
  gxpassess assess
  gxpassess assess --edit 3f1c2a7e-...
  gxpassess assess --answers answers.yaml`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env, err := app.OpenPath(ctx, opts.ConfigFile, logger.GetGlobalLogger())
	if err != nil {
		return err
	}
	defer env.Close()

	if opts.AnswersFile != "" {
		responses, err := LoadAnswers(opts.AnswersFile)
		if err != nil {
			return err
		}
		rec, err := env.Service.Complete(ctx, responses, opts.EditID)
		if err != nil {
			return err
		}
		printResult(rec)
		return nil
	}

	if opts.Fresh {
		if err := env.Service.DiscardDraft(ctx); err != nil {
			return fmt.Errorf("discarding draft: %w", err)
		}
	}

	w, err := startWizard(ctx, env.Service, opts.EditID)
	if err != nil {
		return err
	}

	rec, err := ui.Run(ctx, ui.NewApp(ctx, env.Service, w))
	if err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}
	if rec == nil {
		logger.Info("Assessment not finished; progress is kept as a draft")
		return nil
	}
	printResult(rec)
	return nil
}

func startWizard(ctx context.Context, svc *assessment.Service, editID string) (*wizard.Wizard, error) {
	if editID != "" {
		return svc.ForEdit(ctx, editID)
	}
	return svc.Start(ctx), nil
}

// LoadAnswers reads a response set from YAML.
func LoadAnswers(path string) (models.ResponseSet, error) {
	validPath, err := pathutil.ValidateConfigPath(path)
	if err != nil {
		return nil, fmt.Errorf("invalid answers path: %w", err)
	}
	data, err := os.ReadFile(validPath) //nolint:gosec // path validated above
	if err != nil {
		return nil, fmt.Errorf("reading answers: %w", err)
	}
	responses := models.NewResponseSet()
	if err := yaml.Unmarshal(data, &responses); err != nil {
		return nil, fmt.Errorf("parsing answers YAML: %w", err)
	}
	return responses, nil
}

func printResult(rec *models.AssessmentRecord) {
	//nolint:forbidigo
	fmt.Printf("✅ Assessment %s completed\n   Company: %s\n   Overall score: %d%%\n   Areas: %d/%d\n",
		rec.ID, rec.CompanyName, rec.OverallScore, rec.AreasCompleted, rec.TotalAreas)
}
