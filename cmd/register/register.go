// Package register implements the register command for the company profile.
package register

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Veraticus/gxpassess/internal/app"
	"github.com/Veraticus/gxpassess/internal/models"
	"github.com/Veraticus/gxpassess/pkg/logger"
)

// Run executes the register command.
func Run(args []string) error {
	var profile models.CompanyProfile

	fs := flag.NewFlagSet("register", flag.ExitOnError)
	configFile := app.ConfigFlag(fs)
	fs.StringVar(&profile.Name, "name", "", "Company name (required)")
	fs.StringVar(&profile.Segment, "segment", "", "Industry segment (required): "+strings.Join(models.Segments(), ", "))
	fs.StringVar(&profile.ContactEmail, "email", "", "Contact email (required)")
	fs.StringVar(&profile.ContactName, "contact", "", "Contact person")
	fs.StringVar(&profile.Country, "country", "", "Country")
	fs.IntVar(&profile.Employees, "employees", 0, "Number of employees")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: gxpassess register [options]

Register or update the company profile.

Options:`)
		fs.PrintDefaults()
		fmt.Fprintln(os.Stderr, `
Examples:
  gxpassess register --name "Acme Pharma" --segment Pharmaceutical --email qa@acme.example`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	env, err := app.OpenPath(ctx, *configFile, logger.GetGlobalLogger())
	if err != nil {
		return err
	}
	defer env.Close()

	saved, err := env.Service.Register(ctx, profile)
	if err != nil {
		return err
	}

	logger.WithCompany(saved.Name, saved.Segment).Debug("Company profile saved", "email", saved.ContactEmail)
	fmt.Printf("✅ Registered %s (%s)\n", saved.Name, saved.Segment) //nolint:forbidigo
	return nil
}
