// Package catalog implements the catalog command for inspecting and
// validating question catalogs.
package catalog

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/gxpassess/internal/app"
	"github.com/Veraticus/gxpassess/internal/catalog"
	"github.com/Veraticus/gxpassess/internal/config"
	"github.com/Veraticus/gxpassess/pkg/logger"
)

// Run executes the catalog command.
func Run(args []string) error {
	var (
		configFile string
		file       string
		export     bool
	)

	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	fs.StringVar(&configFile, "config", "", "Configuration file (YAML)")
	fs.StringVar(&file, "file", "", "Catalog file to validate instead of the configured one")
	fs.BoolVar(&export, "export", false, "Print the catalog as YAML")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: gxpassess catalog [options]

Show the assessment areas, weights and questions.

Options:`)
		fs.PrintDefaults()
		fmt.Fprintln(os.Stderr, `
Examples:
  gxpassess catalog
  gxpassess catalog --export > catalog.yaml
  gxpassess catalog --file custom-catalog.yaml`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if file != "" {
		cfg.Catalog.Path = file
	}

	c, err := app.LoadCatalog(cfg, logger.GetGlobalLogger())
	if err != nil {
		return err
	}

	if export {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(c)
	}
	return Print(os.Stdout, c)
}

// Print writes an outline of c.
func Print(w io.Writer, c *catalog.Catalog) error {
	if _, err := fmt.Fprintf(w, "📋 Catalog %s: %d areas, %d questions, total weight %d\n",
		c.Version, len(c.Areas), c.TotalQuestions(), c.TotalWeight()); err != nil {
		return err
	}
	for i, a := range c.Areas {
		if _, err := fmt.Fprintf(w, "\n%2d. %s [%s] weight %d\n", i+1, a.Name, a.ID, a.Weight); err != nil {
			return err
		}
		for _, q := range a.Questions {
			if _, err := fmt.Fprintf(w, "    %-8s %s\n", q.ID, q.Text); err != nil {
				return err
			}
		}
	}
	return nil
}
