// Package config implements the config command for validating configuration
// files.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Veraticus/gxpassess/internal/app"
	"github.com/Veraticus/gxpassess/internal/config"
	"github.com/Veraticus/gxpassess/pkg/logger"
)

// Run executes the config command.
func Run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand required: validate")
	}

	subcommand := args[0]
	subArgs := args[1:]

	switch subcommand {
	case "validate":
		return runValidate(subArgs)
	default:
		return fmt.Errorf("unknown subcommand: %s", subcommand)
	}
}

func runValidate(args []string) error {
	var configFile string

	fs := flag.NewFlagSet("config validate", flag.ExitOnError)
	fs.StringVar(&configFile, "config", "", "Configuration file to validate (required)")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: gxpassess config validate [options]

Validate a gxpassess configuration file.

Options:`)
		fs.PrintDefaults()
		fmt.Fprintln(os.Stderr, `
Examples:
  gxpassess config validate --config gxpassess.yaml`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if configFile == "" {
		return fmt.Errorf("--config flag is required")
	}

	fmt.Printf("🔍 Validating configuration: %s\n\n", configFile) //nolint:forbidigo

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}

	c, err := app.LoadCatalog(cfg, logger.GetGlobalLogger())
	if err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}

	fmt.Print(Summary(cfg, len(c.Areas))) //nolint:forbidigo
	fmt.Println("\n✅ Configuration is valid!") //nolint:forbidigo
	return nil
}

// Summary renders the effective settings of cfg.
func Summary(cfg *config.Config, areas int) string {
	var b strings.Builder

	b.WriteString("💾 Storage:\n")
	fmt.Fprintf(&b, "   Backend: %s\n", cfg.Storage.Backend)
	if loc := cfg.StorageLocation(); loc != "" {
		fmt.Fprintf(&b, "   Location: %s\n", loc)
	}
	if cfg.Storage.SaveDelay > 0 {
		fmt.Fprintf(&b, "   Save delay: %s\n", cfg.Storage.SaveDelay)
	}

	b.WriteString("\n📋 Catalog:\n")
	if cfg.Catalog.Path != "" {
		fmt.Fprintf(&b, "   File: %s\n", cfg.Catalog.Path)
	} else {
		b.WriteString("   Built-in\n")
	}
	fmt.Fprintf(&b, "   Areas: %d\n", areas)

	b.WriteString("\n📄 Reports:\n")
	fmt.Fprintf(&b, "   Output: %s\n", cfg.Report.OutputDir)
	fmt.Fprintf(&b, "   PDF renderers: %s (timeout %s)\n", strings.Join(cfg.Report.PDF.Renderers, ", "), cfg.Report.PDF.Timeout)
	if cfg.Report.S3 != nil {
		fmt.Fprintf(&b, "   Publish: s3://%s/%s\n", cfg.Report.S3.Bucket, cfg.Report.S3.Prefix)
	}

	fmt.Fprintf(&b, "\n🌐 Server: %s\n", cfg.Server.Addr)
	return b.String()
}
