// Package main is the entry point for the gxpassess CLI.
// gxpassess runs a GxP compliance self-assessment for Life Sciences
// companies: it registers the company, walks through the weighted maturity
// questions, scores the answers and generates reports with gaps, regulatory
// guidance and a systems cost overview.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Veraticus/gxpassess/cmd/assess"
	"github.com/Veraticus/gxpassess/cmd/catalog"
	"github.com/Veraticus/gxpassess/cmd/config"
	"github.com/Veraticus/gxpassess/cmd/list"
	"github.com/Veraticus/gxpassess/cmd/register"
	"github.com/Veraticus/gxpassess/cmd/report"
	"github.com/Veraticus/gxpassess/cmd/serve"
	"github.com/Veraticus/gxpassess/cmd/systems"
	"github.com/Veraticus/gxpassess/pkg/logger"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

type command struct {
	run     func(args []string) error
	failure string
}

var commands = map[string]command{
	"register": {register.Run, "registration failed"},
	"assess":   {assess.Run, "assessment failed"},
	"list":     {list.Run, "list failed"},
	"report":   {report.Run, "report generation failed"},
	"systems":  {systems.Run, "systems command failed"},
	"catalog":  {catalog.Run, "catalog command failed"},
	"config":   {config.Run, "config validation failed"},
	"serve":    {serve.Run, "server failed"},
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var (
		debug       bool
		logFormat   string
		showVersion bool
	)

	globalFlags := flag.NewFlagSet("gxpassess", flag.ExitOnError)
	globalFlags.BoolVar(&debug, "debug", false, "Enable debug logging")
	globalFlags.StringVar(&logFormat, "log-format", "text", "Log format (text or json)")
	globalFlags.BoolVar(&showVersion, "version", false, "Show version information")

	if err := globalFlags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if showVersion {
		fmt.Printf("gxpassess version %s (built %s)\n", version, buildTime) //nolint:forbidigo
		os.Exit(0)
	}

	logger.SetupLogger(debug, logFormat)

	args := globalFlags.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	name := args[0]
	if name == "help" {
		printUsage()
		return
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}
	if err := cmd.run(args[1:]); err != nil {
		logger.Error(cmd.failure, "error", err)
		os.Exit(1)
	}
}

func printUsage() {
	//nolint:forbidigo
	fmt.Println(`🧪 gxpassess, GxP Compliance Self-Assessment

Usage:
  gxpassess [global flags] <command> [command flags]

Commands:
  register   Register the company profile
  assess     Run the assessment wizard (resumes the saved draft)
  list       List completed assessments
  report     Generate reports (html, pdf, json, markdown, action-plan)
  systems    Manage the systems inventory of an assessment
  catalog    Show or validate the question catalog
  config     Validate configuration
  serve      Serve the JSON API and report downloads
  help       Show this help message

Global Flags:
  --debug         Enable debug logging
  --log-format    Log format (text or json) (default: text)
  --version       Show version information

Examples:
  gxpassess register --name "Acme Pharma" --segment Pharmaceutical --email qa@acme.example
  gxpassess assess
  gxpassess report --assessment latest --format html,pdf
  gxpassess systems add --name TrackWise --type QMS --monthly 2500
  gxpassess serve --addr :8080

Use "gxpassess <command> --help" for more information about a command.`)
}
