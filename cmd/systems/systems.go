// Package systems implements the systems command group for the systems
// inventory of an assessment.
package systems

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/gxpassess/internal/app"
	"github.com/Veraticus/gxpassess/internal/models"
	"github.com/Veraticus/gxpassess/internal/report"
	"github.com/Veraticus/gxpassess/pkg/logger"
)

type options struct {
	configFile string
	assessment string
}

// Run executes the systems command group.
func Run(args []string) error {
	cmd := NewCommand(nil)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

// NewCommand builds the systems command tree. When env is nil the
// environment is opened from --config for each invocation.
func NewCommand(env *app.Env) *cobra.Command {
	opts := &options{}

	open := func(ctx context.Context) (*app.Env, func(), error) {
		if env != nil {
			return env, func() {}, nil
		}
		e, err := app.OpenPath(ctx, opts.configFile, logger.GetGlobalLogger())
		if err != nil {
			return nil, nil, err
		}
		return e, func() { _ = e.Close() }, nil
	}

	root := &cobra.Command{
		Use:   "systems",
		Short: "Manage the systems inventory of an assessment",
		Long: `Manage the systems inventory attached to a completed assessment.

Available subcommands:
  list      - Show the inventory with annual costs
  add       - Add a system to the inventory
  remove    - Remove a system by name
  templates - Show the company-wide custom system templates`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "Configuration file (YAML)")
	root.PersistentFlags().StringVar(&opts.assessment, "assessment", "latest", "Assessment id (or 'latest')")

	root.AddCommand(
		newListCommand(opts, open),
		newAddCommand(opts, open),
		newRemoveCommand(opts, open),
		newTemplatesCommand(open),
	)
	return root
}

type opener func(ctx context.Context) (*app.Env, func(), error)

func resolveID(ctx context.Context, e *app.Env, id string) (string, error) {
	rec, err := e.Service.Resolve(ctx, id)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func newListCommand(opts *options, open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the inventory with annual costs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, done, err := open(ctx)
			if err != nil {
				return err
			}
			defer done()

			id, err := resolveID(ctx, e, opts.assessment)
			if err != nil {
				return err
			}
			systems := e.Service.Systems(ctx, id)
			if len(systems) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No systems recorded for assessment %s\n", id)
				return nil
			}
			return printInventory(cmd.OutOrStdout(), systems)
		},
	}
}

func newAddCommand(opts *options, open opener) *cobra.Command {
	var (
		entry        models.SystemEntry
		integrations string
		template     bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a system to the inventory",
		Example: `  gxpassess systems add --name "TrackWise" --type QMS --monthly 2500 --users 40 --gxp-critical
  gxpassess systems add --name "In-house LIMS" --type LIMS --template`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, done, err := open(ctx)
			if err != nil {
				return err
			}
			defer done()

			entry.Integrations = splitList(integrations)
			if template {
				if err := e.Service.AddCustomSystem(ctx, entry); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✅ Saved template %s\n", entry.Name)
				return nil
			}

			id, err := resolveID(ctx, e, opts.assessment)
			if err != nil {
				return err
			}
			if err := e.Service.AddSystem(ctx, id, entry); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Added %s (%s) to %s, %s per year\n",
				entry.Name, entry.Type, id, report.Money(entry.AnnualCost()))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&entry.Name, "name", "", "System name (required)")
	f.StringVar(&entry.Type, "type", "", "System type: "+strings.Join(models.SystemTypes(), ", "))
	f.StringVar(&entry.Vendor, "vendor", "", "Vendor")
	f.StringVar(&entry.Deployment, "deployment", "", "Deployment model (cloud, on-premise, hybrid)")
	f.StringVar(&integrations, "integrations", "", "Comma separated list of integrated systems")
	f.Float64Var(&entry.MonthlyCost, "monthly", 0, "Monthly license cost")
	f.Float64Var(&entry.SupportCost, "support", 0, "Yearly support cost")
	f.Float64Var(&entry.InfrastructureCost, "infrastructure", 0, "Yearly infrastructure cost")
	f.IntVar(&entry.Users, "users", 0, "Number of users")
	f.BoolVar(&entry.GxPCritical, "gxp-critical", false, "System is GxP critical")
	f.BoolVar(&template, "template", false, "Save as a company-wide custom template instead")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newRemoveCommand(opts *options, open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a system by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, done, err := open(ctx)
			if err != nil {
				return err
			}
			defer done()

			id, err := resolveID(ctx, e, opts.assessment)
			if err != nil {
				return err
			}
			if err := e.Service.RemoveSystem(ctx, id, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Removed %s from %s\n", args[0], id)
			return nil
		},
	}
}

func newTemplatesCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "Show the company-wide custom system templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, done, err := open(ctx)
			if err != nil {
				return err
			}
			defer done()

			templates := e.Service.CustomSystems(ctx)
			if len(templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No custom system templates")
				return nil
			}
			return printInventory(cmd.OutOrStdout(), templates)
		},
	}
}

func printInventory(out io.Writer, systems []models.SystemEntry) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "NAME\tTYPE\tVENDOR\tUSERS\tGXP\tANNUAL COST"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	costs := report.AggregateCosts(systems)
	for _, s := range costs.Systems {
		gxp := ""
		if s.GxPCritical {
			gxp = "yes"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			s.Name, s.Type, s.Vendor, s.Users, gxp, report.Money(s.AnnualCost)); err != nil {
			return fmt.Errorf("writing system entry: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "TOTAL\t\t\t\t%d\t%s\n", costs.GxPCriticalCount, report.Money(costs.TotalAnnual)); err != nil {
		return fmt.Errorf("writing total: %w", err)
	}
	return w.Flush()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
