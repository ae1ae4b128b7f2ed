// Package cli implements the careplan-analyze command, which runs the
// analysis services against a fixture bundle without a database.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zatekoja/careplannavigator/internal/adapters/fixtures"
	"github.com/zatekoja/careplannavigator/internal/analysis"
	"github.com/zatekoja/careplannavigator/internal/application/services"
	"github.com/zatekoja/careplannavigator/internal/infrastructure/observability"
	"github.com/zatekoja/careplannavigator/pkg/config"
)

// options are the persistent flags shared by every subcommand
type options struct {
	file      string
	weighting string
	format    string
	maxDays   int
	verbose   bool
}

// NewRootCommand builds the careplan-analyze command tree. Results are
// written to stdout and logs to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "careplan-analyze",
		Short: "Analyze care plan complexity, timelines, risk and dependencies",
		Long: `careplan-analyze loads a care plan bundle (YAML or JSON) and runs the
same analysis the API serves.

Examples:
  careplan-analyze complexity --file plan.yaml --plan template_knee_001
  careplan-analyze timeline --file plan.yaml --plan template_knee_001 --format yaml
  careplan-analyze risk --file plan.yaml --step step_knee_001
  careplan-analyze graph --file plan.yaml --plan template_knee_001
  careplan-analyze summary --file plan.yaml --plan template_knee_001 --audience caregiver --format text`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env := "production"
			if opts.verbose {
				env = "development"
			}
			observability.InitLoggerTo(stderr, "careplan-analyze", env)

			switch opts.format {
			case "json", "yaml", "text":
				return nil
			default:
				return fmt.Errorf("invalid --format %q (want json, yaml or text)", opts.format)
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "Care plan bundle to analyze (YAML or JSON)")
	root.PersistentFlags().StringVarP(&opts.weighting, "weighting", "w", config.WeightingFourFactor, "Complexity weighting: four_factor | three_factor")
	root.PersistentFlags().StringVar(&opts.format, "format", "json", "Output format: json | yaml | text (summary only)")
	root.PersistentFlags().IntVar(&opts.maxDays, "max-days", 90, "Timeline day cap (0 for none)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Human readable logs on stderr")
	_ = root.MarkPersistentFlagRequired("file")

	root.AddCommand(
		newComplexityCommand(opts),
		newTimelineCommand(opts),
		newRiskCommand(opts),
		newGraphCommand(opts),
		newSummaryCommand(opts),
	)
	return root
}

// workspace wires the services over an in-memory fixture store
type workspace struct {
	analysis *services.CareAnalysisService
	graph    *services.DependencyGraphService
	risk     *services.RiskService
	summary  *services.SummaryService
}

func (o *options) open() (*workspace, error) {
	bundle, err := fixtures.LoadFile(o.file)
	if err != nil {
		return nil, err
	}
	store, err := fixtures.NewStore(bundle)
	if err != nil {
		return nil, err
	}
	weights, err := analysis.WeightsByName(strings.ToLower(o.weighting))
	if err != nil {
		return nil, err
	}

	scorer := analysis.NewScorer(weights)
	return &workspace{
		analysis: services.NewCareAnalysisService(
			store.CarePlans(), store.CareSteps(), store.Dependencies(), store.RiskMetadata(),
			scorer, o.maxDays, nil,
		),
		graph: services.NewDependencyGraphService(store.CarePlans(), store.CareSteps(), store.Dependencies()),
		risk:  services.NewRiskService(store.CareSteps(), store.Dependencies(), store.RiskMetadata(), nil),
		summary: services.NewSummaryService(
			store.CarePlans(), store.CareSteps(), store.Dependencies(), store.RiskMetadata(),
			scorer, nil,
		),
	}, nil
}

func (o *options) write(w io.Writer, v interface{}) error {
	switch o.format {
	case "text":
		return fmt.Errorf("--format text is only supported by summary")
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// runPlan is the shared body of the plan-scoped subcommands
func runPlan(cmd *cobra.Command, opts *options, planID string, run func(context.Context, *workspace, string) (interface{}, error)) error {
	if planID == "" {
		return fmt.Errorf("--plan is required")
	}
	ws, err := opts.open()
	if err != nil {
		return err
	}
	result, err := run(cmd.Context(), ws, planID)
	if err != nil {
		return err
	}
	return opts.write(cmd.OutOrStdout(), result)
}
