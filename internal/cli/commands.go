package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zatekoja/careplannavigator/internal/analysis"
)

func newComplexityCommand(opts *options) *cobra.Command {
	var planID string
	cmd := &cobra.Command{
		Use:   "complexity",
		Short: "Score a care plan's complexity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, opts, planID, func(ctx context.Context, ws *workspace, id string) (interface{}, error) {
				return ws.analysis.GetComplexity(ctx, id)
			})
		},
	}
	cmd.Flags().StringVarP(&planID, "plan", "p", "", "Care plan ID")
	return cmd
}

func newTimelineCommand(opts *options) *cobra.Command {
	var planID string
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Project a care plan onto its days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, opts, planID, func(ctx context.Context, ws *workspace, id string) (interface{}, error) {
				return ws.analysis.GetTimeline(ctx, id)
			})
		},
	}
	cmd.Flags().StringVarP(&planID, "plan", "p", "", "Care plan ID")
	return cmd
}

func newGraphCommand(opts *options) *cobra.Command {
	var planID string
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the dependency graph of a care plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, opts, planID, func(ctx context.Context, ws *workspace, id string) (interface{}, error) {
				return ws.graph.BuildGraph(ctx, id)
			})
		},
	}
	cmd.Flags().StringVarP(&planID, "plan", "p", "", "Care plan ID")
	return cmd
}

func newRiskCommand(opts *options) *cobra.Command {
	var stepID string
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Assess the impact of missing one care step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if stepID == "" {
				return fmt.Errorf("--step is required")
			}
			ws, err := opts.open()
			if err != nil {
				return err
			}
			report, err := ws.risk.GetStepRisk(cmd.Context(), stepID)
			if err != nil {
				return err
			}
			return opts.write(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVarP(&stepID, "step", "s", "", "Care step ID")
	return cmd
}

func newSummaryCommand(opts *options) *cobra.Command {
	var planID, audience string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize a care plan for a doctor, patient or caregiver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != "text" {
				return runPlan(cmd, opts, planID, func(ctx context.Context, ws *workspace, id string) (interface{}, error) {
					return ws.summary.Summarize(ctx, id, audience)
				})
			}
			if planID == "" {
				return fmt.Errorf("--plan is required")
			}
			ws, err := opts.open()
			if err != nil {
				return err
			}
			result, err := ws.summary.Summarize(cmd.Context(), planID, audience)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), analysis.SummaryText(&result.Summary))
			return err
		},
	}
	cmd.Flags().StringVarP(&planID, "plan", "p", "", "Care plan ID")
	cmd.Flags().StringVarP(&audience, "audience", "a", "doctor", "Audience: doctor | patient | caregiver")
	return cmd
}
