package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clearbrook-ed/surveyclean-cli/internal/filter"
	"github.com/clearbrook-ed/surveyclean-cli/internal/table"
)

var (
	assessInput       string
	assessOutput      string
	requireReliable   bool
	requireBestRun    bool
	noRequireComplete bool
	assessQuiet       bool
)

var assessmentsCmd = &cobra.Command{
	Use:   "assessments",
	Short: "Drop incomplete, unreliable, or non-best assessment runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		t, err := readInput(assessInput)
		if err != nil {
			return err
		}

		out, stats, err := filter.FilterAssessments(t, filter.AssessmentOptions{
			Completed: cfg.Assessments.Completed && !noRequireComplete,
			Reliable:  cfg.Assessments.Reliable || requireReliable,
			BestRun:   cfg.Assessments.BestRun || requireBestRun,
			Verbose:   !assessQuiet,
		})
		if err != nil {
			return eris.Wrapf(err, "assessments: filter %s", assessInput)
		}

		if err := table.WriteCSV(out, assessOutput); err != nil {
			return err
		}
		zap.L().Info("wrote filtered table",
			zap.String("output", assessOutput),
			zap.Int("removed", filter.TotalRemoved(stats)),
			zap.Int("rows", out.Len()),
		)
		return nil
	},
}

func init() {
	assessmentsCmd.Flags().StringVar(&assessInput, "input", "", "input CSV or XLSX file (required)")
	assessmentsCmd.Flags().StringVar(&assessOutput, "output", "", "output CSV file (required)")
	assessmentsCmd.Flags().BoolVar(&requireReliable, "require-reliable", false, "drop runs not marked reliable (missing flag is kept)")
	assessmentsCmd.Flags().BoolVar(&requireBestRun, "require-best-run", false, "keep only each participant's best run")
	assessmentsCmd.Flags().BoolVar(&noRequireComplete, "no-require-completed", false, "keep incomplete runs")
	assessmentsCmd.Flags().BoolVar(&assessQuiet, "quiet", false, "suppress per-pass diagnostics")
	_ = assessmentsCmd.MarkFlagRequired("input")
	_ = assessmentsCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(assessmentsCmd)
}
