package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clearbrook-ed/surveyclean-cli/internal/classify"
	"github.com/clearbrook-ed/surveyclean-cli/internal/filter"
	"github.com/clearbrook-ed/surveyclean-cli/internal/table"
)

var (
	accountsInput   string
	accountsOutput  string
	accountsRefsets string
	keepTest        bool
	keepDemo        bool
	keepPilot       bool
	keepQA          bool
	dropNA          bool
	accountsQuiet   bool
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Remove test/demo/pilot/QA accounts from an export",
	RunE: func(cmd *cobra.Command, _ []string) error {
		t, err := readInput(accountsInput)
		if err != nil {
			return err
		}

		opts := filter.AccountOptions{
			Test:    cfg.Accounts.Test && !keepTest,
			Demo:    cfg.Accounts.Demo && !keepDemo,
			Pilot:   cfg.Accounts.Pilot && !keepPilot,
			QA:      cfg.Accounts.QA && !keepQA,
			NA:      cfg.Accounts.DropNA || dropNA,
			Verbose: !accountsQuiet,
		}

		refsets := accountsRefsets
		if refsets == "" {
			refsets = cfg.Accounts.Refsets
		}
		if refsets != "" {
			rules, err := classify.LoadOverlay(refsets)
			if err != nil {
				return eris.Wrap(err, "accounts: load refsets overlay")
			}
			opts.Rules = rules
		}

		out, stats, err := filter.RemoveAccounts(t, opts)
		if err != nil {
			return eris.Wrapf(err, "accounts: filter %s", accountsInput)
		}

		if err := table.WriteCSV(out, accountsOutput); err != nil {
			return err
		}
		zap.L().Info("wrote filtered table",
			zap.String("output", accountsOutput),
			zap.Int("removed", filter.TotalRemoved(stats)),
			zap.Int("rows", out.Len()),
		)
		return nil
	},
}

func init() {
	accountsCmd.Flags().StringVar(&accountsInput, "input", "", "input CSV or XLSX file (required)")
	accountsCmd.Flags().StringVar(&accountsOutput, "output", "", "output CSV file (required)")
	accountsCmd.Flags().StringVar(&accountsRefsets, "refsets", "", "YAML overlay with extra cohort identifiers")
	accountsCmd.Flags().BoolVar(&keepTest, "keep-test", false, "skip the test-account pass")
	accountsCmd.Flags().BoolVar(&keepDemo, "keep-demo", false, "skip the demo-account pass")
	accountsCmd.Flags().BoolVar(&keepPilot, "keep-pilot", false, "skip the pilot-account pass")
	accountsCmd.Flags().BoolVar(&keepQA, "keep-qa", false, "skip the QA-account pass")
	accountsCmd.Flags().BoolVar(&dropNA, "drop-na", false, "also drop rows with a missing participant identifier")
	accountsCmd.Flags().BoolVar(&accountsQuiet, "quiet", false, "suppress per-pass diagnostics")
	_ = accountsCmd.MarkFlagRequired("input")
	_ = accountsCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(accountsCmd)
}
