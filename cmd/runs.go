package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/clearbrook-ed/surveyclean-cli/internal/store"
)

var (
	runsAuditDB string
	runsLimit   int
	runsID      string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded cleaning runs from the audit database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		auditDB := runsAuditDB
		if auditDB == "" {
			auditDB = cfg.Audit.Path
		}
		if auditDB == "" {
			return eris.New("runs: no audit database configured (--audit-db or audit.path)")
		}

		st, err := store.NewSQLite(auditDB)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		defer w.Flush() //nolint:errcheck

		if runsID != "" {
			run, passes, err := st.GetRun(ctx, runsID)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "run\t%s\nsource\t%s\nrows\t%d -> %d\nstarted\t%s\n\n",
				run.ID, run.Source, run.RowsIn, run.RowsOut, run.StartedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintln(w, "PASS\tREMOVED\tREMAINING")
			for _, p := range passes {
				fmt.Fprintf(w, "%s\t%d\t%d\n", p.Pass, p.Removed, p.Remaining)
			}
			return nil
		}

		runs, err := st.ListRuns(ctx, runsLimit)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tSOURCE\tIN\tOUT\tSTARTED")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
				r.ID, r.Source, r.RowsIn, r.RowsOut, r.StartedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().StringVar(&runsAuditDB, "audit-db", "", "SQLite audit database path")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "max runs to list")
	runsCmd.Flags().StringVar(&runsID, "id", "", "show one run with its pass breakdown")
	rootCmd.AddCommand(runsCmd)
}
