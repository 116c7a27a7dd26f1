package main

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/clearbrook-ed/surveyclean-cli/internal/classify"
	"github.com/clearbrook-ed/surveyclean-cli/internal/filter"
	"github.com/clearbrook-ed/surveyclean-cli/internal/munge"
	"github.com/clearbrook-ed/surveyclean-cli/internal/store"
	"github.com/clearbrook-ed/surveyclean-cli/internal/table"
)

var (
	cleanInputs      []string
	cleanOutputDir   string
	cleanOptOut      string
	cleanRefsets     string
	cleanGradeCol    string
	cleanConcurrency int
	cleanAuditDB     string
	cleanQuiet       bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Run the full cleaning pipeline over one or more exports",
	Long: `Reads CSV or XLSX exports and runs the full cleaning pipeline:
opt-out removal, identifier punctuation stripping, account removal
(test/demo/pilot/qa), assessment-quality filtering, grade
normalization, deduplication, and empty-column pruning. Each input
produces a <name>.clean.csv in the output directory.

Examples:
  # Clean a single export with defaults
  surveyclean clean --input runs.csv

  # Several exports, opt-out list, audit trail
  surveyclean clean --input a.csv --input b.xlsx \
    --optout optouts.csv --audit-db audit.db`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if len(cleanInputs) == 0 {
			return eris.New("clean: at least one --input is required")
		}

		env, err := newCleanEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(concurrencyLimit())

		for _, input := range cleanInputs {
			g.Go(func() error {
				return env.cleanFile(gCtx, input)
			})
		}

		return g.Wait()
	},
}

func init() {
	cleanCmd.Flags().StringArrayVar(&cleanInputs, "input", nil, "input CSV or XLSX file (repeatable)")
	cleanCmd.Flags().StringVar(&cleanOutputDir, "output-dir", "", "directory for cleaned CSVs (default: config clean.output_dir)")
	cleanCmd.Flags().StringVar(&cleanOptOut, "optout", "", "path to opt-out identifier list")
	cleanCmd.Flags().StringVar(&cleanRefsets, "refsets", "", "YAML overlay with extra cohort identifiers")
	cleanCmd.Flags().StringVar(&cleanGradeCol, "grade-col", "", "grade column to normalize (default: config clean.grade_column)")
	cleanCmd.Flags().IntVar(&cleanConcurrency, "concurrency", 0, "max input files processed concurrently (default: config clean.concurrency)")
	cleanCmd.Flags().StringVar(&cleanAuditDB, "audit-db", "", "SQLite path for the run audit trail")
	cleanCmd.Flags().BoolVar(&cleanQuiet, "quiet", false, "suppress per-pass diagnostics")
	rootCmd.AddCommand(cleanCmd)
}

// cleanEnv holds state shared across concurrently cleaned files.
type cleanEnv struct {
	rules   *classify.Ruleset
	optOuts map[string]bool
	audit   store.Store
}

func newCleanEnv(ctx context.Context) (*cleanEnv, error) {
	env := &cleanEnv{}

	refsets := cleanRefsets
	if refsets == "" {
		refsets = cfg.Accounts.Refsets
	}
	if refsets != "" {
		rules, err := classify.LoadOverlay(refsets)
		if err != nil {
			return nil, eris.Wrap(err, "clean: load refsets overlay")
		}
		env.rules = rules
	}

	optout := cleanOptOut
	if optout == "" {
		optout = cfg.Clean.OptOutPath
	}
	if optout != "" {
		ids, err := munge.LoadOptOuts(optout)
		if err != nil {
			return nil, eris.Wrap(err, "clean: load opt-out list")
		}
		env.optOuts = ids
		zap.L().Info("loaded opt-out list", zap.Int("ids", len(ids)))
	}

	auditDB := cleanAuditDB
	if auditDB == "" {
		auditDB = cfg.Audit.Path
	}
	if auditDB != "" {
		st, err := store.NewSQLite(auditDB)
		if err != nil {
			return nil, eris.Wrap(err, "clean: open audit db")
		}
		if err := st.Migrate(ctx); err != nil {
			_ = st.Close()
			return nil, eris.Wrap(err, "clean: migrate audit db")
		}
		env.audit = st
	}

	return env, nil
}

func (e *cleanEnv) Close() {
	if e.audit != nil {
		_ = e.audit.Close()
	}
}

// cleanFile runs the pipeline over one input and writes the cleaned CSV.
func (e *cleanEnv) cleanFile(ctx context.Context, input string) error {
	started := time.Now().UTC()
	log := zap.L().With(zap.String("input", input))

	t, err := readInput(input)
	if err != nil {
		return err
	}
	rowsIn := t.Len()
	log.Info("loaded table", zap.Int("rows", rowsIn), zap.Int("columns", len(t.Columns)))

	var passes []store.PassRecord
	record := func(name string, removed int, remaining int) {
		passes = append(passes, store.PassRecord{Pass: name, Removed: removed, Remaining: remaining})
	}

	if e.optOuts != nil {
		before := t.Len()
		reduced, col := munge.RemoveOptOuts(t, e.optOuts)
		if col == "" {
			log.Warn("no identifier column found, opt-out removal skipped")
		} else {
			t = reduced
			record("optout", before-t.Len(), t.Len())
			log.Info("removed opt-outs", zap.String("column", col), zap.Int("removed", before-t.Len()))
		}
	}

	t = munge.StripPunctuation(t)

	verbose := !cleanQuiet
	t, accountStats, err := filter.RemoveAccounts(t, filter.AccountOptions{
		Test:    cfg.Accounts.Test,
		Demo:    cfg.Accounts.Demo,
		Pilot:   cfg.Accounts.Pilot,
		QA:      cfg.Accounts.QA,
		NA:      cfg.Accounts.DropNA,
		Verbose: verbose,
		Rules:   e.rules,
	})
	if err != nil {
		return eris.Wrapf(err, "clean: remove accounts %s", input)
	}
	for _, s := range accountStats {
		record("accounts/"+s.Name, s.Removed, t.Len())
	}

	t, runStats, err := filter.FilterAssessments(t, filter.AssessmentOptions{
		Completed: cfg.Assessments.Completed,
		Reliable:  cfg.Assessments.Reliable,
		BestRun:   cfg.Assessments.BestRun,
		Verbose:   verbose,
	})
	if err != nil {
		return eris.Wrapf(err, "clean: filter assessments %s", input)
	}
	for _, s := range runStats {
		record("assessments/"+s.Name, s.Removed, t.Len())
	}

	gradeCol := cleanGradeCol
	if gradeCol == "" {
		gradeCol = cfg.Clean.GradeColumn
	}
	if gradeCol != "" {
		t = munge.NormalizeGrades(t, gradeCol)
	}

	before := t.Len()
	t = munge.Dedupe(t)
	if removed := before - t.Len(); removed > 0 {
		record("dedupe", removed, t.Len())
		log.Info("removed duplicate rows", zap.Int("removed", removed))
	}

	t = munge.DropEmptyColumns(t)

	output := outputPath(input)
	if err := table.WriteCSV(t, output); err != nil {
		return eris.Wrapf(err, "clean: write %s", output)
	}
	log.Info("wrote cleaned table",
		zap.String("output", output),
		zap.Int("rows_in", rowsIn),
		zap.Int("rows_out", t.Len()),
	)

	if e.audit != nil {
		run := store.CleanRun{
			ID:         uuid.New().String(),
			Source:     input,
			RowsIn:     rowsIn,
			RowsOut:    t.Len(),
			StartedAt:  started,
			FinishedAt: time.Now().UTC(),
		}
		for i := range passes {
			passes[i].RunID = run.ID
		}
		if err := e.audit.RecordRun(ctx, run, passes); err != nil {
			// The cleaned output is already on disk; a failed audit
			// write should not fail the run.
			log.Error("audit record failed", zap.Error(err))
		}
	}

	return nil
}

// concurrencyLimit resolves the worker cap: flag first, then config,
// with a floor of one so errgroup never gets a non-positive limit.
func concurrencyLimit() int {
	n := cleanConcurrency
	if n <= 0 {
		n = cfg.Clean.Concurrency
	}
	if n <= 0 {
		n = 1
	}
	return n
}

// readInput loads a table, choosing the reader by file extension.
func readInput(path string) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return table.ReadXLSX(path)
	default:
		return table.ReadCSV(path)
	}
}

// outputPath places <name>.clean.csv in the output directory.
func outputPath(input string) string {
	dir := cleanOutputDir
	if dir == "" {
		dir = cfg.Clean.OutputDir
	}
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	return filepath.Join(dir, strings.TrimSuffix(base, ext)+".clean.csv")
}
