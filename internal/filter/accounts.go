// Package filter removes known non-production accounts and
// low-quality assessment runs from survey record tables. Filtering is
// pure and order-preserving; diagnostics go through zap only when
// verbosity is requested and never change the returned table.
package filter

import (
	"github.com/clearbrook-ed/surveyclean-cli/internal/classify"
	"github.com/clearbrook-ed/surveyclean-cli/internal/table"
)

// AccountOptions controls which account-removal passes run.
type AccountOptions struct {
	Test    bool
	Demo    bool
	Pilot   bool
	QA      bool
	NA      bool // drop rows with a missing participant identifier
	Verbose bool

	// Rules overrides the compiled-in reference sets, usually via a
	// classify overlay. Nil means the default ruleset.
	Rules *classify.Ruleset
}

// DefaultAccountOptions enables the four cohort passes, leaves
// missing-identifier removal off, and reports diagnostics.
func DefaultAccountOptions() AccountOptions {
	return AccountOptions{
		Test:    true,
		Demo:    true,
		Pilot:   true,
		QA:      true,
		NA:      false,
		Verbose: true,
	}
}

const missingIDPass = "missing_identifier"

// RemoveAccounts drops rows classified as test, demo, pilot, or QA
// accounts, and optionally rows with no participant identifier.
// Passes run in a fixed order, each over the table as reduced by the
// previous ones, so removal is monotonic. Survivor order matches the
// input. The returned stats list one entry per executed pass.
func RemoveAccounts(t *table.Table, opts AccountOptions) (*table.Table, []PassStat, error) {
	if t == nil {
		return nil, nil, ErrNilTable
	}
	if t.Len() == 0 {
		if opts.Verbose {
			reportEmptyInput("accounts")
		}
		return t, nil, nil
	}

	rules := opts.Rules
	if rules == nil {
		rules = classify.Default()
	}

	if opts.Verbose {
		var missing []string
		for _, col := range classify.ExpectedColumns {
			if !t.HasColumn(col) {
				missing = append(missing, col)
			}
		}
		reportMissingColumns("accounts", missing)
	}

	initial := t.Len()
	out, stats := removeAccounts(t, opts, rules)

	if opts.Verbose {
		report("accounts", stats, initial, out.Len())
	}
	return out, stats, nil
}

// removeAccounts is the pure core: no logging, no side effects.
func removeAccounts(t *table.Table, opts AccountOptions, rules *classify.Ruleset) (*table.Table, []PassStat) {
	out := t
	var stats []PassStat

	enabled := map[classify.Cohort]bool{
		classify.CohortTest:  opts.Test,
		classify.CohortDemo:  opts.Demo,
		classify.CohortPilot: opts.Pilot,
		classify.CohortQA:    opts.QA,
	}

	for _, c := range classify.Cohorts {
		if !enabled[c] {
			continue
		}
		before := out.Len()
		out = out.Filter(func(r table.Row) bool {
			return !rules.Matches(c, r, t.HasColumn)
		})
		stats = append(stats, PassStat{Name: string(c), Removed: before - out.Len()})
	}

	if opts.NA && t.HasColumn(classify.ColPID) {
		before := out.Len()
		out = out.Filter(func(r table.Row) bool {
			return !r.IsNull(classify.ColPID)
		})
		stats = append(stats, PassStat{Name: missingIDPass, Removed: before - out.Len()})
	}

	return out, stats
}
