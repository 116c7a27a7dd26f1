package filter

import (
	"strings"

	"go.uber.org/zap"

	"github.com/clearbrook-ed/surveyclean-cli/internal/table"
)

// Assessment-quality flag columns.
const (
	ColCompleted = "completed"
	ColReliable  = "reliable"
	ColBestRun   = "best_run"
)

// AssessmentOptions controls which run-quality passes run.
type AssessmentOptions struct {
	Completed bool
	Reliable  bool
	BestRun   bool
	Verbose   bool
}

// DefaultAssessmentOptions requires completed runs only. Reliability
// and best-run filtering are opt-in because older exports predate
// those flags.
func DefaultAssessmentOptions() AssessmentOptions {
	return AssessmentOptions{
		Completed: true,
		Reliable:  false,
		BestRun:   false,
		Verbose:   true,
	}
}

// FilterAssessments drops incomplete, unreliable, or non-best runs
// according to the enabled passes. A requested pass whose flag column
// is absent is skipped (warned when verbose) without altering the
// table. Survivor order matches the input.
func FilterAssessments(t *table.Table, opts AssessmentOptions) (*table.Table, []PassStat, error) {
	if t == nil {
		return nil, nil, ErrNilTable
	}
	if t.Len() == 0 {
		if opts.Verbose {
			reportEmptyInput("assessments")
		}
		return t, nil, nil
	}

	initial := t.Len()
	out := t
	var stats []PassStat

	passes := []struct {
		enabled bool
		col     string
		keep    func(table.Value) bool
	}{
		{opts.Completed, ColCompleted, flagTrue},
		{opts.Reliable, ColReliable, flagTrueOrMissing},
		{opts.BestRun, ColBestRun, flagTrue},
	}

	for _, p := range passes {
		if !p.enabled {
			continue
		}
		if !t.HasColumn(p.col) {
			if opts.Verbose {
				zap.L().Warn("flag column absent, filter skipped",
					zap.String("filter", "assessments"),
					zap.String("column", p.col),
				)
			}
			continue
		}
		before := out.Len()
		col, keep := p.col, p.keep
		out = out.Filter(func(r table.Row) bool {
			return keep(r.Get(col))
		})
		stats = append(stats, PassStat{Name: col, Removed: before - out.Len()})
	}

	if opts.Verbose {
		report("assessments", stats, initial, out.Len())
	}
	return out, stats, nil
}

// flagTrue keeps only rows whose flag reads "true", case-insensitively.
func flagTrue(v table.Value) bool {
	return v.Valid && strings.EqualFold(strings.TrimSpace(v.String), "true")
}

// flagTrueOrMissing additionally keeps rows with no flag value at all.
// Legacy runs predate the reliability flag and must not be dropped
// for lacking it.
func flagTrueOrMissing(v table.Value) bool {
	return !v.Valid || flagTrue(v)
}
