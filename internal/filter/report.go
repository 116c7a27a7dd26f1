package filter

import (
	"go.uber.org/zap"
)

// PassStat records the outcome of one executed filtering pass. The
// pure filtering core returns these; rendering them as log output is
// the caller's (optional) concern.
type PassStat struct {
	Name    string
	Removed int
}

// TotalRemoved sums removals across passes.
func TotalRemoved(stats []PassStat) int {
	total := 0
	for _, s := range stats {
		total += s.Removed
	}
	return total
}

// report renders pass stats through the global logger. Advisory only:
// nothing here changes what the filter returned.
func report(filterName string, stats []PassStat, initial, final int) {
	log := zap.L().With(zap.String("filter", filterName))

	for _, s := range stats {
		if s.Removed == 0 {
			continue
		}
		log.Info("pass removed rows",
			zap.String("pass", s.Name),
			zap.Int("removed", s.Removed),
		)
	}

	removed := initial - final
	pct := 0.0
	if initial > 0 {
		pct = float64(removed) / float64(initial) * 100
	}
	log.Info("filtering complete",
		zap.Int("initial_rows", initial),
		zap.Int("final_rows", final),
		zap.Int("removed", removed),
		zap.Float64("removed_pct", pct),
	)

	switch {
	case removed == 0:
		log.Info("no rows removed")
	case final == 0:
		log.Warn("all rows removed")
	case removed*2 > initial:
		log.Warn("more than half of rows removed",
			zap.Float64("removed_pct", pct),
		)
	}
}

// reportEmptyInput is the advisory for a zero-row table.
func reportEmptyInput(filterName string) {
	zap.L().Warn("input table has no rows, returning unchanged",
		zap.String("filter", filterName),
	)
}

// reportMissingColumns notes schema columns the filter expected but
// the input lacks. Informational: the affected criteria are skipped.
func reportMissingColumns(filterName string, missing []string) {
	if len(missing) == 0 {
		return
	}
	zap.L().Info("expected columns absent, related criteria skipped",
		zap.String("filter", filterName),
		zap.Strings("columns", missing),
	)
}
