// Package classify answers "does this row belong to a non-production
// cohort?" against fixed reference sets and identifier patterns. It is
// pure lookup logic with no side effects; the filter package layers
// pass orchestration and diagnostics on top.
package classify

import (
	"strings"

	"github.com/clearbrook-ed/surveyclean-cli/internal/table"
)

// Ruleset holds the reference sets and identifier patterns used for
// cohort matching. The built-in ruleset is immutable; overlays produce
// merged copies.
type Ruleset struct {
	Districts map[Cohort]map[string]bool
	Schools   map[Cohort]map[string]bool
	Groups    map[Cohort]map[string]bool
	Patterns  map[Cohort][]string
}

// Default returns the compiled-in ruleset. The maps are shared;
// callers must treat the result as read-only.
func Default() *Ruleset {
	return &Ruleset{
		Districts: map[Cohort]map[string]bool{
			CohortTest:  testDistricts,
			CohortDemo:  demoDistricts,
			CohortPilot: pilotDistricts,
			CohortQA:    qaDistricts,
		},
		Schools: map[Cohort]map[string]bool{
			CohortTest:  testSchools,
			CohortDemo:  demoSchools,
			CohortPilot: pilotSchools,
			CohortQA:    qaSchools,
		},
		Groups: map[Cohort]map[string]bool{
			CohortTest:  testGroups,
			CohortDemo:  demoGroups,
			CohortPilot: pilotGroups,
			CohortQA:    qaGroups,
		},
		Patterns: identifierPatterns,
	}
}

// Matches reports whether the row belongs to the cohort. Criteria are
// OR'd: organizational set membership on each dimension present in the
// schema, a case-insensitive substring match on the participant
// identifier, and (test/demo only) the explicit marker flag. Absent
// columns contribute no match.
func (rs *Ruleset) Matches(c Cohort, row table.Row, has func(string) bool) bool {
	if has(ColDistricts) && inSet(rs.Districts[c], row.Get(ColDistricts)) {
		return true
	}
	if has(ColSchools) && inSet(rs.Schools[c], row.Get(ColSchools)) {
		return true
	}
	if has(ColGroups) && inSet(rs.Groups[c], row.Get(ColGroups)) {
		return true
	}
	if has(ColPID) && rs.matchesPattern(c, row.Get(ColPID)) {
		return true
	}
	if col, ok := flagColumns[c]; ok && has(col) && flagged(row.Get(col)) {
		return true
	}
	return false
}

// matchesPattern applies the cohort's substring rules to the
// participant identifier, case-folded.
func (rs *Ruleset) matchesPattern(c Cohort, v table.Value) bool {
	if !v.Valid {
		return false
	}
	lower := strings.ToLower(v.String)
	for _, p := range rs.Patterns[c] {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// flagged reports whether a marker column value signals removal.
// "false" (any case) means not flagged. A missing value is treated as
// not flagged, matching the reliability column's missing-means-keep
// policy for legacy rows.
func flagged(v table.Value) bool {
	if !v.Valid {
		return false
	}
	return !strings.EqualFold(strings.TrimSpace(v.String), "false")
}

func inSet(set map[string]bool, v table.Value) bool {
	return v.Valid && set[v.String]
}
