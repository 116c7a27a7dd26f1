package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clearbrook-ed/surveyclean-cli/internal/table"
)

func noColumns(string) bool { return false }

func hasCols(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(c string) bool { return set[c] }
}

func TestMatchesDistrictMembership(t *testing.T) {
	rs := Default()
	row := table.Row{ColDistricts: table.V("kXyCT8BbFFbuXo5u0M84")}

	assert.True(t, rs.Matches(CohortTest, row, hasCols(ColDistricts)))
	assert.False(t, rs.Matches(CohortDemo, row, hasCols(ColDistricts)))
	assert.False(t, rs.Matches(CohortPilot, row, hasCols(ColDistricts)))
	assert.False(t, rs.Matches(CohortQA, row, hasCols(ColDistricts)))
}

func TestMatchesMembershipIsCaseSensitive(t *testing.T) {
	rs := Default()
	row := table.Row{ColDistricts: table.V("kxyct8bbffbuxo5u0m84")}
	assert.False(t, rs.Matches(CohortTest, row, hasCols(ColDistricts)))
}

func TestMatchesSchoolAndGroupDimensions(t *testing.T) {
	rs := Default()

	tests := []struct {
		name   string
		cohort Cohort
		row    table.Row
		cols   []string
		want   bool
	}{
		{
			name:   "demo school ID",
			cohort: CohortDemo,
			row:    table.Row{ColSchools: table.V("s9DfG6hJ3kL0mN7bV4cY")},
			cols:   []string{ColSchools},
			want:   true,
		},
		{
			name:   "pilot group ID",
			cohort: CohortPilot,
			row:    table.Row{ColGroups: table.V("q3WeR6tY9uO2pA5sI8dG")},
			cols:   []string{ColGroups},
			want:   true,
		},
		{
			name:   "qa district ID",
			cohort: CohortQA,
			row:    table.Row{ColDistricts: table.V("qA7sD4fG1hE8rT5yJ2kU")},
			cols:   []string{ColDistricts},
			want:   true,
		},
		{
			name:   "production district",
			cohort: CohortTest,
			row:    table.Row{ColDistricts: table.V("ProdDistrictId000001")},
			cols:   []string{ColDistricts},
			want:   false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := rs.Matches(tc.cohort, tc.row, hasCols(tc.cols...))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatchesIdentifierPatterns(t *testing.T) {
	rs := Default()

	tests := []struct {
		name   string
		pid    string
		cohort Cohort
		want   bool
	}{
		{"uppercase TEST substring", "ABC-TEST-99", CohortTest, true},
		{"zzz keyboard mash", "zzzstudent1", CohortTest, true},
		{"demo pid", "demo-account-3", CohortDemo, true},
		{"pilot pid", "Pilot2024-007", CohortPilot, true},
		{"qa pid", "qa-run-12", CohortQA, true},
		{"qa substring inside a word", "aQAb-legit", CohortQA, true},
		{"qa pid does not match test cohort", "qa-run-12", CohortTest, false},
		{"clean pid", "SPR-2024-0117", CohortTest, false},
		{"clean pid vs qa", "SPR-2024-0117", CohortQA, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			row := table.Row{ColPID: table.V(tc.pid)}
			got := rs.Matches(tc.cohort, row, hasCols(ColPID))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatchesFlagColumns(t *testing.T) {
	rs := Default()

	tests := []struct {
		name   string
		cohort Cohort
		value  table.Value
		want   bool
	}{
		{"test flag true", CohortTest, table.V("true"), true},
		{"test flag TRUE", CohortTest, table.V("TRUE"), true},
		{"test flag false keeps", CohortTest, table.V("false"), false},
		{"test flag False keeps", CohortTest, table.V("False"), false},
		{"test flag missing keeps", CohortTest, table.Null(), false},
		{"test flag junk removes", CohortTest, table.V("yes"), true},
		{"demo flag true", CohortDemo, table.V("true"), true},
		{"demo flag false keeps", CohortDemo, table.V("false"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			col := flagColumns[tc.cohort]
			row := table.Row{col: tc.value}
			got := rs.Matches(tc.cohort, row, hasCols(col))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatchesPilotAndQAHaveNoFlagColumn(t *testing.T) {
	rs := Default()
	// A truthy marker column must not affect cohorts without one.
	row := table.Row{ColIsTestData: table.V("true")}
	assert.False(t, rs.Matches(CohortPilot, row, hasCols(ColIsTestData)))
	assert.False(t, rs.Matches(CohortQA, row, hasCols(ColIsTestData)))
}

func TestMatchesAbsentColumnsContributeNothing(t *testing.T) {
	rs := Default()
	// Row data would match, but the schema says the columns don't exist.
	row := table.Row{
		ColDistricts:  table.V("kXyCT8BbFFbuXo5u0M84"),
		ColPID:        table.V("test-account"),
		ColIsTestData: table.V("true"),
	}
	assert.False(t, rs.Matches(CohortTest, row, noColumns))
}

func TestMatchesNullCellsDoNotMatch(t *testing.T) {
	rs := Default()
	row := table.Row{
		ColDistricts: table.Null(),
		ColPID:       table.Null(),
	}
	for _, c := range Cohorts {
		assert.False(t, rs.Matches(c, row, hasCols(ColDistricts, ColPID)), "cohort %s", c)
	}
}

func TestReferenceSetsAreDisjointFromEachOther(t *testing.T) {
	rs := Default()
	for i, a := range Cohorts {
		for _, b := range Cohorts[i+1:] {
			for id := range rs.Districts[a] {
				assert.False(t, rs.Districts[b][id], "district %s in both %s and %s", id, a, b)
			}
		}
	}
}
