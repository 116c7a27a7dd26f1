package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearbrook-ed/surveyclean-cli/internal/classify"
	"github.com/clearbrook-ed/surveyclean-cli/internal/table"
)

// accountsTable builds a representative export with one row per cohort
// trigger plus clean production rows.
func accountsTable() *table.Table {
	t := table.New(
		classify.ColPID,
		classify.ColDistricts,
		classify.ColSchools,
		classify.ColGroups,
		classify.ColIsTestData,
		classify.ColIsDemoData,
		"score",
	)
	add := func(pid, district, school, group, isTest, isDemo, score table.Value) {
		t.Append(table.Row{
			classify.ColPID:        pid,
			classify.ColDistricts:  district,
			classify.ColSchools:    school,
			classify.ColGroups:     group,
			classify.ColIsTestData: isTest,
			classify.ColIsDemoData: isDemo,
			"score":                score,
		})
	}

	v, n := table.V, table.Null()
	add(v("SPR-2024-0001"), v("ProdDistrict00000001"), n, n, v("false"), v("false"), v("91"))        // clean
	add(v("SPR-2024-0002"), v("kXyCT8BbFFbuXo5u0M84"), n, n, v("false"), v("false"), v("73"))       // test district
	add(v("demo-account-1"), v("ProdDistrict00000001"), n, n, v("false"), v("false"), v("55"))      // demo pattern
	add(v("SPR-2024-0003"), v("pI9lO6tR3eW0qA7sD4fV"), n, n, v("false"), v("false"), v("60"))       // pilot district
	add(v("qa-sweep-7"), v("ProdDistrict00000001"), n, n, v("false"), v("false"), v("88"))          // qa pattern
	add(v("SPR-2024-0004"), v("ProdDistrict00000001"), n, n, v("true"), v("false"), v("47"))        // is_test_data
	add(n, v("ProdDistrict00000002"), n, n, v("false"), v("false"), v("64"))                        // missing pid
	add(v("SPR-2024-0005"), v("ProdDistrict00000002"), n, n, v("false"), v("false"), v("82"))       // clean
	return t
}

func pids(t *table.Table) []table.Value {
	out := make([]table.Value, 0, t.Len())
	for _, r := range t.Rows {
		out = append(out, r.Get(classify.ColPID))
	}
	return out
}

func TestRemoveAccountsDefaults(t *testing.T) {
	in := accountsTable()
	opts := DefaultAccountOptions()
	opts.Verbose = false

	out, stats, err := RemoveAccounts(in, opts)
	require.NoError(t, err)

	// test district, demo pattern, pilot district, qa pattern, and the
	// is_test_data row go; the missing-pid row stays (NA off).
	assert.Equal(t, []table.Value{
		table.V("SPR-2024-0001"),
		table.Null(),
		table.V("SPR-2024-0005"),
	}, pids(out))

	require.Len(t, stats, 4)
	assert.Equal(t, "test", stats[0].Name)
	assert.Equal(t, 2, stats[0].Removed) // district match + is_test_data flag
	assert.Equal(t, "demo", stats[1].Name)
	assert.Equal(t, "pilot", stats[2].Name)
	assert.Equal(t, "qa", stats[3].Name)
	assert.Equal(t, 5, TotalRemoved(stats))
}

func TestRemoveAccountsTestDistrictScenario(t *testing.T) {
	in := table.New(classify.ColDistricts)
	in.Append(table.Row{classify.ColDistricts: table.V("kXyCT8BbFFbuXo5u0M84")})
	in.Append(table.Row{classify.ColDistricts: table.V("ProdDistrict00000001")})

	opts := DefaultAccountOptions()
	opts.Verbose = false
	out, _, err := RemoveAccounts(in, opts)
	require.NoError(t, err)

	require.Equal(t, 1, out.Len())
	assert.Equal(t, table.V("ProdDistrict00000001"), out.Rows[0].Get(classify.ColDistricts))
}

func TestRemoveAccountsPatternScenario(t *testing.T) {
	in := table.New(classify.ColPID)
	in.Append(table.Row{classify.ColPID: table.V("ABC-TEST-99")})
	in.Append(table.Row{classify.ColPID: table.V("ABC-99")})

	out, _, err := RemoveAccounts(in, AccountOptions{Test: true})
	require.NoError(t, err)

	require.Equal(t, 1, out.Len())
	assert.Equal(t, table.V("ABC-99"), out.Rows[0].Get(classify.ColPID))
}

func TestRemoveAccountsNilTable(t *testing.T) {
	out, stats, err := RemoveAccounts(nil, DefaultAccountOptions())
	assert.ErrorIs(t, err, ErrNilTable)
	assert.Nil(t, out)
	assert.Nil(t, stats)
}

func TestRemoveAccountsEmptyTable(t *testing.T) {
	in := table.New(classify.ColPID)
	out, stats, err := RemoveAccounts(in, DefaultAccountOptions())
	require.NoError(t, err)
	assert.Same(t, in, out)
	assert.Empty(t, stats)
}

func TestRemoveAccountsNoPassesEnabled(t *testing.T) {
	in := accountsTable()
	out, stats, err := RemoveAccounts(in, AccountOptions{})
	require.NoError(t, err)
	assert.Equal(t, in.Len(), out.Len())
	assert.Empty(t, stats)
}

func TestRemoveAccountsMissingIdentifierPass(t *testing.T) {
	in := accountsTable()
	opts := AccountOptions{NA: true}
	out, stats, err := RemoveAccounts(in, opts)
	require.NoError(t, err)

	assert.Equal(t, in.Len()-1, out.Len())
	require.Len(t, stats, 1)
	assert.Equal(t, missingIDPass, stats[0].Name)
	assert.Equal(t, 1, stats[0].Removed)
	for _, r := range out.Rows {
		assert.False(t, r.IsNull(classify.ColPID))
	}
}

func TestRemoveAccountsNAWithoutIdentifierColumn(t *testing.T) {
	in := table.New("score")
	in.Append(table.Row{"score": table.V("10")})

	out, stats, err := RemoveAccounts(in, AccountOptions{NA: true})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Len())
	assert.Empty(t, stats)
}

func TestRemoveAccountsOutputIsSubset(t *testing.T) {
	in := accountsTable()
	opts := DefaultAccountOptions()
	opts.NA = true
	opts.Verbose = false

	out, _, err := RemoveAccounts(in, opts)
	require.NoError(t, err)
	assert.LessOrEqual(t, out.Len(), in.Len())

	// Every surviving row appears in the input, in order.
	i := 0
	for _, survivor := range out.Rows {
		found := false
		for ; i < len(in.Rows); i++ {
			if table.Equal(survivor, in.Rows[i], in.Columns) {
				found = true
				i++
				break
			}
		}
		assert.True(t, found, "survivor not found in input order")
	}
}

func TestRemoveAccountsIdempotent(t *testing.T) {
	opts := DefaultAccountOptions()
	opts.NA = true
	opts.Verbose = false

	once, _, err := RemoveAccounts(accountsTable(), opts)
	require.NoError(t, err)

	twice, stats, err := RemoveAccounts(once, opts)
	require.NoError(t, err)

	assert.Equal(t, once.Len(), twice.Len())
	assert.Equal(t, 0, TotalRemoved(stats))
}

func TestRemoveAccountsMonotonicInEnables(t *testing.T) {
	in := accountsTable()

	fewer, _, err := RemoveAccounts(in, AccountOptions{Test: true})
	require.NoError(t, err)

	more, _, err := RemoveAccounts(in, AccountOptions{Test: true, Demo: true, Pilot: true, QA: true, NA: true})
	require.NoError(t, err)

	assert.LessOrEqual(t, more.Len(), fewer.Len())

	// Every row surviving the stricter run also survives the looser one.
	for _, r := range more.Rows {
		found := false
		for _, f := range fewer.Rows {
			if table.Equal(r, f, in.Columns) {
				found = true
				break
			}
		}
		assert.True(t, found)
	}
}

func TestRemoveAccountsColumnIndependence(t *testing.T) {
	in := accountsTable()
	opts := DefaultAccountOptions()
	opts.Verbose = false

	withScore, _, err := RemoveAccounts(in, opts)
	require.NoError(t, err)

	withoutScore, _, err := RemoveAccounts(in.DropColumns("score"), opts)
	require.NoError(t, err)

	assert.Equal(t, withScore.Len(), withoutScore.Len())
	for i := range withScore.Rows {
		assert.Equal(t,
			withScore.Rows[i].Get(classify.ColPID),
			withoutScore.Rows[i].Get(classify.ColPID),
		)
	}
}

func TestRemoveAccountsAllRowsRemoved(t *testing.T) {
	in := table.New(classify.ColPID)
	in.Append(table.Row{classify.ColPID: table.V("test-1")})
	in.Append(table.Row{classify.ColPID: table.V("zzz-2")})

	out, stats, err := RemoveAccounts(in, AccountOptions{Test: true, Verbose: true})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
	assert.Equal(t, 2, TotalRemoved(stats))
}

func TestRemoveAccountsSkipsAbsentColumns(t *testing.T) {
	// Only districts present: pattern and flag criteria must not fire,
	// and their absence must not be an error.
	in := table.New(classify.ColDistricts)
	in.Append(table.Row{classify.ColDistricts: table.V("dE4mO7aC0cT3uN6tS9xR")}) // demo district
	in.Append(table.Row{classify.ColDistricts: table.V("ProdDistrict00000009")})

	opts := DefaultAccountOptions()
	out, _, err := RemoveAccounts(in, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Len())
}

func TestRemoveAccountsCustomRuleset(t *testing.T) {
	rules := classify.Default()
	in := table.New(classify.ColDistricts)
	in.Append(table.Row{classify.ColDistricts: table.V("kXyCT8BbFFbuXo5u0M84")})

	out, _, err := RemoveAccounts(in, AccountOptions{Test: true, Rules: rules})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
}
