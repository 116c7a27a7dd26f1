package munge

import (
	"strconv"
	"strings"

	"github.com/clearbrook-ed/surveyclean-cli/internal/table"
)

// Canonical grade labels.
const (
	GradePreK = "Pre-K"
	GradeK    = "Kindergarten"
)

// gradeSpellings maps lowercased free-text grade entries to canonical
// labels. Unrecognized entries pass through unchanged.
var gradeSpellings = map[string]string{
	"pre-k":                     GradePreK,
	"prek":                      GradePreK,
	"pk":                        GradePreK,
	"pre-kindergarten":          GradePreK,
	"pre kindergarten":          GradePreK,
	"prekindergarten":           GradePreK,
	"preschool":                 GradePreK,
	"pre-school":                GradePreK,
	"tk":                        GradePreK,
	"transitional kindergarten": GradePreK,

	"k":            GradeK,
	"k5":           GradeK,
	"kinder":       GradeK,
	"kindergarten": GradeK,
	"kg":           GradeK,

	"1": "1", "1st": "1", "first": "1", "grade 1": "1", "first grade": "1", "1st grade": "1", "01": "1",
	"2": "2", "2nd": "2", "second": "2", "grade 2": "2", "second grade": "2", "2nd grade": "2", "02": "2",
	"3": "3", "3rd": "3", "third": "3", "grade 3": "3", "third grade": "3", "3rd grade": "3", "03": "3",
	"4": "4", "4th": "4", "fourth": "4", "grade 4": "4", "fourth grade": "4", "4th grade": "4", "04": "4",
	"5": "5", "5th": "5", "fifth": "5", "grade 5": "5", "fifth grade": "5", "5th grade": "5", "05": "5",
	"6": "6", "6th": "6", "sixth": "6", "grade 6": "6", "sixth grade": "6", "6th grade": "6", "06": "6",
	"7": "7", "7th": "7", "seventh": "7", "grade 7": "7", "seventh grade": "7", "7th grade": "7", "07": "7",
	"8": "8", "8th": "8", "eighth": "8", "grade 8": "8", "eighth grade": "8", "8th grade": "8", "08": "8",
	"9": "9", "9th": "9", "ninth": "9", "grade 9": "9", "freshman": "9", "9th grade": "9", "09": "9",
	"10": "10", "10th": "10", "tenth": "10", "grade 10": "10", "sophomore": "10", "10th grade": "10",
	"11": "11", "11th": "11", "eleventh": "11", "grade 11": "11", "junior": "11", "11th grade": "11",
	"12": "12", "12th": "12", "twelfth": "12", "grade 12": "12", "senior": "12", "12th grade": "12",
}

// gradeSentinels are entries that mean "no usable grade" and map to null.
var gradeSentinels = map[string]bool{
	"invalid": true,
	"other":   true,
}

// NormalizeGrade maps one free-text grade entry to its canonical form.
// The second return is false when the value maps to null (sentinel).
// Unrecognized values are returned unchanged.
func NormalizeGrade(s string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if gradeSentinels[key] {
		return "", false
	}
	if canon, ok := gradeSpellings[key]; ok {
		return canon, true
	}
	return s, true
}

// NormalizeGrades canonicalizes the named grade column across the
// table. Returns the input unchanged if the column is absent.
func NormalizeGrades(t *table.Table, col string) *table.Table {
	if !t.HasColumn(col) {
		return t
	}

	out := &table.Table{Columns: t.Columns}
	for _, r := range t.Rows {
		v := r.Get(col)
		if !v.Valid {
			out.Rows = append(out.Rows, r)
			continue
		}
		canon, ok := NormalizeGrade(v.String)
		if ok && canon == v.String {
			out.Rows = append(out.Rows, r)
			continue
		}
		nr := make(table.Row, len(r))
		for k, val := range r {
			nr[k] = val
		}
		if ok {
			nr[col] = table.V(canon)
		} else {
			nr[col] = table.Null()
		}
		out.Rows = append(out.Rows, nr)
	}
	return out
}

// Age-in-months boundaries for grade estimation: under 60 months is
// Pre-K, 60–71 Kindergarten, then one grade per 12 months from 72,
// capped at grade 12.
const (
	monthsPreKMax  = 60
	monthsKMax     = 72
	monthsPerGrade = 12
	maxGrade       = 12
)

// GradeFromAgeMonths estimates a canonical grade from an age in
// months. Non-positive ages return ok=false (no estimate).
func GradeFromAgeMonths(months int) (string, bool) {
	switch {
	case months <= 0:
		return "", false
	case months < monthsPreKMax:
		return GradePreK, true
	case months < monthsKMax:
		return GradeK, true
	}
	grade := (months-monthsKMax)/monthsPerGrade + 1
	if grade > maxGrade {
		grade = maxGrade
	}
	return strconv.Itoa(grade), true
}
