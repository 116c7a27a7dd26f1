package classify

// Cohort is a category of non-production account.
type Cohort string

// Known cohorts, in the order filtering passes run them.
const (
	CohortTest  Cohort = "test"
	CohortDemo  Cohort = "demo"
	CohortPilot Cohort = "pilot"
	CohortQA    Cohort = "qa"
)

// Cohorts lists every known cohort in pass order.
var Cohorts = []Cohort{CohortTest, CohortDemo, CohortPilot, CohortQA}

// Column names shared across exports. Presence is never guaranteed;
// callers check the schema before using any of these.
const (
	ColPID        = "assessment_pid"
	ColDistricts  = "assigning_districts"
	ColSchools    = "assigning_schools"
	ColGroups     = "assigning_groups"
	ColIsTestData = "is_test_data"
	ColIsDemoData = "is_demo_data"
)

// ExpectedColumns is the fixed set of columns the account passes can
// consume. Absent columns are skipped, never fatal.
var ExpectedColumns = []string{
	ColPID,
	ColDistricts,
	ColSchools,
	ColGroups,
	ColIsTestData,
	ColIsDemoData,
}

// Organizational identifier reference sets. These are the known
// non-production district/school/group IDs accumulated from the
// partner roster over time. Membership is exact and case-sensitive.

var testDistricts = newSet(
	"kXyCT8BbFFbuXo5u0M84",
	"iV8jJ2l0TqB9yCw0Rnd3",
	"pQ7sLxWm41KeHbA2GvZt",
	"Yw3NcR0dUoT6fjM8KqLs",
	"a2BdE9hKmP4rS7tV0wXz",
	"GHt5nQ8vB1cF4jL7mR0p",
	"u6IeO9aU2yE5iW8oQ1sD",
	"zZkM3xC6vN9bJ2hG5fT8",
)

var testSchools = newSet(
	"T0qW3eR6tY9uI2oP5aSd",
	"fG8hJ1kL4mN7bV0cX3zQ",
	"r5TyU8iO1pA4sD7fG0hJ",
	"LmK2jH5gF8dS1aQ4wE7r",
	"B9nV6cX3zM0kJ7hG4fD1",
	"eW2qR5tY8uI1oP4aS7dF",
)

var testGroups = newSet(
	"c1Vb4nM7kJ0hG3fD6sA9",
	"Xz5cQ8wE1rT4yU7iO0pL",
	"gF3dS6aQ9wE2rT5yU8iK",
	"M0pL3kJ6hG9fD2sA5qWn",
)

var demoDistricts = newSet(
	"dE4mO7aC0cT3uN6tS9xR",
	"Qw1eR4tY7uI0oP3aS6dH",
	"j8HgF5dS2aK9wE6rT3yV",
	"N2bV5cX8zL1kJ4hG7fSm",
	"o6IuY3tR0eW7qP4aS1dZ",
)

var demoSchools = newSet(
	"s9DfG6hJ3kL0mN7bV4cY",
	"U1iO4pA7sD0fG3hJ6kQe",
	"w5ErT8yU1iO4pL7kJ0hX",
	"Z3xC6vB9nM2kW5eR8tPa",
)

var demoGroups = newSet(
	"h7GjK0lM3nB6vC9xZ2qW",
	"P4aS7dF0gH3jK6lM9nRt",
	"y2TuI5oP8aQ1wE4rY7uB",
)

var pilotDistricts = newSet(
	"pI9lO6tR3eW0qA7sD4fV",
	"K1jH4gF7dS0aZ3xC6vBm",
	"t8ReW5qP2aO9iU6yT3rN",
	"G0fD3sA6qW9eH2jK5lMc",
)

var pilotSchools = newSet(
	"b5VcX8zN1mK4jW7eR0tQ",
	"I2oP5aS8dF1gU4yT7rEh",
	"l9KjH6gF3dZ0xC7vB4nS",
)

var pilotGroups = newSet(
	"q3WeR6tY9uO2pA5sI8dG",
	"D0fG3hJ6kM9nB2vL5cXw",
)

var qaDistricts = newSet(
	"qA7sD4fG1hE8rT5yJ2kU",
	"W0eR3tY6uI9oZ2xC5vPn",
	"m4NbV7cX0zK3jH6gL9fS",
	"E1rT4yU7iQ0wO3pA6sDj",
)

var qaSchools = newSet(
	"v8CxZ5bN2mJ9kH6gT3rW",
	"A0sD3fG6hL9kU2iO5pQe",
	"u7YtR4eW1qS8dF5gJ2kM",
)

var qaGroups = newSet(
	"n6BmV3cK0xZ7jH4gW1eQ",
	"S9dF6gH3jP0aL7kM4nRu",
)

// identifierPatterns maps each cohort to the substrings searched for,
// case-insensitively, in the free-text participant identifier. Seeded
// accounts name themselves; "zzz" covers keyboard-mash test PIDs.
var identifierPatterns = map[Cohort][]string{
	CohortTest:  {"test", "zzz"},
	CohortDemo:  {"demo"},
	CohortPilot: {"pilot"},
	CohortQA:    {"qa"},
}

// flagColumns maps the cohorts that carry an explicit marker column.
var flagColumns = map[Cohort]string{
	CohortTest: ColIsTestData,
	CohortDemo: ColIsDemoData,
}

func newSet(ids ...string) map[string]bool {
	s := make(map[string]bool, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}
