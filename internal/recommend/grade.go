// Package recommend implements the recommendation candidate pipeline:
// grade range resolution, relevance scoring, and candidate selection.
package recommend

import "strings"

// gradeRange is an inclusive interval over the numeric book level scale.
type gradeRange struct {
	label string
	min   float64
	max   float64
}

// Grade-to-level intervals. Labels match on a case-insensitive substring so
// "3rd Grade", "3RD", and "grade 3rd" all resolve the same way.
var gradeRanges = []gradeRange{
	{"1st", 0.5, 2.0},
	{"2nd", 1.5, 3.0},
	{"3rd", 2.0, 3.8},
	{"4th", 3.0, 4.8},
	{"5th", 3.5, 5.5},
	{"6th", 4.0, 6.5},
}

// Widest possible interval, used for unrecognized grade labels.
// Unknown grades are treated permissively rather than rejected.
const (
	minLevel = 0.1
	maxLevel = 13.0
)

// GradeRange resolves a grade label to its inclusive {min, max} level interval.
func GradeRange(grade string) (min, max float64) {
	lower := strings.ToLower(grade)
	for _, r := range gradeRanges {
		if strings.Contains(lower, r.label) {
			return r.min, r.max
		}
	}
	return minLevel, maxLevel
}
