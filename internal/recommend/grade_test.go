package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeRange_KnownGrades(t *testing.T) {
	tests := []struct {
		grade string
		min   float64
		max   float64
	}{
		{"1st Grade", 0.5, 2.0},
		{"2nd Grade", 1.5, 3.0},
		{"3rd Grade", 2.0, 3.8},
		{"4th Grade", 3.0, 4.8},
		{"5th Grade", 3.5, 5.5},
		{"6th Grade", 4.0, 6.5},
	}

	for _, tt := range tests {
		t.Run(tt.grade, func(t *testing.T) {
			min, max := GradeRange(tt.grade)
			assert.InDelta(t, tt.min, min, 0.0001)
			assert.InDelta(t, tt.max, max, 0.0001)
		})
	}
}

func TestGradeRange_CaseInsensitiveSubstring(t *testing.T) {
	min, max := GradeRange("3RD")
	assert.InDelta(t, 2.0, min, 0.0001)
	assert.InDelta(t, 3.8, max, 0.0001)
}

func TestGradeRange_UnknownGradeIsPermissive(t *testing.T) {
	min, max := GradeRange("kindergarten")
	assert.InDelta(t, 0.1, min, 0.0001)
	assert.InDelta(t, 13.0, max, 0.0001)
}
