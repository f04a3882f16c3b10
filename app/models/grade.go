package models

import "math"

// GradeBand maps a lower percentage bound to a letter grade.
type GradeBand struct {
	Min   float64
	Grade string
}

// GradeBands are ordered from the highest bound down; anything below the last band is F.
var GradeBands = []GradeBand{
	{90, "A+"},
	{80, "A"},
	{70, "B"},
	{60, "C"},
	{50, "D"},
}

const FailingGrade = "F"

// GradeNames lists every grade in display order.
func GradeNames() []string {
	names := make([]string, 0, len(GradeBands)+1)
	for _, b := range GradeBands {
		names = append(names, b.Grade)
	}
	return append(names, FailingGrade)
}

func GradeFor(percentage float64) string {
	for _, b := range GradeBands {
		if percentage >= b.Min {
			return b.Grade
		}
	}
	return FailingGrade
}

// Percentage returns part/whole*100, or 0 when whole is not positive.
func Percentage(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

// Round2 rounds to two decimal places for display and JSON.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
