package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeFor(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{100, "A+"},
		{95, "A+"},
		{90, "A+"},
		{89.99, "A"},
		{80, "A"},
		{72, "B"},
		{60, "C"},
		{50, "D"},
		{49.9, "F"},
		{40, "F"},
		{0, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GradeFor(tt.pct), "pct=%v", tt.pct)
	}
}

func TestMarkGrade(t *testing.T) {
	assert.Equal(t, "A+", Mark{ScoreObtained: 95, MaxScore: 100}.Grade())
	assert.Equal(t, "B", Mark{ScoreObtained: 72, MaxScore: 100}.Grade())
	assert.Equal(t, "F", Mark{ScoreObtained: 40, MaxScore: 100}.Grade())
	assert.Equal(t, "A", Mark{ScoreObtained: 40, MaxScore: 50}.Grade())
}

func TestPercentageZeroWhole(t *testing.T) {
	assert.Zero(t, Percentage(10, 0))
	assert.Zero(t, Percentage(10, -5))
	assert.InDelta(t, 33.33, Round2(Percentage(1, 3)), 0.001)
}

func TestValidateScore(t *testing.T) {
	require.NoError(t, ValidateScore(0, 100))
	require.NoError(t, ValidateScore(100, 100))
	assert.ErrorIs(t, ValidateScore(101, 100), ErrScoreOutOfRange)
	assert.ErrorIs(t, ValidateScore(-1, 100), ErrScoreOutOfRange)
	assert.ErrorIs(t, ValidateScore(5, 0), ErrInvalidMaxScore)

	nan, inf := math.NaN(), math.Inf(1)
	assert.ErrorIs(t, ValidateScore(nan, 100), ErrScoreOutOfRange)
	assert.ErrorIs(t, ValidateScore(inf, 100), ErrScoreOutOfRange)
	assert.ErrorIs(t, ValidateScore(math.Inf(-1), 100), ErrScoreOutOfRange)
	assert.ErrorIs(t, ValidateScore(nan, nan), ErrInvalidMaxScore)
	assert.ErrorIs(t, ValidateScore(5, inf), ErrInvalidMaxScore)
}

func TestGradeDistributionIncludesEmptyBands(t *testing.T) {
	dist := GradeDistribution([]float64{95, 91, 72, 10})

	require.Len(t, dist, 6)
	got := map[string]int{}
	for _, d := range dist {
		got[d.Grade] = d.Count
	}
	assert.Equal(t, 2, got["A+"])
	assert.Equal(t, 0, got["A"])
	assert.Equal(t, 1, got["B"])
	assert.Equal(t, 1, got["F"])
	assert.Equal(t, "A+", dist[0].Grade)
	assert.Equal(t, "F", dist[5].Grade)
}

func TestGroupMarksByExam(t *testing.T) {
	exams := map[int64]Exam{1: {ID: 1, Name: "Midterm"}, 2: {ID: 2, Name: "Final"}}
	marks := []Mark{
		{ExamID: 2, SubjectID: 1, ScoreObtained: 40, MaxScore: 50},
		{ExamID: 1, SubjectID: 1, ScoreObtained: 90, MaxScore: 100},
		{ExamID: 2, SubjectID: 2, ScoreObtained: 30, MaxScore: 50},
	}

	groups := GroupMarksByExam(exams, marks)
	require.Len(t, groups, 2)
	assert.Equal(t, "Final", groups[0].Exam.Name)
	assert.Len(t, groups[0].Marks, 2)
	assert.InDelta(t, 70.0, groups[0].Percentage(), 0.001)
	assert.Equal(t, "B", groups[0].Grade())
	assert.Equal(t, "Midterm", groups[1].Exam.Name)
}

func TestSummarizeFeesPartitionsEveryFee(t *testing.T) {
	fees := []Fee{
		{Amount: 100, Status: FeePending},
		{Amount: 250, Status: FeePaid},
		{Amount: 75, Status: FeeOverdue},
		{Amount: 50, Status: FeePaid},
	}

	s := SummarizeFees(fees)
	assert.Equal(t, 175.0, s.TotalDue)
	assert.Equal(t, 300.0, s.TotalPaid)
	assert.Equal(t, 1, s.OverdueCount)

	var total float64
	for _, f := range fees {
		total += f.Amount
	}
	assert.Equal(t, total, s.TotalDue+s.TotalPaid)
	assert.Equal(t, len(fees), s.DueCount+s.PaidCount)
}

func TestFineFor(t *testing.T) {
	due := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.Zero(t, FineFor(due, due.Add(-48*time.Hour), 1))
	assert.Zero(t, FineFor(due, due.Add(20*time.Hour), 1))
	assert.Equal(t, 3.0, FineFor(due, due.AddDate(0, 0, 3), 1))
	assert.Equal(t, 1.5, FineFor(due, due.AddDate(0, 0, 3), 0.5))
}

func TestValidateSlot(t *testing.T) {
	require.NoError(t, ValidateSlot("Monday", "08:00", "08:45"))
	assert.ErrorIs(t, ValidateSlot("Monday", "09:00", "09:00"), ErrInvalidTimeRange)
	assert.ErrorIs(t, ValidateSlot("Monday", "10:00", "09:00"), ErrInvalidTimeRange)
	assert.Error(t, ValidateSlot("Sunday", "08:00", "09:00"))
	assert.Error(t, ValidateSlot("Monday", "8am", "09:00"))
}

func TestGroupByDayCoversSchoolWeek(t *testing.T) {
	days := GroupByDay([]TimeTable{
		{DayOfWeek: "Wednesday", SubjectName: "Maths"},
		{DayOfWeek: "Monday", SubjectName: "English"},
		{DayOfWeek: "Monday", SubjectName: "Biology"},
	})

	require.Len(t, days, 6)
	assert.Equal(t, "Monday", days[0].Day)
	assert.Len(t, days[0].Entries, 2)
	assert.Equal(t, "English", days[0].Entries[0].SubjectName)
	assert.Empty(t, days[1].Entries)
	assert.Len(t, days[2].Entries, 1)
}

func TestTallyAttendance(t *testing.T) {
	stats := TallyAttendance([]Attendance{
		{Status: Present}, {Status: Present}, {Status: Late}, {Status: Absent},
	})
	assert.Equal(t, AttendanceStats{Present: 2, Absent: 1, Late: 1}, stats)
	assert.Equal(t, 50.0, stats.Percentage())
	assert.Zero(t, AttendanceStats{}.Percentage())
}

func TestCardNumberFormat(t *testing.T) {
	n := NewCardNumber(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.Regexp(t, `^IDC-2025-[0-9A-F]{8}$`, n)
}

func TestEventCalendarShape(t *testing.T) {
	start := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)
	e := Event{ID: 7, Title: "Sports day", StartDate: start, Color: DefaultEventColor, AllDay: true}

	ce := e.Calendar()
	assert.Equal(t, "2025-05-01", ce.Start)
	assert.Nil(t, ce.End)

	e.AllDay = false
	ce = e.Calendar()
	assert.Equal(t, "2025-05-01T09:30:00", ce.Start)
}
