package models

import "time"

type DailyAttendance struct {
	Date    time.Time `json:"date" db:"date"`
	Present int       `json:"present" db:"present"`
	Absent  int       `json:"absent" db:"absent"`
	Late    int       `json:"late" db:"late"`
}

func (d DailyAttendance) Percentage() float64 {
	return Round2(Percentage(float64(d.Present), float64(d.Present+d.Absent+d.Late)))
}

type ClassAttendance struct {
	ClassID   int64  `json:"class_id" db:"class_id"`
	ClassName string `json:"class_name" db:"class_name"`
	Present   int    `json:"present" db:"present"`
	Total     int    `json:"total" db:"total"`
}

func (c ClassAttendance) Rate() float64 {
	return Round2(Percentage(float64(c.Present), float64(c.Total)))
}

type SubjectAverage struct {
	SubjectID   int64   `json:"subject_id" db:"subject_id"`
	SubjectName string  `json:"subject_name" db:"subject_name"`
	Average     float64 `json:"average" db:"average"`
	Entries     int     `json:"entries" db:"entries"`
}

type StudentAverage struct {
	StudentID   int64   `json:"student_id" db:"student_id"`
	StudentName string  `json:"student_name" db:"student_name"`
	RollNo      string  `json:"roll_no" db:"roll_no"`
	ClassName   string  `json:"class_name" db:"class_name"`
	Average     float64 `json:"average" db:"average"`
}

func (s StudentAverage) Grade() string {
	return GradeFor(s.Average)
}

type GradeCount struct {
	Grade string `json:"grade"`
	Count int    `json:"count"`
}

// GradeDistribution buckets percentages into every grade band, zero counts included.
func GradeDistribution(percentages []float64) []GradeCount {
	counts := make(map[string]int)
	for _, p := range percentages {
		counts[GradeFor(p)]++
	}
	names := GradeNames()
	out := make([]GradeCount, 0, len(names))
	for _, g := range names {
		out = append(out, GradeCount{Grade: g, Count: counts[g]})
	}
	return out
}

type DepartmentStats struct {
	DepartmentID  int64   `json:"department_id" db:"department_id"`
	Name          string  `json:"name" db:"name"`
	Code          string  `json:"code" db:"code"`
	Students      int     `json:"students" db:"students"`
	Teachers      int     `json:"teachers" db:"teachers"`
	Classes       int     `json:"classes" db:"classes"`
	PresentWeek   int     `json:"present_week" db:"present_week"`
	RecordedWeek  int     `json:"recorded_week" db:"recorded_week"`
	FeesBilled    float64 `json:"fees_billed" db:"fees_billed"`
	FeesCollected float64 `json:"fees_collected" db:"fees_collected"`
}

func (d DepartmentStats) AttendanceRate() float64 {
	return Round2(Percentage(float64(d.PresentWeek), float64(d.RecordedWeek)))
}

func (d DepartmentStats) CollectionRate() float64 {
	return Round2(Percentage(d.FeesCollected, d.FeesBilled))
}

type DashboardCounts struct {
	Students     int `json:"students" db:"students"`
	Teachers     int `json:"teachers" db:"teachers"`
	Classes      int `json:"classes" db:"classes"`
	Subjects     int `json:"subjects" db:"subjects"`
	Departments  int `json:"departments" db:"departments"`
	Books        int `json:"books" db:"books"`
	PendingUsers int `json:"pending_users" db:"pending_users"`
	PresentToday int `json:"present_today" db:"present_today"`
}
