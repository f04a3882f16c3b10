package models

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type Attendance struct {
	ID             int64            `json:"id" db:"id"`
	StudentID      int64            `json:"student_id" db:"student_id"`
	Date           time.Time        `json:"date" db:"date"`
	Status         AttendanceStatus `json:"status" db:"status"`
	Remarks        null.String      `json:"remarks" db:"remarks"`
	StudentName    string           `json:"student_name,omitempty" db:"student_name"`
	RollNo         string           `json:"roll_no,omitempty" db:"roll_no"`
	ClassName      null.String      `json:"class_name,omitempty" db:"class_name"`
	DepartmentName null.String      `json:"department_name,omitempty" db:"department_name"`
}

// AttendanceEntry is one row of a batch submitted from the marking sheet.
type AttendanceEntry struct {
	StudentID int64
	Status    AttendanceStatus
}

type AttendanceStats struct {
	Present int `json:"present" db:"present"`
	Absent  int `json:"absent" db:"absent"`
	Late    int `json:"late" db:"late"`
}

func (s AttendanceStats) Total() int {
	return s.Present + s.Absent + s.Late
}

// Percentage is the share of recorded days the student was present.
func (s AttendanceStats) Percentage() float64 {
	return Percentage(float64(s.Present), float64(s.Total()))
}

func TallyAttendance(records []Attendance) AttendanceStats {
	var stats AttendanceStats
	for _, r := range records {
		switch r.Status {
		case Present:
			stats.Present++
		case Absent:
			stats.Absent++
		case Late:
			stats.Late++
		}
	}
	return stats
}
