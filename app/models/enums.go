package models

// AttendanceStatus is the state recorded for one student on one day.
type AttendanceStatus string

const (
	Present AttendanceStatus = "Present"
	Absent  AttendanceStatus = "Absent"
	Late    AttendanceStatus = "Late"
)

var AttendanceStatuses = []AttendanceStatus{Present, Absent, Late}

func (s AttendanceStatus) Valid() bool {
	switch s {
	case Present, Absent, Late:
		return true
	}
	return false
}

type FeeStatus string

const (
	FeePending FeeStatus = "Pending"
	FeePaid    FeeStatus = "Paid"
	FeeOverdue FeeStatus = "Overdue"
)

var FeeStatuses = []FeeStatus{FeePending, FeePaid, FeeOverdue}

func (s FeeStatus) Valid() bool {
	switch s {
	case FeePending, FeePaid, FeeOverdue:
		return true
	}
	return false
}

// IsDue reports whether the fee still counts towards what a student owes.
func (s FeeStatus) IsDue() bool {
	return s == FeePending || s == FeeOverdue
}

type IssueStatus string

const (
	IssueIssued   IssueStatus = "issued"
	IssueReturned IssueStatus = "returned"
	IssueOverdue  IssueStatus = "overdue"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var Priorities = []Priority{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Audience is who an announcement or calendar event is shown to.
type Audience string

const (
	AudienceAll      Audience = "all"
	AudienceStudents Audience = "students"
	AudienceTeachers Audience = "teachers"
	AudienceAdmin    Audience = "admin"
)

var Audiences = []Audience{AudienceAll, AudienceStudents, AudienceTeachers, AudienceAdmin}

func (a Audience) Valid() bool {
	switch a {
	case AudienceAll, AudienceStudents, AudienceTeachers, AudienceAdmin:
		return true
	}
	return false
}

// Weekdays are the school days a timetable is laid out over.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func ValidWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

var Genders = []string{"Male", "Female", "Other"}
