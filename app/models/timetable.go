package models

import (
	"errors"
	"time"
)

type TimeTable struct {
	ID          int64  `json:"id" db:"id"`
	ClassID     int64  `json:"class_id" db:"class_id"`
	SubjectID   int64  `json:"subject_id" db:"subject_id"`
	TeacherID   int64  `json:"teacher_id" db:"teacher_id"`
	DayOfWeek   string `json:"day_of_week" db:"day_of_week"`
	StartTime   string `json:"start_time" db:"start_time"`
	EndTime     string `json:"end_time" db:"end_time"`
	ClassName   string `json:"class_name,omitempty" db:"class_name"`
	SubjectName string `json:"subject_name,omitempty" db:"subject_name"`
	TeacherName string `json:"teacher_name,omitempty" db:"teacher_name"`
}

const ClockLayout = "15:04"

var ErrInvalidTimeRange = errors.New("start time must be before end time")

// ValidateSlot checks the day and that start < end, both in HH:MM.
func ValidateSlot(day, start, end string) error {
	if !ValidWeekday(day) {
		return errors.New("invalid day of week")
	}
	s, err := time.Parse(ClockLayout, start)
	if err != nil {
		return errors.New("invalid start time, expected HH:MM")
	}
	e, err := time.Parse(ClockLayout, end)
	if err != nil {
		return errors.New("invalid end time, expected HH:MM")
	}
	if !s.Before(e) {
		return ErrInvalidTimeRange
	}
	return nil
}

// DaySchedule is one weekday column of a class timetable.
type DaySchedule struct {
	Day     string
	Entries []TimeTable
}

// GroupByDay lays entries out over the school week, keeping input order within a day.
func GroupByDay(entries []TimeTable) []DaySchedule {
	byDay := make(map[string][]TimeTable)
	for _, e := range entries {
		byDay[e.DayOfWeek] = append(byDay[e.DayOfWeek], e)
	}
	out := make([]DaySchedule, 0, len(Weekdays))
	for _, d := range Weekdays {
		out = append(out, DaySchedule{Day: d, Entries: byDay[d]})
	}
	return out
}
