package models

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type Announcement struct {
	ID         int64       `json:"id" db:"id"`
	Title      string      `json:"title" db:"title" validate:"required,max=200"`
	Content    string      `json:"content" db:"content" validate:"required"`
	Priority   Priority    `json:"priority" db:"priority"`
	TargetRole Audience    `json:"target_role" db:"target_role"`
	CreatedBy  null.Int64  `json:"created_by" db:"created_by"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
	ExpiresAt  null.Time   `json:"expires_at" db:"expires_at"`
	IsActive   bool        `json:"is_active" db:"is_active"`
	AuthorName null.String `json:"author_name,omitempty" db:"author_name"`
}

const DefaultEventColor = "#E10600"

type Event struct {
	ID          int64       `json:"id" db:"id"`
	Title       string      `json:"title" db:"title" validate:"required,max=200"`
	Description null.String `json:"description" db:"description"`
	EventType   string      `json:"event_type" db:"event_type"`
	StartDate   time.Time   `json:"start_date" db:"start_date"`
	EndDate     null.Time   `json:"end_date" db:"end_date"`
	AllDay      bool        `json:"all_day" db:"all_day"`
	Color       string      `json:"color" db:"color" validate:"omitempty,hexcolor"`
	CreatedBy   null.Int64  `json:"created_by" db:"created_by"`
	TargetRole  Audience    `json:"target_role" db:"target_role"`
}

// CalendarEvent is the shape consumed by the calendar widget.
type CalendarEvent struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Start  string  `json:"start"`
	End    *string `json:"end"`
	Color  string  `json:"color"`
	AllDay bool    `json:"allDay"`
}

func (e Event) Calendar() CalendarEvent {
	layout := "2006-01-02T15:04:05"
	if e.AllDay {
		layout = "2006-01-02"
	}
	ce := CalendarEvent{
		ID:     e.ID,
		Title:  e.Title,
		Start:  e.StartDate.Format(layout),
		Color:  e.Color,
		AllDay: e.AllDay,
	}
	if e.EndDate.Valid {
		end := e.EndDate.Time.Format(layout)
		ce.End = &end
	}
	return ce
}

var EventTypes = []string{"general", "holiday", "exam", "meeting", "sports", "cultural"}

type Homework struct {
	ID           int64       `json:"id" db:"id"`
	ClassID      int64       `json:"class_id" db:"class_id"`
	SubjectID    int64       `json:"subject_id" db:"subject_id"`
	TeacherID    int64       `json:"teacher_id" db:"teacher_id"`
	Title        string      `json:"title" db:"title" validate:"required,max=200"`
	Description  null.String `json:"description" db:"description"`
	DueDate      time.Time   `json:"due_date" db:"due_date"`
	AssignedDate time.Time   `json:"assigned_date" db:"assigned_date"`
	ClassName    string      `json:"class_name,omitempty" db:"class_name"`
	SubjectName  string      `json:"subject_name,omitempty" db:"subject_name"`
	TeacherName  string      `json:"teacher_name,omitempty" db:"teacher_name"`
}
