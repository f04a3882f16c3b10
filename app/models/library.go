package models

import (
	"math"
	"time"

	"github.com/volatiletech/null/v8"
)

type Book struct {
	ID              int64       `json:"id" db:"id"`
	Title           string      `json:"title" db:"title" validate:"required"`
	Author          string      `json:"author" db:"author" validate:"required"`
	ISBN            null.String `json:"isbn" db:"isbn"`
	Category        null.String `json:"category" db:"category"`
	TotalCopies     int         `json:"total_copies" db:"total_copies" validate:"gte=0"`
	AvailableCopies int         `json:"available_copies" db:"available_copies"`
	AddedDate       time.Time   `json:"added_date" db:"added_date"`
}

// OnLoan is the number of copies currently issued.
func (b Book) OnLoan() int {
	return b.TotalCopies - b.AvailableCopies
}

type BookIssue struct {
	ID          int64       `json:"id" db:"id"`
	BookID      int64       `json:"book_id" db:"book_id"`
	StudentID   int64       `json:"student_id" db:"student_id"`
	IssueDate   time.Time   `json:"issue_date" db:"issue_date"`
	DueDate     time.Time   `json:"due_date" db:"due_date"`
	ReturnDate  null.Time   `json:"return_date" db:"return_date"`
	Status      IssueStatus `json:"status" db:"status"`
	FineAmount  float64     `json:"fine_amount" db:"fine_amount"`
	BookTitle   string      `json:"book_title,omitempty" db:"book_title"`
	StudentName string      `json:"student_name,omitempty" db:"student_name"`
	RollNo      string      `json:"roll_no,omitempty" db:"roll_no"`
}

// DaysLate counts whole calendar days between due and returned, never negative.
func DaysLate(due, returned time.Time) int {
	d := truncateDay(returned).Sub(truncateDay(due)).Hours() / 24
	if d <= 0 {
		return 0
	}
	return int(math.Round(d))
}

// FineFor charges perDay for every day a loan is returned after its due date.
func FineFor(due, returned time.Time, perDay float64) float64 {
	return Round2(float64(DaysLate(due, returned)) * perDay)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
