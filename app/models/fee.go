package models

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type Fee struct {
	ID          int64     `json:"id" db:"id"`
	StudentID   int64     `json:"student_id" db:"student_id"`
	Title       string    `json:"title" db:"title" validate:"required"`
	Amount      float64   `json:"amount" db:"amount" validate:"gt=0"`
	DueDate     time.Time `json:"due_date" db:"due_date"`
	Status      FeeStatus `json:"status" db:"status"`
	PaidDate    null.Time `json:"paid_date" db:"paid_date"`
	StudentName string    `json:"student_name,omitempty" db:"student_name"`
	RollNo      string    `json:"roll_no,omitempty" db:"roll_no"`
}

func (f Fee) IsPaid() bool {
	return f.Status == FeePaid
}

type FeeSummary struct {
	TotalDue     float64
	TotalPaid    float64
	DueCount     int
	PaidCount    int
	OverdueCount int
}

// SummarizeFees splits a student's fees into what is still owed and what has been paid.
// Every fee lands in exactly one of the two totals.
func SummarizeFees(fees []Fee) FeeSummary {
	var s FeeSummary
	for _, f := range fees {
		if f.Status == FeePaid {
			s.TotalPaid += f.Amount
			s.PaidCount++
			continue
		}
		s.TotalDue += f.Amount
		s.DueCount++
		if f.Status == FeeOverdue {
			s.OverdueCount++
		}
	}
	return s
}

// FeeStatusCounts backs the admin dashboard fee widget and the department report.
type FeeStatusCounts struct {
	Pending   int     `json:"pending" db:"pending"`
	Paid      int     `json:"paid" db:"paid"`
	Overdue   int     `json:"overdue" db:"overdue"`
	Billed    float64 `json:"billed" db:"billed"`
	Collected float64 `json:"collected" db:"collected"`
}

// CollectionRate is the share of billed amount that has been paid.
func (c FeeStatusCounts) CollectionRate() float64 {
	return Percentage(c.Collected, c.Billed)
}
