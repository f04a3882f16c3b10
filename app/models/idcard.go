package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type IDCard struct {
	ID          int64     `json:"id" db:"id"`
	StudentID   int64     `json:"student_id" db:"student_id"`
	CardNumber  string    `json:"card_number" db:"card_number"`
	IssueDate   time.Time `json:"issue_date" db:"issue_date"`
	ExpiryDate  time.Time `json:"expiry_date" db:"expiry_date"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	StudentName string    `json:"student_name,omitempty" db:"student_name"`
	RollNo      string    `json:"roll_no,omitempty" db:"roll_no"`
	ClassName   string    `json:"class_name,omitempty" db:"class_name"`
	PhotoFile   string    `json:"photo_file,omitempty" db:"photo_file"`
}

// NewCardNumber returns IDC-<year>-<8 upper-case hex digits>.
func NewCardNumber(issued time.Time) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("IDC-%d-%s", issued.Year(), strings.ToUpper(hex[:8]))
}

func (c IDCard) Expired(now time.Time) bool {
	return now.After(c.ExpiryDate)
}
