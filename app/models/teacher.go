package models

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type Teacher struct {
	ID             int64       `json:"id" db:"id"`
	UserID         int64       `json:"user_id" db:"user_id"`
	DepartmentID   null.Int64  `json:"department_id" db:"department_id"`
	FirstName      string      `json:"first_name" db:"first_name" validate:"required"`
	LastName       string      `json:"last_name" db:"last_name" validate:"required"`
	Qualification  null.String `json:"qualification" db:"qualification"`
	Specialization null.String `json:"specialization" db:"specialization"`
	Phone          null.String `json:"phone" db:"phone"`
	JoiningDate    time.Time   `json:"joining_date" db:"joining_date"`
	DepartmentName null.String `json:"department_name,omitempty" db:"department_name"`
	Username       string      `json:"username,omitempty" db:"username"`
	Email          string      `json:"email,omitempty" db:"email"`
}

func (t Teacher) FullName() string {
	return t.FirstName + " " + t.LastName
}
