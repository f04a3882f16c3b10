package models

import (
	"time"

	"github.com/volatiletech/null/v8"
)

const DefaultPhoto = "default.jpg"

type Student struct {
	ID             int64       `json:"id" db:"id"`
	UserID         int64       `json:"user_id" db:"user_id"`
	ClassID        null.Int64  `json:"class_id" db:"class_id"`
	DepartmentID   null.Int64  `json:"department_id" db:"department_id"`
	FirstName      string      `json:"first_name" db:"first_name" validate:"required"`
	LastName       string      `json:"last_name" db:"last_name" validate:"required"`
	RollNo         string      `json:"roll_no" db:"roll_no" validate:"required"`
	EnrollmentNo   string      `json:"enrollment_no" db:"enrollment_no" validate:"required"`
	DOB            null.Time   `json:"dob" db:"dob"`
	Gender         null.String `json:"gender" db:"gender"`
	BloodGroup     null.String `json:"blood_group" db:"blood_group"`
	Phone          null.String `json:"phone" db:"phone"`
	ParentName     null.String `json:"parent_name" db:"parent_name"`
	ParentPhone    null.String `json:"parent_phone" db:"parent_phone"`
	Address        null.String `json:"address" db:"address"`
	AdmissionDate  time.Time   `json:"admission_date" db:"admission_date"`
	PhotoFile      string      `json:"photo_file" db:"photo_file"`
	ClassName      null.String `json:"class_name,omitempty" db:"class_name"`
	DepartmentName null.String `json:"department_name,omitempty" db:"department_name"`
}

func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
