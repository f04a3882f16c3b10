package models

import (
	"fmt"
	"time"

	"github.com/volatiletech/null/v8"
)

type Department struct {
	ID              int64       `json:"id" db:"id"`
	Name            string      `json:"name" db:"name" validate:"required"`
	Code            string      `json:"code" db:"code" validate:"required,max=16"`
	Description     null.String `json:"description" db:"description"`
	HeadTeacherID   null.Int64  `json:"head_teacher_id" db:"head_teacher_id"`
	HeadTeacherName null.String `json:"head_teacher_name,omitempty" db:"head_teacher_name"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
}

// GeneralDepartmentCode is the fallback department for self-registered profiles.
const GeneralDepartmentCode = "GEN"

type Class struct {
	ID               int64       `json:"id" db:"id"`
	Grade            string      `json:"grade" db:"grade" validate:"required"`
	Section          string      `json:"section" db:"section" validate:"required"`
	DepartmentID     null.Int64  `json:"department_id" db:"department_id"`
	ClassTeacherID   null.Int64  `json:"class_teacher_id" db:"class_teacher_id"`
	DepartmentName   null.String `json:"department_name,omitempty" db:"department_name"`
	ClassTeacherName null.String `json:"class_teacher_name,omitempty" db:"class_teacher_name"`
	StudentCount     int         `json:"student_count" db:"student_count"`
}

func (c Class) Name() string {
	return fmt.Sprintf("%s-%s", c.Grade, c.Section)
}

type Subject struct {
	ID             int64       `json:"id" db:"id"`
	Name           string      `json:"name" db:"name" validate:"required"`
	Code           string      `json:"code" db:"code" validate:"required,max=16"`
	DepartmentID   null.Int64  `json:"department_id" db:"department_id"`
	DepartmentName null.String `json:"department_name,omitempty" db:"department_name"`
}
