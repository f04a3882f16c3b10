package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/volatiletech/null/v8"

	"campusdesk/app/models"
)

// Table is a header row plus data rows ready to be written as CSV.
type Table struct {
	Header []string
	Rows   [][]string
}

func (t Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// SendCSV writes the table as an attachment download.
func SendCSV(c *fiber.Ctx, filename string, t Table) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return t.WriteCSV(c.Response().BodyWriter())
}

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func nullDate(t null.Time) string {
	if !t.Valid {
		return ""
	}
	return date(t.Time)
}

func id(n int64) string {
	return strconv.FormatInt(n, 10)
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func StudentsTable(students []models.Student) Table {
	t := Table{Header: []string{"ID", "Roll No", "First Name", "Last Name", "Class", "Gender", "Parent Name", "Parent Phone"}}
	for _, s := range students {
		t.Rows = append(t.Rows, []string{
			id(s.ID), s.RollNo, s.FirstName, s.LastName, s.ClassName.String,
			s.Gender.String, s.ParentName.String, s.ParentPhone.String,
		})
	}
	return t
}

func AttendanceTable(records []models.Attendance) Table {
	t := Table{Header: []string{"Date", "Roll No", "Student Name", "Class", "Department", "Status"}}
	for _, a := range records {
		t.Rows = append(t.Rows, []string{
			date(a.Date), a.RollNo, a.StudentName, a.ClassName.String, a.DepartmentName.String, string(a.Status),
		})
	}
	return t
}

func FeesTable(fees []models.Fee) Table {
	t := Table{Header: []string{"ID", "Student", "Roll No", "Amount", "Due Date", "Status", "Paid Date"}}
	for _, f := range fees {
		t.Rows = append(t.Rows, []string{
			id(f.ID), f.StudentName, f.RollNo, money(f.Amount), date(f.DueDate), string(f.Status), nullDate(f.PaidDate),
		})
	}
	return t
}

func TeachersTable(teachers []models.Teacher) Table {
	t := Table{Header: []string{"ID", "Name", "Department", "Qualification", "Specialization", "Phone", "Joining Date"}}
	for _, tc := range teachers {
		t.Rows = append(t.Rows, []string{
			id(tc.ID), tc.FullName(), tc.DepartmentName.String, tc.Qualification.String,
			tc.Specialization.String, tc.Phone.String, date(tc.JoiningDate),
		})
	}
	return t
}

func BooksTable(books []models.Book) Table {
	t := Table{Header: []string{"ID", "Title", "Author", "ISBN", "Category", "Total Copies", "Available"}}
	for _, b := range books {
		t.Rows = append(t.Rows, []string{
			id(b.ID), b.Title, b.Author, b.ISBN.String, b.Category.String,
			strconv.Itoa(b.TotalCopies), strconv.Itoa(b.AvailableCopies),
		})
	}
	return t
}

func HomeworkTable(items []models.Homework) Table {
	t := Table{Header: []string{"Title", "Class", "Subject", "Teacher", "Due Date", "Assigned Date"}}
	for _, h := range items {
		t.Rows = append(t.Rows, []string{
			h.Title, h.ClassName, h.SubjectName, h.TeacherName, date(h.DueDate), date(h.AssignedDate),
		})
	}
	return t
}

func ClassesTable(classes []models.Class) Table {
	t := Table{Header: []string{"Grade/Year", "Section", "Department", "Class Teacher", "Students Count"}}
	for _, c := range classes {
		t.Rows = append(t.Rows, []string{
			c.Grade, c.Section, c.DepartmentName.String, c.ClassTeacherName.String, strconv.Itoa(c.StudentCount),
		})
	}
	return t
}

func SubjectsTable(subjects []models.Subject) Table {
	t := Table{Header: []string{"Code", "Name", "Department"}}
	for _, s := range subjects {
		dept := "General"
		if s.DepartmentName.Valid {
			dept = s.DepartmentName.String
		}
		t.Rows = append(t.Rows, []string{s.Code, s.Name, dept})
	}
	return t
}
