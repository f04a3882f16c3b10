package students

import (
	"net/url"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusdesk/app/routes/routetest"
)

var studentCols = []string{"id", "user_id", "first_name", "last_name", "roll_no", "enrollment_no", "admission_date", "photo_file", "class_name", "gender"}

func studentRow(id int64) *sqlmock.Rows {
	return sqlmock.NewRows(studentCols).
		AddRow(id, int64(40), "Ada", "Lovelace", "R-07", "E-07", time.Now(), "default.jpg", "10-A", "Female")
}

func TestExportStudentsCSV(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupStudentsRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectQuery(`FROM students s .* AND s.class_id = \$1 ORDER BY s.roll_no`).
		WithArgs(int64(3)).
		WillReturnRows(studentRow(5))

	resp, body := routetest.Do(t, app, routetest.Get("/admin/students/export?class_id=3", cookie))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment")
	assert.Contains(t, body, "ID,Roll No,First Name,Last Name,Class,Gender,Parent Name,Parent Phone")
	assert.Contains(t, body, "5,R-07,Ada,Lovelace,10-A,Female,,")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteStudentRemovesUser(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupStudentsRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectQuery(`FROM students s .* WHERE s.id = \$1`).WithArgs(int64(5)).WillReturnRows(studentRow(5))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT user_id FROM students WHERE id = \$1 FOR UPDATE`).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(40)))
	mock.ExpectExec(`UPDATE books b`).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM students WHERE id = \$1`).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).WithArgs(int64(40)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, _ := routetest.Do(t, app, routetest.PostForm("/admin/students/5/delete", nil, cookie))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, listPath, resp.Header.Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStudentInvalidFormRerenders(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupStudentsRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectQuery(`FROM classes c`).WillReturnRows(sqlmock.NewRows([]string{"id", "grade", "section"}))
	mock.ExpectQuery(`FROM departments d`).WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code"}))

	form := url.Values{"first_name": {"Ada"}, "roll_no": {"R-07"}, "dob": {"07/12/2010"}}
	resp, body := routetest.Do(t, app, routetest.PostForm("/admin/students/add", form, cookie))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "render admin/student_form", body)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportCardUnknownStudent(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupStudentsRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectQuery(`FROM students s .* WHERE s.id = \$1`).WithArgs(int64(77)).
		WillReturnRows(sqlmock.NewRows(studentCols))

	resp, _ := routetest.Do(t, app, routetest.Get("/admin/reportcard/77", cookie))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestReportCardIsPDF(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupStudentsRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectQuery(`FROM students s .* WHERE s.id = \$1`).WithArgs(int64(5)).WillReturnRows(studentRow(5))
	mock.ExpectQuery(`FROM marks m`).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "exam_id", "subject_id", "score_obtained", "max_score", "exam_name", "subject_name"}).
			AddRow(int64(1), int64(5), int64(2), int64(3), 81.0, 100.0, "Midterm", "Mathematics"))
	mock.ExpectQuery(`FROM exams`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "date"}).AddRow(int64(2), "Midterm", time.Now()))

	resp, body := routetest.Do(t, app, routetest.Get("/admin/reportcard/5", cookie))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.True(t, len(body) > 4 && body[:4] == "%PDF")
	require.NoError(t, mock.ExpectationsWereMet())
}
