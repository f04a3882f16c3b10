package attendance

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

func roster() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "first_name", "last_name", "roll_no", "enrollment_no", "admission_date", "photo_file"}).
		AddRow(int64(5), int64(40), "Ada", "Lovelace", "R-01", "E-01", time.Now(), "default.jpg").
		AddRow(int64(6), int64(41), "Alan", "Turing", "R-02", "E-02", time.Now(), "default.jpg")
}

func TestMarkAttendanceDefaultsToAbsent(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupAttendanceRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectQuery(`FROM students s .* AND s.class_id = \$1`).WithArgs(int64(3)).WillReturnRows(roster())
	mock.ExpectBegin()
	prep := mock.ExpectPrepare(`INSERT INTO attendance .* ON CONFLICT \(student_id, date\) DO UPDATE`)
	prep.ExpectExec().WithArgs(int64(5), "2024-03-04", "Present").WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WithArgs(int64(6), "2024-03-04", "Absent").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	form := url.Values{"class_id": {"3"}, "date": {"2024-03-04"}, "status_5": {"Present"}}
	resp, _ := routetest.Do(t, app, routetest.PostForm("/admin/attendance/mark", form, cookie))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/attendance/mark?class_id=3&date=2024-03-04", resp.Header.Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAttendanceRejectsUnknownStatus(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupAttendanceRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectQuery(`FROM students s .* AND s.class_id = \$1`).WithArgs(int64(3)).WillReturnRows(roster())

	form := url.Values{"class_id": {"3"}, "date": {"2024-03-04"}, "status_5": {"Excused"}}
	resp, _ := routetest.Do(t, app, routetest.PostForm("/admin/attendance/mark", form, cookie))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherCannotMarkOtherClass(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupAttendanceRoutes(app, db)

	teacher := routetest.Teacher()
	cookie := routetest.Cookie(t, mock, teacher)
	mock.ExpectQuery(`FROM teachers t .* WHERE t.user_id = \$1`).WithArgs(teacher.ID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "first_name", "last_name"}).
			AddRow(int64(8), teacher.ID, "Grace", "Hopper"))
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(int64(8), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	form := url.Values{"class_id": {"3"}, "status_5": {"Present"}}
	resp, _ := routetest.Do(t, app, routetest.PostForm("/teacher/attendance/mark", form, cookie))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportAttendanceFilters(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupAttendanceRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM attendance a .* AND s.class_id = \$1 AND a.date >= \$2 AND a.date <= \$3`).
		WithArgs(int64(3), "2024-03-01", "2024-03-31").
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "date", "status", "student_name", "roll_no", "class_name", "department_name"}).
			AddRow(int64(1), int64(5), day, "Late", "Ada Lovelace", "R-01", "10-A", "Science"))

	resp, body := routetest.Do(t, app, routetest.Get("/admin/attendance/export?class_id=3&date_from=2024-03-01&date_to=2024-03-31", cookie))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Date,Roll No,Student Name,Class,Department,Status\n")
	assert.Contains(t, body, "2024-03-04,R-01,Ada Lovelace,10-A,Science,Late\n")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentAttendancePage(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupAttendanceRoutes(app, db)

	student := routetest.Student()
	cookie := routetest.Cookie(t, mock, student)
	mock.ExpectQuery(`FROM students s .* WHERE s.user_id = \$1`).WithArgs(student.ID).
		WillReturnRows(roster())
	mock.ExpectQuery(`FROM attendance a .* AND a.student_id = \$1 .* LIMIT \$2`).WithArgs(int64(5), studentLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "date", "status"}))

	resp, body := routetest.Do(t, app, routetest.Get("/student/attendance", cookie))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "render student/attendance", body)
	require.NoError(t, mock.ExpectationsWereMet())
}
