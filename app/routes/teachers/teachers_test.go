package teachers

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

func TestExportTeachersByDepartment(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupTeachersRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	joined := time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM teachers t .* t.department_id = \$1`).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "first_name", "last_name", "qualification", "department_name", "joining_date"}).
			AddRow(int64(4), int64(12), "Alan", "Turing", "PhD", "Science", joined))

	resp, body := routetest.Do(t, app, routetest.Get("/admin/teachers/export?department_id=2", cookie))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "ID,Name,Department,Qualification,Specialization,Phone,Joining Date")
	assert.Contains(t, body, "4,Alan Turing,Science,PhD,,,2020-09-01")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTeacherRemovesUser(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupTeachersRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT user_id FROM teachers WHERE id = \$1 FOR UPDATE`).WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(12)))
	mock.ExpectExec(`DELETE FROM teachers WHERE id = \$1`).WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).WithArgs(int64(12)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, _ := routetest.Do(t, app, routetest.PostForm("/admin/teachers/4/delete", nil, cookie))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTeacherNeedsAccount(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupTeachersRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectQuery(`FROM departments d`).WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code"}))

	form := url.Values{"first_name": {"Alan"}, "last_name": {"Turing"}, "email": {"not-an-email"}}
	resp, body := routetest.Do(t, app, routetest.PostForm("/admin/teachers/add", form, cookie))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "render admin/teacher_form", body)
	require.NoError(t, mock.ExpectationsWereMet())
}
