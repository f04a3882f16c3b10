package homework

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

func expectTeacher(mock sqlmock.Sqlmock, userID, teacherID int64) {
	mock.ExpectQuery(`FROM teachers t .* WHERE t.user_id = \$1`).WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "first_name", "last_name"}).
			AddRow(teacherID, userID, "Grace", "Hopper"))
}

func assignment(due string) url.Values {
	return url.Values{
		"class_id":      {"3"},
		"subject_id":    {"4"},
		"title":         {"Fractions worksheet"},
		"assigned_date": {"2024-03-04"},
		"due_date":      {due},
	}
}

func TestTeacherAssignsHomework(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupHomeworkRoutes(app, db)

	teacher := routetest.Teacher()
	cookie := routetest.Cookie(t, mock, teacher)
	expectTeacher(mock, teacher.ID, 8)
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(int64(8), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`INSERT INTO homework`).
		WithArgs(int64(3), int64(4), int64(8), "Fractions worksheet", sqlmock.AnyArg(),
			time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(17)))

	resp, _ := routetest.Do(t, app, routetest.PostForm("/teacher/homework", assignment("2024-03-08"), cookie))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, teacherPath, resp.Header.Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherCannotAssignToOtherClass(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupHomeworkRoutes(app, db)

	teacher := routetest.Teacher()
	cookie := routetest.Cookie(t, mock, teacher)
	expectTeacher(mock, teacher.ID, 8)
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(int64(8), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	resp, _ := routetest.Do(t, app, routetest.PostForm("/teacher/homework", assignment("2024-03-08"), cookie))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDueBeforeAssignedIsRejected(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupHomeworkRoutes(app, db)

	teacher := routetest.Teacher()
	cookie := routetest.Cookie(t, mock, teacher)
	expectTeacher(mock, teacher.ID, 8)

	resp, _ := routetest.Do(t, app, routetest.PostForm("/teacher/homework", assignment("2024-03-01"), cookie))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherDeletesOnlyOwnHomework(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupHomeworkRoutes(app, db)

	teacher := routetest.Teacher()
	cookie := routetest.Cookie(t, mock, teacher)
	expectTeacher(mock, teacher.ID, 8)
	mock.ExpectExec(`DELETE FROM homework WHERE id = \$1 AND teacher_id = \$2`).WithArgs(int64(17), int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	resp, _ := routetest.Do(t, app, routetest.PostForm("/teacher/homework/17/delete", nil, cookie))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHomework(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupHomeworkRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectQuery(`FROM homework h .* ORDER BY h.due_date DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "class_id", "subject_id", "teacher_id", "title", "due_date", "assigned_date", "class_name", "subject_name", "teacher_name"}).
			AddRow(int64(17), int64(3), int64(4), int64(8), "Fractions worksheet",
				time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
				"10-A", "Mathematics", "Grace Hopper"))

	resp, body := routetest.Do(t, app, routetest.Get("/admin/homework/export", cookie))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Title,Class,Subject,Teacher,Due Date,Assigned Date\n")
	assert.Contains(t, body, "Fractions worksheet,10-A,Mathematics,Grace Hopper,2024-03-08,2024-03-04\n")
	require.NoError(t, mock.ExpectationsWereMet())
}
