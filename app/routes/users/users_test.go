package users

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusdesk/app/routes/routetest"
)

func TestApproveUser(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupUsersRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectQuery(`FROM users u WHERE u.id = \$1`).WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(routetest.UserColumns).
			AddRow(int64(9), "newbie", "newbie@school.test", "x", "student", false, time.Now()))
	mock.ExpectExec(`UPDATE users SET is_approved`).WithArgs(true, int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, _ := routetest.Do(t, app, routetest.PostForm("/admin/users/9/approve", nil, cookie))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, usersPath, resp.Header.Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminCannotSuspendSelf(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupUsersRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())

	resp, _ := routetest.Do(t, app, routetest.PostForm("/admin/users/1/suspend", nil, cookie))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSuspendUnknownUser(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupUsersRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectQuery(`FROM users u WHERE u.id = \$1`).WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(routetest.UserColumns))

	resp, _ := routetest.Do(t, app, routetest.PostForm("/admin/users/404/suspend", nil, cookie))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUsersRequireAdmin(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupUsersRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Teacher())
	resp, _ := routetest.Do(t, app, routetest.PostForm("/admin/users/9/approve", nil, cookie))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
