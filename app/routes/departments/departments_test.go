package departments

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

func TestCreateDepartmentWithHead(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupDepartmentsRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectQuery(`INSERT INTO departments`).WithArgs("Science", "SCI", nil, int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), time.Now()))

	form := url.Values{"name": {"Science"}, "code": {"sci"}, "head_teacher_id": {"4"}}
	resp, _ := routetest.Do(t, app, routetest.PostForm("/admin/departments/add", form, cookie))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDepartmentBadHeadID(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupDepartmentsRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectQuery(`FROM teachers t`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	form := url.Values{"name": {"Science"}, "code": {"SCI"}, "head_teacher_id": {"four"}}
	resp, body := routetest.Do(t, app, routetest.PostForm("/admin/departments/add", form, cookie))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "render admin/department_form", body)
}
