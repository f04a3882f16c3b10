package subjects

import (
	"net/url"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusdesk/app/routes/routetest"
)

func TestExportSubjectsDefaultsToGeneral(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupSubjectsRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectQuery(`FROM subjects`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code", "department_name"}).
			AddRow(int64(1), "Mathematics", "MTH", "Science").
			AddRow(int64(2), "Ethics", "ETH", nil))

	resp, body := routetest.Do(t, app, routetest.Get("/admin/subjects/export", cookie))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Code,Name,Department\nMTH,Mathematics,Science\nETH,Ethics,General\n")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSubjectUppercasesCode(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupSubjectsRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectQuery(`INSERT INTO subjects`).WithArgs("Physics", "PHY", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(8)))

	resp, _ := routetest.Do(t, app, routetest.PostForm("/admin/subjects/add", url.Values{"name": {"Physics"}, "code": {"phy"}}, cookie))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, listPath, resp.Header.Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}
