package dashboard

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusdesk/app/models"
	"campusdesk/app/routes/routetest"
)

func TestWindowDays(t *testing.T) {
	assert.Equal(t, 30, windowDays(""))
	assert.Equal(t, 30, windowDays("abc"))
	assert.Equal(t, 7, windowDays("7"))
	assert.Equal(t, 1, windowDays("0"))
	assert.Equal(t, 1, windowDays("-4"))
	assert.Equal(t, 365, windowDays("1000"))
}

func TestTrendChart(t *testing.T) {
	day := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	chart := newTrendChart([]models.DailyAttendance{
		{Date: day, Present: 3, Absent: 1},
		{Date: day.AddDate(0, 0, 1)},
	})

	assert.Equal(t, []string{"Feb 03", "Feb 04"}, chart.Labels)
	assert.Equal(t, []int{3, 0}, chart.Present)
	assert.Equal(t, []float64{75, 0}, chart.Percentage)
}

func TestTeacherDashboardWithoutProfile(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupDashboardRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Teacher())
	mock.ExpectQuery(`FROM teachers t`).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp, _ := routetest.Do(t, app, routetest.Get("/teacher/dashboard", cookie))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentCannotOpenAnalytics(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupDashboardRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Student())
	resp, _ := routetest.Do(t, app, routetest.Get("/admin/analytics/attendance?days=7", cookie))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
