package timetable

import (
	"net/url"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusdesk/app/routes/routetest"
)

func slot(start, end string) url.Values {
	return url.Values{
		"day_of_week": {"Monday"},
		"start_time":  {start},
		"end_time":    {end},
		"subject_id":  {"4"},
		"teacher_id":  {"8"},
	}
}

func TestAddEntryRejectsBackwardsSlot(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupTimetableRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	resp, _ := routetest.Do(t, app, routetest.PostForm("/admin/timetable/class/3/add", slot("10:00", "09:00"), cookie))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/timetable/class/3", resp.Header.Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddEntryRejectsOverlap(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupTimetableRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectBegin()
	mock.ExpectExec(`pg_advisory_xact_lock`).WithArgs(int64(1001), int64(3)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`pg_advisory_xact_lock`).WithArgs(int64(1002), int64(8)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("Monday", int64(3), int64(8), "09:00", "10:00").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	resp, _ := routetest.Do(t, app, routetest.PostForm("/admin/timetable/class/3/add", slot("09:00", "10:00"), cookie))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/timetable/class/3", resp.Header.Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddEntry(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupTimetableRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectBegin()
	mock.ExpectExec(`pg_advisory_xact_lock`).WithArgs(int64(1001), int64(3)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`pg_advisory_xact_lock`).WithArgs(int64(1002), int64(8)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS`).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO timetable`).
		WithArgs(int64(3), int64(4), int64(8), "Monday", "09:00", "10:00").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectCommit()

	resp, _ := routetest.Do(t, app, routetest.PostForm("/admin/timetable/class/3/add", slot("09:00", "10:00"), cookie))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentWithoutClassGetsEmptyWeek(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupTimetableRoutes(app, db)

	student := routetest.Student()
	cookie := routetest.Cookie(t, mock, student)
	mock.ExpectQuery(`FROM students s .* WHERE s.user_id = \$1`).WithArgs(student.ID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "class_id", "first_name", "last_name"}).
			AddRow(int64(5), student.ID, nil, "Ada", "Lovelace"))

	resp, body := routetest.Do(t, app, routetest.Get("/student/timetable", cookie))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "render student/timetable", body)
	require.NoError(t, mock.ExpectationsWereMet())
}
