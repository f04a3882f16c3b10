package events

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusdesk/app/models"
	"campusdesk/app/routes/routetest"
)

var eventCols = []string{"id", "title", "description", "event_type", "start_date", "end_date", "all_day", "color", "created_by", "target_role"}

func TestCalendarFeed(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupEventsRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	meeting := time.Date(2024, 5, 2, 14, 30, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM events ORDER BY start_date`).
		WillReturnRows(sqlmock.NewRows(eventCols).
			AddRow(int64(1), "Labour Day", nil, "holiday", day, nil, true, "#E10600", nil, "all").
			AddRow(int64(2), "Staff meeting", nil, "meeting", meeting, meeting.Add(time.Hour), false, "#0044AA", int64(1), "teachers"))

	resp, body := routetest.Do(t, app, routetest.Get("/admin/calendar/events", cookie))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var feed []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &feed))
	require.Len(t, feed, 2)
	assert.Equal(t, "2024-05-01", feed[0]["start"])
	assert.Nil(t, feed[0]["end"])
	assert.Equal(t, true, feed[0]["allDay"])
	assert.Equal(t, "2024-05-02T14:30:00", feed[1]["start"])
	assert.Equal(t, "2024-05-02T15:30:00", feed[1]["end"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAllDayEvent(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupEventsRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectQuery(`INSERT INTO events`).
		WithArgs("Sports day", sqlmock.AnyArg(), "sports", time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
			sqlmock.AnyArg(), true, models.DefaultEventColor, sqlmock.AnyArg(), "students").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	form := url.Values{"title": {"Sports day"}, "event_type": {"sports"}, "start_date": {"2024-06-07"}, "target_role": {"students"}}
	resp, _ := routetest.Do(t, app, routetest.PostForm("/admin/calendar/add", form, cookie))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, calendarPath, resp.Header.Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEventRejectsEndBeforeStart(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupEventsRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	form := url.Values{"title": {"Trip"}, "start_date": {"2024-06-07T09:00"}, "end_date": {"2024-06-06"}}
	resp, _ := routetest.Do(t, app, routetest.PostForm("/admin/calendar/add", form, cookie))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupByMonth(t *testing.T) {
	at := func(m time.Month, d int) models.Event {
		return models.Event{StartDate: time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)}
	}
	groups := groupByMonth([]models.Event{at(time.May, 1), at(time.May, 20), at(time.June, 3)})
	require.Len(t, groups, 2)
	assert.Equal(t, "May 2024", groups[0].Month)
	assert.Len(t, groups[0].Events, 2)
	assert.Equal(t, "June 2024", groups[1].Month)
}
