package events

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/models"
	"campusdesk/app/routes/auth"
)

const (
	calendarPath  = "/admin/calendar"
	upcomingLimit = 50
)

func SetupEventsRoutes(app *fiber.App, db *sqlx.DB) {
	calendar := app.Group("/admin/calendar", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleAdmin))
	calendar.Get("/", func(c *fiber.Ctx) error { return CalendarPage(c, db) })
	calendar.Get("/events", func(c *fiber.Ctx) error { return CalendarFeedAPI(c, db) })
	calendar.Post("/add", func(c *fiber.Ctx) error { return CreateEventAPI(c, db) })
	calendar.Post("/:id/delete", func(c *fiber.Ctx) error { return DeleteEventAPI(c, db) })

	app.Get("/teacher/events", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleTeacher),
		func(c *fiber.Ctx) error { return UpcomingEventsPage(c, db) })
	app.Get("/student/events", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleStudent),
		func(c *fiber.Ctx) error { return UpcomingEventsPage(c, db) })
}

// EventGroup is one month heading of the event list.
type EventGroup struct {
	Month  string
	Events []models.Event
}

// groupByMonth buckets events already ordered by start date.
func groupByMonth(events []models.Event) []EventGroup {
	var groups []EventGroup
	for _, e := range events {
		month := e.StartDate.Format("January 2006")
		if n := len(groups); n > 0 && groups[n-1].Month == month {
			groups[n-1].Events = append(groups[n-1].Events, e)
			continue
		}
		groups = append(groups, EventGroup{Month: month, Events: []models.Event{e}})
	}
	return groups
}

func typeCounts(events []models.Event) map[string]int {
	counts := make(map[string]int, len(models.EventTypes))
	for _, e := range events {
		counts[e.EventType]++
	}
	return counts
}

func CalendarPage(c *fiber.Ctx, db *sqlx.DB) error {
	list, err := database.ListEvents(db)
	if err != nil {
		return helpers.StoreError(c, err, "/admin/dashboard")
	}
	return helpers.Render(c, "admin/calendar", "Calendar", "calendar", fiber.Map{
		"groups":     groupByMonth(list),
		"counts":     typeCounts(list),
		"eventTypes": models.EventTypes,
		"audiences":  models.Audiences,
		"color":      models.DefaultEventColor,
	})
}

// CalendarFeedAPI serves every event in the calendar widget's JSON shape.
func CalendarFeedAPI(c *fiber.Ctx, db *sqlx.DB) error {
	list, err := database.ListEvents(db)
	if err != nil {
		return helpers.StoreError(c, err, calendarPath)
	}
	feed := make([]models.CalendarEvent, 0, len(list))
	for _, e := range list {
		feed = append(feed, e.Calendar())
	}
	return c.JSON(feed)
}

func UpcomingEventsPage(c *fiber.Ctx, db *sqlx.DB) error {
	user := auth.CurrentUser(c)
	list, err := database.UpcomingEvents(db, user.Role.Audience(), helpers.Today(), upcomingLimit)
	if err != nil {
		return helpers.StoreError(c, err, user.HomePath())
	}
	return helpers.Render(c, "shared/events", "Upcoming Events", "events", fiber.Map{
		"groups": groupByMonth(list),
	})
}
