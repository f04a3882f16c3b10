package events

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/models"
	"campusdesk/app/routes/auth"
)

func validEventType(t string) bool {
	for _, known := range models.EventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// bindEvent reads the add form. A start given as a bare date makes the event all-day.
func bindEvent(c *fiber.Ctx, e *models.Event) error {
	e.Title = helpers.FormString(c, "title")
	e.Description = helpers.FormNullString(c, "description")
	e.Color = helpers.FormString(c, "color")

	e.EventType = helpers.FormString(c, "event_type")
	if e.EventType == "" {
		e.EventType = models.EventTypes[0]
	}
	if !validEventType(e.EventType) {
		return helpers.BadRequest("Unknown event type")
	}
	e.TargetRole = models.Audience(helpers.FormString(c, "target_role"))
	if e.TargetRole == "" {
		e.TargetRole = models.AudienceAll
	}
	if !e.TargetRole.Valid() {
		return helpers.BadRequest("Unknown audience")
	}

	start := helpers.FormString(c, "start_date")
	if start == "" {
		return helpers.BadRequest("Start date is required")
	}
	var err error
	if e.StartDate, e.AllDay, err = helpers.ParseDateOrDateTime(start); err != nil {
		return err
	}
	if end := helpers.FormString(c, "end_date"); end != "" {
		t, _, err := helpers.ParseDateOrDateTime(end)
		if err != nil {
			return err
		}
		if t.Before(e.StartDate) {
			return helpers.BadRequest("End date must not be before the start date")
		}
		e.EndDate = null.TimeFrom(t)
	}
	return helpers.Validate(e)
}

func CreateEventAPI(c *fiber.Ctx, db *sqlx.DB) error {
	event := &models.Event{CreatedBy: null.Int64From(auth.CurrentUser(c).ID)}
	if err := bindEvent(c, event); err != nil {
		return helpers.FlashRedirect(c, "danger", err.Error(), calendarPath)
	}
	if err := database.CreateEvent(db, event); err != nil {
		return helpers.StoreError(c, err, calendarPath)
	}
	return helpers.FlashRedirect(c, "success", "Event "+event.Title+" added.", calendarPath)
}

func DeleteEventAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := database.DeleteEvent(db, id); err != nil {
		return helpers.StoreError(c, err, calendarPath)
	}
	return helpers.FlashRedirect(c, "success", "Event deleted.", calendarPath)
}
