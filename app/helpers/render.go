package helpers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"campusdesk/app/database"
	"campusdesk/app/logger"
	"campusdesk/app/models"
)

const AppName = "Campus Desk"

// Render fills in the values every page layout expects and renders the template.
func Render(c *fiber.Ctx, tmpl, title, page string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Title"] = title + " - " + AppName
	data["CurrentPage"] = page
	data["Flashes"] = PopFlashes(c)
	if user, ok := c.Locals("user").(*models.User); ok {
		data["user"] = user
	}
	return c.Render(tmpl, data)
}

// RenderInvalid re-renders a form with the submitted values, the problem and a 400 status.
func RenderInvalid(c *fiber.Ctx, tmpl, title, page string, err error, data fiber.Map) error {
	msg := err.Error()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		msg = fe.Message
	}
	if data == nil {
		data = fiber.Map{}
	}
	data["FormError"] = msg
	c.Status(fiber.StatusBadRequest)
	return Render(c, tmpl, title, page, data)
}

// StoreError maps persistence errors onto responses: missing rows become 404,
// rule violations a flash message and a redirect, anything else a logged 500.
func StoreError(c *fiber.Ctx, err error, back string) error {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe
	case errors.Is(err, database.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Record not found")
	case errors.Is(err, database.ErrDuplicate):
		return FlashRedirect(c, "danger", "A record with the same unique value already exists.", back)
	case errors.Is(err, database.ErrInvalidReference):
		return FlashRedirect(c, "danger", "A selected related record does not exist.", back)
	case errors.Is(err, database.ErrConstraint):
		return FlashRedirect(c, "danger", "The submitted values are not allowed.", back)
	case errors.Is(err, database.ErrNoCopiesAvailable),
		errors.Is(err, database.ErrAlreadyReturned),
		errors.Is(err, database.ErrCopiesBelowIssued),
		errors.Is(err, database.ErrBookOnLoan),
		errors.Is(err, database.ErrTimetableConflict),
		errors.Is(err, database.ErrAlreadyPaid),
		errors.Is(err, models.ErrInvalidTimeRange),
		errors.Is(err, models.ErrScoreOutOfRange),
		errors.Is(err, models.ErrInvalidMaxScore):
		return FlashRedirect(c, "warning", capitalize(rootMessage(err)), back)
	}
	logger.L().Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
}

func rootMessage(err error) string {
	for _, sentinel := range []error{
		database.ErrNoCopiesAvailable, database.ErrAlreadyReturned, database.ErrCopiesBelowIssued,
		database.ErrBookOnLoan, database.ErrTimetableConflict, database.ErrAlreadyPaid,
		models.ErrInvalidTimeRange, models.ErrInvalidMaxScore,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b) + "."
}
