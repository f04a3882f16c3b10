package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"campusdesk/app/database"
	"campusdesk/app/models"
)

// CurrentTeacher loads the teacher profile paired with the signed-in account.
func CurrentTeacher(c *fiber.Ctx, db *sqlx.DB) (*models.Teacher, error) {
	if t, ok := c.Locals("teacher").(*models.Teacher); ok {
		return t, nil
	}
	user := CurrentUser(c)
	if user == nil {
		return nil, fiber.ErrUnauthorized
	}
	t, err := database.GetTeacherByUserID(db, user.ID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fiber.NewError(fiber.StatusForbidden, "No teacher profile is linked to this account.")
	}
	if err != nil {
		return nil, err
	}
	c.Locals("teacher", t)
	return t, nil
}

// CurrentStudent loads the student profile paired with the signed-in account.
func CurrentStudent(c *fiber.Ctx, db *sqlx.DB) (*models.Student, error) {
	if s, ok := c.Locals("student").(*models.Student); ok {
		return s, nil
	}
	user := CurrentUser(c)
	if user == nil {
		return nil, fiber.ErrUnauthorized
	}
	s, err := database.GetStudentByUserID(db, user.ID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fiber.NewError(fiber.StatusForbidden, "No student profile is linked to this account.")
	}
	if err != nil {
		return nil, err
	}
	c.Locals("student", s)
	return s, nil
}
