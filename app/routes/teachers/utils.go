package teachers

import (
	"github.com/gofiber/fiber/v2"

	"campusdesk/app/helpers"
	"campusdesk/app/models"
)

func bindTeacher(c *fiber.Ctx, t *models.Teacher) error {
	var err error
	t.FirstName = helpers.FormString(c, "first_name")
	t.LastName = helpers.FormString(c, "last_name")
	t.Qualification = helpers.FormNullString(c, "qualification")
	t.Specialization = helpers.FormNullString(c, "specialization")
	t.Phone = helpers.FormNullString(c, "phone")
	if t.DepartmentID, err = helpers.FormNullInt64(c, "department_id"); err != nil {
		return err
	}
	if t.JoiningDate, err = helpers.FormDateOr(c, "joining_date", helpers.Today()); err != nil {
		return err
	}
	return helpers.Validate(t)
}

type accountForm struct {
	Username string `validate:"required,min=3,max=64"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}
