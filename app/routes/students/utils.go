package students

import (
	"github.com/gofiber/fiber/v2"

	"campusdesk/app/helpers"
	"campusdesk/app/models"
)

// bindStudent copies the posted profile fields onto s and validates them.
func bindStudent(c *fiber.Ctx, s *models.Student) error {
	var err error
	s.FirstName = helpers.FormString(c, "first_name")
	s.LastName = helpers.FormString(c, "last_name")
	s.RollNo = helpers.FormString(c, "roll_no")
	s.EnrollmentNo = helpers.FormString(c, "enrollment_no")
	s.Gender = helpers.FormNullString(c, "gender")
	s.BloodGroup = helpers.FormNullString(c, "blood_group")
	s.Phone = helpers.FormNullString(c, "phone")
	s.ParentName = helpers.FormNullString(c, "parent_name")
	s.ParentPhone = helpers.FormNullString(c, "parent_phone")
	s.Address = helpers.FormNullString(c, "address")

	if s.ClassID, err = helpers.FormNullInt64(c, "class_id"); err != nil {
		return err
	}
	if s.DepartmentID, err = helpers.FormNullInt64(c, "department_id"); err != nil {
		return err
	}
	if s.DOB, err = helpers.FormNullDate(c, "dob"); err != nil {
		return err
	}
	if s.AdmissionDate, err = helpers.FormDateOr(c, "admission_date", helpers.Today()); err != nil {
		return err
	}
	if s.Gender.Valid && !validGender(s.Gender.String) {
		return helpers.BadRequest("Unknown gender " + s.Gender.String)
	}
	return helpers.Validate(s)
}

func validGender(g string) bool {
	for _, known := range models.Genders {
		if g == known {
			return true
		}
	}
	return false
}

type accountForm struct {
	Username string `validate:"required,min=3,max=64"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func bindAccount(c *fiber.Ctx) (accountForm, error) {
	form := accountForm{
		Username: helpers.FormString(c, "username"),
		Email:    helpers.FormString(c, "email"),
		Password: c.FormValue("password"),
	}
	return form, helpers.Validate(form)
}
