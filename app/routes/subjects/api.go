package subjects

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/models"
	"campusdesk/app/reports"
)

func bindSubject(c *fiber.Ctx, s *models.Subject) error {
	var err error
	s.Name = helpers.FormString(c, "name")
	s.Code = strings.ToUpper(helpers.FormString(c, "code"))
	if s.DepartmentID, err = helpers.FormNullInt64(c, "department_id"); err != nil {
		return err
	}
	return helpers.Validate(s)
}

func CreateSubjectAPI(c *fiber.Ctx, db *sqlx.DB) error {
	subject := &models.Subject{}
	if err := bindSubject(c, subject); err != nil {
		return renderForm(c, db, subject, err)
	}
	if err := database.CreateSubject(db, subject); err != nil {
		return helpers.StoreError(c, err, listPath+"/add")
	}
	return helpers.FlashRedirect(c, "success", "Subject "+subject.Name+" added.", listPath)
}

func UpdateSubjectAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	subject, err := database.GetSubjectByID(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	if err := bindSubject(c, subject); err != nil {
		return renderForm(c, db, subject, err)
	}
	if err := database.UpdateSubject(db, subject); err != nil {
		return helpers.StoreError(c, err, fmt.Sprintf("%s/%d/edit", listPath, id))
	}
	return helpers.FlashRedirect(c, "success", "Subject updated.", listPath)
}

func DeleteSubjectAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := database.DeleteSubject(db, id); err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return helpers.FlashRedirect(c, "success", "Subject deleted.", listPath)
}

func ExportSubjectsAPI(c *fiber.Ctx, db *sqlx.DB) error {
	list, err := database.ListSubjects(db)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return reports.SendCSV(c, "subjects.csv", reports.SubjectsTable(list))
}
