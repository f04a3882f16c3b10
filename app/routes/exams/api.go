package exams

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/models"
)

func bindExam(c *fiber.Ctx, e *models.Exam) error {
	var err error
	e.Name = helpers.FormString(c, "name")
	if e.Date, err = helpers.FormDate(c, "date"); err != nil {
		return err
	}
	return helpers.Validate(e)
}

func CreateExamAPI(c *fiber.Ctx, db *sqlx.DB) error {
	exam := &models.Exam{}
	if err := bindExam(c, exam); err != nil {
		return renderForm(c, exam, err)
	}
	if err := database.CreateExam(db, exam); err != nil {
		return helpers.StoreError(c, err, listPath+"/add")
	}
	return helpers.FlashRedirect(c, "success", "Exam "+exam.Name+" added.", listPath)
}

func UpdateExamAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	exam, err := database.GetExamByID(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	if err := bindExam(c, exam); err != nil {
		return renderForm(c, exam, err)
	}
	if err := database.UpdateExam(db, exam); err != nil {
		return helpers.StoreError(c, err, fmt.Sprintf("%s/%d/edit", listPath, id))
	}
	return helpers.FlashRedirect(c, "success", "Exam updated.", listPath)
}

// DeleteExamAPI also drops every mark recorded against the exam.
func DeleteExamAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := database.DeleteExam(db, id); err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return helpers.FlashRedirect(c, "success", "Exam deleted.", listPath)
}
