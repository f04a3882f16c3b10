package classes

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/models"
	"campusdesk/app/reports"
)

func bindClass(c *fiber.Ctx, class *models.Class) error {
	var err error
	class.Grade = helpers.FormString(c, "grade")
	class.Section = helpers.FormString(c, "section")
	if class.DepartmentID, err = helpers.FormNullInt64(c, "department_id"); err != nil {
		return err
	}
	if class.ClassTeacherID, err = helpers.FormNullInt64(c, "class_teacher_id"); err != nil {
		return err
	}
	return helpers.Validate(class)
}

func CreateClassAPI(c *fiber.Ctx, db *sqlx.DB) error {
	class := &models.Class{}
	if err := bindClass(c, class); err != nil {
		return renderForm(c, db, class, err)
	}
	if err := database.CreateClass(db, class); err != nil {
		return helpers.StoreError(c, err, listPath+"/add")
	}
	return helpers.FlashRedirect(c, "success", "Class "+class.Name()+" added.", listPath)
}

func UpdateClassAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	class, err := database.GetClassByID(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	if err := bindClass(c, class); err != nil {
		return renderForm(c, db, class, err)
	}
	if err := database.UpdateClass(db, class); err != nil {
		return helpers.StoreError(c, err, fmt.Sprintf("%s/%d/edit", listPath, id))
	}
	return helpers.FlashRedirect(c, "success", "Class updated.", listPath)
}

func DeleteClassAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := database.DeleteClass(db, id); err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return helpers.FlashRedirect(c, "success", "Class deleted.", listPath)
}

func ExportClassesAPI(c *fiber.Ctx, db *sqlx.DB) error {
	list, err := database.ListClasses(db)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return reports.SendCSV(c, "classes.csv", reports.ClassesTable(list))
}
