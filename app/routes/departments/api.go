package departments

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/models"
)

func bindDepartment(c *fiber.Ctx, d *models.Department) error {
	var err error
	d.Name = helpers.FormString(c, "name")
	d.Code = strings.ToUpper(helpers.FormString(c, "code"))
	d.Description = helpers.FormNullString(c, "description")
	if d.HeadTeacherID, err = helpers.FormNullInt64(c, "head_teacher_id"); err != nil {
		return err
	}
	return helpers.Validate(d)
}

func CreateDepartmentAPI(c *fiber.Ctx, db *sqlx.DB) error {
	dept := &models.Department{}
	if err := bindDepartment(c, dept); err != nil {
		return renderForm(c, db, dept, err)
	}
	if err := database.CreateDepartment(db, dept); err != nil {
		return helpers.StoreError(c, err, listPath+"/add")
	}
	return helpers.FlashRedirect(c, "success", "Department "+dept.Name+" added.", listPath)
}

func UpdateDepartmentAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	dept, err := database.GetDepartmentByID(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	if err := bindDepartment(c, dept); err != nil {
		return renderForm(c, db, dept, err)
	}
	if err := database.UpdateDepartment(db, dept); err != nil {
		return helpers.StoreError(c, err, fmt.Sprintf("%s/%d/edit", listPath, id))
	}
	return helpers.FlashRedirect(c, "success", "Department updated.", listPath)
}

// DeleteDepartmentAPI leaves classes, subjects and people in place; their department
// is cleared by the foreign key.
func DeleteDepartmentAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := database.DeleteDepartment(db, id); err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return helpers.FlashRedirect(c, "success", "Department deleted.", listPath)
}
