package teachers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/logger"
	"campusdesk/app/models"
	"campusdesk/app/reports"
	"campusdesk/app/routes/auth"
)

func CreateTeacherAPI(c *fiber.Ctx, db *sqlx.DB) error {
	teacher := &models.Teacher{}
	if err := bindTeacher(c, teacher); err != nil {
		return renderForm(c, db, teacher, err)
	}
	account := accountForm{
		Username: helpers.FormString(c, "username"),
		Email:    helpers.FormString(c, "email"),
		Password: c.FormValue("password"),
	}
	if err := helpers.Validate(account); err != nil {
		return renderForm(c, db, teacher, err)
	}

	hash, err := auth.HashPassword(account.Password)
	if err != nil {
		return err
	}
	user := &models.User{
		Username:     account.Username,
		Email:        account.Email,
		PasswordHash: hash,
		IsApproved:   true,
	}
	if err := database.CreateTeacher(db, user, teacher); err != nil {
		return helpers.StoreError(c, err, listPath+"/add")
	}

	logger.L().Info("teacher created", zap.Int64("teacher_id", teacher.ID), zap.Int64("user_id", user.ID))
	return helpers.FlashRedirect(c, "success", "Teacher "+teacher.FullName()+" added.", listPath)
}

func UpdateTeacherAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	teacher, err := database.GetTeacherByID(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	if err := bindTeacher(c, teacher); err != nil {
		return renderForm(c, db, teacher, err)
	}
	if err := database.UpdateTeacher(db, teacher); err != nil {
		return helpers.StoreError(c, err, fmt.Sprintf("%s/%d/edit", listPath, id))
	}
	return helpers.FlashRedirect(c, "success", "Teacher updated.", listPath)
}

func DeleteTeacherAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := database.DeleteTeacher(db, id); err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	logger.L().Info("teacher deleted", zap.Int64("teacher_id", id))
	return helpers.FlashRedirect(c, "success", "Teacher deleted.", listPath)
}

func ExportTeachersAPI(c *fiber.Ctx, db *sqlx.DB) error {
	list, err := database.ListTeachers(db, helpers.QueryInt64(c, "department_id"))
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return reports.SendCSV(c, "teachers.csv", reports.TeachersTable(list))
}
