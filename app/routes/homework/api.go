package homework

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/logger"
	"campusdesk/app/models"
	"campusdesk/app/routes/auth"
)

// bindHomework reads the fields shared by the admin and teacher forms. The due date
// may not fall before the assigned date.
func bindHomework(c *fiber.Ctx, h *models.Homework) error {
	var err error
	if h.ClassID, err = helpers.FormInt64(c, "class_id"); err != nil {
		return err
	}
	if h.SubjectID, err = helpers.FormInt64(c, "subject_id"); err != nil {
		return err
	}
	if h.ClassID == 0 || h.SubjectID == 0 {
		return helpers.BadRequest("Class and subject are required")
	}
	h.Title = helpers.FormString(c, "title")
	h.Description = helpers.FormNullString(c, "description")
	if h.AssignedDate, err = helpers.FormDateOr(c, "assigned_date", helpers.Today()); err != nil {
		return err
	}
	if h.DueDate, err = helpers.FormDate(c, "due_date"); err != nil {
		return err
	}
	if h.DueDate.Before(h.AssignedDate) {
		return helpers.BadRequest("Due date must not be before the assigned date")
	}
	return helpers.Validate(h)
}

func AdminCreateHomeworkAPI(c *fiber.Ctx, db *sqlx.DB) error {
	h := &models.Homework{}
	var err error
	if h.TeacherID, err = helpers.FormInt64(c, "teacher_id"); err != nil || h.TeacherID == 0 {
		return helpers.FlashRedirect(c, "danger", "Choose a teacher.", adminPath)
	}
	if err := bindHomework(c, h); err != nil {
		return helpers.FlashRedirect(c, "danger", err.Error(), adminPath)
	}
	if err := database.CreateHomework(db, h); err != nil {
		return helpers.StoreError(c, err, adminPath)
	}
	return helpers.FlashRedirect(c, "success", "Homework assigned.", adminPath)
}

// TeacherCreateHomeworkAPI assigns homework to one of the signed-in teacher's classes.
func TeacherCreateHomeworkAPI(c *fiber.Ctx, db *sqlx.DB) error {
	teacher, err := auth.CurrentTeacher(c, db)
	if err != nil {
		return err
	}
	h := &models.Homework{TeacherID: teacher.ID}
	if err := bindHomework(c, h); err != nil {
		return helpers.FlashRedirect(c, "danger", err.Error(), teacherPath)
	}
	ok, err := database.TeacherTeachesClass(db, teacher.ID, h.ClassID)
	if err != nil {
		return helpers.StoreError(c, err, teacherPath)
	}
	if !ok {
		return fiber.NewError(fiber.StatusForbidden, "You do not teach this class.")
	}
	if err := database.CreateHomework(db, h); err != nil {
		return helpers.StoreError(c, err, teacherPath)
	}
	logger.L().Info("homework assigned", zap.Int64("homework_id", h.ID), zap.Int64("teacher_id", teacher.ID), zap.Int64("class_id", h.ClassID))
	return helpers.FlashRedirect(c, "success", "Homework assigned.", teacherPath)
}

// DeleteHomeworkAPI lets admins remove any assignment and teachers only their own.
func DeleteHomeworkAPI(c *fiber.Ctx, db *sqlx.DB, back string) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	var owner int64
	if !auth.CurrentUser(c).IsAdmin() {
		teacher, err := auth.CurrentTeacher(c, db)
		if err != nil {
			return err
		}
		owner = teacher.ID
	}
	if err := database.DeleteHomework(db, id, owner); err != nil {
		return helpers.StoreError(c, err, back)
	}
	return helpers.FlashRedirect(c, "success", "Homework deleted.", back)
}
