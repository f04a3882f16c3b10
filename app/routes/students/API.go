package students

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"campusdesk/app/config"
	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/logger"
	"campusdesk/app/models"
	"campusdesk/app/reports"
	"campusdesk/app/routes/auth"
	"campusdesk/app/uploads"
)

func CreateStudentAPI(c *fiber.Ctx, db *sqlx.DB) error {
	student := &models.Student{}
	if err := bindStudent(c, student); err != nil {
		return renderForm(c, db, student, err)
	}
	account, err := bindAccount(c)
	if err != nil {
		return renderForm(c, db, student, err)
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
	if err := database.CreateStudent(db, user, student); err != nil {
		return helpers.StoreError(c, err, listPath+"/add")
	}

	logger.L().Info("student created", zap.Int64("student_id", student.ID), zap.String("roll_no", student.RollNo))
	return helpers.FlashRedirect(c, "success", "Student "+student.FullName()+" added.", listPath)
}

func UpdateStudentAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	student, err := database.GetStudentByID(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	if err := bindStudent(c, student); err != nil {
		return renderForm(c, db, student, err)
	}

	back := fmt.Sprintf("%s/%d/edit", listPath, id)
	if err := database.UpdateStudent(db, student); err != nil {
		return helpers.StoreError(c, err, back)
	}

	if fh, err := c.FormFile("photo"); err == nil && fh.Size > 0 {
		dir := config.Current().UploadDir
		name, err := uploads.SaveStudentPhoto(dir, id, fh)
		if err != nil {
			return helpers.FlashRedirect(c, "warning", "Profile saved, but the photo was rejected: "+err.Error(), back)
		}
		if err := database.UpdateStudentPhoto(db, id, name); err != nil {
			return helpers.StoreError(c, err, back)
		}
		if student.PhotoFile != name {
			if err := uploads.RemovePhoto(dir, student.PhotoFile); err != nil {
				logger.L().Warn("remove old photo", zap.String("file", student.PhotoFile), zap.Error(err))
			}
		}
	}

	return helpers.FlashRedirect(c, "success", "Student updated.", listPath)
}

func DeleteStudentAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	student, err := database.GetStudentByID(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	if err := database.DeleteStudent(db, id); err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	if err := uploads.RemovePhoto(config.Current().UploadDir, student.PhotoFile); err != nil {
		logger.L().Warn("remove photo of deleted student", zap.Int64("student_id", id), zap.Error(err))
	}

	logger.L().Info("student deleted", zap.Int64("student_id", id), zap.Int64("user_id", student.UserID))
	return helpers.FlashRedirect(c, "success", "Student deleted.", listPath)
}

func ExportStudentsAPI(c *fiber.Ctx, db *sqlx.DB) error {
	list, err := database.ListStudents(db, database.StudentFilter{
		ClassID:      helpers.QueryInt64(c, "class_id"),
		DepartmentID: helpers.QueryInt64(c, "department_id"),
	})
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return reports.SendCSV(c, "students.csv", reports.StudentsTable(list))
}

func ReportCardAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "student_id")
	if err != nil {
		return err
	}
	student, err := database.GetStudentByID(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	marks, err := database.StudentMarks(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	exams, err := database.ExamsByID(db)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}

	doc, err := reports.ReportCard(student, models.GroupMarksByExam(exams, marks))
	if err != nil {
		return err
	}
	return reports.SendPDF(c, fmt.Sprintf("report_card_%s.pdf", student.RollNo), doc, true)
}
