package attendance

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/logger"
	"campusdesk/app/models"
	"campusdesk/app/routes/auth"
)

// classScope resolves which classes the signed-in user may take attendance for.
// A nil teacher means an administrator, who may mark any class.
func classScope(c *fiber.Ctx, db *sqlx.DB) (*models.Teacher, error) {
	if auth.CurrentUser(c).IsAdmin() {
		return nil, nil
	}
	return auth.CurrentTeacher(c, db)
}

func allowedClasses(db *sqlx.DB, teacher *models.Teacher) ([]models.Class, error) {
	if teacher == nil {
		return database.ListClasses(db)
	}
	return database.TeacherClasses(db, teacher.ID)
}

func checkClass(db *sqlx.DB, teacher *models.Teacher, classID int64) error {
	if teacher == nil {
		return nil
	}
	ok, err := database.TeacherTeachesClass(db, teacher.ID, classID)
	if err != nil {
		return err
	}
	if !ok {
		return fiber.NewError(fiber.StatusForbidden, "You do not teach this class.")
	}
	return nil
}

func MarkSheetPage(c *fiber.Ctx, db *sqlx.DB, base string) error {
	teacher, err := classScope(c, db)
	if err != nil {
		return err
	}
	day, err := sheetDate(c.Query("date"))
	if err != nil {
		return helpers.BadRequest("Invalid date")
	}
	home := auth.CurrentUser(c).HomePath()

	classes, err := allowedClasses(db, teacher)
	if err != nil {
		return helpers.StoreError(c, err, home)
	}
	classID := helpers.QueryInt64(c, "class_id")
	data := fiber.Map{
		"classes":  classes,
		"classID":  classID,
		"date":     day,
		"action":   base,
		"statuses": models.AttendanceStatuses,
	}

	if classID > 0 {
		if err := checkClass(db, teacher, classID); err != nil {
			return helpers.StoreError(c, err, base)
		}
		roster, err := database.ClassRoster(db, classID)
		if err != nil {
			return helpers.StoreError(c, err, base)
		}
		marked, err := database.ClassAttendanceOn(db, classID, day)
		if err != nil {
			return helpers.StoreError(c, err, base)
		}
		data["students"] = roster
		data["marked"] = marked
	}

	return helpers.Render(c, "shared/attendance_mark", "Mark Attendance", "attendance", data)
}

// readStatuses builds one entry per roster student from status_<student_id>. A student
// left unset is recorded Absent.
func readStatuses(get func(string) string, roster []models.Student) ([]models.AttendanceEntry, error) {
	entries := make([]models.AttendanceEntry, 0, len(roster))
	for _, s := range roster {
		status := models.AttendanceStatus(get(fmt.Sprintf("status_%d", s.ID)))
		if status == "" {
			status = models.Absent
		}
		if !status.Valid() {
			return nil, fmt.Errorf("invalid status %q for %s", status, s.FullName())
		}
		entries = append(entries, models.AttendanceEntry{StudentID: s.ID, Status: status})
	}
	return entries, nil
}

func MarkAttendanceAPI(c *fiber.Ctx, db *sqlx.DB, base string) error {
	teacher, err := classScope(c, db)
	if err != nil {
		return err
	}
	classID, err := helpers.FormInt64(c, "class_id")
	if err != nil || classID == 0 {
		return helpers.FlashRedirect(c, "danger", "Choose a class first.", base)
	}
	day, err := sheetDate(helpers.FormString(c, "date"))
	if err != nil {
		return helpers.FlashRedirect(c, "danger", "Invalid date.", base)
	}
	back := fmt.Sprintf("%s?class_id=%d&date=%s", base, classID, day.Format("2006-01-02"))

	if err := checkClass(db, teacher, classID); err != nil {
		return helpers.StoreError(c, err, back)
	}
	roster, err := database.ClassRoster(db, classID)
	if err != nil {
		return helpers.StoreError(c, err, back)
	}
	entries, err := readStatuses(func(k string) string { return helpers.FormString(c, k) }, roster)
	if err != nil {
		return helpers.FlashRedirect(c, "danger", err.Error()+". Attendance was not saved.", back)
	}
	if len(entries) == 0 {
		return helpers.FlashRedirect(c, "info", "This class has no students.", back)
	}

	if err := database.UpsertAttendance(db, day, entries); err != nil {
		return helpers.StoreError(c, err, back)
	}

	logger.L().Info("attendance recorded",
		zap.Int64("class_id", classID),
		zap.Time("date", day),
		zap.Int("students", len(entries)),
		zap.Int64("by", auth.CurrentUser(c).ID),
	)
	return helpers.FlashRedirect(c, "success", fmt.Sprintf("Attendance saved for %d students.", len(entries)), back)
}
