package timetable

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/models"
	"campusdesk/app/routes/auth"
)

const listPath = "/admin/timetable"

func SetupTimetableRoutes(app *fiber.App, db *sqlx.DB) {
	admin := app.Group("/admin/timetable", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleAdmin))
	admin.Get("/", func(c *fiber.Ctx) error { return ClassesPage(c, db) })
	admin.Get("/class/:id", func(c *fiber.Ctx) error { return ClassTimetablePage(c, db) })
	admin.Post("/class/:id/add", func(c *fiber.Ctx) error { return AddEntryAPI(c, db) })
	admin.Post("/entry/:id/delete", func(c *fiber.Ctx) error { return DeleteEntryAPI(c, db) })

	teacher := app.Group("/teacher/schedule", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleTeacher))
	teacher.Get("/", func(c *fiber.Ctx) error { return TeacherSchedulePage(c, db) })

	student := app.Group("/student/timetable", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleStudent))
	student.Get("/", func(c *fiber.Ctx) error { return StudentTimetablePage(c, db) })
}

func ClassesPage(c *fiber.Ctx, db *sqlx.DB) error {
	classes, err := database.ListClasses(db)
	if err != nil {
		return helpers.StoreError(c, err, "/admin/dashboard")
	}
	return helpers.Render(c, "admin/timetable", "Timetable", "timetable", fiber.Map{"classes": classes})
}

func ClassTimetablePage(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	class, err := database.GetClassByID(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	entries, err := database.ClassTimetable(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	subjects, err := database.ListSubjects(db)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	teachers, err := database.ListTeachers(db, 0)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return helpers.Render(c, "admin/class_timetable", "Timetable "+class.Name(), "timetable", fiber.Map{
		"class":    class,
		"days":     models.GroupByDay(entries),
		"weekdays": models.Weekdays,
		"subjects": subjects,
		"teachers": teachers,
	})
}

func AddEntryAPI(c *fiber.Ctx, db *sqlx.DB) error {
	classID, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	back := fmt.Sprintf("%s/class/%d", listPath, classID)

	entry := &models.TimeTable{
		ClassID:   classID,
		DayOfWeek: helpers.FormString(c, "day_of_week"),
		StartTime: helpers.FormString(c, "start_time"),
		EndTime:   helpers.FormString(c, "end_time"),
	}
	if entry.SubjectID, err = helpers.FormInt64(c, "subject_id"); err != nil || entry.SubjectID == 0 {
		return helpers.FlashRedirect(c, "danger", "Choose a subject.", back)
	}
	if entry.TeacherID, err = helpers.FormInt64(c, "teacher_id"); err != nil || entry.TeacherID == 0 {
		return helpers.FlashRedirect(c, "danger", "Choose a teacher.", back)
	}

	if err := models.ValidateSlot(entry.DayOfWeek, entry.StartTime, entry.EndTime); err != nil {
		return helpers.FlashRedirect(c, "danger", "Invalid slot: "+err.Error()+".", back)
	}
	if err := database.CreateTimetableEntry(db, entry); err != nil {
		return helpers.StoreError(c, err, back)
	}
	return helpers.FlashRedirect(c, "success", "Timetable entry added.", back)
}

func DeleteEntryAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	back := listPath
	if classID := helpers.QueryInt64(c, "class_id"); classID > 0 {
		back = fmt.Sprintf("%s/class/%d", listPath, classID)
	}
	if err := database.DeleteTimetableEntry(db, id); err != nil {
		return helpers.StoreError(c, err, back)
	}
	return helpers.FlashRedirect(c, "success", "Timetable entry removed.", back)
}

// TeacherSchedulePage shows the teacher's whole week with today's slots called out.
func TeacherSchedulePage(c *fiber.Ctx, db *sqlx.DB) error {
	teacher, err := auth.CurrentTeacher(c, db)
	if err != nil {
		return err
	}
	entries, err := database.TeacherTimetable(db, teacher.ID, "")
	if err != nil {
		return helpers.StoreError(c, err, "/teacher/dashboard")
	}
	today := helpers.Today().Weekday().String()
	var todays []models.TimeTable
	for _, e := range entries {
		if e.DayOfWeek == today {
			todays = append(todays, e)
		}
	}
	return helpers.Render(c, "teacher/schedule", "My Schedule", "schedule", fiber.Map{
		"teacher": teacher,
		"days":    models.GroupByDay(entries),
		"today":   today,
		"todays":  todays,
	})
}

func StudentTimetablePage(c *fiber.Ctx, db *sqlx.DB) error {
	student, err := auth.CurrentStudent(c, db)
	if err != nil {
		return err
	}
	var entries []models.TimeTable
	if student.ClassID.Valid {
		if entries, err = database.ClassTimetable(db, student.ClassID.Int64); err != nil {
			return helpers.StoreError(c, err, "/student/dashboard")
		}
	}
	return helpers.Render(c, "student/timetable", "My Timetable", "timetable", fiber.Map{
		"student": student,
		"days":    models.GroupByDay(entries),
	})
}
