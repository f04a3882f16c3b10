package attendance

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/models"
	"campusdesk/app/reports"
	"campusdesk/app/routes/auth"
)

const (
	reportLimit  = 100
	studentLimit = 60
)

func SetupAttendanceRoutes(app *fiber.App, db *sqlx.DB) {
	admin := app.Group("/admin/attendance", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleAdmin))
	admin.Get("/", func(c *fiber.Ctx) error { return AttendanceReportPage(c, db) })
	admin.Get("/export", func(c *fiber.Ctx) error { return ExportAttendanceAPI(c, db) })
	admin.Get("/mark", func(c *fiber.Ctx) error { return MarkSheetPage(c, db, "/admin/attendance/mark") })
	admin.Post("/mark", func(c *fiber.Ctx) error { return MarkAttendanceAPI(c, db, "/admin/attendance/mark") })

	teacher := app.Group("/teacher/attendance", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleTeacher))
	teacher.Get("/mark", func(c *fiber.Ctx) error { return MarkSheetPage(c, db, "/teacher/attendance/mark") })
	teacher.Post("/mark", func(c *fiber.Ctx) error { return MarkAttendanceAPI(c, db, "/teacher/attendance/mark") })

	student := app.Group("/student/attendance", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleStudent))
	student.Get("/", func(c *fiber.Ctx) error { return StudentAttendancePage(c, db) })
}

// AttendanceReportPage lists the latest records, optionally narrowed to one class and day.
func AttendanceReportPage(c *fiber.Ctx, db *sqlx.DB) error {
	day, err := helpers.QueryDate(c, "date")
	if err != nil {
		return helpers.BadRequest("Invalid date")
	}
	filter := database.AttendanceFilter{
		ClassID: helpers.QueryInt64(c, "class_id"),
		From:    day,
		To:      day,
		Limit:   reportLimit,
	}
	records, err := database.ListAttendance(db, filter)
	if err != nil {
		return helpers.StoreError(c, err, "/admin/dashboard")
	}
	classes, err := database.ListClasses(db)
	if err != nil {
		return helpers.StoreError(c, err, "/admin/dashboard")
	}
	return helpers.Render(c, "admin/attendance", "Attendance", "attendance", fiber.Map{
		"records":  records,
		"classes":  classes,
		"classID":  filter.ClassID,
		"date":     c.Query("date"),
		"stats":    models.TallyAttendance(records),
		"statuses": models.AttendanceStatuses,
	})
}

func ExportAttendanceAPI(c *fiber.Ctx, db *sqlx.DB) error {
	from, err := helpers.QueryDate(c, "date_from")
	if err != nil {
		return helpers.BadRequest("Invalid date_from")
	}
	to, err := helpers.QueryDate(c, "date_to")
	if err != nil {
		return helpers.BadRequest("Invalid date_to")
	}
	records, err := database.ListAttendance(db, database.AttendanceFilter{
		ClassID: helpers.QueryInt64(c, "class_id"),
		From:    from,
		To:      to,
	})
	if err != nil {
		return helpers.StoreError(c, err, "/admin/attendance")
	}
	return reports.SendCSV(c, "attendance.csv", reports.AttendanceTable(records))
}

func StudentAttendancePage(c *fiber.Ctx, db *sqlx.DB) error {
	student, err := auth.CurrentStudent(c, db)
	if err != nil {
		return err
	}
	records, err := database.ListAttendance(db, database.AttendanceFilter{StudentID: student.ID, Limit: studentLimit})
	if err != nil {
		return helpers.StoreError(c, err, "/student/dashboard")
	}
	stats := models.TallyAttendance(records)
	return helpers.Render(c, "student/attendance", "My Attendance", "attendance", fiber.Map{
		"student": student,
		"records": records,
		"stats":   stats,
	})
}

func sheetDate(raw string) (time.Time, error) {
	if raw == "" {
		return helpers.Today(), nil
	}
	return helpers.ParseDate(raw)
}
