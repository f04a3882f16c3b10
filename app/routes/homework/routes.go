package homework

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/models"
	"campusdesk/app/reports"
	"campusdesk/app/routes/auth"
)

const (
	adminPath    = "/admin/homework"
	teacherPath  = "/teacher/homework"
	studentLimit = 50
)

func SetupHomeworkRoutes(app *fiber.App, db *sqlx.DB) {
	admin := app.Group("/admin/homework", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleAdmin))
	admin.Get("/", func(c *fiber.Ctx) error { return AdminHomeworkPage(c, db) })
	admin.Get("/export", func(c *fiber.Ctx) error { return ExportHomeworkAPI(c, db) })
	admin.Post("/add", func(c *fiber.Ctx) error { return AdminCreateHomeworkAPI(c, db) })
	admin.Post("/:id/delete", func(c *fiber.Ctx) error { return DeleteHomeworkAPI(c, db, adminPath) })

	teacher := app.Group("/teacher/homework", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleTeacher))
	teacher.Get("/", func(c *fiber.Ctx) error { return TeacherHomeworkPage(c, db) })
	teacher.Post("/", func(c *fiber.Ctx) error { return TeacherCreateHomeworkAPI(c, db) })
	teacher.Post("/:id/delete", func(c *fiber.Ctx) error { return DeleteHomeworkAPI(c, db, teacherPath) })

	student := app.Group("/student/homework", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleStudent))
	student.Get("/", func(c *fiber.Ctx) error { return StudentHomeworkPage(c, db) })
}

func AdminHomeworkPage(c *fiber.Ctx, db *sqlx.DB) error {
	filter := database.HomeworkFilter{ClassID: helpers.QueryInt64(c, "class_id")}
	items, err := database.ListHomework(db, filter)
	if err != nil {
		return helpers.StoreError(c, err, "/admin/dashboard")
	}
	classes, err := database.ListClasses(db)
	if err != nil {
		return helpers.StoreError(c, err, "/admin/dashboard")
	}
	subjects, err := database.ListSubjects(db)
	if err != nil {
		return helpers.StoreError(c, err, "/admin/dashboard")
	}
	teachers, err := database.ListTeachers(db, 0)
	if err != nil {
		return helpers.StoreError(c, err, "/admin/dashboard")
	}
	return helpers.Render(c, "admin/homework", "Homework", "homework", fiber.Map{
		"homework": items,
		"classes":  classes,
		"subjects": subjects,
		"teachers": teachers,
		"classID":  filter.ClassID,
		"today":    helpers.Today(),
	})
}

func TeacherHomeworkPage(c *fiber.Ctx, db *sqlx.DB) error {
	teacher, err := auth.CurrentTeacher(c, db)
	if err != nil {
		return err
	}
	items, err := database.ListHomework(db, database.HomeworkFilter{TeacherID: teacher.ID})
	if err != nil {
		return helpers.StoreError(c, err, "/teacher/dashboard")
	}
	classes, err := database.TeacherClasses(db, teacher.ID)
	if err != nil {
		return helpers.StoreError(c, err, "/teacher/dashboard")
	}
	subjects, err := database.ListSubjects(db)
	if err != nil {
		return helpers.StoreError(c, err, "/teacher/dashboard")
	}
	return helpers.Render(c, "teacher/homework", "Homework", "homework", fiber.Map{
		"homework": items,
		"classes":  classes,
		"subjects": subjects,
		"today":    helpers.Today(),
	})
}

func StudentHomeworkPage(c *fiber.Ctx, db *sqlx.DB) error {
	student, err := auth.CurrentStudent(c, db)
	if err != nil {
		return err
	}
	items := []models.Homework{}
	if student.ClassID.Valid {
		items, err = database.ListHomework(db, database.HomeworkFilter{ClassID: student.ClassID.Int64, Limit: studentLimit})
		if err != nil {
			return helpers.StoreError(c, err, "/student/dashboard")
		}
	}
	return helpers.Render(c, "student/homework", "My Homework", "homework", fiber.Map{
		"student":  student,
		"homework": items,
		"today":    helpers.Today(),
	})
}

func ExportHomeworkAPI(c *fiber.Ctx, db *sqlx.DB) error {
	items, err := database.ListHomework(db, database.HomeworkFilter{ClassID: helpers.QueryInt64(c, "class_id")})
	if err != nil {
		return helpers.StoreError(c, err, adminPath)
	}
	return reports.SendCSV(c, "homework.csv", reports.HomeworkTable(items))
}
