package exams

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/models"
	"campusdesk/app/routes/auth"
)

const listPath = "/admin/exams"

// SetupExamRoutes registers exam management plus marks entry and the student marks view.
func SetupExamRoutes(app *fiber.App, db *sqlx.DB) {
	exams := app.Group("/admin/exams", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleAdmin))
	exams.Get("/", func(c *fiber.Ctx) error { return ExamsPage(c, db) })
	exams.Get("/add", func(c *fiber.Ctx) error { return renderForm(c, &models.Exam{Date: helpers.Today()}, nil) })
	exams.Get("/:id/edit", func(c *fiber.Ctx) error { return EditExamPage(c, db) })
	exams.Post("/add", func(c *fiber.Ctx) error { return CreateExamAPI(c, db) })
	exams.Post("/:id/edit", func(c *fiber.Ctx) error { return UpdateExamAPI(c, db) })
	exams.Post("/:id/delete", func(c *fiber.Ctx) error { return DeleteExamAPI(c, db) })

	adminMarks := app.Group("/admin/marks", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleAdmin))
	adminMarks.Get("/entry", func(c *fiber.Ctx) error { return MarksEntryPage(c, db, "/admin/marks/entry") })
	adminMarks.Post("/entry", func(c *fiber.Ctx) error { return SaveMarksAPI(c, db, "/admin/marks/entry") })

	teacherMarks := app.Group("/teacher/marks", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleTeacher))
	teacherMarks.Get("/entry", func(c *fiber.Ctx) error { return MarksEntryPage(c, db, "/teacher/marks/entry") })
	teacherMarks.Post("/entry", func(c *fiber.Ctx) error { return SaveMarksAPI(c, db, "/teacher/marks/entry") })

	studentMarks := app.Group("/student/marks", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleStudent))
	studentMarks.Get("/", func(c *fiber.Ctx) error { return StudentMarksPage(c, db) })
}

func ExamsPage(c *fiber.Ctx, db *sqlx.DB) error {
	list, err := database.ListExams(db)
	if err != nil {
		return helpers.StoreError(c, err, "/admin/dashboard")
	}
	return helpers.Render(c, "admin/exams", "Exams", "exams", fiber.Map{"exams": list})
}

func EditExamPage(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	exam, err := database.GetExamByID(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return renderForm(c, exam, nil)
}

func renderForm(c *fiber.Ctx, exam *models.Exam, problem error) error {
	data := fiber.Map{"exam": exam, "editing": exam.ID > 0}
	title := "Add Exam"
	if exam.ID > 0 {
		title = "Edit Exam"
	}
	if problem != nil {
		return helpers.RenderInvalid(c, "admin/exam_form", title, "exams", problem, data)
	}
	return helpers.Render(c, "admin/exam_form", title, "exams", data)
}

func StudentMarksPage(c *fiber.Ctx, db *sqlx.DB) error {
	student, err := auth.CurrentStudent(c, db)
	if err != nil {
		return err
	}
	marks, err := database.StudentMarks(db, student.ID)
	if err != nil {
		return helpers.StoreError(c, err, "/student/dashboard")
	}
	exams, err := database.ExamsByID(db)
	if err != nil {
		return helpers.StoreError(c, err, "/student/dashboard")
	}
	return helpers.Render(c, "student/marks", "My Marks", "marks", fiber.Map{
		"student": student,
		"results": models.GroupMarksByExam(exams, marks),
	})
}
