package subjects

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/models"
	"campusdesk/app/routes/auth"
)

const listPath = "/admin/subjects"

func SetupSubjectsRoutes(app *fiber.App, db *sqlx.DB) {
	subjects := app.Group("/admin/subjects", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleAdmin))

	subjects.Get("/", func(c *fiber.Ctx) error { return SubjectsPage(c, db) })
	subjects.Get("/add", func(c *fiber.Ctx) error { return renderForm(c, db, &models.Subject{}, nil) })
	subjects.Get("/export", func(c *fiber.Ctx) error { return ExportSubjectsAPI(c, db) })
	subjects.Get("/:id/edit", func(c *fiber.Ctx) error { return EditSubjectPage(c, db) })

	subjects.Post("/add", func(c *fiber.Ctx) error { return CreateSubjectAPI(c, db) })
	subjects.Post("/:id/edit", func(c *fiber.Ctx) error { return UpdateSubjectAPI(c, db) })
	subjects.Post("/:id/delete", func(c *fiber.Ctx) error { return DeleteSubjectAPI(c, db) })
}

func SubjectsPage(c *fiber.Ctx, db *sqlx.DB) error {
	list, err := database.ListSubjects(db)
	if err != nil {
		return helpers.StoreError(c, err, "/admin/dashboard")
	}
	return helpers.Render(c, "admin/subjects", "Subjects", "subjects", fiber.Map{"subjects": list})
}

func EditSubjectPage(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	subject, err := database.GetSubjectByID(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return renderForm(c, db, subject, nil)
}

func renderForm(c *fiber.Ctx, db *sqlx.DB, subject *models.Subject, problem error) error {
	departments, err := database.ListDepartments(db)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	data := fiber.Map{"subject": subject, "departments": departments, "editing": subject.ID > 0}
	title := "Add Subject"
	if subject.ID > 0 {
		title = "Edit Subject"
	}
	if problem != nil {
		return helpers.RenderInvalid(c, "admin/subject_form", title, "subjects", problem, data)
	}
	return helpers.Render(c, "admin/subject_form", title, "subjects", data)
}
