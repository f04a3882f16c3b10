package classes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/models"
	"campusdesk/app/routes/auth"
)

const listPath = "/admin/classes"

func SetupClassesRoutes(app *fiber.App, db *sqlx.DB) {
	classes := app.Group("/admin/classes", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleAdmin))

	classes.Get("/", func(c *fiber.Ctx) error { return ClassesPage(c, db) })
	classes.Get("/add", func(c *fiber.Ctx) error { return renderForm(c, db, &models.Class{}, nil) })
	classes.Get("/export", func(c *fiber.Ctx) error { return ExportClassesAPI(c, db) })
	classes.Get("/:id/edit", func(c *fiber.Ctx) error { return EditClassPage(c, db) })

	classes.Post("/add", func(c *fiber.Ctx) error { return CreateClassAPI(c, db) })
	classes.Post("/:id/edit", func(c *fiber.Ctx) error { return UpdateClassAPI(c, db) })
	classes.Post("/:id/delete", func(c *fiber.Ctx) error { return DeleteClassAPI(c, db) })
}

func ClassesPage(c *fiber.Ctx, db *sqlx.DB) error {
	list, err := database.ListClasses(db)
	if err != nil {
		return helpers.StoreError(c, err, "/admin/dashboard")
	}
	return helpers.Render(c, "admin/classes", "Classes", "classes", fiber.Map{"classes": list})
}

func EditClassPage(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	class, err := database.GetClassByID(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return renderForm(c, db, class, nil)
}

func renderForm(c *fiber.Ctx, db *sqlx.DB, class *models.Class, problem error) error {
	departments, err := database.ListDepartments(db)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	teachers, err := database.ListTeachers(db, 0)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	data := fiber.Map{
		"class":       class,
		"departments": departments,
		"teachers":    teachers,
		"editing":     class.ID > 0,
	}
	title := "Add Class"
	if class.ID > 0 {
		title = "Edit Class"
	}
	if problem != nil {
		return helpers.RenderInvalid(c, "admin/class_form", title, "classes", problem, data)
	}
	return helpers.Render(c, "admin/class_form", title, "classes", data)
}
