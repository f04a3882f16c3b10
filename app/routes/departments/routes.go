package departments

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/models"
	"campusdesk/app/routes/auth"
)

const listPath = "/admin/departments"

func SetupDepartmentsRoutes(app *fiber.App, db *sqlx.DB) {
	departments := app.Group("/admin/departments", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleAdmin))

	departments.Get("/", func(c *fiber.Ctx) error { return DepartmentsPage(c, db) })
	departments.Get("/add", func(c *fiber.Ctx) error { return renderForm(c, db, &models.Department{}, nil) })
	departments.Get("/:id/edit", func(c *fiber.Ctx) error { return EditDepartmentPage(c, db) })

	departments.Post("/add", func(c *fiber.Ctx) error { return CreateDepartmentAPI(c, db) })
	departments.Post("/:id/edit", func(c *fiber.Ctx) error { return UpdateDepartmentAPI(c, db) })
	departments.Post("/:id/delete", func(c *fiber.Ctx) error { return DeleteDepartmentAPI(c, db) })
}

func DepartmentsPage(c *fiber.Ctx, db *sqlx.DB) error {
	list, err := database.ListDepartments(db)
	if err != nil {
		return helpers.StoreError(c, err, "/admin/dashboard")
	}
	return helpers.Render(c, "admin/departments", "Departments", "departments", fiber.Map{"departments": list})
}

func EditDepartmentPage(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	dept, err := database.GetDepartmentByID(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return renderForm(c, db, dept, nil)
}

func renderForm(c *fiber.Ctx, db *sqlx.DB, dept *models.Department, problem error) error {
	teachers, err := database.ListTeachers(db, 0)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	data := fiber.Map{"department": dept, "teachers": teachers, "editing": dept.ID > 0}
	title := "Add Department"
	if dept.ID > 0 {
		title = "Edit Department"
	}
	if problem != nil {
		return helpers.RenderInvalid(c, "admin/department_form", title, "departments", problem, data)
	}
	return helpers.Render(c, "admin/department_form", title, "departments", data)
}
