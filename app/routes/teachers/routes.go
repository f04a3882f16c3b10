package teachers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/models"
	"campusdesk/app/routes/auth"
)

const listPath = "/admin/teachers"

func SetupTeachersRoutes(app *fiber.App, db *sqlx.DB) {
	teachers := app.Group("/admin/teachers", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleAdmin))

	teachers.Get("/", func(c *fiber.Ctx) error { return TeachersPage(c, db) })
	teachers.Get("/add", func(c *fiber.Ctx) error { return renderForm(c, db, &models.Teacher{JoiningDate: helpers.Today()}, nil) })
	teachers.Get("/export", func(c *fiber.Ctx) error { return ExportTeachersAPI(c, db) })
	teachers.Get("/:id/edit", func(c *fiber.Ctx) error { return EditTeacherPage(c, db) })

	teachers.Post("/add", func(c *fiber.Ctx) error { return CreateTeacherAPI(c, db) })
	teachers.Post("/:id/edit", func(c *fiber.Ctx) error { return UpdateTeacherAPI(c, db) })
	teachers.Post("/:id/delete", func(c *fiber.Ctx) error { return DeleteTeacherAPI(c, db) })
}

func TeachersPage(c *fiber.Ctx, db *sqlx.DB) error {
	deptID := helpers.QueryInt64(c, "department_id")
	list, err := database.ListTeachers(db, deptID)
	if err != nil {
		return helpers.StoreError(c, err, "/admin/dashboard")
	}
	departments, err := database.ListDepartments(db)
	if err != nil {
		return helpers.StoreError(c, err, "/admin/dashboard")
	}
	return helpers.Render(c, "admin/teachers", "Teachers", "teachers", fiber.Map{
		"teachers":     list,
		"departments":  departments,
		"departmentID": deptID,
	})
}

func EditTeacherPage(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	teacher, err := database.GetTeacherByID(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return renderForm(c, db, teacher, nil)
}

func renderForm(c *fiber.Ctx, db *sqlx.DB, teacher *models.Teacher, problem error) error {
	departments, err := database.ListDepartments(db)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	data := fiber.Map{
		"teacher":     teacher,
		"departments": departments,
		"editing":     teacher.ID > 0,
		"account":     fiber.Map{"username": c.FormValue("username"), "email": c.FormValue("email")},
	}
	title := "Add Teacher"
	if teacher.ID > 0 {
		title = "Edit Teacher"
	}
	if problem != nil {
		return helpers.RenderInvalid(c, "admin/teacher_form", title, "teachers", problem, data)
	}
	return helpers.Render(c, "admin/teacher_form", title, "teachers", data)
}
