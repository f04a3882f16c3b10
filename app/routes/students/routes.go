package students

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/models"
	"campusdesk/app/routes/auth"
)

const listPath = "/admin/students"

func SetupStudentsRoutes(app *fiber.App, db *sqlx.DB) {
	students := app.Group("/admin/students", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleAdmin))

	// Pages
	students.Get("/", func(c *fiber.Ctx) error { return StudentsPage(c, db) })
	students.Get("/add", func(c *fiber.Ctx) error { return AddStudentPage(c, db) })
	students.Get("/export", func(c *fiber.Ctx) error { return ExportStudentsAPI(c, db) })
	students.Get("/:id/edit", func(c *fiber.Ctx) error { return EditStudentPage(c, db) })

	// Form posts
	students.Post("/add", func(c *fiber.Ctx) error { return CreateStudentAPI(c, db) })
	students.Post("/:id/edit", func(c *fiber.Ctx) error { return UpdateStudentAPI(c, db) })
	students.Post("/:id/delete", func(c *fiber.Ctx) error { return DeleteStudentAPI(c, db) })

	reports := app.Group("/admin/reportcard", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleAdmin))
	reports.Get("/:student_id", func(c *fiber.Ctx) error { return ReportCardAPI(c, db) })
}

func StudentsPage(c *fiber.Ctx, db *sqlx.DB) error {
	filter := database.StudentFilter{
		ClassID:      helpers.QueryInt64(c, "class_id"),
		DepartmentID: helpers.QueryInt64(c, "department_id"),
	}
	list, err := database.ListStudents(db, filter)
	if err != nil {
		return helpers.StoreError(c, err, "/admin/dashboard")
	}
	data, err := formOptions(db)
	if err != nil {
		return helpers.StoreError(c, err, "/admin/dashboard")
	}
	data["students"] = list
	data["filter"] = filter
	return helpers.Render(c, "admin/students", "Students", "students", data)
}

func AddStudentPage(c *fiber.Ctx, db *sqlx.DB) error {
	return renderForm(c, db, &models.Student{AdmissionDate: helpers.Today()}, nil)
}

func EditStudentPage(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	student, err := database.GetStudentByID(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return renderForm(c, db, student, nil)
}

// renderForm shows the add/edit form; a non-nil problem re-renders it with a 400.
func renderForm(c *fiber.Ctx, db *sqlx.DB, student *models.Student, problem error) error {
	data, err := formOptions(db)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	data["student"] = student
	data["editing"] = student.ID > 0
	data["account"] = fiber.Map{"username": c.FormValue("username"), "email": c.FormValue("email")}

	title := "Add Student"
	if student.ID > 0 {
		title = "Edit Student"
	}
	if problem != nil {
		return helpers.RenderInvalid(c, "admin/student_form", title, "students", problem, data)
	}
	return helpers.Render(c, "admin/student_form", title, "students", data)
}

func formOptions(db *sqlx.DB) (fiber.Map, error) {
	classes, err := database.ListClasses(db)
	if err != nil {
		return nil, err
	}
	departments, err := database.ListDepartments(db)
	if err != nil {
		return nil, err
	}
	return fiber.Map{
		"classes":     classes,
		"departments": departments,
		"genders":     models.Genders,
	}, nil
}
