package fees

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/models"
	"campusdesk/app/routes/auth"
)

const listPath = "/admin/fees"

func SetupFeesRoutes(app *fiber.App, db *sqlx.DB) {
	admin := app.Group("/admin/fees", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleAdmin))
	admin.Get("/", func(c *fiber.Ctx) error { return FeesPage(c, db) })
	admin.Get("/export", func(c *fiber.Ctx) error { return ExportFeesAPI(c, db) })
	admin.Get("/add", func(c *fiber.Ctx) error { return renderForm(c, db, &models.Fee{DueDate: helpers.Today()}, nil) })
	admin.Get("/:id/edit", func(c *fiber.Ctx) error { return EditFeePage(c, db) })
	admin.Get("/:id/receipt", func(c *fiber.Ctx) error { return ReceiptAPI(c, db) })
	admin.Post("/add", func(c *fiber.Ctx) error { return CreateFeeAPI(c, db) })
	admin.Post("/:id/edit", func(c *fiber.Ctx) error { return UpdateFeeAPI(c, db) })
	admin.Post("/:id/delete", func(c *fiber.Ctx) error { return DeleteFeeAPI(c, db) })
	admin.Post("/:id/paid", func(c *fiber.Ctx) error { return MarkPaidAPI(c, db) })

	student := app.Group("/student/fees", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleStudent))
	student.Get("/", func(c *fiber.Ctx) error { return StudentFeesPage(c, db) })
	student.Post("/:id/pay", func(c *fiber.Ctx) error { return PayOwnFeeAPI(c, db) })
	student.Get("/:id/receipt", func(c *fiber.Ctx) error { return ReceiptAPI(c, db) })
}

func FeesPage(c *fiber.Ctx, db *sqlx.DB) error {
	status := models.FeeStatus(c.Query("status"))
	if !status.Valid() {
		status = ""
	}
	list, err := database.ListFees(db, status)
	if err != nil {
		return helpers.StoreError(c, err, "/admin/dashboard")
	}
	return helpers.Render(c, "admin/fees", "Fees", "fees", fiber.Map{
		"fees":     list,
		"status":   status,
		"statuses": models.FeeStatuses,
	})
}

func EditFeePage(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	fee, err := database.GetFeeByID(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return renderForm(c, db, fee, nil)
}

func renderForm(c *fiber.Ctx, db *sqlx.DB, fee *models.Fee, problem error) error {
	students, err := database.ListStudents(db, database.StudentFilter{})
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	data := fiber.Map{
		"fee":      fee,
		"students": students,
		"statuses": models.FeeStatuses,
		"editing":  fee.ID > 0,
	}
	title := "Add Fee"
	if fee.ID > 0 {
		title = "Edit Fee"
	}
	if problem != nil {
		return helpers.RenderInvalid(c, "admin/fee_form", title, "fees", problem, data)
	}
	return helpers.Render(c, "admin/fee_form", title, "fees", data)
}

func StudentFeesPage(c *fiber.Ctx, db *sqlx.DB) error {
	student, err := auth.CurrentStudent(c, db)
	if err != nil {
		return err
	}
	list, err := database.StudentFees(db, student.ID)
	if err != nil {
		return helpers.StoreError(c, err, "/student/dashboard")
	}
	return helpers.Render(c, "student/fees", "My Fees", "fees", fiber.Map{
		"student": student,
		"fees":    list,
		"summary": models.SummarizeFees(list),
	})
}
