package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"campusdesk/app/models"
	"campusdesk/app/routes/auth"
)

func SetupDashboardRoutes(app *fiber.App, db *sqlx.DB) {
	admin := app.Group("/admin/dashboard", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleAdmin))
	admin.Get("/", func(c *fiber.Ctx) error { return AdminDashboard(c, db) })

	analytics := app.Group("/admin/analytics", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleAdmin))
	analytics.Get("/attendance", func(c *fiber.Ctx) error { return AttendanceAnalytics(c, db) })
	analytics.Get("/performance", func(c *fiber.Ctx) error { return PerformanceAnalytics(c, db) })
	analytics.Get("/departments", func(c *fiber.Ctx) error { return DepartmentAnalytics(c, db) })

	teacher := app.Group("/teacher/dashboard", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleTeacher))
	teacher.Get("/", func(c *fiber.Ctx) error { return TeacherDashboard(c, db) })

	student := app.Group("/student/dashboard", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleStudent))
	student.Get("/", func(c *fiber.Ctx) error { return StudentDashboard(c, db) })
}
