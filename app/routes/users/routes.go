package users

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/models"
	"campusdesk/app/routes/auth"
)

func SetupUsersRoutes(app *fiber.App, db *sqlx.DB) {
	users := app.Group("/admin/users", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleAdmin))
	users.Get("/", func(c *fiber.Ctx) error { return UsersPage(c, db) })
	users.Post("/:id/approve", func(c *fiber.Ctx) error { return ApproveUserAPI(c, db) })
	users.Post("/:id/suspend", func(c *fiber.Ctx) error { return SuspendUserAPI(c, db) })

	app.Get("/admin/permissions", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleAdmin), PermissionsPage)
}

func UsersPage(c *fiber.Ctx, db *sqlx.DB) error {
	filter := database.UserFilter{
		Role:     c.Query("role"),
		Approval: c.Query("status"),
	}
	if filter.Role != "" && !models.Role(filter.Role).Valid() {
		return helpers.BadRequest("Unknown role " + filter.Role)
	}

	list, err := database.ListUsers(db, filter)
	if err != nil {
		return helpers.StoreError(c, err, "/admin/dashboard")
	}

	pending := 0
	for _, u := range list {
		if !u.IsApproved {
			pending++
		}
	}

	return helpers.Render(c, "admin/users", "Users", "users", fiber.Map{
		"users":   list,
		"pending": pending,
		"filter":  filter,
		"roles":   []models.Role{models.RoleAdmin, models.RoleTeacher, models.RoleStudent},
	})
}

func PermissionsPage(c *fiber.Ctx) error {
	return helpers.Render(c, "admin/permissions", "Permissions", "permissions", fiber.Map{
		"permissions": models.Permissions,
		"roles":       []models.Role{models.RoleAdmin, models.RoleTeacher, models.RoleStudent},
	})
}
