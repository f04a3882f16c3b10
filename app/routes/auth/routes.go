package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/jmoiron/sqlx"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/models"
)

func SetupAuthRoutes(app *fiber.App, db *sqlx.DB) {
	auth := app.Group("/auth")

	throttle := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return helpers.FlashRedirect(c, "danger", "Too many attempts. Please wait a minute and try again.", c.Path())
		},
	})

	// Public routes
	auth.Get("/login", func(c *fiber.Ctx) error { return ShowLoginPage(c, db) })
	auth.Post("/login", throttle, func(c *fiber.Ctx) error { return LoginAPI(c, db) })
	auth.Get("/register", ShowRegisterPage)
	auth.Post("/register", throttle, func(c *fiber.Ctx) error { return RegisterAPI(c, db) })
	auth.Get("/logout", LogoutAPI)
	auth.Post("/logout", LogoutAPI)

	// Protected routes
	protected := auth.Group("", AuthMiddleware(db))
	protected.Get("/change-password", ShowChangePasswordPage)
	protected.Post("/change-password", func(c *fiber.Ctx) error { return ChangePasswordAPI(c, db) })
}

func ShowLoginPage(c *fiber.Ctx, db *sqlx.DB) error {
	// Already signed in with a live, approved account
	if user := userFromCookie(c, db); user != nil {
		return c.Redirect(user.HomePath())
	}
	return helpers.Render(c, "auth/login", "Login", "login", nil)
}

func ShowRegisterPage(c *fiber.Ctx) error {
	return helpers.Render(c, "auth/register", "Register", "register", fiber.Map{
		"Roles": []models.Role{models.RoleStudent, models.RoleTeacher},
	})
}

func ShowChangePasswordPage(c *fiber.Ctx) error {
	return helpers.Render(c, "auth/change_password", "Change Password", "profile", nil)
}

func userFromCookie(c *fiber.Ctx, db *sqlx.DB) *models.User {
	tokenString := c.Cookies(CookieName)
	if tokenString == "" {
		return nil
	}
	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return nil
	}
	user, err := database.GetUserByID(db, claims.UserID)
	if err != nil || !user.IsApproved {
		return nil
	}
	return user
}

// AuthMiddleware validates the JWT cookie and reloads the account on every request,
// so an account that is suspended or deleted loses access immediately.
func AuthMiddleware(db *sqlx.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(CookieName)
		if tokenString == "" {
			return c.Redirect("/auth/login")
		}

		claims, err := ValidateJWT(tokenString)
		if err != nil {
			clearAuthCookie(c)
			return c.Redirect("/auth/login")
		}

		user, err := database.GetUserByID(db, claims.UserID)
		if err != nil && !errors.Is(err, database.ErrNotFound) {
			return helpers.StoreError(c, err, "/auth/login")
		}
		if user == nil || !user.IsApproved {
			clearAuthCookie(c)
			return helpers.FlashRedirect(c, "warning", "Your account is pending approval or has been suspended.", "/auth/login")
		}

		c.Locals("user_id", user.ID)
		c.Locals("user_role", user.Role)
		c.Locals("user", user)

		return c.Next()
	}
}

// RoleMiddleware checks if user has one of the allowed roles
func RoleMiddleware(allowedRoles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user != nil {
			for _, role := range allowedRoles {
				if user.Role == role {
					return c.Next()
				}
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "You don't have permission to access this resource.")
	}
}

// CurrentUser is the account loaded by AuthMiddleware, or nil on public routes.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}
