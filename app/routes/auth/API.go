package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/logger"
	"campusdesk/app/models"
)

const minPasswordLength = 6

func LoginAPI(c *fiber.Ctx, db *sqlx.DB) error {
	loginID := helpers.FormString(c, "login_id")
	password := c.FormValue("password")
	if loginID == "" || password == "" {
		return helpers.FlashRedirect(c, "danger", "Please enter your username or email and password.", "/auth/login")
	}

	user, err := database.GetUserByLogin(db, loginID)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return helpers.StoreError(c, err, "/auth/login")
	}
	if user == nil || !CheckPasswordHash(password, user.PasswordHash) {
		logger.L().Info("login failed", zap.String("login_id", loginID), zap.String("ip", c.IP()))
		return helpers.FlashRedirect(c, "danger", "Login Unsuccessful. Please check email and password", "/auth/login")
	}
	if !user.IsApproved {
		logger.L().Info("login refused, account not approved", zap.Int64("user_id", user.ID))
		return helpers.FlashRedirect(c, "warning", "Account pending approval. Please wait for an administrator to verify your details.", "/auth/login")
	}

	token, err := GenerateJWT(user)
	if err != nil {
		return err
	}
	setAuthCookie(c, token)

	logger.L().Info("login", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	return c.Redirect(user.HomePath())
}

type registerForm struct {
	Username string `validate:"required,min=3,max=64"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func RegisterAPI(c *fiber.Ctx, db *sqlx.DB) error {
	form := registerForm{
		Username: helpers.FormString(c, "username"),
		Email:    helpers.FormString(c, "email"),
		Password: c.FormValue("password"),
	}
	role := models.Role(c.FormValue("role"))

	if err := helpers.Validate(form); err != nil {
		return helpers.FlashRedirect(c, "danger", err.Error(), "/auth/register")
	}
	if !role.SelfRegistrable() {
		return helpers.FlashRedirect(c, "danger", "Please choose student or teacher.", "/auth/register")
	}
	if form.Password != c.FormValue("confirm_password") {
		return helpers.FlashRedirect(c, "danger", "Passwords do not match.", "/auth/register")
	}

	usernameTaken, emailTaken, err := database.UserConflicts(db, form.Username, form.Email)
	if err != nil {
		return helpers.StoreError(c, err, "/auth/register")
	}
	if emailTaken {
		return helpers.FlashRedirect(c, "danger", "Email already registered.", "/auth/register")
	}
	if usernameTaken {
		return helpers.FlashRedirect(c, "danger", "Username already taken.", "/auth/register")
	}

	hash, err := HashPassword(form.Password)
	if err != nil {
		return err
	}
	user := &models.User{
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := database.RegisterUser(db, user); err != nil {
		return helpers.StoreError(c, err, "/auth/register")
	}

	logger.L().Info("account registered", zap.Int64("user_id", user.ID), zap.String("role", string(role)))
	return helpers.FlashRedirect(c, "info", "Account created! Please wait for admin approval.", "/auth/login")
}

func LogoutAPI(c *fiber.Ctx) error {
	clearAuthCookie(c)
	return c.Redirect("/auth/login")
}

func ChangePasswordAPI(c *fiber.Ctx, db *sqlx.DB) error {
	user := CurrentUser(c)
	current := c.FormValue("current_password")
	next := c.FormValue("new_password")

	if !CheckPasswordHash(current, user.PasswordHash) {
		return helpers.FlashRedirect(c, "danger", "Current password is incorrect.", "/auth/change-password")
	}
	if len(next) < minPasswordLength {
		return helpers.FlashRedirect(c, "danger", "New password must be at least 6 characters.", "/auth/change-password")
	}
	if next != c.FormValue("confirm_password") {
		return helpers.FlashRedirect(c, "danger", "Passwords do not match.", "/auth/change-password")
	}

	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	if err := database.UpdateUserPassword(db, user.ID, hash); err != nil {
		return helpers.StoreError(c, err, "/auth/change-password")
	}

	return helpers.FlashRedirect(c, "success", "Password changed successfully.", user.HomePath())
}
