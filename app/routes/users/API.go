package users

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/logger"
	"campusdesk/app/routes/auth"
)

const usersPath = "/admin/users"

func ApproveUserAPI(c *fiber.Ctx, db *sqlx.DB) error {
	return setApproval(c, db, true)
}

func SuspendUserAPI(c *fiber.Ctx, db *sqlx.DB) error {
	return setApproval(c, db, false)
}

func setApproval(c *fiber.Ctx, db *sqlx.DB, approved bool) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	admin := auth.CurrentUser(c)
	if !approved && admin.ID == id {
		return helpers.FlashRedirect(c, "warning", "You cannot suspend your own account.", usersPath)
	}

	target, err := database.GetUserByID(db, id)
	if err != nil {
		return helpers.StoreError(c, err, usersPath)
	}
	if err := database.SetUserApproval(db, id, approved); err != nil {
		return helpers.StoreError(c, err, usersPath)
	}

	action, msg := "approved", "User "+target.Username+" approved."
	if !approved {
		action, msg = "suspended", "User "+target.Username+" suspended."
	}
	logger.L().Info("user "+action,
		zap.Int64("user_id", id),
		zap.String("username", target.Username),
		zap.Int64("by", admin.ID),
	)
	return helpers.FlashRedirect(c, "success", msg, usersPath)
}
