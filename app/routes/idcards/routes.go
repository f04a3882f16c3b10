package idcards

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"campusdesk/app/config"
	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/logger"
	"campusdesk/app/models"
	"campusdesk/app/reports"
	"campusdesk/app/routes/auth"
	"campusdesk/app/uploads"
)

const listPath = "/admin/idcards"

func SetupIDCardRoutes(app *fiber.App, db *sqlx.DB) {
	cards := app.Group("/admin/idcards", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleAdmin))
	cards.Get("/", func(c *fiber.Ctx) error { return IDCardsPage(c, db) })
	cards.Post("/issue", func(c *fiber.Ctx) error { return IssueIDCardAPI(c, db) })
	cards.Post("/:id/deactivate", func(c *fiber.Ctx) error { return DeactivateIDCardAPI(c, db) })
	cards.Get("/:id/pdf", func(c *fiber.Ctx) error { return IDCardPDFAPI(c, db) })
}

func IDCardsPage(c *fiber.Ctx, db *sqlx.DB) error {
	cards, err := database.ListIDCards(db)
	if err != nil {
		return helpers.StoreError(c, err, "/admin/dashboard")
	}
	students, err := database.ListStudents(db, database.StudentFilter{})
	if err != nil {
		return helpers.StoreError(c, err, "/admin/dashboard")
	}
	return helpers.Render(c, "admin/idcards", "ID Cards", "idcards", fiber.Map{
		"cards":    cards,
		"students": students,
		"now":      helpers.Now(),
	})
}

// IssueIDCardAPI replaces any active card the student holds with a new one.
func IssueIDCardAPI(c *fiber.Ctx, db *sqlx.DB) error {
	studentID, err := helpers.FormInt64(c, "student_id")
	if err != nil || studentID == 0 {
		return helpers.FlashRedirect(c, "danger", "Choose a student.", listPath)
	}
	card, err := database.IssueIDCard(db, studentID, helpers.Today())
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	logger.L().Info("id card issued", zap.Int64("student_id", studentID), zap.String("card", card.CardNumber))
	return helpers.FlashRedirect(c, "success", "Issued card "+card.CardNumber+".", listPath)
}

func DeactivateIDCardAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := database.DeactivateIDCard(db, id); err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return helpers.FlashRedirect(c, "success", "Card deactivated.", listPath)
}

func IDCardPDFAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	card, err := database.GetIDCardByID(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	photo := ""
	if card.PhotoFile != "" && card.PhotoFile != models.DefaultPhoto {
		photo = uploads.PhotoPath(config.Current().UploadDir, card.PhotoFile)
	}
	doc, err := reports.IDCard(card, photo)
	if err != nil {
		return err
	}
	return reports.SendPDF(c, fmt.Sprintf("%s.pdf", card.CardNumber), doc, true)
}
