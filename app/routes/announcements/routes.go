package announcements

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/models"
	"campusdesk/app/routes/auth"
)

const listPath = "/admin/announcements"

func SetupAnnouncementRoutes(app *fiber.App, db *sqlx.DB) {
	group := app.Group("/admin/announcements", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleAdmin))
	group.Get("/", func(c *fiber.Ctx) error { return AnnouncementsPage(c, db) })
	group.Get("/add", func(c *fiber.Ctx) error {
		return renderForm(c, &models.Announcement{Priority: models.PriorityNormal, TargetRole: models.AudienceAll, IsActive: true}, nil)
	})
	group.Get("/:id/edit", func(c *fiber.Ctx) error { return EditAnnouncementPage(c, db) })
	group.Post("/add", func(c *fiber.Ctx) error { return CreateAnnouncementAPI(c, db) })
	group.Post("/:id/edit", func(c *fiber.Ctx) error { return UpdateAnnouncementAPI(c, db) })
	group.Post("/:id/delete", func(c *fiber.Ctx) error { return DeleteAnnouncementAPI(c, db) })
}

func AnnouncementsPage(c *fiber.Ctx, db *sqlx.DB) error {
	list, err := database.ListAnnouncements(db)
	if err != nil {
		return helpers.StoreError(c, err, "/admin/dashboard")
	}
	return helpers.Render(c, "admin/announcements", "Announcements", "announcements", fiber.Map{
		"announcements": list,
		"now":           helpers.Now(),
	})
}

func EditAnnouncementPage(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	a, err := database.GetAnnouncementByID(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return renderForm(c, a, nil)
}

func renderForm(c *fiber.Ctx, a *models.Announcement, problem error) error {
	data := fiber.Map{
		"announcement": a,
		"priorities":   models.Priorities,
		"audiences":    models.Audiences,
		"editing":      a.ID > 0,
	}
	title := "New Announcement"
	if a.ID > 0 {
		title = "Edit Announcement"
	}
	if problem != nil {
		return helpers.RenderInvalid(c, "admin/announcement_form", title, "announcements", problem, data)
	}
	return helpers.Render(c, "admin/announcement_form", title, "announcements", data)
}

func bindAnnouncement(c *fiber.Ctx, a *models.Announcement) error {
	a.Title = helpers.FormString(c, "title")
	a.Content = helpers.FormString(c, "content")
	a.IsActive = c.FormValue("is_active") != ""

	a.Priority = models.Priority(helpers.FormString(c, "priority"))
	if a.Priority == "" {
		a.Priority = models.PriorityNormal
	}
	if !a.Priority.Valid() {
		return helpers.BadRequest("Unknown priority")
	}
	a.TargetRole = models.Audience(helpers.FormString(c, "target_role"))
	if a.TargetRole == "" {
		a.TargetRole = models.AudienceAll
	}
	if !a.TargetRole.Valid() {
		return helpers.BadRequest("Unknown audience")
	}

	a.ExpiresAt = null.Time{}
	if v := helpers.FormString(c, "expires_at"); v != "" {
		t, _, err := helpers.ParseDateOrDateTime(v)
		if err != nil {
			return err
		}
		a.ExpiresAt = null.TimeFrom(t)
	}
	return helpers.Validate(a)
}

func CreateAnnouncementAPI(c *fiber.Ctx, db *sqlx.DB) error {
	a := &models.Announcement{CreatedBy: null.Int64From(auth.CurrentUser(c).ID)}
	if err := bindAnnouncement(c, a); err != nil {
		return renderForm(c, a, err)
	}
	if err := database.CreateAnnouncement(db, a); err != nil {
		return helpers.StoreError(c, err, listPath+"/add")
	}
	return helpers.FlashRedirect(c, "success", "Announcement published.", listPath)
}

func UpdateAnnouncementAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	a, err := database.GetAnnouncementByID(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	if err := bindAnnouncement(c, a); err != nil {
		return renderForm(c, a, err)
	}
	if err := database.UpdateAnnouncement(db, a); err != nil {
		return helpers.StoreError(c, err, fmt.Sprintf("%s/%d/edit", listPath, id))
	}
	return helpers.FlashRedirect(c, "success", "Announcement updated.", listPath)
}

func DeleteAnnouncementAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := database.DeleteAnnouncement(db, id); err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return helpers.FlashRedirect(c, "success", "Announcement deleted.", listPath)
}
