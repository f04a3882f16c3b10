package helpers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"

	"campusdesk/app/logger"
)

var Sessions = session.New()

// ConfigureSessions installs the session store used for flash messages.
func ConfigureSessions(secure bool) {
	Sessions = session.New(session.Config{
		Expiration:     24 * time.Hour,
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		CookieSameSite: "Lax",
	})
}

type Flash struct {
	Category string
	Message  string
}

const flashKey = "flash"

// SetFlash queues a message for the next rendered page.
func SetFlash(c *fiber.Ctx, category, message string) {
	sess, err := Sessions.Get(c)
	if err != nil {
		logger.L().Warn("flash session unavailable", zap.Error(err))
		return
	}
	queued, _ := sess.Get(flashKey).(string)
	entry := category + "|" + message
	if queued != "" {
		entry = queued + "\n" + entry
	}
	sess.Set(flashKey, entry)
	if err := sess.Save(); err != nil {
		logger.L().Warn("save flash", zap.Error(err))
	}
}

// PopFlashes returns and clears the queued messages.
func PopFlashes(c *fiber.Ctx) []Flash {
	sess, err := Sessions.Get(c)
	if err != nil {
		return nil
	}
	queued, _ := sess.Get(flashKey).(string)
	if queued == "" {
		return nil
	}
	sess.Delete(flashKey)
	if err := sess.Save(); err != nil {
		logger.L().Warn("clear flash", zap.Error(err))
	}

	var out []Flash
	for _, line := range strings.Split(queued, "\n") {
		category, message, ok := strings.Cut(line, "|")
		if !ok {
			category, message = "info", line
		}
		out = append(out, Flash{Category: category, Message: message})
	}
	return out
}

// FlashRedirect is the post/redirect/get tail of most form handlers.
func FlashRedirect(c *fiber.Ctx, category, message, to string) error {
	SetFlash(c, category, message)
	return c.Redirect(to)
}
