package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"campusdesk/app/routes/routetest"
)

func errorApp() *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        routetest.Views{},
		ErrorHandler: customErrorHandler,
	})
	app.Get("/forbidden", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusForbidden, "You do not teach this class.")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return assert.AnError
	})
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})
	return app
}

func TestErrorHandlerRendersPages(t *testing.T) {
	app := errorApp()

	resp, body := routetest.Do(t, app, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "render errors/404", body)

	resp, body = routetest.Do(t, app, httptest.NewRequest(http.MethodGet, "/forbidden", nil))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "render errors/error", body)

	resp, body = routetest.Do(t, app, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "render errors/error", body)
}

func TestErrorHandlerAnswersJSONClients(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/forbidden", nil)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)

	resp, body := routetest.Do(t, errorApp(), req)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.JSONEq(t, `{"success":false,"error":"You do not teach this class.","code":403}`, body)
}
