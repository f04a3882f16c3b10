// Package routetest wires a Fiber app over sqlmock for handler tests.
package routetest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"campusdesk/app/models"
	"campusdesk/app/routes/auth"
)

const Secret = "routetest-secret"

var UserColumns = []string{"id", "username", "email", "password_hash", "role", "is_approved", "created_at"}

// New returns an app whose error handler answers with the bare status code and message,
// plus the mock backing db.
func New(t *testing.T) (*fiber.App, *sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	auth.Configure(Secret, false)

	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })

	app := fiber.New(fiber.Config{
		Views:        Views{},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return c.Status(code).SendString(err.Error())
		},
	})
	return app, sqlx.NewDb(raw, "postgres"), mock
}

// Admin, Teacher and Student build approved accounts for signing in.
func Admin() *models.User   { return user(1, "admin", models.RoleAdmin) }
func Teacher() *models.User { return user(2, "teacher", models.RoleTeacher) }
func Student() *models.User { return user(3, "student", models.RoleStudent) }

func user(id int64, name string, role models.Role) *models.User {
	return &models.User{ID: id, Username: name, Email: name + "@school.test", Role: role, IsApproved: true}
}

// ExpectUser queues the lookup AuthMiddleware performs for u.
func ExpectUser(mock sqlmock.Sqlmock, u *models.User) {
	mock.ExpectQuery(`FROM users u WHERE u.id = \$1`).WithArgs(u.ID).
		WillReturnRows(sqlmock.NewRows(UserColumns).
			AddRow(u.ID, u.Username, u.Email, "x", string(u.Role), u.IsApproved, time.Now()))
}

// Cookie signs u in and queues the AuthMiddleware lookup for the next request.
func Cookie(t *testing.T, mock sqlmock.Sqlmock, u *models.User) *http.Cookie {
	t.Helper()
	token, err := auth.GenerateJWT(u)
	require.NoError(t, err)
	ExpectUser(mock, u)
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

func Get(path string, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func PostForm(path string, values url.Values, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

// Do runs the request and returns the response with its body read.
func Do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(body)
}

// Views records the template name instead of rendering it, so handler tests need no
// template files. The body of a rendered page is "render <name>".
type Views struct{}

func (Views) Load() error { return nil }

func (Views) Render(w io.Writer, name string, _ interface{}, _ ...string) error {
	_, err := io.WriteString(w, "render "+name)
	return err
}
