package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"campusdesk/app/models"
)

var userCols = []string{"id", "username", "email", "password_hash", "role", "is_approved", "created_at"}

func setup(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()
	hashCost = bcrypt.MinCost
	Configure("test-secret", false)

	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	db := sqlx.NewDb(raw, "postgres")

	app := fiber.New()
	SetupAuthRoutes(app, db)

	admin := app.Group("/admin", AuthMiddleware(db), RoleMiddleware(models.RoleAdmin))
	admin.Get("/dashboard", func(c *fiber.Ctx) error {
		return c.SendString("hello " + CurrentUser(c).Username)
	})
	return app, mock
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := HashPassword(pw)
	require.NoError(t, err)
	return h
}

func authCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	return nil
}

func TestLoginApprovedUser(t *testing.T) {
	app, mock := setup(t)
	mock.ExpectQuery(`FROM users u`).WithArgs("Admin@School.org").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(1), "admin", "admin@school.org", hashed(t, "admin123"), "admin", true, time.Now()))

	resp, err := app.Test(postForm("/auth/login", url.Values{"login_id": {"Admin@School.org"}, "password": {"admin123"}}))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/dashboard", resp.Header.Get("Location"))
	cookie := authCookie(resp)
	require.NotNil(t, cookie)
	claims, err := ValidateJWT(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginRefusesUnapprovedUser(t *testing.T) {
	app, mock := setup(t)
	mock.ExpectQuery(`FROM users u`).WithArgs("pending").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(2), "pending", "p@school.org", hashed(t, "secret1"), "student", false, time.Now()))

	resp, err := app.Test(postForm("/auth/login", url.Values{"login_id": {"pending"}, "password": {"secret1"}}))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get("Location"))
	assert.Nil(t, authCookie(resp))
}

func TestLoginWrongPassword(t *testing.T) {
	app, mock := setup(t)
	mock.ExpectQuery(`FROM users u`).WithArgs("teacher").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(3), "teacher", "t@school.org", hashed(t, "right"), "teacher", true, time.Now()))

	resp, err := app.Test(postForm("/auth/login", url.Values{"login_id": {"teacher"}, "password": {"wrong"}}))
	require.NoError(t, err)

	assert.Equal(t, "/auth/login", resp.Header.Get("Location"))
	assert.Nil(t, authCookie(resp))
}

func TestMiddlewareRedirectsWithoutCookie(t *testing.T) {
	app, _ := setup(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get("Location"))
}

func requestAs(t *testing.T, user *models.User, path string) *http.Request {
	t.Helper()
	token, err := GenerateJWT(user)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	return req
}

func TestMiddlewareRechecksApprovalEveryRequest(t *testing.T) {
	app, mock := setup(t)
	user := &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}

	// Approved at login, suspended since.
	mock.ExpectQuery(`FROM users u WHERE u.id = \$1`).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(1), "admin", "admin@school.org", "x", "admin", false, time.Now()))

	resp, err := app.Test(requestAs(t, user, "/admin/dashboard"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get("Location"))
	cleared := authCookie(resp)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}

func TestMiddlewareAllowsApprovedUser(t *testing.T) {
	app, mock := setup(t)
	user := &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}
	mock.ExpectQuery(`FROM users u WHERE u.id = \$1`).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(1), "admin", "admin@school.org", "x", "admin", true, time.Now()))

	resp, err := app.Test(requestAs(t, user, "/admin/dashboard"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRoleMiddlewareForbidsOtherRoles(t *testing.T) {
	app, mock := setup(t)
	user := &models.User{ID: 5, Username: "kid", Role: models.RoleStudent}
	mock.ExpectQuery(`FROM users u WHERE u.id = \$1`).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(5), "kid", "kid@school.org", "x", "student", true, time.Now()))

	resp, err := app.Test(requestAs(t, user, "/admin/dashboard"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRegisterRejectsMismatchedPasswords(t *testing.T) {
	app, mock := setup(t)

	resp, err := app.Test(postForm("/auth/register", url.Values{
		"username":         {"newkid"},
		"email":            {"newkid@school.org"},
		"password":         {"secret1"},
		"confirm_password": {"secret2"},
		"role":             {"student"},
	}))
	require.NoError(t, err)
	assert.Equal(t, "/auth/register", resp.Header.Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	app, mock := setup(t)

	resp, err := app.Test(postForm("/auth/register", url.Values{
		"username":         {"sneaky"},
		"email":            {"sneaky@school.org"},
		"password":         {"secret1"},
		"confirm_password": {"secret1"},
		"role":             {"admin"},
	}))
	require.NoError(t, err)
	assert.Equal(t, "/auth/register", resp.Header.Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateJWTRejectsForeignSignature(t *testing.T) {
	Configure("one-secret", false)
	token, err := GenerateJWT(&models.User{ID: 9, Role: models.RoleTeacher})
	require.NoError(t, err)

	Configure("another-secret", false)
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hashCost = bcrypt.MinCost
	h, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret", h))
	assert.False(t, CheckPasswordHash("S3cret", h))
}
