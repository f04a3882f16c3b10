package idcards

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusdesk/app/routes/routetest"
)

func TestIssueCardReplacesActiveOne(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupIDCardRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE id_cards SET is_active = FALSE WHERE student_id = \$1`).WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO id_cards`).
		WithArgs(int64(5), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectCommit()

	resp, _ := routetest.Do(t, app, routetest.PostForm("/admin/idcards/issue", url.Values{"student_id": {"5"}}, cookie))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, listPath, resp.Header.Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCardPDF(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupIDCardRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	issued := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM id_cards ic .* WHERE ic.id = \$1`).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "card_number", "issue_date", "expiry_date", "is_active", "student_name", "roll_no", "photo_file", "class_name"}).
			AddRow(int64(2), int64(5), "IDC-2024-0A1B2C3D", issued, issued.AddDate(1, 0, 0), true, "Ada Lovelace", "R-01", "default.jpg", "10-A"))

	resp, body := routetest.Do(t, app, routetest.Get("/admin/idcards/2/pdf", cookie))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "IDC-2024-0A1B2C3D.pdf")
	assert.True(t, strings.HasPrefix(body, "%PDF"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivateMissingCard(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupIDCardRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectExec(`UPDATE id_cards SET is_active = FALSE WHERE id = \$1`).WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	resp, _ := routetest.Do(t, app, routetest.PostForm("/admin/idcards/9/deactivate", nil, cookie))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}
