package library

import (
	"net/url"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusdesk/app/routes/routetest"
)

var bookCols = []string{"id", "title", "author", "isbn", "category", "total_copies", "available_copies", "added_date"}

func TestIssueWithoutCopiesWarns(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupLibraryRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE books SET available_copies = available_copies - 1`).WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`FROM books WHERE id = \$1`).WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(bookCols).AddRow(int64(4), "Dune", "Herbert", nil, nil, 1, 0, time.Now()))
	mock.ExpectRollback()

	form := url.Values{"book_id": {"4"}, "student_id": {"5"}}
	resp, _ := routetest.Do(t, app, routetest.PostForm("/admin/library/issue", form, cookie))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, listPath+"/issue", resp.Header.Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIssueBookSucceeds(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupLibraryRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE books SET available_copies = available_copies - 1`).WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO book_issues`).
		WithArgs(int64(4), int64(5), sqlmock.AnyArg(), sqlmock.AnyArg(), "issued").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(30)))
	mock.ExpectCommit()

	form := url.Values{"book_id": {"4"}, "student_id": {"5"}}
	resp, _ := routetest.Do(t, app, routetest.PostForm("/admin/library/issue", form, cookie))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, listPath+"/issues", resp.Header.Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReturnTwiceWarns(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupLibraryRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM book_issues WHERE id = \$1 FOR UPDATE`).WithArgs(int64(30)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "book_id", "student_id", "issue_date", "due_date", "return_date", "status", "fine_amount"}).
			AddRow(int64(30), int64(4), int64(5), due.AddDate(0, 0, -14), due, due, "returned", 0.0))
	mock.ExpectRollback()

	resp, _ := routetest.Do(t, app, routetest.PostForm("/admin/library/issues/30/return", nil, cookie))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, listPath+"/issues", resp.Header.Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBookOnLoanWarns(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupLibraryRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM book_issues`).WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	resp, _ := routetest.Do(t, app, routetest.PostForm("/admin/library/4/delete", nil, cookie))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, listPath, resp.Header.Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportBooks(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupLibraryRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectQuery(`FROM books ORDER BY title`).
		WillReturnRows(sqlmock.NewRows(bookCols).AddRow(int64(4), "Dune", "Herbert", "978-0441", "Fiction", 3, 1, time.Now()))

	resp, body := routetest.Do(t, app, routetest.Get("/admin/library/export", cookie))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "ID,Title,Author,ISBN,Category,Total Copies,Available\n")
	assert.Contains(t, body, "4,Dune,Herbert,978-0441,Fiction,3,1\n")
	require.NoError(t, mock.ExpectationsWereMet())
}
