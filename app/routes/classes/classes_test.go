package classes

import (
	"net/url"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusdesk/app/routes/routetest"
)

func TestExportClasses(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupClassesRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectQuery(`FROM classes c`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "grade", "section", "department_name", "class_teacher_name", "student_count"}).
			AddRow(int64(1), "10", "A", "Science", "Alan Turing", 31).
			AddRow(int64(2), "10", "B", nil, nil, 0))

	resp, body := routetest.Do(t, app, routetest.Get("/admin/classes/export", cookie))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Grade/Year,Section,Department,Class Teacher,Students Count\n")
	assert.Contains(t, body, "10,A,Science,Alan Turing,31\n")
	assert.Contains(t, body, "10,B,,,0\n")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicateClassFlashes(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupClassesRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectQuery(`INSERT INTO classes`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "classes_grade_section_dept_idx"})

	resp, _ := routetest.Do(t, app, routetest.PostForm("/admin/classes/add", url.Values{"grade": {"10"}, "section": {"A"}}, cookie))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, listPath+"/add", resp.Header.Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingClass(t *testing.T) {
	app, db, mock := routetest.New(t)
	SetupClassesRoutes(app, db)

	cookie := routetest.Cookie(t, mock, routetest.Admin())
	mock.ExpectExec(`DELETE FROM classes WHERE id = \$1`).WithArgs(int64(99)).WillReturnResult(sqlmock.NewResult(0, 0))

	resp, _ := routetest.Do(t, app, routetest.PostForm("/admin/classes/99/delete", nil, cookie))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
