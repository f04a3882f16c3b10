package library

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/models"
	"campusdesk/app/routes/auth"
)

const listPath = "/admin/library"

func SetupLibraryRoutes(app *fiber.App, db *sqlx.DB) {
	books := app.Group("/admin/library", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleAdmin))
	books.Get("/", func(c *fiber.Ctx) error { return BooksPage(c, db) })
	books.Get("/export", func(c *fiber.Ctx) error { return ExportBooksAPI(c, db) })
	books.Get("/add", func(c *fiber.Ctx) error { return renderForm(c, &models.Book{TotalCopies: 1}, nil) })
	books.Get("/:id/edit", func(c *fiber.Ctx) error { return EditBookPage(c, db) })
	books.Post("/add", func(c *fiber.Ctx) error { return CreateBookAPI(c, db) })
	books.Post("/:id/edit", func(c *fiber.Ctx) error { return UpdateBookAPI(c, db) })
	books.Post("/:id/delete", func(c *fiber.Ctx) error { return DeleteBookAPI(c, db) })

	books.Get("/issues", func(c *fiber.Ctx) error { return IssuesPage(c, db) })
	books.Get("/issue", func(c *fiber.Ctx) error { return IssueFormPage(c, db) })
	books.Post("/issue", func(c *fiber.Ctx) error { return IssueBookAPI(c, db) })
	books.Post("/issues/:id/return", func(c *fiber.Ctx) error { return ReturnBookAPI(c, db) })

	student := app.Group("/student/library", auth.AuthMiddleware(db), auth.RoleMiddleware(models.RoleStudent))
	student.Get("/", func(c *fiber.Ctx) error { return StudentBooksPage(c, db) })
}

func BooksPage(c *fiber.Ctx, db *sqlx.DB) error {
	list, err := database.ListBooks(db)
	if err != nil {
		return helpers.StoreError(c, err, "/admin/dashboard")
	}
	return helpers.Render(c, "admin/library", "Library", "library", fiber.Map{"books": list})
}

func EditBookPage(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	book, err := database.GetBookByID(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return renderForm(c, book, nil)
}

func renderForm(c *fiber.Ctx, book *models.Book, problem error) error {
	data := fiber.Map{"book": book, "editing": book.ID > 0}
	title := "Add Book"
	if book.ID > 0 {
		title = "Edit Book"
	}
	if problem != nil {
		return helpers.RenderInvalid(c, "admin/book_form", title, "library", problem, data)
	}
	return helpers.Render(c, "admin/book_form", title, "library", data)
}

// IssuesPage lists every loan still out, oldest due date first.
func IssuesPage(c *fiber.Ctx, db *sqlx.DB) error {
	issues, err := database.OutstandingIssues(db)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return helpers.Render(c, "admin/book_issues", "Issued Books", "library", fiber.Map{
		"issues": issues,
		"today":  helpers.Today(),
	})
}

func IssueFormPage(c *fiber.Ctx, db *sqlx.DB) error {
	books, err := database.AvailableBooks(db)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	students, err := database.ListStudents(db, database.StudentFilter{})
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return helpers.Render(c, "admin/book_issue_form", "Issue Book", "library", fiber.Map{
		"books":    books,
		"students": students,
		"bookID":   helpers.QueryInt64(c, "book_id"),
	})
}

func StudentBooksPage(c *fiber.Ctx, db *sqlx.DB) error {
	student, err := auth.CurrentStudent(c, db)
	if err != nil {
		return err
	}
	issues, err := database.StudentIssues(db, student.ID)
	if err != nil {
		return helpers.StoreError(c, err, "/student/dashboard")
	}
	return helpers.Render(c, "student/library", "My Books", "library", fiber.Map{
		"student": student,
		"issues":  issues,
	})
}
