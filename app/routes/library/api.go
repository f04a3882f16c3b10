package library

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
)

func bindBook(c *fiber.Ctx, b *models.Book) error {
	var err error
	b.Title = helpers.FormString(c, "title")
	b.Author = helpers.FormString(c, "author")
	b.ISBN = helpers.FormNullString(c, "isbn")
	b.Category = helpers.FormNullString(c, "category")
	if b.TotalCopies, err = helpers.FormInt(c, "total_copies", 1); err != nil {
		return err
	}
	return helpers.Validate(b)
}

func CreateBookAPI(c *fiber.Ctx, db *sqlx.DB) error {
	book := &models.Book{}
	if err := bindBook(c, book); err != nil {
		return renderForm(c, book, err)
	}
	if err := database.CreateBook(db, book); err != nil {
		return helpers.StoreError(c, err, listPath+"/add")
	}
	return helpers.FlashRedirect(c, "success", "Book "+book.Title+" added.", listPath)
}

func UpdateBookAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	book, err := database.GetBookByID(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	if err := bindBook(c, book); err != nil {
		return renderForm(c, book, err)
	}
	if err := database.UpdateBook(db, book); err != nil {
		return helpers.StoreError(c, err, fmt.Sprintf("%s/%d/edit", listPath, id))
	}
	return helpers.FlashRedirect(c, "success", "Book updated.", listPath)
}

func DeleteBookAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := database.DeleteBook(db, id); err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return helpers.FlashRedirect(c, "success", "Book deleted.", listPath)
}

func IssueBookAPI(c *fiber.Ctx, db *sqlx.DB) error {
	bookID, err := helpers.FormInt64(c, "book_id")
	if err != nil {
		return helpers.FlashRedirect(c, "danger", "Choose a book.", listPath+"/issue")
	}
	studentID, err := helpers.FormInt64(c, "student_id")
	if err != nil || bookID == 0 || studentID == 0 {
		return helpers.FlashRedirect(c, "danger", "Choose a book and a student.", listPath+"/issue")
	}

	issue, err := database.IssueBook(db, bookID, studentID, helpers.Today(), config.Current().Library.LoanDays)
	if err != nil {
		return helpers.StoreError(c, err, listPath+"/issue")
	}
	logger.L().Info("book issued",
		zap.Int64("issue_id", issue.ID),
		zap.Int64("book_id", bookID),
		zap.Int64("student_id", studentID),
		zap.Time("due", issue.DueDate),
	)
	return helpers.FlashRedirect(c, "success", "Book issued, due "+issue.DueDate.Format("2006-01-02")+".", listPath+"/issues")
}

func ReturnBookAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	issue, err := database.ReturnBook(db, id, helpers.Today(), config.Current().Library.FinePerDay)
	if err != nil {
		return helpers.StoreError(c, err, listPath+"/issues")
	}
	msg := "Book returned."
	if issue.FineAmount > 0 {
		msg = fmt.Sprintf("Book returned late. Fine: %.2f", issue.FineAmount)
	}
	logger.L().Info("book returned", zap.Int64("issue_id", issue.ID), zap.Float64("fine", issue.FineAmount))
	return helpers.FlashRedirect(c, "success", msg, listPath+"/issues")
}

func ExportBooksAPI(c *fiber.Ctx, db *sqlx.DB) error {
	list, err := database.ListBooks(db)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return reports.SendCSV(c, "books.csv", reports.BooksTable(list))
}
