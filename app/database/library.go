package database

import (
	"time"

	"github.com/jmoiron/sqlx"

	"campusdesk/app/models"
)

const bookColumns = `id, title, author, isbn, category, total_copies, available_copies, added_date`

func ListBooks(db sqlx.Queryer) ([]models.Book, error) {
	books := []models.Book{}
	if err := sqlx.Select(db, &books, `SELECT `+bookColumns+` FROM books ORDER BY title`); err != nil {
		return nil, wrap(err, "list books")
	}
	return books, nil
}

func AvailableBooks(db sqlx.Queryer) ([]models.Book, error) {
	books := []models.Book{}
	query := `SELECT ` + bookColumns + ` FROM books WHERE available_copies > 0 ORDER BY title`
	if err := sqlx.Select(db, &books, query); err != nil {
		return nil, wrap(err, "available books")
	}
	return books, nil
}

func GetBookByID(db sqlx.Queryer, id int64) (*models.Book, error) {
	var b models.Book
	if err := sqlx.Get(db, &b, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id); err != nil {
		return nil, wrap(err, "get book")
	}
	return &b, nil
}

// CreateBook shelves every copy as available.
func CreateBook(db sqlx.Queryer, b *models.Book) error {
	b.AvailableCopies = b.TotalCopies
	query := `
		INSERT INTO books (title, author, isbn, category, total_copies, available_copies)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id, added_date`
	err := db.QueryRowx(query, b.Title, b.Author, b.ISBN, b.Category, b.TotalCopies).Scan(&b.ID, &b.AddedDate)
	return wrap(err, "create book")
}

// UpdateBook shifts available copies by the change in total copies. It refuses a total
// smaller than the number of copies currently on loan.
func UpdateBook(db *sqlx.DB, b *models.Book) error {
	tx, err := db.Beginx()
	if err != nil {
		return wrap(err, "begin update book")
	}
	defer tx.Rollback()

	var current models.Book
	if err := tx.Get(&current, `SELECT `+bookColumns+` FROM books WHERE id = $1 FOR UPDATE`, b.ID); err != nil {
		return wrap(err, "lock book")
	}
	if b.TotalCopies < current.OnLoan() {
		return ErrCopiesBelowIssued
	}
	b.AvailableCopies = b.TotalCopies - current.OnLoan()

	_, err = tx.Exec(`
		UPDATE books SET title = $1, author = $2, isbn = $3, category = $4,
			total_copies = $5, available_copies = $6
		WHERE id = $7`,
		b.Title, b.Author, b.ISBN, b.Category, b.TotalCopies, b.AvailableCopies, b.ID)
	if err != nil {
		return wrap(err, "update book")
	}
	return wrap(tx.Commit(), "commit update book")
}

// DeleteBook removes a book and its returned loan history. Books with copies out are kept.
func DeleteBook(db *sqlx.DB, id int64) error {
	tx, err := db.Beginx()
	if err != nil {
		return wrap(err, "begin delete book")
	}
	defer tx.Rollback()

	var open int
	if err := tx.Get(&open, `SELECT COUNT(*) FROM book_issues WHERE book_id = $1 AND return_date IS NULL`, id); err != nil {
		return wrap(err, "count open issues")
	}
	if open > 0 {
		return ErrBookOnLoan
	}
	if _, err := tx.Exec(`DELETE FROM book_issues WHERE book_id = $1`, id); err != nil {
		return wrap(err, "delete book history")
	}
	res, err := tx.Exec(`DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return wrap(err, "delete book")
	}
	if err := checkAffected(res, "delete book"); err != nil {
		return err
	}
	return wrap(tx.Commit(), "commit delete book")
}

// IssueBook lends one copy to a student. The decrement is guarded so available copies
// can never drop below zero even when two issues race for the last copy.
func IssueBook(db *sqlx.DB, bookID, studentID int64, issued time.Time, loanDays int) (*models.BookIssue, error) {
	tx, err := db.Beginx()
	if err != nil {
		return nil, wrap(err, "begin issue book")
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE books SET available_copies = available_copies - 1 WHERE id = $1 AND available_copies > 0`, bookID)
	if err != nil {
		return nil, wrap(err, "reserve copy")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, wrap(err, "reserve copy")
	}
	if n == 0 {
		if _, err := GetBookByID(tx, bookID); err != nil {
			return nil, err
		}
		return nil, ErrNoCopiesAvailable
	}

	issue := &models.BookIssue{
		BookID:    bookID,
		StudentID: studentID,
		IssueDate: issued,
		DueDate:   issued.AddDate(0, 0, loanDays),
		Status:    models.IssueIssued,
	}
	err = tx.QueryRowx(`
		INSERT INTO book_issues (book_id, student_id, issue_date, due_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		issue.BookID, issue.StudentID, issue.IssueDate.Format("2006-01-02"), issue.DueDate.Format("2006-01-02"), issue.Status).
		Scan(&issue.ID)
	if err != nil {
		return nil, wrap(err, "insert book issue")
	}

	if err := tx.Commit(); err != nil {
		return nil, wrap(err, "commit issue book")
	}
	return issue, nil
}

// ReturnBook closes a loan once and puts the copy back, charging finePerDay for each
// day past the due date. The increment never lifts available above total copies.
func ReturnBook(db *sqlx.DB, issueID int64, returned time.Time, finePerDay float64) (*models.BookIssue, error) {
	tx, err := db.Beginx()
	if err != nil {
		return nil, wrap(err, "begin return book")
	}
	defer tx.Rollback()

	var issue models.BookIssue
	err = tx.Get(&issue, `
		SELECT id, book_id, student_id, issue_date, due_date, return_date, status, fine_amount
		FROM book_issues WHERE id = $1 FOR UPDATE`, issueID)
	if err != nil {
		return nil, wrap(err, "lock book issue")
	}
	if issue.ReturnDate.Valid || issue.Status == models.IssueReturned {
		return nil, ErrAlreadyReturned
	}

	issue.ReturnDate.SetValid(returned)
	issue.Status = models.IssueReturned
	issue.FineAmount = models.FineFor(issue.DueDate, returned, finePerDay)

	_, err = tx.Exec(`UPDATE book_issues SET return_date = $1, status = $2, fine_amount = $3 WHERE id = $4`,
		returned.Format("2006-01-02"), issue.Status, issue.FineAmount, issue.ID)
	if err != nil {
		return nil, wrap(err, "close book issue")
	}
	_, err = tx.Exec(`UPDATE books SET available_copies = available_copies + 1 WHERE id = $1 AND available_copies < total_copies`,
		issue.BookID)
	if err != nil {
		return nil, wrap(err, "restore copy")
	}

	if err := tx.Commit(); err != nil {
		return nil, wrap(err, "commit return book")
	}
	return &issue, nil
}

const issueSelect = `
	SELECT i.id, i.book_id, i.student_id, i.issue_date, i.due_date, i.return_date, i.status,
		i.fine_amount, b.title AS book_title,
		s.first_name || ' ' || s.last_name AS student_name, s.roll_no
	FROM book_issues i
	JOIN books b ON b.id = i.book_id
	JOIN students s ON s.id = i.student_id`

// OutstandingIssues lists loans that have not been returned, oldest due first.
func OutstandingIssues(db sqlx.Queryer) ([]models.BookIssue, error) {
	issues := []models.BookIssue{}
	if err := sqlx.Select(db, &issues, issueSelect+` WHERE i.return_date IS NULL ORDER BY i.due_date`); err != nil {
		return nil, wrap(err, "outstanding issues")
	}
	return issues, nil
}

func StudentIssues(db sqlx.Queryer, studentID int64) ([]models.BookIssue, error) {
	issues := []models.BookIssue{}
	if err := sqlx.Select(db, &issues, issueSelect+` WHERE i.student_id = $1 ORDER BY i.issue_date DESC`, studentID); err != nil {
		return nil, wrap(err, "student issues")
	}
	return issues, nil
}

// MarkOverdueIssues flags open loans past their due date.
func MarkOverdueIssues(db sqlx.Execer, today time.Time) (int64, error) {
	res, err := db.Exec(`UPDATE book_issues SET status = 'overdue' WHERE status = 'issued' AND return_date IS NULL AND due_date < $1`,
		today.Format("2006-01-02"))
	if err != nil {
		return 0, wrap(err, "mark overdue issues")
	}
	n, err := res.RowsAffected()
	return n, wrap(err, "mark overdue issues")
}
