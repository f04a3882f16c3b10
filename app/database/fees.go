package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"campusdesk/app/models"
)

const feeSelect = `
	SELECT f.id, f.student_id, f.title, f.amount, f.due_date, f.status, f.paid_date,
		s.first_name || ' ' || s.last_name AS student_name, s.roll_no
	FROM fees f
	JOIN students s ON s.id = f.student_id`

func ListFees(db sqlx.Queryer, status models.FeeStatus) ([]models.Fee, error) {
	query := feeSelect
	var args []interface{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" WHERE f.status = $%d", len(args))
	}
	query += " ORDER BY f.due_date DESC, f.id DESC"

	fees := []models.Fee{}
	if err := sqlx.Select(db, &fees, query, args...); err != nil {
		return nil, wrap(err, "list fees")
	}
	return fees, nil
}

func StudentFees(db sqlx.Queryer, studentID int64) ([]models.Fee, error) {
	fees := []models.Fee{}
	if err := sqlx.Select(db, &fees, feeSelect+` WHERE f.student_id = $1 ORDER BY f.due_date DESC`, studentID); err != nil {
		return nil, wrap(err, "student fees")
	}
	return fees, nil
}

func GetFeeByID(db sqlx.Queryer, id int64) (*models.Fee, error) {
	var f models.Fee
	if err := sqlx.Get(db, &f, feeSelect+` WHERE f.id = $1`, id); err != nil {
		return nil, wrap(err, "get fee")
	}
	return &f, nil
}

func CreateFee(db sqlx.Queryer, f *models.Fee) error {
	if f.Status == "" {
		f.Status = models.FeePending
	}
	query := `
		INSERT INTO fees (student_id, title, amount, due_date, status, paid_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := db.QueryRowx(query, f.StudentID, f.Title, f.Amount, f.DueDate, f.Status, f.PaidDate).Scan(&f.ID)
	return wrap(err, "create fee")
}

// UpdateFee keeps paid_date consistent with the status: it is cleared unless the fee is Paid.
func UpdateFee(db sqlx.Execer, f *models.Fee) error {
	if !f.IsPaid() {
		f.PaidDate.Valid = false
	} else if !f.PaidDate.Valid {
		f.PaidDate.SetValid(time.Now())
	}
	query := `
		UPDATE fees SET student_id = $1, title = $2, amount = $3, due_date = $4, status = $5, paid_date = $6
		WHERE id = $7`
	res, err := db.Exec(query, f.StudentID, f.Title, f.Amount, f.DueDate, f.Status, f.PaidDate, f.ID)
	if err != nil {
		return wrap(err, "update fee")
	}
	return checkAffected(res, "update fee")
}

func DeleteFee(db sqlx.Execer, id int64) error {
	res, err := db.Exec(`DELETE FROM fees WHERE id = $1`, id)
	if err != nil {
		return wrap(err, "delete fee")
	}
	return checkAffected(res, "delete fee")
}

// PayFee marks a Pending or Overdue fee as paid today. A studentID above zero
// restricts the update to that student's own fee; a fee outside that scope is
// ErrNotFound.
func PayFee(db sqlx.Ext, id, studentID int64, paidOn time.Time) error {
	query := `UPDATE fees SET status = 'Paid', paid_date = $1 WHERE id = $2 AND status <> 'Paid'`
	args := []interface{}{paidOn.Format("2006-01-02"), id}
	if studentID > 0 {
		query += ` AND student_id = $3`
		args = append(args, studentID)
	}
	res, err := db.Exec(query, args...)
	if err != nil {
		return wrap(err, "pay fee")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrap(err, "pay fee")
	}
	if n > 0 {
		return nil
	}

	var exists bool
	if studentID > 0 {
		err = sqlx.Get(db, &exists, `SELECT EXISTS (SELECT 1 FROM fees WHERE id = $1 AND student_id = $2)`, id, studentID)
	} else {
		err = sqlx.Get(db, &exists, `SELECT EXISTS (SELECT 1 FROM fees WHERE id = $1)`, id)
	}
	if err != nil {
		return wrap(err, "pay fee")
	}
	if !exists {
		return errors.Wrap(ErrNotFound, "pay fee")
	}
	return ErrAlreadyPaid
}

// MarkOverdueFees flips unpaid fees whose due date has passed to Overdue.
func MarkOverdueFees(db sqlx.Execer, today time.Time) (int64, error) {
	res, err := db.Exec(`UPDATE fees SET status = 'Overdue' WHERE status = 'Pending' AND due_date < $1`,
		today.Format("2006-01-02"))
	if err != nil {
		return 0, wrap(err, "mark overdue fees")
	}
	n, err := res.RowsAffected()
	return n, wrap(err, "mark overdue fees")
}

func FeeCounts(db sqlx.Queryer) (models.FeeStatusCounts, error) {
	var c models.FeeStatusCounts
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'Pending') AS pending,
			COUNT(*) FILTER (WHERE status = 'Paid') AS paid,
			COUNT(*) FILTER (WHERE status = 'Overdue') AS overdue,
			COALESCE(SUM(amount), 0) AS billed,
			COALESCE(SUM(amount) FILTER (WHERE status = 'Paid'), 0) AS collected
		FROM fees`
	if err := sqlx.Get(db, &c, query); err != nil {
		return c, wrap(err, "fee counts")
	}
	return c, nil
}
