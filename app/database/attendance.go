package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"campusdesk/app/models"
)

// UpsertAttendance records one status per student for the date. A student already
// marked that day is overwritten, so re-submitting the sheet is idempotent.
// The whole batch commits or none of it does.
func UpsertAttendance(db *sqlx.DB, date time.Time, entries []models.AttendanceEntry) error {
	for _, e := range entries {
		if !e.Status.Valid() {
			return errors.Errorf("invalid attendance status %q for student %d", e.Status, e.StudentID)
		}
	}

	tx, err := db.Beginx()
	if err != nil {
		return wrap(err, "begin attendance batch")
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`
		INSERT INTO attendance (student_id, date, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (student_id, date) DO UPDATE SET status = EXCLUDED.status`)
	if err != nil {
		return wrap(err, "prepare attendance upsert")
	}
	defer stmt.Close()

	day := date.Format("2006-01-02")
	for _, e := range entries {
		if _, err := stmt.Exec(e.StudentID, day, e.Status); err != nil {
			return wrap(err, fmt.Sprintf("upsert attendance for student %d", e.StudentID))
		}
	}

	return wrap(tx.Commit(), "commit attendance batch")
}

// ClassAttendanceOn returns the statuses already recorded for a class on a date.
func ClassAttendanceOn(db sqlx.Queryer, classID int64, date time.Time) (map[int64]models.AttendanceStatus, error) {
	rows, err := db.Queryx(`
		SELECT a.student_id, a.status
		FROM attendance a
		JOIN students s ON s.id = a.student_id
		WHERE s.class_id = $1 AND a.date = $2`, classID, date.Format("2006-01-02"))
	if err != nil {
		return nil, wrap(err, "class attendance")
	}
	defer rows.Close()

	out := make(map[int64]models.AttendanceStatus)
	for rows.Next() {
		var id int64
		var status models.AttendanceStatus
		if err := rows.Scan(&id, &status); err != nil {
			return nil, wrap(err, "scan class attendance")
		}
		out[id] = status
	}
	return out, wrap(rows.Err(), "iterate class attendance")
}

const attendanceSelect = `
	SELECT a.id, a.student_id, a.date, a.status, a.remarks,
		s.first_name || ' ' || s.last_name AS student_name, s.roll_no,
		c.grade || '-' || c.section AS class_name,
		d.name AS department_name
	FROM attendance a
	JOIN students s ON s.id = a.student_id
	LEFT JOIN classes c ON c.id = s.class_id
	LEFT JOIN departments d ON d.id = s.department_id`

type AttendanceFilter struct {
	ClassID   int64
	StudentID int64
	From      *time.Time
	To        *time.Time
	Limit     int
}

func ListAttendance(db sqlx.Queryer, f AttendanceFilter) ([]models.Attendance, error) {
	query := attendanceSelect + ` WHERE 1=1`
	var args []interface{}
	if f.ClassID > 0 {
		args = append(args, f.ClassID)
		query += fmt.Sprintf(" AND s.class_id = $%d", len(args))
	}
	if f.StudentID > 0 {
		args = append(args, f.StudentID)
		query += fmt.Sprintf(" AND a.student_id = $%d", len(args))
	}
	if f.From != nil {
		args = append(args, f.From.Format("2006-01-02"))
		query += fmt.Sprintf(" AND a.date >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, f.To.Format("2006-01-02"))
		query += fmt.Sprintf(" AND a.date <= $%d", len(args))
	}
	query += " ORDER BY a.date DESC, s.roll_no"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	records := []models.Attendance{}
	if err := sqlx.Select(db, &records, query, args...); err != nil {
		return nil, wrap(err, "list attendance")
	}
	return records, nil
}

// StudentAttendanceStats counts a student's statuses on or after since.
func StudentAttendanceStats(db sqlx.Queryer, studentID int64, since time.Time) (models.AttendanceStats, error) {
	var stats models.AttendanceStats
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'Present') AS present,
			COUNT(*) FILTER (WHERE status = 'Absent') AS absent,
			COUNT(*) FILTER (WHERE status = 'Late') AS late
		FROM attendance
		WHERE student_id = $1 AND date >= $2`
	if err := sqlx.Get(db, &stats, query, studentID, since.Format("2006-01-02")); err != nil {
		return stats, wrap(err, "student attendance stats")
	}
	return stats, nil
}
