package database

import (
	"time"

	"github.com/jmoiron/sqlx"

	"campusdesk/app/models"
)

func GetDashboardCounts(db sqlx.Queryer, today time.Time) (models.DashboardCounts, error) {
	var c models.DashboardCounts
	query := `
		SELECT
			(SELECT COUNT(*) FROM students) AS students,
			(SELECT COUNT(*) FROM teachers) AS teachers,
			(SELECT COUNT(*) FROM classes) AS classes,
			(SELECT COUNT(*) FROM subjects) AS subjects,
			(SELECT COUNT(*) FROM departments) AS departments,
			(SELECT COALESCE(SUM(total_copies), 0) FROM books) AS books,
			(SELECT COUNT(*) FROM users WHERE NOT is_approved) AS pending_users,
			(SELECT COUNT(*) FROM attendance WHERE date = $1 AND status = 'Present') AS present_today`
	if err := sqlx.Get(db, &c, query, today.Format("2006-01-02")); err != nil {
		return c, wrap(err, "dashboard counts")
	}
	return c, nil
}

// AttendanceTrend returns one row per day in [from, to], days without records included.
func AttendanceTrend(db sqlx.Queryer, from, to time.Time) ([]models.DailyAttendance, error) {
	query := `
		SELECT day::date AS date,
			COUNT(a.id) FILTER (WHERE a.status = 'Present') AS present,
			COUNT(a.id) FILTER (WHERE a.status = 'Absent') AS absent,
			COUNT(a.id) FILTER (WHERE a.status = 'Late') AS late
		FROM generate_series($1::date, $2::date, INTERVAL '1 day') AS day
		LEFT JOIN attendance a ON a.date = day::date
		GROUP BY day
		ORDER BY day`
	days := []models.DailyAttendance{}
	if err := sqlx.Select(db, &days, query, from.Format("2006-01-02"), to.Format("2006-01-02")); err != nil {
		return nil, wrap(err, "attendance trend")
	}
	return days, nil
}

// ClassAttendanceOnDay compares each class's present count on a day against its roster size.
func ClassAttendanceOnDay(db sqlx.Queryer, day time.Time) ([]models.ClassAttendance, error) {
	query := `
		SELECT c.id AS class_id, c.grade || '-' || c.section AS class_name,
			COUNT(a.id) FILTER (WHERE a.status = 'Present') AS present,
			COUNT(DISTINCT s.id) AS total
		FROM classes c
		LEFT JOIN students s ON s.class_id = c.id
		LEFT JOIN attendance a ON a.student_id = s.id AND a.date = $1
		GROUP BY c.id, c.grade, c.section
		ORDER BY c.grade, c.section`
	rows := []models.ClassAttendance{}
	if err := sqlx.Select(db, &rows, query, day.Format("2006-01-02")); err != nil {
		return nil, wrap(err, "class attendance")
	}
	return rows, nil
}

func SubjectAverages(db sqlx.Queryer) ([]models.SubjectAverage, error) {
	query := `
		SELECT sub.id AS subject_id, sub.name AS subject_name,
			ROUND(AVG(m.score_obtained / m.max_score * 100)::numeric, 2)::float8 AS average,
			COUNT(m.id) AS entries
		FROM marks m
		JOIN subjects sub ON sub.id = m.subject_id
		GROUP BY sub.id, sub.name
		ORDER BY average DESC`
	rows := []models.SubjectAverage{}
	if err := sqlx.Select(db, &rows, query); err != nil {
		return nil, wrap(err, "subject averages")
	}
	return rows, nil
}

// TopStudents ranks students by their mean percentage across every mark.
func TopStudents(db sqlx.Queryer, limit int) ([]models.StudentAverage, error) {
	query := `
		SELECT s.id AS student_id, s.first_name || ' ' || s.last_name AS student_name, s.roll_no,
			COALESCE(c.grade || '-' || c.section, '') AS class_name,
			ROUND(AVG(m.score_obtained / m.max_score * 100)::numeric, 2)::float8 AS average
		FROM marks m
		JOIN students s ON s.id = m.student_id
		LEFT JOIN classes c ON c.id = s.class_id
		GROUP BY s.id, s.first_name, s.last_name, s.roll_no, c.grade, c.section
		ORDER BY average DESC, s.roll_no
		LIMIT $1`
	rows := []models.StudentAverage{}
	if err := sqlx.Select(db, &rows, query, limit); err != nil {
		return nil, wrap(err, "top students")
	}
	return rows, nil
}

// MarkPercentages returns every recorded mark as a percentage, for grade histograms.
func MarkPercentages(db sqlx.Queryer) ([]float64, error) {
	out := []float64{}
	if err := sqlx.Select(db, &out, `SELECT score_obtained / max_score * 100 FROM marks`); err != nil {
		return nil, wrap(err, "mark percentages")
	}
	return out, nil
}

// DepartmentReport summarises each department's size, attendance since a date and fee collection.
func DepartmentReport(db sqlx.Queryer, since time.Time) ([]models.DepartmentStats, error) {
	query := `
		SELECT d.id AS department_id, d.name, d.code,
			(SELECT COUNT(*) FROM students s WHERE s.department_id = d.id) AS students,
			(SELECT COUNT(*) FROM teachers t WHERE t.department_id = d.id) AS teachers,
			(SELECT COUNT(*) FROM classes c WHERE c.department_id = d.id) AS classes,
			(SELECT COUNT(*) FROM attendance a JOIN students s ON s.id = a.student_id
				WHERE s.department_id = d.id AND a.date >= $1 AND a.status = 'Present') AS present_week,
			(SELECT COUNT(*) FROM attendance a JOIN students s ON s.id = a.student_id
				WHERE s.department_id = d.id AND a.date >= $1) AS recorded_week,
			(SELECT COALESCE(SUM(f.amount), 0) FROM fees f JOIN students s ON s.id = f.student_id
				WHERE s.department_id = d.id) AS fees_billed,
			(SELECT COALESCE(SUM(f.amount), 0) FROM fees f JOIN students s ON s.id = f.student_id
				WHERE s.department_id = d.id AND f.status = 'Paid') AS fees_collected
		FROM departments d
		ORDER BY d.name`
	rows := []models.DepartmentStats{}
	if err := sqlx.Select(db, &rows, query, since.Format("2006-01-02")); err != nil {
		return nil, wrap(err, "department report")
	}
	return rows, nil
}
