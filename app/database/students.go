package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"campusdesk/app/models"
)

const studentSelect = `
	SELECT s.id, s.user_id, s.class_id, s.department_id, s.first_name, s.last_name,
		s.roll_no, s.enrollment_no, s.dob, s.gender, s.blood_group, s.phone,
		s.parent_name, s.parent_phone, s.address, s.admission_date, s.photo_file,
		c.grade || '-' || c.section AS class_name,
		d.name AS department_name
	FROM students s
	LEFT JOIN classes c ON c.id = s.class_id
	LEFT JOIN departments d ON d.id = s.department_id`

type StudentFilter struct {
	ClassID      int64
	DepartmentID int64
	Limit        int
}

func ListStudents(db sqlx.Queryer, f StudentFilter) ([]models.Student, error) {
	query := studentSelect + ` WHERE 1=1`
	var args []interface{}
	if f.ClassID > 0 {
		args = append(args, f.ClassID)
		query += fmt.Sprintf(" AND s.class_id = $%d", len(args))
	}
	if f.DepartmentID > 0 {
		args = append(args, f.DepartmentID)
		query += fmt.Sprintf(" AND s.department_id = $%d", len(args))
	}
	query += " ORDER BY s.roll_no"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	students := []models.Student{}
	if err := sqlx.Select(db, &students, query, args...); err != nil {
		return nil, wrap(err, "list students")
	}
	return students, nil
}

// RecentStudents returns the newest admissions for the admin dashboard.
func RecentStudents(db sqlx.Queryer, limit int) ([]models.Student, error) {
	students := []models.Student{}
	query := studentSelect + ` ORDER BY s.id DESC LIMIT $1`
	if err := sqlx.Select(db, &students, query, limit); err != nil {
		return nil, wrap(err, "recent students")
	}
	return students, nil
}

// ClassRoster lists the students of a class in roll number order.
func ClassRoster(db sqlx.Queryer, classID int64) ([]models.Student, error) {
	return ListStudents(db, StudentFilter{ClassID: classID})
}

func GetStudentByID(db sqlx.Queryer, id int64) (*models.Student, error) {
	var s models.Student
	if err := sqlx.Get(db, &s, studentSelect+` WHERE s.id = $1`, id); err != nil {
		return nil, wrap(err, "get student")
	}
	return &s, nil
}

func GetStudentByUserID(db sqlx.Queryer, userID int64) (*models.Student, error) {
	var s models.Student
	if err := sqlx.Get(db, &s, studentSelect+` WHERE s.user_id = $1`, userID); err != nil {
		return nil, wrap(err, "get student by user")
	}
	return &s, nil
}

func insertStudent(db sqlx.Queryer, s *models.Student) error {
	if s.PhotoFile == "" {
		s.PhotoFile = models.DefaultPhoto
	}
	query := `
		INSERT INTO students (user_id, class_id, department_id, first_name, last_name, roll_no,
			enrollment_no, dob, gender, blood_group, phone, parent_name, parent_phone, address,
			admission_date, photo_file)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`
	err := db.QueryRowx(query, s.UserID, s.ClassID, s.DepartmentID, s.FirstName, s.LastName, s.RollNo,
		s.EnrollmentNo, s.DOB, s.Gender, s.BloodGroup, s.Phone, s.ParentName, s.ParentPhone, s.Address,
		s.AdmissionDate, s.PhotoFile).Scan(&s.ID)
	return wrap(err, "insert student")
}

// CreateStudent creates the login account and the student profile together.
func CreateStudent(db *sqlx.DB, user *models.User, s *models.Student) error {
	user.Role = models.RoleStudent

	tx, err := db.Beginx()
	if err != nil {
		return wrap(err, "begin create student")
	}
	defer tx.Rollback()

	if err := CreateUser(tx, user); err != nil {
		return err
	}
	s.UserID = user.ID
	if err := insertStudent(tx, s); err != nil {
		return err
	}
	return wrap(tx.Commit(), "commit create student")
}

func UpdateStudent(db sqlx.Execer, s *models.Student) error {
	query := `
		UPDATE students SET class_id = $1, department_id = $2, first_name = $3, last_name = $4,
			roll_no = $5, enrollment_no = $6, dob = $7, gender = $8, blood_group = $9, phone = $10,
			parent_name = $11, parent_phone = $12, address = $13, admission_date = $14
		WHERE id = $15`
	res, err := db.Exec(query, s.ClassID, s.DepartmentID, s.FirstName, s.LastName, s.RollNo,
		s.EnrollmentNo, s.DOB, s.Gender, s.BloodGroup, s.Phone, s.ParentName, s.ParentPhone,
		s.Address, s.AdmissionDate, s.ID)
	if err != nil {
		return wrap(err, "update student")
	}
	return checkAffected(res, "update student")
}

func UpdateStudentPhoto(db sqlx.Execer, id int64, file string) error {
	res, err := db.Exec(`UPDATE students SET photo_file = $1 WHERE id = $2`, file, id)
	if err != nil {
		return wrap(err, "update student photo")
	}
	return checkAffected(res, "update student photo")
}

// DeleteStudent removes the profile, everything it owns and the paired login in one
// transaction. Books still on loan to the student are put back on the shelf first.
func DeleteStudent(db *sqlx.DB, id int64) error {
	tx, err := db.Beginx()
	if err != nil {
		return wrap(err, "begin delete student")
	}
	defer tx.Rollback()

	var userID int64
	if err := tx.Get(&userID, `SELECT user_id FROM students WHERE id = $1 FOR UPDATE`, id); err != nil {
		return wrap(err, "lock student")
	}

	restore := `
		UPDATE books b
		SET available_copies = LEAST(b.total_copies, b.available_copies + open.copies)
		FROM (
			SELECT book_id, COUNT(*) AS copies
			FROM book_issues
			WHERE student_id = $1 AND return_date IS NULL
			GROUP BY book_id
		) open
		WHERE b.id = open.book_id`
	if _, err := tx.Exec(restore, id); err != nil {
		return wrap(err, "restore loaned copies")
	}

	if _, err := tx.Exec(`DELETE FROM students WHERE id = $1`, id); err != nil {
		return wrap(err, "delete student")
	}
	if _, err := tx.Exec(`DELETE FROM users WHERE id = $1`, userID); err != nil {
		return wrap(err, "delete student user")
	}

	return wrap(tx.Commit(), "commit delete student")
}
