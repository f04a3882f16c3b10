package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"campusdesk/app/models"
)

const teacherSelect = `
	SELECT t.id, t.user_id, t.department_id, t.first_name, t.last_name, t.qualification,
		t.specialization, t.phone, t.joining_date, d.name AS department_name,
		u.username, u.email
	FROM teachers t
	JOIN users u ON u.id = t.user_id
	LEFT JOIN departments d ON d.id = t.department_id`

func ListTeachers(db sqlx.Queryer, departmentID int64) ([]models.Teacher, error) {
	query := teacherSelect
	var args []interface{}
	if departmentID > 0 {
		args = append(args, departmentID)
		query += fmt.Sprintf(" WHERE t.department_id = $%d", len(args))
	}
	query += " ORDER BY t.last_name, t.first_name"

	teachers := []models.Teacher{}
	if err := sqlx.Select(db, &teachers, query, args...); err != nil {
		return nil, wrap(err, "list teachers")
	}
	return teachers, nil
}

func GetTeacherByID(db sqlx.Queryer, id int64) (*models.Teacher, error) {
	var t models.Teacher
	if err := sqlx.Get(db, &t, teacherSelect+` WHERE t.id = $1`, id); err != nil {
		return nil, wrap(err, "get teacher")
	}
	return &t, nil
}

func GetTeacherByUserID(db sqlx.Queryer, userID int64) (*models.Teacher, error) {
	var t models.Teacher
	if err := sqlx.Get(db, &t, teacherSelect+` WHERE t.user_id = $1`, userID); err != nil {
		return nil, wrap(err, "get teacher by user")
	}
	return &t, nil
}

func insertTeacher(db sqlx.Queryer, t *models.Teacher) error {
	query := `
		INSERT INTO teachers (user_id, department_id, first_name, last_name, qualification,
			specialization, phone, joining_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := db.QueryRowx(query, t.UserID, t.DepartmentID, t.FirstName, t.LastName, t.Qualification,
		t.Specialization, t.Phone, t.JoiningDate).Scan(&t.ID)
	return wrap(err, "insert teacher")
}

// CreateTeacher creates the login account and the teacher profile together.
func CreateTeacher(db *sqlx.DB, user *models.User, t *models.Teacher) error {
	user.Role = models.RoleTeacher

	tx, err := db.Beginx()
	if err != nil {
		return wrap(err, "begin create teacher")
	}
	defer tx.Rollback()

	if err := CreateUser(tx, user); err != nil {
		return err
	}
	t.UserID = user.ID
	if err := insertTeacher(tx, t); err != nil {
		return err
	}
	return wrap(tx.Commit(), "commit create teacher")
}

func UpdateTeacher(db sqlx.Execer, t *models.Teacher) error {
	query := `
		UPDATE teachers SET department_id = $1, first_name = $2, last_name = $3, qualification = $4,
			specialization = $5, phone = $6, joining_date = $7
		WHERE id = $8`
	res, err := db.Exec(query, t.DepartmentID, t.FirstName, t.LastName, t.Qualification,
		t.Specialization, t.Phone, t.JoiningDate, t.ID)
	if err != nil {
		return wrap(err, "update teacher")
	}
	return checkAffected(res, "update teacher")
}

// DeleteTeacher removes the profile and its login in one transaction. Timetable and
// homework rows go with it; classes and departments lose the reference.
func DeleteTeacher(db *sqlx.DB, id int64) error {
	tx, err := db.Beginx()
	if err != nil {
		return wrap(err, "begin delete teacher")
	}
	defer tx.Rollback()

	var userID int64
	if err := tx.Get(&userID, `SELECT user_id FROM teachers WHERE id = $1 FOR UPDATE`, id); err != nil {
		return wrap(err, "lock teacher")
	}
	if _, err := tx.Exec(`DELETE FROM teachers WHERE id = $1`, id); err != nil {
		return wrap(err, "delete teacher")
	}
	if _, err := tx.Exec(`DELETE FROM users WHERE id = $1`, userID); err != nil {
		return wrap(err, "delete teacher user")
	}
	return wrap(tx.Commit(), "commit delete teacher")
}

// TeacherClasses lists the classes a teacher may record attendance and marks for:
// any class they teach on the timetable plus any they are class teacher of.
func TeacherClasses(db sqlx.Queryer, teacherID int64) ([]models.Class, error) {
	query := classSelect + `
		WHERE c.class_teacher_id = $1
			OR c.id IN (SELECT class_id FROM timetable WHERE teacher_id = $1)
		ORDER BY c.grade, c.section`
	classes := []models.Class{}
	if err := sqlx.Select(db, &classes, query, teacherID); err != nil {
		return nil, wrap(err, "teacher classes")
	}
	return classes, nil
}

func TeacherTeachesClass(db sqlx.Queryer, teacherID, classID int64) (bool, error) {
	var ok bool
	query := `
		SELECT EXISTS (SELECT 1 FROM classes WHERE id = $2 AND class_teacher_id = $1)
			OR EXISTS (SELECT 1 FROM timetable WHERE class_id = $2 AND teacher_id = $1)`
	if err := sqlx.Get(db, &ok, query, teacherID, classID); err != nil {
		return false, wrap(err, "check teacher class")
	}
	return ok, nil
}

// TeacherSubjects lists subjects the teacher has on the timetable for a class.
func TeacherSubjects(db sqlx.Queryer, teacherID, classID int64) ([]models.Subject, error) {
	query := subjectSelect + `
		WHERE s.id IN (SELECT subject_id FROM timetable WHERE teacher_id = $1 AND class_id = $2)
		ORDER BY s.name`
	subjects := []models.Subject{}
	if err := sqlx.Select(db, &subjects, query, teacherID, classID); err != nil {
		return nil, wrap(err, "teacher subjects")
	}
	return subjects, nil
}
