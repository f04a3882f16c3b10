package database

import (
	"github.com/jmoiron/sqlx"

	"campusdesk/app/models"
)

const classSelect = `
	SELECT c.id, c.grade, c.section, c.department_id, c.class_teacher_id,
		d.name AS department_name,
		t.first_name || ' ' || t.last_name AS class_teacher_name,
		(SELECT COUNT(*) FROM students s WHERE s.class_id = c.id) AS student_count
	FROM classes c
	LEFT JOIN departments d ON d.id = c.department_id
	LEFT JOIN teachers t ON t.id = c.class_teacher_id`

func ListClasses(db sqlx.Queryer) ([]models.Class, error) {
	classes := []models.Class{}
	if err := sqlx.Select(db, &classes, classSelect+` ORDER BY c.grade, c.section`); err != nil {
		return nil, wrap(err, "list classes")
	}
	return classes, nil
}

func GetClassByID(db sqlx.Queryer, id int64) (*models.Class, error) {
	var c models.Class
	if err := sqlx.Get(db, &c, classSelect+` WHERE c.id = $1`, id); err != nil {
		return nil, wrap(err, "get class")
	}
	return &c, nil
}

func CreateClass(db sqlx.Queryer, c *models.Class) error {
	query := `
		INSERT INTO classes (grade, section, department_id, class_teacher_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	return wrap(db.QueryRowx(query, c.Grade, c.Section, c.DepartmentID, c.ClassTeacherID).Scan(&c.ID), "create class")
}

func UpdateClass(db sqlx.Execer, c *models.Class) error {
	query := `UPDATE classes SET grade = $1, section = $2, department_id = $3, class_teacher_id = $4 WHERE id = $5`
	res, err := db.Exec(query, c.Grade, c.Section, c.DepartmentID, c.ClassTeacherID, c.ID)
	if err != nil {
		return wrap(err, "update class")
	}
	return checkAffected(res, "update class")
}

// DeleteClass unassigns the class's students; timetable and homework rows cascade.
func DeleteClass(db sqlx.Execer, id int64) error {
	res, err := db.Exec(`DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return wrap(err, "delete class")
	}
	return checkAffected(res, "delete class")
}

const subjectSelect = `
	SELECT s.id, s.name, s.code, s.department_id, d.name AS department_name
	FROM subjects s
	LEFT JOIN departments d ON d.id = s.department_id`

func ListSubjects(db sqlx.Queryer) ([]models.Subject, error) {
	subjects := []models.Subject{}
	if err := sqlx.Select(db, &subjects, subjectSelect+` ORDER BY s.code`); err != nil {
		return nil, wrap(err, "list subjects")
	}
	return subjects, nil
}

func GetSubjectByID(db sqlx.Queryer, id int64) (*models.Subject, error) {
	var s models.Subject
	if err := sqlx.Get(db, &s, subjectSelect+` WHERE s.id = $1`, id); err != nil {
		return nil, wrap(err, "get subject")
	}
	return &s, nil
}

func CreateSubject(db sqlx.Queryer, s *models.Subject) error {
	query := `INSERT INTO subjects (name, code, department_id) VALUES ($1, $2, $3) RETURNING id`
	return wrap(db.QueryRowx(query, s.Name, s.Code, s.DepartmentID).Scan(&s.ID), "create subject")
}

func UpdateSubject(db sqlx.Execer, s *models.Subject) error {
	res, err := db.Exec(`UPDATE subjects SET name = $1, code = $2, department_id = $3 WHERE id = $4`,
		s.Name, s.Code, s.DepartmentID, s.ID)
	if err != nil {
		return wrap(err, "update subject")
	}
	return checkAffected(res, "update subject")
}

func DeleteSubject(db sqlx.Execer, id int64) error {
	res, err := db.Exec(`DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return wrap(err, "delete subject")
	}
	return checkAffected(res, "delete subject")
}

const departmentSelect = `
	SELECT d.id, d.name, d.code, d.description, d.head_teacher_id, d.created_at,
		t.first_name || ' ' || t.last_name AS head_teacher_name
	FROM departments d
	LEFT JOIN teachers t ON t.id = d.head_teacher_id`

func ListDepartments(db sqlx.Queryer) ([]models.Department, error) {
	departments := []models.Department{}
	if err := sqlx.Select(db, &departments, departmentSelect+` ORDER BY d.name`); err != nil {
		return nil, wrap(err, "list departments")
	}
	return departments, nil
}

func GetDepartmentByID(db sqlx.Queryer, id int64) (*models.Department, error) {
	var d models.Department
	if err := sqlx.Get(db, &d, departmentSelect+` WHERE d.id = $1`, id); err != nil {
		return nil, wrap(err, "get department")
	}
	return &d, nil
}

func CreateDepartment(db sqlx.Queryer, d *models.Department) error {
	query := `
		INSERT INTO departments (name, code, description, head_teacher_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err := db.QueryRowx(query, d.Name, d.Code, d.Description, d.HeadTeacherID).Scan(&d.ID, &d.CreatedAt)
	return wrap(err, "create department")
}

func UpdateDepartment(db sqlx.Execer, d *models.Department) error {
	res, err := db.Exec(`UPDATE departments SET name = $1, code = $2, description = $3, head_teacher_id = $4 WHERE id = $5`,
		d.Name, d.Code, d.Description, d.HeadTeacherID, d.ID)
	if err != nil {
		return wrap(err, "update department")
	}
	return checkAffected(res, "update department")
}

// DeleteDepartment detaches classes, subjects, teachers and students that pointed at it.
func DeleteDepartment(db sqlx.Execer, id int64) error {
	res, err := db.Exec(`DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return wrap(err, "delete department")
	}
	return checkAffected(res, "delete department")
}
