package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"campusdesk/app/models"
)

func ListExams(db sqlx.Queryer) ([]models.Exam, error) {
	exams := []models.Exam{}
	if err := sqlx.Select(db, &exams, `SELECT id, name, date FROM exams ORDER BY date DESC, name`); err != nil {
		return nil, wrap(err, "list exams")
	}
	return exams, nil
}

func GetExamByID(db sqlx.Queryer, id int64) (*models.Exam, error) {
	var e models.Exam
	if err := sqlx.Get(db, &e, `SELECT id, name, date FROM exams WHERE id = $1`, id); err != nil {
		return nil, wrap(err, "get exam")
	}
	return &e, nil
}

func CreateExam(db sqlx.Queryer, e *models.Exam) error {
	err := db.QueryRowx(`INSERT INTO exams (name, date) VALUES ($1, $2) RETURNING id`, e.Name, e.Date).Scan(&e.ID)
	return wrap(err, "create exam")
}

func UpdateExam(db sqlx.Execer, e *models.Exam) error {
	res, err := db.Exec(`UPDATE exams SET name = $1, date = $2 WHERE id = $3`, e.Name, e.Date, e.ID)
	if err != nil {
		return wrap(err, "update exam")
	}
	return checkAffected(res, "update exam")
}

func DeleteExam(db sqlx.Execer, id int64) error {
	res, err := db.Exec(`DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		return wrap(err, "delete exam")
	}
	return checkAffected(res, "delete exam")
}

// UpsertMarks stores a batch of scores for one exam and subject against a shared max
// score. Every score is validated before anything is written and the batch runs in a
// single transaction, so a bad row leaves the existing marks untouched.
func UpsertMarks(db *sqlx.DB, examID, subjectID int64, maxScore float64, entries []models.MarkEntry) error {
	for _, e := range entries {
		if err := models.ValidateScore(e.ScoreObtained, maxScore); err != nil {
			return fmt.Errorf("student %d: %w", e.StudentID, err)
		}
	}

	tx, err := db.Beginx()
	if err != nil {
		return wrap(err, "begin marks batch")
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`
		INSERT INTO marks (student_id, exam_id, subject_id, score_obtained, max_score)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (student_id, exam_id, subject_id)
		DO UPDATE SET score_obtained = EXCLUDED.score_obtained, max_score = EXCLUDED.max_score`)
	if err != nil {
		return wrap(err, "prepare marks upsert")
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(e.StudentID, examID, subjectID, e.ScoreObtained, maxScore); err != nil {
			return wrap(err, fmt.Sprintf("upsert mark for student %d", e.StudentID))
		}
	}

	return wrap(tx.Commit(), "commit marks batch")
}

const markSelect = `
	SELECT m.id, m.student_id, m.exam_id, m.subject_id, m.score_obtained, m.max_score,
		e.name AS exam_name, sub.name AS subject_name
	FROM marks m
	JOIN exams e ON e.id = m.exam_id
	JOIN subjects sub ON sub.id = m.subject_id`

// ExistingMarks maps student id to score for a class's exam/subject sheet.
func ExistingMarks(db sqlx.Queryer, classID, examID, subjectID int64) (map[int64]models.Mark, error) {
	query := markSelect + `
		JOIN students s ON s.id = m.student_id
		WHERE s.class_id = $1 AND m.exam_id = $2 AND m.subject_id = $3`
	marks := []models.Mark{}
	if err := sqlx.Select(db, &marks, query, classID, examID, subjectID); err != nil {
		return nil, wrap(err, "existing marks")
	}
	out := make(map[int64]models.Mark, len(marks))
	for _, m := range marks {
		out[m.StudentID] = m
	}
	return out, nil
}

func StudentMarks(db sqlx.Queryer, studentID int64) ([]models.Mark, error) {
	marks := []models.Mark{}
	query := markSelect + ` WHERE m.student_id = $1 ORDER BY e.date DESC, e.id DESC, sub.name`
	if err := sqlx.Select(db, &marks, query, studentID); err != nil {
		return nil, wrap(err, "student marks")
	}
	return marks, nil
}

func RecentStudentMarks(db sqlx.Queryer, studentID int64, limit int) ([]models.Mark, error) {
	marks := []models.Mark{}
	query := markSelect + ` WHERE m.student_id = $1 ORDER BY m.id DESC LIMIT $2`
	if err := sqlx.Select(db, &marks, query, studentID, limit); err != nil {
		return nil, wrap(err, "recent student marks")
	}
	return marks, nil
}

// ExamsByID indexes exams for grouping a student's marks.
func ExamsByID(db sqlx.Queryer) (map[int64]models.Exam, error) {
	exams, err := ListExams(db)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]models.Exam, len(exams))
	for _, e := range exams {
		out[e.ID] = e
	}
	return out, nil
}
