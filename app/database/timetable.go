package database

import (
	"fmt"
	"math"

	"github.com/jmoiron/sqlx"

	"campusdesk/app/models"
)

const timetableSelect = `
	SELECT tt.id, tt.class_id, tt.subject_id, tt.teacher_id, tt.day_of_week,
		to_char(tt.start_time, 'HH24:MI') AS start_time,
		to_char(tt.end_time, 'HH24:MI') AS end_time,
		c.grade || '-' || c.section AS class_name,
		sub.name AS subject_name,
		t.first_name || ' ' || t.last_name AS teacher_name
	FROM timetable tt
	JOIN classes c ON c.id = tt.class_id
	JOIN subjects sub ON sub.id = tt.subject_id
	JOIN teachers t ON t.id = tt.teacher_id`

// Advisory lock namespaces; keys are (namespace, id).
const (
	lockTimetableClass   int32 = 1001
	lockTimetableTeacher int32 = 1002
)

func lockKey(id int64) int32 {
	return int32(id % math.MaxInt32)
}

// CreateTimetableEntry adds a slot after checking it does not overlap another slot of
// the same class or the same teacher on that day.
func CreateTimetableEntry(db *sqlx.DB, e *models.TimeTable) error {
	if err := models.ValidateSlot(e.DayOfWeek, e.StartTime, e.EndTime); err != nil {
		return err
	}

	tx, err := db.Beginx()
	if err != nil {
		return wrap(err, "begin timetable entry")
	}
	defer tx.Rollback()

	// Class lock before teacher lock.
	if _, err := tx.Exec(`SELECT pg_advisory_xact_lock($1, $2)`, lockTimetableClass, lockKey(e.ClassID)); err != nil {
		return wrap(err, "lock class timetable")
	}
	if _, err := tx.Exec(`SELECT pg_advisory_xact_lock($1, $2)`, lockTimetableTeacher, lockKey(e.TeacherID)); err != nil {
		return wrap(err, "lock teacher timetable")
	}

	var conflict bool
	err = tx.Get(&conflict, `
		SELECT EXISTS (
			SELECT 1 FROM timetable
			WHERE day_of_week = $1
				AND (class_id = $2 OR teacher_id = $3)
				AND start_time < $5::time
				AND end_time > $4::time
		)`, e.DayOfWeek, e.ClassID, e.TeacherID, e.StartTime, e.EndTime)
	if err != nil {
		return wrap(err, "check timetable conflict")
	}
	if conflict {
		return ErrTimetableConflict
	}

	err = tx.QueryRowx(`
		INSERT INTO timetable (class_id, subject_id, teacher_id, day_of_week, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		e.ClassID, e.SubjectID, e.TeacherID, e.DayOfWeek, e.StartTime, e.EndTime).Scan(&e.ID)
	if err != nil {
		return wrap(err, "insert timetable entry")
	}
	return wrap(tx.Commit(), "commit timetable entry")
}

func DeleteTimetableEntry(db sqlx.Execer, id int64) error {
	res, err := db.Exec(`DELETE FROM timetable WHERE id = $1`, id)
	if err != nil {
		return wrap(err, "delete timetable entry")
	}
	return checkAffected(res, "delete timetable entry")
}

func ClassTimetable(db sqlx.Queryer, classID int64) ([]models.TimeTable, error) {
	entries := []models.TimeTable{}
	query := timetableSelect + ` WHERE tt.class_id = $1 ORDER BY tt.start_time`
	if err := sqlx.Select(db, &entries, query, classID); err != nil {
		return nil, wrap(err, "class timetable")
	}
	return entries, nil
}

// TeacherTimetable lists a teacher's slots, limited to one weekday when day is set.
func TeacherTimetable(db sqlx.Queryer, teacherID int64, day string) ([]models.TimeTable, error) {
	query := timetableSelect + ` WHERE tt.teacher_id = $1`
	args := []interface{}{teacherID}
	if day != "" {
		args = append(args, day)
		query += fmt.Sprintf(" AND tt.day_of_week = $%d", len(args))
	}
	query += " ORDER BY tt.start_time"

	entries := []models.TimeTable{}
	if err := sqlx.Select(db, &entries, query, args...); err != nil {
		return nil, wrap(err, "teacher timetable")
	}
	return entries, nil
}
