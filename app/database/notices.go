package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"campusdesk/app/models"
)

const announcementSelect = `
	SELECT a.id, a.title, a.content, a.priority, a.target_role, a.created_by, a.created_at,
		a.expires_at, a.is_active, u.username AS author_name
	FROM announcements a
	LEFT JOIN users u ON u.id = a.created_by`

func ListAnnouncements(db sqlx.Queryer) ([]models.Announcement, error) {
	items := []models.Announcement{}
	if err := sqlx.Select(db, &items, announcementSelect+` ORDER BY a.created_at DESC`); err != nil {
		return nil, wrap(err, "list announcements")
	}
	return items, nil
}

// VisibleAnnouncements returns active, unexpired announcements for an audience,
// most urgent first.
func VisibleAnnouncements(db sqlx.Queryer, audience models.Audience, now time.Time, limit int) ([]models.Announcement, error) {
	query := announcementSelect + `
		WHERE a.is_active
			AND (a.expires_at IS NULL OR a.expires_at > $1)
			AND (a.target_role = 'all' OR a.target_role = $2)
		ORDER BY CASE a.priority
				WHEN 'urgent' THEN 0 WHEN 'high' THEN 1 WHEN 'normal' THEN 2 ELSE 3
			END, a.created_at DESC`
	args := []interface{}{now, audience}
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	items := []models.Announcement{}
	if err := sqlx.Select(db, &items, query, args...); err != nil {
		return nil, wrap(err, "visible announcements")
	}
	return items, nil
}

func GetAnnouncementByID(db sqlx.Queryer, id int64) (*models.Announcement, error) {
	var a models.Announcement
	if err := sqlx.Get(db, &a, announcementSelect+` WHERE a.id = $1`, id); err != nil {
		return nil, wrap(err, "get announcement")
	}
	return &a, nil
}

func CreateAnnouncement(db sqlx.Queryer, a *models.Announcement) error {
	query := `
		INSERT INTO announcements (title, content, priority, target_role, created_by, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	err := db.QueryRowx(query, a.Title, a.Content, a.Priority, a.TargetRole, a.CreatedBy, a.ExpiresAt, a.IsActive).
		Scan(&a.ID, &a.CreatedAt)
	return wrap(err, "create announcement")
}

func UpdateAnnouncement(db sqlx.Execer, a *models.Announcement) error {
	res, err := db.Exec(`
		UPDATE announcements SET title = $1, content = $2, priority = $3, target_role = $4,
			expires_at = $5, is_active = $6
		WHERE id = $7`,
		a.Title, a.Content, a.Priority, a.TargetRole, a.ExpiresAt, a.IsActive, a.ID)
	if err != nil {
		return wrap(err, "update announcement")
	}
	return checkAffected(res, "update announcement")
}

func DeleteAnnouncement(db sqlx.Execer, id int64) error {
	res, err := db.Exec(`DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return wrap(err, "delete announcement")
	}
	return checkAffected(res, "delete announcement")
}

const eventColumns = `id, title, description, event_type, start_date, end_date, all_day, color, created_by, target_role`

func ListEvents(db sqlx.Queryer) ([]models.Event, error) {
	events := []models.Event{}
	if err := sqlx.Select(db, &events, `SELECT `+eventColumns+` FROM events ORDER BY start_date`); err != nil {
		return nil, wrap(err, "list events")
	}
	return events, nil
}

// UpcomingEvents lists events for an audience that have not finished before from.
func UpcomingEvents(db sqlx.Queryer, audience models.Audience, from time.Time, limit int) ([]models.Event, error) {
	query := `
		SELECT ` + eventColumns + ` FROM events
		WHERE COALESCE(end_date, start_date) >= $1
			AND (target_role = 'all' OR target_role = $2)
		ORDER BY start_date
		LIMIT $3`
	events := []models.Event{}
	if err := sqlx.Select(db, &events, query, from, audience, limit); err != nil {
		return nil, wrap(err, "upcoming events")
	}
	return events, nil
}

func CreateEvent(db sqlx.Queryer, e *models.Event) error {
	if e.Color == "" {
		e.Color = models.DefaultEventColor
	}
	query := `
		INSERT INTO events (title, description, event_type, start_date, end_date, all_day, color, created_by, target_role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := db.QueryRowx(query, e.Title, e.Description, e.EventType, e.StartDate, e.EndDate, e.AllDay,
		e.Color, e.CreatedBy, e.TargetRole).Scan(&e.ID)
	return wrap(err, "create event")
}

func DeleteEvent(db sqlx.Execer, id int64) error {
	res, err := db.Exec(`DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return wrap(err, "delete event")
	}
	return checkAffected(res, "delete event")
}

const homeworkSelect = `
	SELECT h.id, h.class_id, h.subject_id, h.teacher_id, h.title, h.description, h.due_date,
		h.assigned_date, c.grade || '-' || c.section AS class_name, sub.name AS subject_name,
		t.first_name || ' ' || t.last_name AS teacher_name
	FROM homework h
	JOIN classes c ON c.id = h.class_id
	JOIN subjects sub ON sub.id = h.subject_id
	JOIN teachers t ON t.id = h.teacher_id`

type HomeworkFilter struct {
	ClassID   int64
	TeacherID int64
	DueFrom   *time.Time
	Limit     int
}

func ListHomework(db sqlx.Queryer, f HomeworkFilter) ([]models.Homework, error) {
	query := homeworkSelect + ` WHERE 1=1`
	var args []interface{}
	if f.ClassID > 0 {
		args = append(args, f.ClassID)
		query += fmt.Sprintf(" AND h.class_id = $%d", len(args))
	}
	if f.TeacherID > 0 {
		args = append(args, f.TeacherID)
		query += fmt.Sprintf(" AND h.teacher_id = $%d", len(args))
	}
	if f.DueFrom != nil {
		args = append(args, f.DueFrom.Format("2006-01-02"))
		query += fmt.Sprintf(" AND h.due_date >= $%d", len(args))
		query += " ORDER BY h.due_date"
	} else {
		query += " ORDER BY h.due_date DESC"
	}
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	items := []models.Homework{}
	if err := sqlx.Select(db, &items, query, args...); err != nil {
		return nil, wrap(err, "list homework")
	}
	return items, nil
}

func CreateHomework(db sqlx.Queryer, h *models.Homework) error {
	query := `
		INSERT INTO homework (class_id, subject_id, teacher_id, title, description, due_date, assigned_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := db.QueryRowx(query, h.ClassID, h.SubjectID, h.TeacherID, h.Title, h.Description,
		h.DueDate, h.AssignedDate).Scan(&h.ID)
	return wrap(err, "create homework")
}

// DeleteHomework removes an assignment; a teacherID above zero limits it to that teacher's own.
func DeleteHomework(db sqlx.Execer, id, teacherID int64) error {
	query := `DELETE FROM homework WHERE id = $1`
	args := []interface{}{id}
	if teacherID > 0 {
		query += ` AND teacher_id = $2`
		args = append(args, teacherID)
	}
	res, err := db.Exec(query, args...)
	if err != nil {
		return wrap(err, "delete homework")
	}
	return checkAffected(res, "delete homework")
}

// PendingHomeworkCount counts a teacher's assignments not yet due.
func PendingHomeworkCount(db sqlx.Queryer, teacherID int64, today time.Time) (int, error) {
	var n int
	err := sqlx.Get(db, &n, `SELECT COUNT(*) FROM homework WHERE teacher_id = $1 AND due_date >= $2`,
		teacherID, today.Format("2006-01-02"))
	return n, wrap(err, "pending homework count")
}
