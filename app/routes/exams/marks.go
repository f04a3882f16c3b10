package exams

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/logger"
	"campusdesk/app/models"
	"campusdesk/app/routes/auth"
)

const defaultMaxScore = 100

// selection is the (class, subject, exam) triple a marks sheet is keyed by.
type selection struct {
	ClassID   int64
	SubjectID int64
	ExamID    int64
}

func (s selection) complete() bool {
	return s.ClassID > 0 && s.SubjectID > 0 && s.ExamID > 0
}

func (s selection) query(base string) string {
	return fmt.Sprintf("%s?class_id=%d&subject_id=%d&exam_id=%d", base, s.ClassID, s.SubjectID, s.ExamID)
}

// scope is what the signed-in user may enter marks for. Admins see everything.
type scope struct {
	teacher *models.Teacher
}

func scopeFor(c *fiber.Ctx, db *sqlx.DB) (scope, error) {
	if auth.CurrentUser(c).IsAdmin() {
		return scope{}, nil
	}
	t, err := auth.CurrentTeacher(c, db)
	if err != nil {
		return scope{}, err
	}
	return scope{teacher: t}, nil
}

func (s scope) classes(db *sqlx.DB) ([]models.Class, error) {
	if s.teacher == nil {
		return database.ListClasses(db)
	}
	return database.TeacherClasses(db, s.teacher.ID)
}

// subjects a class teacher may mark every subject of their class; other teachers only
// what they teach there.
func (s scope) subjects(db *sqlx.DB, classID int64) ([]models.Subject, error) {
	if s.teacher == nil || classID == 0 {
		return database.ListSubjects(db)
	}
	class, err := database.GetClassByID(db, classID)
	if err != nil {
		return nil, err
	}
	if class.ClassTeacherID.Valid && class.ClassTeacherID.Int64 == s.teacher.ID {
		return database.ListSubjects(db)
	}
	return database.TeacherSubjects(db, s.teacher.ID, classID)
}

func (s scope) allows(db *sqlx.DB, sel selection) (bool, error) {
	if s.teacher == nil {
		return true, nil
	}
	subjects, err := s.subjects(db, sel.ClassID)
	if err != nil {
		return false, err
	}
	for _, sub := range subjects {
		if sub.ID == sel.SubjectID {
			return database.TeacherTeachesClass(db, s.teacher.ID, sel.ClassID)
		}
	}
	return false, nil
}

func readSelection(get func(string) string) selection {
	parse := func(key string) int64 {
		n, err := strconv.ParseInt(strings.TrimSpace(get(key)), 10, 64)
		if err != nil || n < 0 {
			return 0
		}
		return n
	}
	return selection{ClassID: parse("class_id"), SubjectID: parse("subject_id"), ExamID: parse("exam_id")}
}

func MarksEntryPage(c *fiber.Ctx, db *sqlx.DB, base string) error {
	sc, err := scopeFor(c, db)
	if err != nil {
		return err
	}
	sel := readSelection(func(k string) string { return c.Query(k) })

	classes, err := sc.classes(db)
	if err != nil {
		return helpers.StoreError(c, err, auth.CurrentUser(c).HomePath())
	}
	exams, err := database.ListExams(db)
	if err != nil {
		return helpers.StoreError(c, err, auth.CurrentUser(c).HomePath())
	}
	data := fiber.Map{
		"classes":   classes,
		"exams":     exams,
		"selection": sel,
		"action":    base,
		"maxScore":  defaultMaxScore,
	}

	if sel.ClassID > 0 {
		subjects, err := sc.subjects(db, sel.ClassID)
		if err != nil {
			return helpers.StoreError(c, err, base)
		}
		data["subjects"] = subjects
	}

	if sel.complete() {
		ok, err := sc.allows(db, sel)
		if err != nil {
			return helpers.StoreError(c, err, base)
		}
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "You do not teach this subject in this class.")
		}
		roster, err := database.ClassRoster(db, sel.ClassID)
		if err != nil {
			return helpers.StoreError(c, err, base)
		}
		existing, err := database.ExistingMarks(db, sel.ClassID, sel.ExamID, sel.SubjectID)
		if err != nil {
			return helpers.StoreError(c, err, base)
		}
		for _, m := range existing {
			data["maxScore"] = m.MaxScore
			break
		}
		data["students"] = roster
		data["marks"] = existing
	}

	return helpers.Render(c, "shared/marks_entry", "Marks Entry", "marks", data)
}

// parseScores reads score_<student_id> for every student on the roster. Blank scores are
// skipped; anything unparsable fails the whole sheet.
func parseScores(get func(string) string, roster []models.Student) ([]models.MarkEntry, error) {
	var entries []models.MarkEntry
	for _, s := range roster {
		raw := strings.TrimSpace(get(fmt.Sprintf("score_%d", s.ID)))
		if raw == "" {
			continue
		}
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
			return nil, fmt.Errorf("invalid score %q for %s", raw, s.FullName())
		}
		entries = append(entries, models.MarkEntry{StudentID: s.ID, ScoreObtained: score})
	}
	return entries, nil
}

func SaveMarksAPI(c *fiber.Ctx, db *sqlx.DB, base string) error {
	sc, err := scopeFor(c, db)
	if err != nil {
		return err
	}
	sel := readSelection(func(k string) string { return c.FormValue(k) })
	if !sel.complete() {
		return helpers.FlashRedirect(c, "danger", "Choose a class, subject and exam first.", base)
	}
	back := sel.query(base)

	ok, err := sc.allows(db, sel)
	if err != nil {
		return helpers.StoreError(c, err, back)
	}
	if !ok {
		return fiber.NewError(fiber.StatusForbidden, "You do not teach this subject in this class.")
	}

	maxScore, err := helpers.FormFloat(c, "max_score", defaultMaxScore)
	if err != nil {
		return helpers.FlashRedirect(c, "danger", "Max score must be a number.", back)
	}
	roster, err := database.ClassRoster(db, sel.ClassID)
	if err != nil {
		return helpers.StoreError(c, err, back)
	}
	entries, err := parseScores(func(k string) string { return c.FormValue(k) }, roster)
	if err != nil {
		return helpers.FlashRedirect(c, "danger", err.Error()+". No marks were saved.", back)
	}
	if len(entries) == 0 {
		return helpers.FlashRedirect(c, "info", "No scores entered.", back)
	}

	if err := database.UpsertMarks(db, sel.ExamID, sel.SubjectID, maxScore, entries); err != nil {
		return helpers.StoreError(c, err, back)
	}

	logger.L().Info("marks saved",
		zap.Int64("class_id", sel.ClassID),
		zap.Int64("subject_id", sel.SubjectID),
		zap.Int64("exam_id", sel.ExamID),
		zap.Int("entries", len(entries)),
		zap.Int64("by", auth.CurrentUser(c).ID),
	)
	return helpers.FlashRedirect(c, "success", fmt.Sprintf("Saved %d marks.", len(entries)), back)
}
