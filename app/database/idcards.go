package database

import (
	"time"

	"github.com/jmoiron/sqlx"

	"campusdesk/app/models"
)

const idCardSelect = `
	SELECT ic.id, ic.student_id, ic.card_number, ic.issue_date, ic.expiry_date, ic.is_active,
		s.first_name || ' ' || s.last_name AS student_name, s.roll_no, s.photo_file,
		COALESCE(c.grade || '-' || c.section, '') AS class_name
	FROM id_cards ic
	JOIN students s ON s.id = ic.student_id
	LEFT JOIN classes c ON c.id = s.class_id`

func ListIDCards(db sqlx.Queryer) ([]models.IDCard, error) {
	cards := []models.IDCard{}
	if err := sqlx.Select(db, &cards, idCardSelect+` ORDER BY ic.issue_date DESC, ic.id DESC`); err != nil {
		return nil, wrap(err, "list id cards")
	}
	return cards, nil
}

func GetIDCardByID(db sqlx.Queryer, id int64) (*models.IDCard, error) {
	var card models.IDCard
	if err := sqlx.Get(db, &card, idCardSelect+` WHERE ic.id = $1`, id); err != nil {
		return nil, wrap(err, "get id card")
	}
	return &card, nil
}

// IssueIDCard deactivates the student's previous cards and issues a new one valid for a year.
func IssueIDCard(db *sqlx.DB, studentID int64, issued time.Time) (*models.IDCard, error) {
	tx, err := db.Beginx()
	if err != nil {
		return nil, wrap(err, "begin issue id card")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE id_cards SET is_active = FALSE WHERE student_id = $1 AND is_active`, studentID); err != nil {
		return nil, wrap(err, "deactivate previous cards")
	}

	card := &models.IDCard{
		StudentID:  studentID,
		CardNumber: models.NewCardNumber(issued),
		IssueDate:  issued,
		ExpiryDate: issued.AddDate(1, 0, 0),
		IsActive:   true,
	}
	err = tx.QueryRowx(`
		INSERT INTO id_cards (student_id, card_number, issue_date, expiry_date, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id`,
		card.StudentID, card.CardNumber, card.IssueDate.Format("2006-01-02"), card.ExpiryDate.Format("2006-01-02")).
		Scan(&card.ID)
	if err != nil {
		return nil, wrap(err, "insert id card")
	}
	if err := tx.Commit(); err != nil {
		return nil, wrap(err, "commit issue id card")
	}
	return card, nil
}

func DeactivateIDCard(db sqlx.Execer, id int64) error {
	res, err := db.Exec(`UPDATE id_cards SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return wrap(err, "deactivate id card")
	}
	return checkAffected(res, "deactivate id card")
}
