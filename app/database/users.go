package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"campusdesk/app/models"
)

const userColumns = `u.id, u.username, u.email, u.password_hash, u.role, u.is_approved, u.created_at`

func GetUserByID(db sqlx.Queryer, id int64) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`
	if err := sqlx.Get(db, &user, query, id); err != nil {
		return nil, wrap(err, "get user")
	}
	return &user, nil
}

// GetUserByLogin matches the identifier case-insensitively against username or email.
func GetUserByLogin(db sqlx.Queryer, identifier string) (*models.User, error) {
	var user models.User
	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE LOWER(u.username) = LOWER($1) OR LOWER(u.email) = LOWER($1)
		ORDER BY u.id
		LIMIT 1`
	if err := sqlx.Get(db, &user, query, strings.TrimSpace(identifier)); err != nil {
		return nil, wrap(err, "get user by login")
	}
	return &user, nil
}

// UserConflicts reports which of username/email are already taken.
func UserConflicts(db sqlx.Queryer, username, email string) (usernameTaken, emailTaken bool, err error) {
	query := `
		SELECT
			EXISTS (SELECT 1 FROM users WHERE LOWER(username) = LOWER($1)),
			EXISTS (SELECT 1 FROM users WHERE LOWER(email) = LOWER($2))`
	if err = db.QueryRowx(query, username, email).Scan(&usernameTaken, &emailTaken); err != nil {
		return false, false, wrap(err, "check user conflicts")
	}
	return usernameTaken, emailTaken, nil
}

func CreateUser(db sqlx.Queryer, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, role, is_approved)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := db.QueryRowx(query, user.Username, strings.ToLower(user.Email), user.PasswordHash, user.Role, user.IsApproved).
		Scan(&user.ID, &user.CreatedAt)
	return wrap(err, "create user")
}

// RegisterUser creates an unapproved account and its provisional profile in one transaction.
// The profile is named after the username and placed in the General department when it exists.
func RegisterUser(db *sqlx.DB, user *models.User) error {
	if !user.Role.SelfRegistrable() {
		return fmt.Errorf("role %q cannot self-register", user.Role)
	}
	user.IsApproved = false

	tx, err := db.Beginx()
	if err != nil {
		return wrap(err, "begin registration")
	}
	defer tx.Rollback()

	if err := CreateUser(tx, user); err != nil {
		return err
	}

	deptID, err := generalDepartmentID(tx)
	if err != nil {
		return err
	}

	today := time.Now()
	switch user.Role {
	case models.RoleStudent:
		placeholder := fmt.Sprintf("PENDING-%d", user.ID)
		student := &models.Student{
			UserID:        user.ID,
			DepartmentID:  deptID,
			FirstName:     user.Username,
			LastName:      "(Pending)",
			RollNo:        placeholder,
			EnrollmentNo:  placeholder,
			AdmissionDate: today,
		}
		if err := insertStudent(tx, student); err != nil {
			return err
		}
	case models.RoleTeacher:
		teacher := &models.Teacher{
			UserID:       user.ID,
			DepartmentID: deptID,
			FirstName:    user.Username,
			LastName:     "(Pending)",
			JoiningDate:  today,
		}
		if err := insertTeacher(tx, teacher); err != nil {
			return err
		}
	}

	return wrap(tx.Commit(), "commit registration")
}

func generalDepartmentID(db sqlx.Queryer) (null.Int64, error) {
	var id int64
	err := sqlx.Get(db, &id, `SELECT id FROM departments WHERE code = $1`, models.GeneralDepartmentCode)
	if err == sql.ErrNoRows {
		return null.Int64{}, nil
	}
	if err != nil {
		return null.Int64{}, wrap(err, "find general department")
	}
	return null.Int64From(id), nil
}

type UserFilter struct {
	Role     string
	Approval string // "pending", "approved" or empty for all
}

func ListUsers(db sqlx.Queryer, f UserFilter) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE 1=1`
	var args []interface{}
	if f.Role != "" {
		args = append(args, f.Role)
		query += fmt.Sprintf(" AND u.role = $%d", len(args))
	}
	switch f.Approval {
	case "pending":
		query += " AND NOT u.is_approved"
	case "approved":
		query += " AND u.is_approved"
	}
	query += " ORDER BY u.is_approved, u.created_at DESC"

	users := []models.User{}
	if err := sqlx.Select(db, &users, query, args...); err != nil {
		return nil, wrap(err, "list users")
	}
	return users, nil
}

func SetUserApproval(db sqlx.Execer, id int64, approved bool) error {
	res, err := db.Exec(`UPDATE users SET is_approved = $1 WHERE id = $2`, approved, id)
	if err != nil {
		return wrap(err, "set user approval")
	}
	return checkAffected(res, "set user approval")
}

func UpdateUserPassword(db sqlx.Execer, id int64, hash string) error {
	res, err := db.Exec(`UPDATE users SET password_hash = $1 WHERE id = $2`, hash, id)
	if err != nil {
		return wrap(err, "update password")
	}
	return checkAffected(res, "update password")
}

func UpdateUserEmail(db sqlx.Execer, id int64, email string) error {
	res, err := db.Exec(`UPDATE users SET email = $1 WHERE id = $2`, strings.ToLower(email), id)
	if err != nil {
		return wrap(err, "update email")
	}
	return checkAffected(res, "update email")
}
