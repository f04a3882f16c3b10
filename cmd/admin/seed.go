package main

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/logger"
	"campusdesk/app/models"
	"campusdesk/app/routes/auth"
)

type demoAccount struct {
	Username string
	Password string
	Role     models.Role
}

var demoAccounts = []demoAccount{
	{"admin", "admin123", models.RoleAdmin},
	{"teacher", "teacher123", models.RoleTeacher},
	{"student", "student123", models.RoleStudent},
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the General department, class 10-A and the demo accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.RunMigrations(db); err != nil {
				return err
			}
			return seed(db)
		},
	}
}

// seed is safe to run repeatedly; anything that already exists is left alone.
func seed(db *sqlx.DB) error {
	dept, err := ensureDepartment(db)
	if err != nil {
		return err
	}
	class, err := ensureClass(db, dept.ID)
	if err != nil {
		return err
	}

	for _, acct := range demoAccounts {
		_, err := database.GetUserByLogin(db, acct.Username)
		if err == nil {
			logger.L().Info("demo account exists", zap.String("username", acct.Username))
			continue
		}
		if !errors.Is(err, database.ErrNotFound) {
			return err
		}

		hash, err := auth.HashPassword(acct.Password)
		if err != nil {
			return err
		}
		user := &models.User{
			Username:     acct.Username,
			Email:        acct.Username + "@campusdesk.local",
			PasswordHash: hash,
			Role:         acct.Role,
			IsApproved:   true,
		}
		profile := profile{
			First:        acct.Username,
			Last:         "Demo",
			DepartmentID: null.Int64From(dept.ID),
			ClassID:      null.Int64From(class.ID),
		}
		if err := createAccount(db, user, profile); err != nil {
			return err
		}
		logger.L().Info("demo account created", zap.String("username", acct.Username), zap.String("role", string(acct.Role)))
	}
	return nil
}

func ensureDepartment(db *sqlx.DB) (*models.Department, error) {
	list, err := database.ListDepartments(db)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Code == models.GeneralDepartmentCode {
			return &list[i], nil
		}
	}
	dept := &models.Department{Name: "General", Code: models.GeneralDepartmentCode}
	if err := database.CreateDepartment(db, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

func ensureClass(db *sqlx.DB, departmentID int64) (*models.Class, error) {
	list, err := database.ListClasses(db)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Grade == "10" && list[i].Section == "A" {
			return &list[i], nil
		}
	}
	class := &models.Class{Grade: "10", Section: "A", DepartmentID: null.Int64From(departmentID)}
	if err := database.CreateClass(db, class); err != nil {
		return nil, fmt.Errorf("create class 10-A: %w", err)
	}
	return class, nil
}

// profile carries the fields a teacher or student profile needs beyond the account.
type profile struct {
	First        string
	Last         string
	DepartmentID null.Int64
	ClassID      null.Int64
}

// createAccount stores the user and, for teachers and students, the matching profile.
func createAccount(db *sqlx.DB, user *models.User, p profile) error {
	today := helpers.Today()
	switch user.Role {
	case models.RoleTeacher:
		return database.CreateTeacher(db, user, &models.Teacher{
			DepartmentID: p.DepartmentID,
			FirstName:    p.First,
			LastName:     p.Last,
			JoiningDate:  today,
		})
	case models.RoleStudent:
		number := rollNumber(user.Username)
		return database.CreateStudent(db, user, &models.Student{
			DepartmentID:  p.DepartmentID,
			ClassID:       p.ClassID,
			FirstName:     p.First,
			LastName:      p.Last,
			RollNo:        number,
			EnrollmentNo:  number,
			AdmissionDate: today,
			PhotoFile:     models.DefaultPhoto,
		})
	default:
		return database.CreateUser(db, user)
	}
}

func rollNumber(username string) string {
	return "CLI-" + username
}
