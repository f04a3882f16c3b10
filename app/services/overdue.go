package services

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"campusdesk/app/database"
	"campusdesk/app/logger"
)

// SweepResult counts the rows flipped to overdue by one run.
type SweepResult struct {
	Fees  int64
	Loans int64
}

// SweepOverdue marks pending fees and issued books past their due date as overdue.
// Both updates are idempotent, so a missed or repeated run is harmless.
func SweepOverdue(db *sqlx.DB, now time.Time) (SweepResult, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var res SweepResult
	fees, err := database.MarkOverdueFees(db, today)
	if err != nil {
		return res, errors.Wrap(err, "mark overdue fees")
	}
	res.Fees = fees

	loans, err := database.MarkOverdueIssues(db, today)
	if err != nil {
		return res, errors.Wrap(err, "mark overdue loans")
	}
	res.Loans = loans

	logger.L().Info("overdue sweep finished",
		zap.Time("date", today),
		zap.Int64("fees", res.Fees),
		zap.Int64("loans", res.Loans),
	)
	return res, nil
}
