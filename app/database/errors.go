package database

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicate         = errors.New("record already exists")
	ErrInvalidReference  = errors.New("referenced record does not exist")
	ErrConstraint        = errors.New("value violates a data constraint")
	ErrNoCopiesAvailable = errors.New("no copies available")
	ErrAlreadyReturned   = errors.New("book already returned")
	ErrCopiesBelowIssued = errors.New("total copies cannot be less than copies on loan")
	ErrBookOnLoan        = errors.New("book has copies on loan")
	ErrTimetableConflict = errors.New("timetable slot overlaps an existing entry")
	ErrAlreadyPaid       = errors.New("fee already paid")
)

// Postgres error codes mapped onto the sentinels above.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNumericOutOfRange   = "22003"
	pgInvalidTextRep      = "22P02"
)

// wrap maps driver errors onto sentinels and annotates the rest.
func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return errors.Wrap(ErrNotFound, msg)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return errors.Wrapf(ErrDuplicate, "%s: %s", msg, pqErr.Constraint)
		case pgForeignKeyViolation:
			return errors.Wrapf(ErrInvalidReference, "%s: %s", msg, pqErr.Constraint)
		case pgCheckViolation, pgNumericOutOfRange, pgInvalidTextRep:
			return errors.Wrapf(ErrConstraint, "%s: %s", msg, pqErr.Constraint)
		}
	}
	return errors.Wrap(err, msg)
}

// checkAffected turns a zero-row write into ErrNotFound.
func checkAffected(res sql.Result, msg string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, msg)
	}
	if n == 0 {
		return errors.Wrap(ErrNotFound, msg)
	}
	return nil
}
