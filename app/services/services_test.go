package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return sqlx.NewDb(raw, "postgres"), mock
}

func TestSweepOverdueUsesStartOfDay(t *testing.T) {
	db, mock := newMock(t)
	now := time.Date(2026, 3, 14, 17, 45, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE fees SET status = 'Overdue'`).WithArgs("2026-03-14").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`UPDATE book_issues SET status = 'overdue'`).WithArgs("2026-03-14").
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := SweepOverdue(db, now)
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Fees: 3, Loans: 1}, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSweepOverdueStopsOnFeeError(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(`UPDATE fees`).WillReturnError(errors.New("connection reset"))

	_, err := SweepOverdue(db, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mark overdue fees")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStartSchedulerRejectsBadSpec(t *testing.T) {
	db, _ := newMock(t)

	_, err := StartScheduler(db, "not a cron line", time.UTC)
	assert.Error(t, err)
}

func TestStartSchedulerRegistersSweep(t *testing.T) {
	db, _ := newMock(t)

	c, err := StartScheduler(db, "10 0 * * *", time.UTC)
	require.NoError(t, err)
	defer c.Stop()
	assert.Len(t, c.Entries(), 1)
}
