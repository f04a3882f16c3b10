package services

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"campusdesk/app/logger"
)

// StartScheduler registers the background jobs and starts the cron runner.
// The caller stops it on shutdown.
func StartScheduler(db *sqlx.DB, overdueSpec string, loc *time.Location) (*cron.Cron, error) {
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	_, err := c.AddFunc(overdueSpec, func() {
		if _, err := SweepOverdue(db, time.Now().In(loc)); err != nil {
			logger.L().Error("overdue sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, errors.Wrapf(err, "schedule overdue sweep %q", overdueSpec)
	}

	c.Start()
	logger.L().Info("scheduler started", zap.String("overdue", overdueSpec), zap.String("timezone", loc.String()))
	return c, nil
}
