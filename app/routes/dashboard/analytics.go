package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/models"
)

const (
	topStudents       = 10
	departmentWeek    = 7
	defaultWindow     = 30
	maxWindow         = 365
	analyticsFallback = "/admin/dashboard"
)

func AttendanceAnalytics(c *fiber.Ctx, db *sqlx.DB) error {
	days := windowDays(c.Query("days"))
	today := helpers.Today()

	trend, err := database.AttendanceTrend(db, today.AddDate(0, 0, -(days-1)), today)
	if err != nil {
		return helpers.StoreError(c, err, analyticsFallback)
	}
	classes, err := database.ClassAttendanceOnDay(db, today)
	if err != nil {
		return helpers.StoreError(c, err, analyticsFallback)
	}
	counts, err := database.GetDashboardCounts(db, today)
	if err != nil {
		return helpers.StoreError(c, err, analyticsFallback)
	}

	return helpers.Render(c, "admin/analytics_attendance", "Attendance Analytics", "analytics", fiber.Map{
		"days":          days,
		"trend":         newTrendChart(trend),
		"daily":         trend,
		"classes":       classes,
		"totalStudents": counts.Students,
		"presentToday":  counts.PresentToday,
	})
}

func PerformanceAnalytics(c *fiber.Ctx, db *sqlx.DB) error {
	subjects, err := database.SubjectAverages(db)
	if err != nil {
		return helpers.StoreError(c, err, analyticsFallback)
	}
	top, err := database.TopStudents(db, topStudents)
	if err != nil {
		return helpers.StoreError(c, err, analyticsFallback)
	}
	percentages, err := database.MarkPercentages(db)
	if err != nil {
		return helpers.StoreError(c, err, analyticsFallback)
	}

	return helpers.Render(c, "admin/analytics_performance", "Performance Analytics", "analytics", fiber.Map{
		"subjects":     subjects,
		"topStudents":  top,
		"distribution": models.GradeDistribution(percentages),
		"gradeBands":   models.GradeBands,
	})
}

func DepartmentAnalytics(c *fiber.Ctx, db *sqlx.DB) error {
	report, err := database.DepartmentReport(db, helpers.Today().AddDate(0, 0, -departmentWeek))
	if err != nil {
		return helpers.StoreError(c, err, analyticsFallback)
	}
	return helpers.Render(c, "admin/analytics_departments", "Department Analytics", "analytics", fiber.Map{
		"departments": report,
	})
}
