package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/models"
	"campusdesk/app/routes/auth"
)

const (
	noticeLimit     = 5
	recentMarks     = 5
	studentWindow   = 30
	adminTrendDays  = 7
	recentAdmission = 5
)

func AdminDashboard(c *fiber.Ctx, db *sqlx.DB) error {
	today := helpers.Today()

	counts, err := database.GetDashboardCounts(db, today)
	if err != nil {
		return helpers.StoreError(c, err, "/auth/login")
	}
	fees, err := database.FeeCounts(db)
	if err != nil {
		return helpers.StoreError(c, err, "/auth/login")
	}
	trend, err := database.AttendanceTrend(db, today.AddDate(0, 0, -(adminTrendDays-1)), today)
	if err != nil {
		return helpers.StoreError(c, err, "/auth/login")
	}
	recent, err := database.RecentStudents(db, recentAdmission)
	if err != nil {
		return helpers.StoreError(c, err, "/auth/login")
	}
	notices, err := database.VisibleAnnouncements(db, models.AudienceAdmin, helpers.Now(), noticeLimit)
	if err != nil {
		return helpers.StoreError(c, err, "/auth/login")
	}

	return helpers.Render(c, "admin/dashboard", "Dashboard", "dashboard", fiber.Map{
		"counts":         counts,
		"fees":           fees,
		"trend":          newTrendChart(trend),
		"recentStudents": recent,
		"announcements":  notices,
	})
}

func TeacherDashboard(c *fiber.Ctx, db *sqlx.DB) error {
	teacher, err := auth.CurrentTeacher(c, db)
	if err != nil {
		return err
	}
	today := helpers.Today()

	schedule, err := database.TeacherTimetable(db, teacher.ID, today.Weekday().String())
	if err != nil {
		return helpers.StoreError(c, err, "/auth/login")
	}
	classes, err := database.TeacherClasses(db, teacher.ID)
	if err != nil {
		return helpers.StoreError(c, err, "/auth/login")
	}
	pending, err := database.PendingHomeworkCount(db, teacher.ID, today)
	if err != nil {
		return helpers.StoreError(c, err, "/auth/login")
	}
	notices, err := database.VisibleAnnouncements(db, models.AudienceTeachers, helpers.Now(), noticeLimit)
	if err != nil {
		return helpers.StoreError(c, err, "/auth/login")
	}
	events, err := database.UpcomingEvents(db, models.AudienceTeachers, today, noticeLimit)
	if err != nil {
		return helpers.StoreError(c, err, "/auth/login")
	}

	return helpers.Render(c, "teacher/dashboard", "Dashboard", "dashboard", fiber.Map{
		"teacher":         teacher,
		"todaySchedule":   schedule,
		"classes":         classes,
		"pendingHomework": pending,
		"announcements":   notices,
		"events":          events,
	})
}

func StudentDashboard(c *fiber.Ctx, db *sqlx.DB) error {
	student, err := auth.CurrentStudent(c, db)
	if err != nil {
		return err
	}
	today := helpers.Today()

	stats, err := database.StudentAttendanceStats(db, student.ID, today.AddDate(0, 0, -studentWindow))
	if err != nil {
		return helpers.StoreError(c, err, "/auth/login")
	}
	fees, err := database.StudentFees(db, student.ID)
	if err != nil {
		return helpers.StoreError(c, err, "/auth/login")
	}
	marks, err := database.RecentStudentMarks(db, student.ID, recentMarks)
	if err != nil {
		return helpers.StoreError(c, err, "/auth/login")
	}
	var homework []models.Homework
	if student.ClassID.Valid {
		homework, err = database.ListHomework(db, database.HomeworkFilter{
			ClassID: student.ClassID.Int64,
			DueFrom: &today,
			Limit:   noticeLimit,
		})
		if err != nil {
			return helpers.StoreError(c, err, "/auth/login")
		}
	}
	notices, err := database.VisibleAnnouncements(db, models.AudienceStudents, helpers.Now(), noticeLimit)
	if err != nil {
		return helpers.StoreError(c, err, "/auth/login")
	}
	events, err := database.UpcomingEvents(db, models.AudienceStudents, today, noticeLimit)
	if err != nil {
		return helpers.StoreError(c, err, "/auth/login")
	}

	return helpers.Render(c, "student/dashboard", "Dashboard", "dashboard", fiber.Map{
		"student":          student,
		"attendance":       stats,
		"attendanceRate":   models.Round2(stats.Percentage()),
		"pendingFees":      models.SummarizeFees(fees).DueCount,
		"recentMarks":      marks,
		"upcomingHomework": homework,
		"announcements":    notices,
		"events":           events,
	})
}
