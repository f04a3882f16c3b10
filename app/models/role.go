package models

// Role gates access to a route namespace.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// SelfRegistrable reports whether the role may be chosen on the public registration form.
func (r Role) SelfRegistrable() bool {
	return r == RoleTeacher || r == RoleStudent
}

func (r Role) HomePath() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleTeacher:
		return "/teacher/dashboard"
	case RoleStudent:
		return "/student/dashboard"
	}
	return "/auth/login"
}

// Audience is the announcement/event target value that matches the role.
func (r Role) Audience() Audience {
	switch r {
	case RoleTeacher:
		return AudienceTeachers
	case RoleStudent:
		return AudienceStudents
	}
	return AudienceAdmin
}

// Permission is one row of the read-only role matrix shown to admins.
type Permission struct {
	Name        string
	Description string
	Roles       map[Role]bool
}

func (p Permission) Allows(r Role) bool { return p.Roles[r] }

var Permissions = []Permission{
	{"manage_users", "Approve, suspend and list accounts", map[Role]bool{RoleAdmin: true}},
	{"manage_students", "Create, edit and delete students", map[Role]bool{RoleAdmin: true}},
	{"manage_teachers", "Create, edit and delete teachers", map[Role]bool{RoleAdmin: true}},
	{"manage_academics", "Classes, subjects, departments and exams", map[Role]bool{RoleAdmin: true}},
	{"mark_attendance", "Record daily attendance", map[Role]bool{RoleAdmin: true, RoleTeacher: true}},
	{"enter_marks", "Record exam marks", map[Role]bool{RoleAdmin: true, RoleTeacher: true}},
	{"assign_homework", "Assign homework to a class", map[Role]bool{RoleAdmin: true, RoleTeacher: true}},
	{"manage_fees", "Create fees and record payments", map[Role]bool{RoleAdmin: true}},
	{"pay_fees", "Pay own fees and download receipts", map[Role]bool{RoleStudent: true}},
	{"manage_library", "Books, issues and returns", map[Role]bool{RoleAdmin: true}},
	{"view_analytics", "Attendance, performance and department reports", map[Role]bool{RoleAdmin: true}},
	{"view_own_records", "Own attendance, marks, timetable and homework", map[Role]bool{RoleStudent: true}},
}
