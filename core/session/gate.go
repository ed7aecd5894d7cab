package session

import "github.com/rohitbokare05/Project-Connect-IITR/core/user"

// Client route paths. The gate is the single place that knows which role a
// path requires.
const (
	PathLogin            = "/"
	PathStudentDashboard = "/student/dashboard"
	PathStudentProfile   = "/student/profile"
	PathFacultyDashboard = "/faculty/dashboard"
	PathFacultyProfile   = "/faculty/profile"
	PathCreateProject    = "/faculty/create-project"
)

// requiredRoles maps each known path to the role it requires; PathLogin is
// public.
var requiredRoles = map[string]user.Role{
	PathStudentDashboard: user.RoleStudent,
	PathStudentProfile:   user.RoleStudent,
	PathFacultyDashboard: user.RoleFaculty,
	PathFacultyProfile:   user.RoleFaculty,
	PathCreateProject:    user.RoleFaculty,
}

// DashboardPath returns the role's home screen.
func DashboardPath(role user.Role) string {
	switch role {
	case user.RoleStudent:
		return PathStudentDashboard
	case user.RoleFaculty:
		return PathFacultyDashboard
	}
	return PathLogin
}

// Resolve is the access gate: a pure function from the session state and the
// requested path to the path the client should land on. The requested path
// itself is returned when access is allowed.
//
//   - unauthenticated + protected path -> login
//   - authenticated + wrong role -> own dashboard
//   - authenticated + root/unknown path -> own dashboard
//   - unauthenticated + unknown path -> login
func Resolve(authenticated bool, role user.Role, requested string) string {
	required, known := requiredRoles[requested]

	if !authenticated {
		return PathLogin
	}

	if requested == PathLogin || !known {
		return DashboardPath(role)
	}
	if role != required {
		return DashboardPath(role)
	}
	return requested
}

// Allowed reports whether the session may stay on the requested path.
func Allowed(authenticated bool, role user.Role, requested string) bool {
	return Resolve(authenticated, role, requested) == requested
}
