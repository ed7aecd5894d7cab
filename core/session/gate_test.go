package session

import (
	"testing"

	"github.com/rohitbokare05/Project-Connect-IITR/core/user"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		authed    bool
		role      user.Role
		requested string
		want      string
	}{
		{name: "anonymous on login", requested: PathLogin, want: PathLogin},
		{name: "anonymous on student page", requested: PathStudentDashboard, want: PathLogin},
		{name: "anonymous on faculty page", requested: PathCreateProject, want: PathLogin},
		{name: "anonymous on unknown page", requested: "/whatever", want: PathLogin},

		{name: "student on login", authed: true, role: user.RoleStudent, requested: PathLogin, want: PathStudentDashboard},
		{name: "student on own dashboard", authed: true, role: user.RoleStudent, requested: PathStudentDashboard, want: PathStudentDashboard},
		{name: "student on own profile", authed: true, role: user.RoleStudent, requested: PathStudentProfile, want: PathStudentProfile},
		{name: "student on faculty page", authed: true, role: user.RoleStudent, requested: PathFacultyDashboard, want: PathStudentDashboard},
		{name: "student on create project", authed: true, role: user.RoleStudent, requested: PathCreateProject, want: PathStudentDashboard},
		{name: "student on unknown page", authed: true, role: user.RoleStudent, requested: "/whatever", want: PathStudentDashboard},

		{name: "faculty on login", authed: true, role: user.RoleFaculty, requested: PathLogin, want: PathFacultyDashboard},
		{name: "faculty on own dashboard", authed: true, role: user.RoleFaculty, requested: PathFacultyDashboard, want: PathFacultyDashboard},
		{name: "faculty on create project", authed: true, role: user.RoleFaculty, requested: PathCreateProject, want: PathCreateProject},
		{name: "faculty on student page", authed: true, role: user.RoleFaculty, requested: PathStudentProfile, want: PathFacultyDashboard},

		{name: "authed without role", authed: true, requested: PathStudentDashboard, want: PathLogin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.authed, tt.role, tt.requested); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
			wantAllowed := tt.want == tt.requested
			if got := Allowed(tt.authed, tt.role, tt.requested); got != wantAllowed {
				t.Errorf("Allowed() = %v, want %v", got, wantAllowed)
			}
		})
	}
}

func TestDashboardPath(t *testing.T) {
	if got := DashboardPath(user.RoleStudent); got != PathStudentDashboard {
		t.Errorf("DashboardPath(student) = %q", got)
	}
	if got := DashboardPath(user.RoleFaculty); got != PathFacultyDashboard {
		t.Errorf("DashboardPath(faculty) = %q", got)
	}
	if got := DashboardPath(""); got != PathLogin {
		t.Errorf("DashboardPath(none) = %q", got)
	}
}
