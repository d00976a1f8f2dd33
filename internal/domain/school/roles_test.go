package school

import "testing"

func TestResolveRole(t *testing.T) {
	tests := []struct {
		groupName string
		want      Role
	}{
		{"admin", RoleAdmin},
		{"Administrators", RoleAdmin},
		{"COORDINATOR", RoleAdmin},
		{"profesor", RoleTeacher},
		{"Docentes", RoleTeacher},
		{"teacher", RoleTeacher},
		{"alumnos", RoleStudent},
		{"Estudiante", RoleStudent},
		{"student", RoleStudent},
		{"apoderado", RoleTutor},
		{"guardián", RoleTutor},
		{"parents", RoleTutor},
		{"  tutor  ", RoleTutor},
		{"janitor", RoleUnknown},
		{"", RoleUnknown},
	}

	for _, tt := range tests {
		if got := ResolveRole(tt.groupName); got != tt.want {
			t.Errorf("ResolveRole(%q) = %q, want %q", tt.groupName, got, tt.want)
		}
	}
}
