package school

import "strings"

// Role is the closed set of caller roles the engine understands. Free-text
// group names are resolved into a Role once at the API boundary and passed
// down as a typed capability; validators never compare role strings.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
	RoleUnknown Role = ""
)

// roleAliases maps the legacy free-text group names (Spanish and English) onto
// the closed enumeration. Matching is case-insensitive.
var roleAliases = map[string]Role{}

func init() {
	register := func(role Role, names ...string) {
		for _, n := range names {
			roleAliases[strings.ToLower(n)] = role
		}
	}

	register(RoleAdmin,
		"administrator", "administrators", "admin", "superadministrator", "superuser",
		"manager", "managers", "coordinator", "coordinators", "responsible",
	)
	register(RoleTeacher,
		"profesor", "profesores", "maestro", "maestros", "docente", "docentes",
		"instructor", "instructores", "educador", "educadores",
		"teacher", "teachers", "instructors", "educator", "educators",
		"professor", "professors", "lecturer", "lecturers",
	)
	register(RoleStudent,
		"alumno", "alumnos", "estudiante", "estudiantes", "pupilo", "pupilos",
		"discente", "discentes", "novato", "novatos",
		"student", "students", "pupil", "pupils", "learner", "learners",
		"trainee", "trainees", "novice", "novices",
	)
	register(RoleTutor,
		"tutor", "tutores", "encargado", "encargados", "padre", "padres",
		"guardián", "guardianes", "responsables", "apoderado", "apoderados",
		"representante", "representantes", "cuidador", "cuidadores",
		"guardian", "guardians", "caretaker", "caregivers", "parent", "parents",
		"custodian", "custodians", "sponsor", "mentor",
	)
}

// ResolveRole maps a group name onto the closed Role set. Unrecognized names
// resolve to RoleUnknown.
func ResolveRole(groupName string) Role {
	if role, ok := roleAliases[strings.ToLower(strings.TrimSpace(groupName))]; ok {
		return role
	}
	return RoleUnknown
}
