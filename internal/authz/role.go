// Package authz implements the project-scoped authorization core: the role
// registry, role and scope resolution, permission evaluation and the gin
// gate middleware. It is the only place in the backend where an
// action-versus-role decision is made; handlers downstream trust the role
// and entities the gate attaches to the request context.
package authz

// Role is a user's effective role within a single project. The set is
// closed; anything outside it resolves to RoleNone and is denied.
type Role string

const (
	// RoleNone means the user has no relationship to the project.
	RoleNone Role = ""
	// RoleProjectAdmin is implicit for the project creator. Full control
	// over the project itself, restricted to projects the user created.
	RoleProjectAdmin Role = "project_admin"
	// RoleAdmin has full operational control (tasks, notes, members) but
	// cannot update or delete the project record.
	RoleAdmin Role = "admin"
	// RoleMember can create tasks, notes and subtasks but only modify the
	// ones they own or are assigned to.
	RoleMember Role = "member"
)

// Roles lists the assignable roles in privilege order. RoleNone is not
// assignable and therefore not included.
var Roles = []Role{RoleProjectAdmin, RoleAdmin, RoleMember}

// Valid reports whether r is one of the assignable roles.
func (r Role) Valid() bool {
	switch r {
	case RoleProjectAdmin, RoleAdmin, RoleMember:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
