package authz

// registry is the static permission matrix: role -> action -> allowed.
// Every assignable role lists every action explicitly so a new action has
// to be considered for each role. Lookups on unknown roles or actions
// return false; the matrix never grants by default.
var registry = map[Role]map[Action]bool{
	RoleProjectAdmin: {
		ActionCreateProject: true,
		ActionUpdateProject: true, // creator-only, re-checked by the evaluator
		ActionDeleteProject: true, // creator-only, re-checked by the evaluator
		ActionViewProject:   true,

		ActionAddMember:        true,
		ActionRemoveMember:     true,
		ActionUpdateMemberRole: true,
		ActionViewMembers:      true,

		ActionCreateTask: true,
		ActionUpdateTask: true,
		ActionDeleteTask: true,
		ActionAssignTask: true,
		ActionViewTask:   true,

		ActionCreateNote: true,
		ActionUpdateNote: true,
		ActionDeleteNote: true,
		ActionViewNote:   true,

		ActionCreateSubtask: true,
		ActionUpdateSubtask: true,
		ActionDeleteSubtask: true,
		ActionViewSubtask:   true,
	},
	RoleAdmin: {
		ActionCreateProject: true,
		ActionUpdateProject: false, // admins are never project creators
		ActionDeleteProject: false,
		ActionViewProject:   true,

		ActionAddMember:        true,
		ActionRemoveMember:     true,
		ActionUpdateMemberRole: true,
		ActionViewMembers:      true,

		ActionCreateTask: true,
		ActionUpdateTask: true,
		ActionDeleteTask: true,
		ActionAssignTask: true,
		ActionViewTask:   true,

		ActionCreateNote: true,
		ActionUpdateNote: true,
		ActionDeleteNote: true,
		ActionViewNote:   true,

		ActionCreateSubtask: true,
		ActionUpdateSubtask: true,
		ActionDeleteSubtask: true,
		ActionViewSubtask:   true,
	},
	RoleMember: {
		ActionCreateProject: true,
		ActionUpdateProject: false,
		ActionDeleteProject: false,
		ActionViewProject:   true,

		ActionAddMember:        false,
		ActionRemoveMember:     false,
		ActionUpdateMemberRole: false,
		ActionViewMembers:      true,

		ActionCreateTask: true,
		ActionUpdateTask: true, // own or assigned tasks only, enforced by the evaluator
		ActionDeleteTask: true, // own tasks only, enforced by the evaluator
		ActionAssignTask: false,
		ActionViewTask:   true,

		ActionCreateNote: true,
		ActionUpdateNote: true, // own notes only, enforced by the evaluator
		ActionDeleteNote: true, // own notes only, enforced by the evaluator
		ActionViewNote:   true,

		ActionCreateSubtask: true,
		ActionUpdateSubtask: true,
		ActionDeleteSubtask: true,
		ActionViewSubtask:   true,
	},
}

// Allows reports whether the registry grants action to role. Unknown roles
// and unknown actions are denied.
func Allows(role Role, action Action) bool {
	perms, ok := registry[role]
	if !ok {
		return false
	}
	return perms[action]
}
