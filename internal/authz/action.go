package authz

// Action names one guarded operation. The set is closed; the registry
// denies anything it does not know about.
type Action string

const (
	ActionCreateProject Action = "project.create"
	ActionUpdateProject Action = "project.update"
	ActionDeleteProject Action = "project.delete"
	ActionViewProject   Action = "project.view"

	ActionAddMember        Action = "member.add"
	ActionRemoveMember     Action = "member.remove"
	ActionUpdateMemberRole Action = "member.update_role"
	ActionViewMembers      Action = "member.view"

	ActionCreateTask Action = "task.create"
	ActionUpdateTask Action = "task.update"
	ActionDeleteTask Action = "task.delete"
	ActionAssignTask Action = "task.assign"
	ActionViewTask   Action = "task.view"

	ActionCreateNote Action = "note.create"
	ActionUpdateNote Action = "note.update"
	ActionDeleteNote Action = "note.delete"
	ActionViewNote   Action = "note.view"

	ActionCreateSubtask Action = "subtask.create"
	ActionUpdateSubtask Action = "subtask.update"
	ActionDeleteSubtask Action = "subtask.delete"
	ActionViewSubtask   Action = "subtask.view"
)

func (a Action) String() string { return string(a) }
