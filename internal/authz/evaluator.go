package authz

import "github.com/liushuo/teamboard/backend/internal/models"

// Ownership carries the entities a carve-out needs to inspect. Fields are
// only read for the role/action combinations documented on Evaluate.
type Ownership struct {
	Project *models.Project
	Task    *models.Task
	Note    *models.Note
}

// Evaluate decides whether actingUserID, holding role in the target
// project, may perform action. A nil return means allow; otherwise the
// error is a *DenyError carrying a reason code.
//
// The base decision comes from the registry. Three carve-outs tighten it:
//
//   - members may update a task only when they created it or are assigned
//     to it, and delete it only when they created it;
//   - members may update or delete only their own notes;
//   - project admins may update or delete only projects they personally
//     created. Role resolution already guarantees this, but the check is
//     repeated here in case a role crossed a boundary it should not have.
//
// Unknown actions are denied outright.
func Evaluate(role Role, action Action, actingUserID uint, own Ownership) error {
	if !knownAction(action) {
		return deny(ReasonUnknownAction, "unknown action "+action.String())
	}

	if !Allows(role, action) {
		return deny(ReasonInsufficientRole,
			"role "+role.String()+" may not perform "+action.String())
	}

	if role == RoleMember {
		switch action {
		case ActionUpdateTask:
			if own.Task == nil || !own.Task.IsOwnedBy(actingUserID) {
				return deny(ReasonNotTaskOwner, "task can only be modified by its creator or assignee")
			}
		case ActionDeleteTask:
			if own.Task == nil || own.Task.AssignedBy != actingUserID {
				return deny(ReasonNotTaskOwner, "task can only be deleted by its creator")
			}
		case ActionUpdateNote, ActionDeleteNote:
			if own.Note == nil || own.Note.CreatedBy != actingUserID {
				return deny(ReasonNotNoteOwner, "note can only be modified by its author")
			}
		}
	}

	if role == RoleProjectAdmin {
		switch action {
		case ActionUpdateProject, ActionDeleteProject:
			if own.Project == nil || own.Project.CreatedBy != actingUserID {
				return deny(ReasonNotProjectCreator, "project can only be modified by its creator")
			}
		}
	}

	return nil
}

// CheckSelfTarget applies the self-action guards. These hold for every
// role: a user may not add themselves to a project (the creator is already
// enrolled), remove themselves, change their own role, or assign a task to
// themselves. Each violation carries its own reason code.
func CheckSelfTarget(action Action, actingUserID, targetUserID uint) error {
	if actingUserID != targetUserID {
		return nil
	}
	switch action {
	case ActionAddMember:
		return deny(ReasonCannotAddSelf, "cannot add yourself as a member")
	case ActionRemoveMember:
		return deny(ReasonCannotRemoveSelf, "cannot remove yourself from the project")
	case ActionUpdateMemberRole:
		return deny(ReasonCannotModifyOwn, "cannot change your own role")
	case ActionAssignTask:
		return deny(ReasonCannotAssignSelf, "cannot assign a task to yourself")
	}
	return nil
}

func knownAction(action Action) bool {
	switch action {
	case ActionCreateProject, ActionUpdateProject, ActionDeleteProject, ActionViewProject,
		ActionAddMember, ActionRemoveMember, ActionUpdateMemberRole, ActionViewMembers,
		ActionCreateTask, ActionUpdateTask, ActionDeleteTask, ActionAssignTask, ActionViewTask,
		ActionCreateNote, ActionUpdateNote, ActionDeleteNote, ActionViewNote,
		ActionCreateSubtask, ActionUpdateSubtask, ActionDeleteSubtask, ActionViewSubtask:
		return true
	}
	return false
}
