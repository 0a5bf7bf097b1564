package authz

import (
	"testing"

	"github.com/liushuo/teamboard/backend/internal/models"
)

func denyReason(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatal("expected a deny, got nil")
	}
	d := AsDeny(err)
	if d == nil {
		t.Fatalf("expected *DenyError, got %T: %v", err, err)
	}
	return d.Reason
}

func TestEvaluate_UnknownActionDenied(t *testing.T) {
	err := Evaluate(RoleProjectAdmin, Action("project.transfer"), 1, Ownership{})
	if got := denyReason(t, err); got != ReasonUnknownAction {
		t.Errorf("reason = %s, want %s", got, ReasonUnknownAction)
	}
}

func TestEvaluate_InsufficientRole(t *testing.T) {
	err := Evaluate(RoleMember, ActionAddMember, 1, Ownership{})
	if got := denyReason(t, err); got != ReasonInsufficientRole {
		t.Errorf("reason = %s, want %s", got, ReasonInsufficientRole)
	}

	err = Evaluate(RoleAdmin, ActionDeleteProject, 1, Ownership{})
	if got := denyReason(t, err); got != ReasonInsufficientRole {
		t.Errorf("reason = %s, want %s", got, ReasonInsufficientRole)
	}
}

func TestEvaluate_MemberTaskOwnership(t *testing.T) {
	task := &models.Task{AssignedBy: 10, AssignedTo: 20}

	// Creator may update and delete.
	if err := Evaluate(RoleMember, ActionUpdateTask, 10, Ownership{Task: task}); err != nil {
		t.Errorf("creator update: unexpected deny: %v", err)
	}
	if err := Evaluate(RoleMember, ActionDeleteTask, 10, Ownership{Task: task}); err != nil {
		t.Errorf("creator delete: unexpected deny: %v", err)
	}

	// Assignee may update but not delete.
	if err := Evaluate(RoleMember, ActionUpdateTask, 20, Ownership{Task: task}); err != nil {
		t.Errorf("assignee update: unexpected deny: %v", err)
	}
	err := Evaluate(RoleMember, ActionDeleteTask, 20, Ownership{Task: task})
	if got := denyReason(t, err); got != ReasonNotTaskOwner {
		t.Errorf("assignee delete reason = %s, want %s", got, ReasonNotTaskOwner)
	}

	// A third member may do neither.
	err = Evaluate(RoleMember, ActionUpdateTask, 30, Ownership{Task: task})
	if got := denyReason(t, err); got != ReasonNotTaskOwner {
		t.Errorf("outsider update reason = %s, want %s", got, ReasonNotTaskOwner)
	}
}

func TestEvaluate_AdminIgnoresTaskOwnership(t *testing.T) {
	task := &models.Task{AssignedBy: 10, AssignedTo: 20}

	if err := Evaluate(RoleAdmin, ActionUpdateTask, 99, Ownership{Task: task}); err != nil {
		t.Errorf("admin update: unexpected deny: %v", err)
	}
	if err := Evaluate(RoleAdmin, ActionDeleteTask, 99, Ownership{Task: task}); err != nil {
		t.Errorf("admin delete: unexpected deny: %v", err)
	}
}

func TestEvaluate_MemberNoteOwnership(t *testing.T) {
	note := &models.Note{CreatedBy: 10}

	if err := Evaluate(RoleMember, ActionUpdateNote, 10, Ownership{Note: note}); err != nil {
		t.Errorf("author update: unexpected deny: %v", err)
	}

	err := Evaluate(RoleMember, ActionDeleteNote, 20, Ownership{Note: note})
	if got := denyReason(t, err); got != ReasonNotNoteOwner {
		t.Errorf("reason = %s, want %s", got, ReasonNotNoteOwner)
	}
}

func TestEvaluate_ProjectAdminCreatorRecheck(t *testing.T) {
	project := &models.Project{CreatedBy: 10}

	if err := Evaluate(RoleProjectAdmin, ActionDeleteProject, 10, Ownership{Project: project}); err != nil {
		t.Errorf("creator delete: unexpected deny: %v", err)
	}

	// A project_admin role that somehow crossed a project boundary must
	// still fail the creator check.
	err := Evaluate(RoleProjectAdmin, ActionUpdateProject, 99, Ownership{Project: project})
	if got := denyReason(t, err); got != ReasonNotProjectCreator {
		t.Errorf("reason = %s, want %s", got, ReasonNotProjectCreator)
	}
}

func TestEvaluate_MissingOwnershipFailsClosed(t *testing.T) {
	if Evaluate(RoleMember, ActionUpdateTask, 10, Ownership{}) == nil {
		t.Error("member task update without a task should be denied")
	}
	if Evaluate(RoleMember, ActionDeleteNote, 10, Ownership{}) == nil {
		t.Error("member note delete without a note should be denied")
	}
	if Evaluate(RoleProjectAdmin, ActionDeleteProject, 10, Ownership{}) == nil {
		t.Error("project delete without a project should be denied")
	}
}

func TestCheckSelfTarget(t *testing.T) {
	tests := []struct {
		action Action
		reason string
	}{
		{ActionAddMember, ReasonCannotAddSelf},
		{ActionRemoveMember, ReasonCannotRemoveSelf},
		{ActionUpdateMemberRole, ReasonCannotModifyOwn},
		{ActionAssignTask, ReasonCannotAssignSelf},
	}

	for _, tt := range tests {
		err := CheckSelfTarget(tt.action, 7, 7)
		if got := denyReason(t, err); got != tt.reason {
			t.Errorf("%s: reason = %s, want %s", tt.action, got, tt.reason)
		}
		if err := CheckSelfTarget(tt.action, 7, 8); err != nil {
			t.Errorf("%s: different target should pass, got %v", tt.action, err)
		}
	}

	// Actions without a self guard are unaffected.
	if err := CheckSelfTarget(ActionUpdateTask, 7, 7); err != nil {
		t.Errorf("update task has no self guard, got %v", err)
	}
}
