package authz

import "testing"

func TestAllows_ProjectAdmin(t *testing.T) {
	allowed := []Action{
		ActionCreateProject, ActionUpdateProject, ActionDeleteProject, ActionViewProject,
		ActionAddMember, ActionRemoveMember, ActionUpdateMemberRole, ActionViewMembers,
		ActionCreateTask, ActionUpdateTask, ActionDeleteTask, ActionAssignTask, ActionViewTask,
		ActionCreateNote, ActionUpdateNote, ActionDeleteNote, ActionViewNote,
		ActionCreateSubtask, ActionUpdateSubtask, ActionDeleteSubtask, ActionViewSubtask,
	}
	for _, action := range allowed {
		if !Allows(RoleProjectAdmin, action) {
			t.Errorf("project_admin should be allowed %s", action)
		}
	}
}

func TestAllows_Admin(t *testing.T) {
	denied := []Action{ActionUpdateProject, ActionDeleteProject}
	for _, action := range denied {
		if Allows(RoleAdmin, action) {
			t.Errorf("admin should not be allowed %s", action)
		}
	}

	allowed := []Action{
		ActionViewProject,
		ActionAddMember, ActionRemoveMember, ActionUpdateMemberRole, ActionViewMembers,
		ActionCreateTask, ActionUpdateTask, ActionDeleteTask, ActionAssignTask,
		ActionCreateNote, ActionDeleteNote,
		ActionCreateSubtask, ActionDeleteSubtask,
	}
	for _, action := range allowed {
		if !Allows(RoleAdmin, action) {
			t.Errorf("admin should be allowed %s", action)
		}
	}
}

func TestAllows_Member(t *testing.T) {
	denied := []Action{
		ActionUpdateProject, ActionDeleteProject,
		ActionAddMember, ActionRemoveMember, ActionUpdateMemberRole,
		ActionAssignTask,
	}
	for _, action := range denied {
		if Allows(RoleMember, action) {
			t.Errorf("member should not be allowed %s", action)
		}
	}

	allowed := []Action{
		ActionCreateProject, ActionViewProject, ActionViewMembers,
		ActionCreateTask, ActionUpdateTask, ActionDeleteTask, ActionViewTask,
		ActionCreateNote, ActionUpdateNote, ActionDeleteNote, ActionViewNote,
		ActionCreateSubtask, ActionUpdateSubtask, ActionDeleteSubtask, ActionViewSubtask,
	}
	for _, action := range allowed {
		if !Allows(RoleMember, action) {
			t.Errorf("member should be allowed %s", action)
		}
	}
}

func TestAllows_FailsClosed(t *testing.T) {
	if Allows(RoleNone, ActionViewProject) {
		t.Error("no role should grant nothing")
	}
	if Allows(Role("owner"), ActionViewProject) {
		t.Error("unknown role should grant nothing")
	}
	if Allows(RoleProjectAdmin, Action("project.transfer")) {
		t.Error("unknown action should be denied even for project_admin")
	}
}

func TestRegistry_CoversEveryAction(t *testing.T) {
	all := []Action{
		ActionCreateProject, ActionUpdateProject, ActionDeleteProject, ActionViewProject,
		ActionAddMember, ActionRemoveMember, ActionUpdateMemberRole, ActionViewMembers,
		ActionCreateTask, ActionUpdateTask, ActionDeleteTask, ActionAssignTask, ActionViewTask,
		ActionCreateNote, ActionUpdateNote, ActionDeleteNote, ActionViewNote,
		ActionCreateSubtask, ActionUpdateSubtask, ActionDeleteSubtask, ActionViewSubtask,
	}

	for _, role := range Roles {
		perms, ok := registry[role]
		if !ok {
			t.Fatalf("role %s missing from registry", role)
		}
		for _, action := range all {
			if _, ok := perms[action]; !ok {
				t.Errorf("role %s has no explicit entry for %s", role, action)
			}
		}
		if len(perms) != len(all) {
			t.Errorf("role %s has %d entries, want %d", role, len(perms), len(all))
		}
	}
}
