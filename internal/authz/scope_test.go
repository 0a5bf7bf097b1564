package authz

import (
	"errors"
	"testing"

	"github.com/liushuo/teamboard/backend/internal/models"
	"gorm.io/gorm"
)

func seedTask(t *testing.T, db *gorm.DB, projectID uint) *models.Task {
	t.Helper()
	task := &models.Task{ProjectID: projectID, Title: "ship it", Status: "todo", Priority: "medium", AssignedTo: 2, AssignedBy: 1}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

func TestScopeResolve_Project(t *testing.T) {
	db := testDB(t)

	scope, err := NewScopeResolver(db).Resolve(Target{ProjectID: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scope.ProjectID != 7 {
		t.Errorf("project id = %d, want 7", scope.ProjectID)
	}
}

func TestScopeResolve_TaskCarriesProject(t *testing.T) {
	db := testDB(t)
	project := seedProject(t, db, 1)
	task := seedTask(t, db, project.ID)

	scope, err := NewScopeResolver(db).Resolve(Target{TaskID: task.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scope.ProjectID != project.ID {
		t.Errorf("project id = %d, want %d", scope.ProjectID, project.ID)
	}
	if scope.Task == nil || scope.Task.ID != task.ID {
		t.Error("task should be attached to the scope")
	}
}

func TestScopeResolve_SubtaskTwoHops(t *testing.T) {
	db := testDB(t)
	project := seedProject(t, db, 1)
	task := seedTask(t, db, project.ID)

	subtask := &models.Subtask{TaskID: task.ID, Title: "step one", CreatedBy: 1}
	if err := db.Create(subtask).Error; err != nil {
		t.Fatalf("seed subtask: %v", err)
	}

	scope, err := NewScopeResolver(db).Resolve(Target{SubtaskID: subtask.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scope.ProjectID != project.ID {
		t.Errorf("project id = %d, want %d", scope.ProjectID, project.ID)
	}
	if scope.Task == nil || scope.Subtask == nil {
		t.Error("both parent task and subtask should be attached")
	}
}

func TestScopeResolve_ProjectNote(t *testing.T) {
	db := testDB(t)
	project := seedProject(t, db, 1)

	note := &models.Note{ProjectID: project.ID, Body: "remember", CreatedBy: 1}
	if err := db.Create(note).Error; err != nil {
		t.Fatalf("seed note: %v", err)
	}

	scope, err := NewScopeResolver(db).Resolve(Target{NoteID: note.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scope.ProjectID != project.ID {
		t.Errorf("project id = %d, want %d", scope.ProjectID, project.ID)
	}
	if scope.Task != nil {
		t.Error("project-level note should not attach a task")
	}
}

func TestScopeResolve_TaskNoteFollowsTask(t *testing.T) {
	db := testDB(t)
	project := seedProject(t, db, 1)
	task := seedTask(t, db, project.ID)

	// ProjectID deliberately wrong on the row; the task wins.
	note := &models.Note{ProjectID: 999, TaskID: &task.ID, Body: "attached", CreatedBy: 1}
	if err := db.Create(note).Error; err != nil {
		t.Fatalf("seed note: %v", err)
	}

	scope, err := NewScopeResolver(db).Resolve(Target{NoteID: note.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scope.ProjectID != project.ID {
		t.Errorf("project id = %d, want %d (from task)", scope.ProjectID, project.ID)
	}
	if scope.Task == nil {
		t.Error("task-scoped note should attach its task")
	}
}

func TestScopeResolve_Member(t *testing.T) {
	db := testDB(t)
	project := seedProject(t, db, 1)
	member := seedMember(t, db, project.ID, 2, "member")

	scope, err := NewScopeResolver(db).Resolve(Target{MemberID: member.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scope.ProjectID != project.ID {
		t.Errorf("project id = %d, want %d", scope.ProjectID, project.ID)
	}
	if scope.Member == nil || scope.Member.UserID != 2 {
		t.Error("membership row should be attached")
	}
}

func TestScopeResolve_DanglingReferences(t *testing.T) {
	db := testDB(t)

	targets := []Target{
		{TaskID: 404},
		{SubtaskID: 404},
		{NoteID: 404},
		{MemberID: 404},
	}
	for _, target := range targets {
		_, err := NewScopeResolver(db).Resolve(target)
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			t.Errorf("target %+v: err = %v, want *NotFoundError", target, err)
		}
	}
}

func TestScopeResolve_EmptyTargetIsBadScope(t *testing.T) {
	db := testDB(t)

	_, err := NewScopeResolver(db).Resolve(Target{})
	var badScope *BadScopeError
	if !errors.As(err, &badScope) {
		t.Errorf("err = %v, want *BadScopeError", err)
	}
}
