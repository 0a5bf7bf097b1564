package authz

import (
	"errors"

	"github.com/liushuo/teamboard/backend/internal/models"
	"gorm.io/gorm"
)

// Target locates the entity an action operates on. Exactly one locator is
// normally set; when several are present the most specific wins so that a
// task-scoped note request resolves through the note, not the bare
// project id.
type Target struct {
	ProjectID uint
	TaskID    uint
	SubtaskID uint
	NoteID    uint
	MemberID  uint
}

// Scope is the result of target resolution: the owning project id plus
// whatever entities were fetched along the way. The gate attaches these to
// the request context so handlers do not fetch them again.
type Scope struct {
	ProjectID uint
	Task      *models.Task
	Subtask   *models.Subtask
	Note      *models.Note
	Member    *models.ProjectMember
}

// ScopeResolver finds the project that owns an action target. Tasks carry
// their project directly; subtasks resolve through their parent task
// (two hops); notes resolve directly or through their task; membership
// rows carry their project. The resolver never guesses: an unresolvable
// target is a *BadScopeError, a dangling reference a *NotFoundError.
type ScopeResolver struct {
	db *gorm.DB
}

func NewScopeResolver(db *gorm.DB) *ScopeResolver {
	return &ScopeResolver{db: db}
}

func (s *ScopeResolver) Resolve(target Target) (*Scope, error) {
	switch {
	case target.SubtaskID != 0:
		return s.resolveSubtask(target.SubtaskID)
	case target.NoteID != 0:
		return s.resolveNote(target.NoteID)
	case target.TaskID != 0:
		return s.resolveTask(target.TaskID)
	case target.MemberID != 0:
		return s.resolveMember(target.MemberID)
	case target.ProjectID != 0:
		return &Scope{ProjectID: target.ProjectID}, nil
	}
	return nil, &BadScopeError{Message: "request resolves to no project"}
}

func (s *ScopeResolver) resolveTask(taskID uint) (*Scope, error) {
	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "task", ID: taskID}
		}
		return nil, &StoreError{Op: "task lookup", Err: err}
	}
	return &Scope{ProjectID: task.ProjectID, Task: &task}, nil
}

func (s *ScopeResolver) resolveSubtask(subtaskID uint) (*Scope, error) {
	var subtask models.Subtask
	if err := s.db.First(&subtask, subtaskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "subtask", ID: subtaskID}
		}
		return nil, &StoreError{Op: "subtask lookup", Err: err}
	}

	scope, err := s.resolveTask(subtask.TaskID)
	if err != nil {
		return nil, err
	}
	scope.Subtask = &subtask
	return scope, nil
}

func (s *ScopeResolver) resolveNote(noteID uint) (*Scope, error) {
	var note models.Note
	if err := s.db.First(&note, noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "note", ID: noteID}
		}
		return nil, &StoreError{Op: "note lookup", Err: err}
	}

	scope := &Scope{ProjectID: note.ProjectID, Note: &note}
	if note.TaskID != nil {
		taskScope, err := s.resolveTask(*note.TaskID)
		if err != nil {
			return nil, err
		}
		scope.Task = taskScope.Task
		// Task-scoped notes infer their project from the task.
		scope.ProjectID = taskScope.ProjectID
	}
	return scope, nil
}

func (s *ScopeResolver) resolveMember(memberID uint) (*Scope, error) {
	var member models.ProjectMember
	if err := s.db.First(&member, memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "member", ID: memberID}
		}
		return nil, &StoreError{Op: "member lookup", Err: err}
	}
	return &Scope{ProjectID: member.ProjectID, Member: &member}, nil
}
