package authz

import (
	"errors"
	"fmt"
)

// Deny reason codes. These are machine-checkable and end up in the
// Forbidden response body, so tests and clients can assert on them.
const (
	ReasonInsufficientRole  = "insufficient_role"
	ReasonNotTaskOwner      = "not_task_owner"
	ReasonNotNoteOwner      = "not_note_owner"
	ReasonNotProjectCreator = "not_project_creator"
	ReasonNotProjectMember  = "not_project_member"
	ReasonCannotAddSelf     = "cannot_add_self"
	ReasonCannotRemoveSelf  = "cannot_remove_self"
	ReasonCannotModifyOwn   = "cannot_modify_own_role"
	ReasonCannotAssignSelf  = "cannot_assign_self"
	ReasonAlreadyMember     = "already_member"
	ReasonUnknownAction     = "unknown_action"
)

// DenyError is a permission denial with a short reason code and a
// human-readable message. It maps to 403.
type DenyError struct {
	Reason  string
	Message string
}

func (e *DenyError) Error() string { return e.Message }

func deny(reason, message string) *DenyError {
	return &DenyError{Reason: reason, Message: message}
}

// NotFoundError means a referenced entity does not exist. It maps to 404
// and is deliberately distinct from DenyError: a missing target is not a
// permission problem.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// BadScopeError means the request shape gives no path to an owning
// project. It maps to 400, never to a permission error.
type BadScopeError struct {
	Message string
}

func (e *BadScopeError) Error() string { return e.Message }

// StoreError wraps an underlying store failure during resolution. It maps
// to 500 and is never interpreted as allow or deny.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("authz: store failure during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// AsDeny returns the DenyError inside err, or nil.
func AsDeny(err error) *DenyError {
	var d *DenyError
	if errors.As(err, &d) {
		return d
	}
	return nil
}
