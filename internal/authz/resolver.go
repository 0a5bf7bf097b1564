package authz

import (
	"errors"

	"github.com/liushuo/teamboard/backend/internal/models"
	"gorm.io/gorm"
)

// Resolver computes a user's effective role in a project. It is read-only
// and holds no per-request state; every call re-derives the role from the
// current store contents.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// ResolveRole returns the user's effective role in the project.
//
// Creatorship is authoritative: if the project's CreatedBy matches the
// user, the result is RoleProjectAdmin regardless of what the membership
// table says. Otherwise the unique membership row decides. A missing
// project or missing membership yields RoleNone with a nil error; a store
// failure yields a *StoreError and must never be treated as RoleNone.
func (r *Resolver) ResolveRole(userID, projectID uint) (Role, error) {
	var project models.Project
	if err := r.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleNone, nil
		}
		return RoleNone, &StoreError{Op: "project lookup", Err: err}
	}

	if project.CreatedBy == userID {
		return RoleProjectAdmin, nil
	}

	var member models.ProjectMember
	err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleNone, nil
		}
		return RoleNone, &StoreError{Op: "membership lookup", Err: err}
	}

	role := Role(member.Role)
	if !role.Valid() {
		// A corrupted role column must not grant anything.
		return RoleNone, nil
	}
	return role, nil
}

// ResolveProject is like ResolveRole but also returns the project record
// so the gate can hand it to handlers without a second fetch. The project
// pointer is nil when the project does not exist.
func (r *Resolver) ResolveProject(userID, projectID uint) (Role, *models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleNone, nil, nil
		}
		return RoleNone, nil, &StoreError{Op: "project lookup", Err: err}
	}

	if project.CreatedBy == userID {
		return RoleProjectAdmin, &project, nil
	}

	var member models.ProjectMember
	err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleNone, &project, nil
		}
		return RoleNone, nil, &StoreError{Op: "membership lookup", Err: err}
	}

	role := Role(member.Role)
	if !role.Valid() {
		return RoleNone, &project, nil
	}
	return role, &project, nil
}
