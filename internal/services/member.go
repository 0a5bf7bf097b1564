package services

import (
	"errors"

	"github.com/liushuo/teamboard/backend/internal/authz"
	"github.com/liushuo/teamboard/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrAlreadyMember    = errors.New("user is already a member of this project")
	ErrInvalidRole      = errors.New("invalid role, must be 'admin' or 'member'")
	ErrCreatorImmutable = errors.New("the project creator's membership cannot be changed")
)

type MemberService struct {
	db *gorm.DB
}

func NewMemberService(db *gorm.DB) *MemberService {
	return &MemberService{db: db}
}

type AddMemberRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"` // admin, member
}

type UpdateMemberRequest struct {
	Role string `json:"role" binding:"required"`
}

// assignableRole reports whether role can be granted through the API.
// project_admin is reserved for the creator's auto-enrollment row.
func assignableRole(role string) bool {
	return role == authz.RoleAdmin.String() || role == authz.RoleMember.String()
}

// List returns all members of a project with user info preloaded.
func (s *MemberService) List(projectID uint) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	if err := s.db.Where("project_id = ?", projectID).
		Preload("User").
		Order("created_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// Add enrolls a user in the project with the given role.
func (s *MemberService) Add(projectID uint, req *AddMemberRequest) (*models.ProjectMember, error) {
	if !assignableRole(req.Role) {
		return nil, ErrInvalidRole
	}

	var user models.User
	if err := s.db.First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var existing models.ProjectMember
	err := s.db.Where("project_id = ? AND user_id = ?", projectID, req.UserID).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyMember
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	member := models.ProjectMember{
		ProjectID: projectID,
		UserID:    req.UserID,
		Role:      req.Role,
	}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, err
	}

	s.db.Preload("User").First(&member, member.ID)
	return &member, nil
}

// UpdateRole changes a member's role. The creator's enrollment row stays
// project_admin forever; everyone else moves between admin and member.
func (s *MemberService) UpdateRole(member *models.ProjectMember, project *models.Project, req *UpdateMemberRequest) error {
	if !assignableRole(req.Role) {
		return ErrInvalidRole
	}
	if project != nil && member.UserID == project.CreatedBy {
		return ErrCreatorImmutable
	}

	if err := s.db.Model(member).Update("role", req.Role).Error; err != nil {
		return err
	}
	return s.db.Preload("User").First(member, member.ID).Error
}

// Remove deletes a membership row. The creator cannot be removed.
func (s *MemberService) Remove(member *models.ProjectMember, project *models.Project) error {
	if project != nil && member.UserID == project.CreatedBy {
		return ErrCreatorImmutable
	}
	return s.db.Delete(member).Error
}
