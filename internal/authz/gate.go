package authz

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/liushuo/teamboard/backend/internal/models"
	"github.com/liushuo/teamboard/backend/internal/utils"
	"github.com/liushuo/teamboard/backend/pkg/logger"
	"github.com/liushuo/teamboard/backend/pkg/response"
	"gorm.io/gorm"
)

// Gin context keys set by the gate on allowed requests.
const (
	ContextRole    = "authz_role"
	ContextProject = "authz_project"
	ContextTask    = "authz_task"
	ContextSubtask = "authz_subtask"
	ContextNote    = "authz_note"
	ContextMember  = "authz_member"
)

// Gate is the pre-handler authorization guard. Require wires the scope
// resolver, role resolver and evaluator together and either attaches the
// resolved role and fetched entities to the gin context or aborts with the
// error taxonomy (400/401/403/404, 500 on store failure).
//
// The gate holds no cross-request state; every decision is computed fresh
// from the store, so a revocation racing an in-flight request may let one
// last action through. That window is accepted.
type Gate struct {
	resolver *Resolver
	scopes   *ScopeResolver
}

func NewGate(db *gorm.DB) *Gate {
	return &Gate{
		resolver: NewResolver(db),
		scopes:   NewScopeResolver(db),
	}
}

// TargetFunc extracts the action target from the request. Returning an
// error aborts with 400 before any resolution happens.
type TargetFunc func(c *gin.Context) (Target, error)

// Param-based target extractors for the common route shapes.

func ProjectParam(name string) TargetFunc {
	return func(c *gin.Context) (Target, error) {
		id, err := paramID(c, name)
		if err != nil {
			return Target{}, err
		}
		return Target{ProjectID: id}, nil
	}
}

func TaskParam(name string) TargetFunc {
	return func(c *gin.Context) (Target, error) {
		id, err := paramID(c, name)
		if err != nil {
			return Target{}, err
		}
		return Target{TaskID: id}, nil
	}
}

func SubtaskParam(name string) TargetFunc {
	return func(c *gin.Context) (Target, error) {
		id, err := paramID(c, name)
		if err != nil {
			return Target{}, err
		}
		return Target{SubtaskID: id}, nil
	}
}

func NoteParam(name string) TargetFunc {
	return func(c *gin.Context) (Target, error) {
		id, err := paramID(c, name)
		if err != nil {
			return Target{}, err
		}
		return Target{NoteID: id}, nil
	}
}

func MemberParam(name string) TargetFunc {
	return func(c *gin.Context) (Target, error) {
		id, err := paramID(c, name)
		if err != nil {
			return Target{}, err
		}
		return Target{MemberID: id}, nil
	}
}

func paramID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, &BadScopeError{Message: "invalid " + name + " parameter"}
	}
	return uint(id), nil
}

// Require returns middleware enforcing action against the target located
// by locate. On success the resolved role and any entities fetched during
// scope resolution are attached to the context for the handler.
func (g *Gate) Require(action Action, locate TargetFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := utils.GetUserID(c)
		if userID == 0 {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		target, err := locate(c)
		if err != nil {
			g.reject(c, userID, action, RoleNone, err)
			return
		}

		scope, err := g.scopes.Resolve(target)
		if err != nil {
			g.reject(c, userID, action, RoleNone, err)
			return
		}

		role, project, err := g.resolver.ResolveProject(userID, scope.ProjectID)
		if err != nil {
			g.reject(c, userID, action, RoleNone, err)
			return
		}
		if role == RoleNone {
			g.reject(c, userID, action, role,
				deny(ReasonNotProjectMember, "not a project member"))
			return
		}

		// Self-action guards resolvable from the membership row itself.
		// They run before the registry check so a member targeting their
		// own row gets the specific reason, not insufficient_role.
		if scope.Member != nil {
			if err := CheckSelfTarget(action, userID, scope.Member.UserID); err != nil {
				g.reject(c, userID, action, role, err)
				return
			}
		}

		own := Ownership{Project: project, Task: scope.Task, Note: scope.Note}
		if err := Evaluate(role, action, userID, own); err != nil {
			g.reject(c, userID, action, role, err)
			return
		}

		logger.Debug().
			Uint("user_id", userID).
			Uint("project_id", scope.ProjectID).
			Str("action", action.String()).
			Str("role", role.String()).
			Bool("allowed", true).
			Msg("authz decision")

		c.Set(ContextRole, role)
		if project != nil {
			c.Set(ContextProject, project)
		}
		if scope.Task != nil {
			c.Set(ContextTask, scope.Task)
		}
		if scope.Subtask != nil {
			c.Set(ContextSubtask, scope.Subtask)
		}
		if scope.Note != nil {
			c.Set(ContextNote, scope.Note)
		}
		if scope.Member != nil {
			c.Set(ContextMember, scope.Member)
		}
		c.Next()
	}
}

// reject translates an internal resolution/evaluation error into the
// client-facing taxonomy and aborts the request. This is the only place
// that translation happens.
func (g *Gate) reject(c *gin.Context, userID uint, action Action, role Role, err error) {
	event := logger.Warn().
		Uint("user_id", userID).
		Str("action", action.String()).
		Str("role", role.String()).
		Bool("allowed", false)

	var denyErr *DenyError
	var notFound *NotFoundError
	var badScope *BadScopeError
	var storeErr *StoreError

	switch {
	case errors.As(err, &denyErr):
		event.Str("reason", denyErr.Reason).Msg("authz decision")
		c.JSON(http.StatusForbidden, response.Response{
			Code:    http.StatusForbidden,
			Message: denyErr.Message,
			Data:    gin.H{"reason": denyErr.Reason},
		})
	case errors.As(err, &notFound):
		event.Str("reason", "target_not_found").Msg("authz decision")
		response.NotFound(c, notFound.Error())
	case errors.As(err, &badScope):
		event.Str("reason", "bad_scope").Msg("authz decision")
		response.BadRequest(c, badScope.Error())
	case errors.As(err, &storeErr):
		// Infrastructure failure: fail closed, never deny-as-forbidden.
		logger.Error().Err(err).
			Uint("user_id", userID).
			Str("action", action.String()).
			Msg("authz store failure")
		response.ServerError(c, "authorization check failed")
	default:
		logger.Error().Err(err).Msg("authz unexpected failure")
		response.ServerError(c, "authorization check failed")
	}
	c.Abort()
}

// --- context accessors for downstream handlers ---

// GetRole returns the role the gate resolved for the current request.
func GetRole(c *gin.Context) Role {
	if v, ok := c.Get(ContextRole); ok {
		return v.(Role)
	}
	return RoleNone
}

func GetProject(c *gin.Context) *models.Project {
	if v, ok := c.Get(ContextProject); ok {
		return v.(*models.Project)
	}
	return nil
}

func GetTask(c *gin.Context) *models.Task {
	if v, ok := c.Get(ContextTask); ok {
		return v.(*models.Task)
	}
	return nil
}

func GetSubtask(c *gin.Context) *models.Subtask {
	if v, ok := c.Get(ContextSubtask); ok {
		return v.(*models.Subtask)
	}
	return nil
}

func GetNote(c *gin.Context) *models.Note {
	if v, ok := c.Get(ContextNote); ok {
		return v.(*models.Note)
	}
	return nil
}

func GetMember(c *gin.Context) *models.ProjectMember {
	if v, ok := c.Get(ContextMember); ok {
		return v.(*models.ProjectMember)
	}
	return nil
}

// CheckMemberAdd applies the body-dependent guards for adding a member:
// the actor may not add themselves, and the project creator is already
// enrolled and may not be added again.
func CheckMemberAdd(project *models.Project, actingUserID, targetUserID uint) error {
	if err := CheckSelfTarget(ActionAddMember, actingUserID, targetUserID); err != nil {
		return err
	}
	if project != nil && targetUserID == project.CreatedBy {
		return deny(ReasonAlreadyMember, "project creator is already a member")
	}
	return nil
}

// RejectDeny writes a DenyError (or other authz error) for handlers that
// run a body-dependent guard after the gate middleware already passed.
func (g *Gate) RejectDeny(c *gin.Context, action Action, err error) {
	g.reject(c, utils.GetUserID(c), action, GetRole(c), err)
}
