package authz

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/liushuo/teamboard/backend/internal/models"
	"github.com/liushuo/teamboard/backend/internal/utils"
	"gorm.io/gorm"
)

// asUser stands in for the JWT middleware: it reads the acting user from
// the X-Test-User header so each request can pick its identity.
func asUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader("X-Test-User"); raw != "" {
			id, _ := strconv.ParseUint(raw, 10, 32)
			c.Set(utils.ContextUserID, uint(id))
		}
		c.Next()
	}
}

func gateRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	gate := NewGate(db)

	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	r := gin.New()
	r.Use(asUser())
	r.DELETE("/projects/:id", gate.Require(ActionDeleteProject, ProjectParam("id")), ok)
	r.GET("/projects/:id", gate.Require(ActionViewProject, ProjectParam("id")), ok)
	r.PUT("/tasks/:taskID", gate.Require(ActionUpdateTask, TaskParam("taskID")), ok)
	r.DELETE("/tasks/:taskID", gate.Require(ActionDeleteTask, TaskParam("taskID")), ok)
	r.PUT("/members/:memberID", gate.Require(ActionUpdateMemberRole, MemberParam("memberID")), ok)
	r.DELETE("/members/:memberID", gate.Require(ActionRemoveMember, MemberParam("memberID")), ok)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, userID uint) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if userID != 0 {
		req.Header.Set("X-Test-User", strconv.FormatUint(uint64(userID), 10))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func deniedWith(t *testing.T, w *httptest.ResponseRecorder, reason string) {
	t.Helper()
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 (body: %s)", w.Code, w.Body.String())
	}
	var body struct {
		Data struct {
			Reason string `json:"reason"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Data.Reason != reason {
		t.Errorf("reason = %q, want %q", body.Data.Reason, reason)
	}
}

func TestGate_NoIdentityIsUnauthorized(t *testing.T) {
	db := testDB(t)
	seedProject(t, db, 1)
	r := gateRouter(db)

	w := doRequest(t, r, http.MethodGet, "/projects/1", 0)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestGate_NonMemberIsForbidden(t *testing.T) {
	db := testDB(t)
	project := seedProject(t, db, 1)
	r := gateRouter(db)

	w := doRequest(t, r, http.MethodGet, "/projects/"+strconv.Itoa(int(project.ID)), 42)
	deniedWith(t, w, ReasonNotProjectMember)
}

func TestGate_MemberCannotDeleteProject(t *testing.T) {
	db := testDB(t)
	project := seedProject(t, db, 1)
	seedMember(t, db, project.ID, 2, "member")
	r := gateRouter(db)

	w := doRequest(t, r, http.MethodDelete, "/projects/"+strconv.Itoa(int(project.ID)), 2)
	deniedWith(t, w, ReasonInsufficientRole)
}

func TestGate_CreatorDeletesProject(t *testing.T) {
	db := testDB(t)
	project := seedProject(t, db, 1)
	r := gateRouter(db)

	w := doRequest(t, r, http.MethodDelete, "/projects/"+strconv.Itoa(int(project.ID)), 1)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
}

func TestGate_MemberTaskOwnership(t *testing.T) {
	db := testDB(t)
	project := seedProject(t, db, 1)
	seedMember(t, db, project.ID, 2, "member")
	seedMember(t, db, project.ID, 3, "member")
	task := seedTask(t, db, project.ID) // assigned by 1, to 2
	r := gateRouter(db)

	path := "/tasks/" + strconv.Itoa(int(task.ID))

	// The assignee may update the task but not delete it.
	if w := doRequest(t, r, http.MethodPut, path, 2); w.Code != http.StatusOK {
		t.Errorf("assignee update: status = %d, want 200", w.Code)
	}
	deniedWith(t, doRequest(t, r, http.MethodDelete, path, 2), ReasonNotTaskOwner)

	// An unrelated member may do neither.
	deniedWith(t, doRequest(t, r, http.MethodPut, path, 3), ReasonNotTaskOwner)
}

func TestGate_AdminRemoveSelf(t *testing.T) {
	db := testDB(t)
	project := seedProject(t, db, 1)
	member := seedMember(t, db, project.ID, 2, "admin")
	r := gateRouter(db)

	w := doRequest(t, r, http.MethodDelete, "/members/"+strconv.Itoa(int(member.ID)), 2)
	deniedWith(t, w, ReasonCannotRemoveSelf)
}

func TestGate_MemberSelfGuardsOutrankRegistry(t *testing.T) {
	db := testDB(t)
	project := seedProject(t, db, 1)
	member := seedMember(t, db, project.ID, 2, "member")
	r := gateRouter(db)

	// A member holds neither member.update_role nor member.remove, but a
	// self-targeted request must still report the self-guard reason.
	path := "/members/" + strconv.Itoa(int(member.ID))
	deniedWith(t, doRequest(t, r, http.MethodPut, path, 2), ReasonCannotModifyOwn)
	deniedWith(t, doRequest(t, r, http.MethodDelete, path, 2), ReasonCannotRemoveSelf)
}

func TestGate_MemberTargetingOtherIsInsufficientRole(t *testing.T) {
	db := testDB(t)
	project := seedProject(t, db, 1)
	seedMember(t, db, project.ID, 2, "member")
	other := seedMember(t, db, project.ID, 3, "member")
	r := gateRouter(db)

	path := "/members/" + strconv.Itoa(int(other.ID))
	deniedWith(t, doRequest(t, r, http.MethodPut, path, 2), ReasonInsufficientRole)
	deniedWith(t, doRequest(t, r, http.MethodDelete, path, 2), ReasonInsufficientRole)
}

func TestGate_AdminRemovesOther(t *testing.T) {
	db := testDB(t)
	project := seedProject(t, db, 1)
	seedMember(t, db, project.ID, 2, "admin")
	other := seedMember(t, db, project.ID, 3, "member")
	r := gateRouter(db)

	w := doRequest(t, r, http.MethodDelete, "/members/"+strconv.Itoa(int(other.ID)), 2)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
}

func TestGate_MissingTargetIsNotFound(t *testing.T) {
	db := testDB(t)
	seedProject(t, db, 1)
	r := gateRouter(db)

	w := doRequest(t, r, http.MethodPut, "/tasks/9999", 1)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 (body: %s)", w.Code, w.Body.String())
	}
}

func TestGate_BadParamIsBadRequest(t *testing.T) {
	db := testDB(t)
	r := gateRouter(db)

	for _, path := range []string{"/projects/abc", "/projects/0"} {
		w := doRequest(t, r, http.MethodGet, path, 1)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, w.Code)
		}
	}
}

func TestGate_AttachesRoleAndEntities(t *testing.T) {
	db := testDB(t)
	project := seedProject(t, db, 1)
	task := seedTask(t, db, project.ID)

	gin.SetMode(gin.TestMode)
	gate := NewGate(db)

	var gotRole Role
	var gotProject *models.Project
	var gotTask *models.Task

	r := gin.New()
	r.Use(asUser())
	r.PUT("/tasks/:taskID", gate.Require(ActionUpdateTask, TaskParam("taskID")), func(c *gin.Context) {
		gotRole = GetRole(c)
		gotProject = GetProject(c)
		gotTask = GetTask(c)
		c.Status(http.StatusOK)
	})

	w := doRequest(t, r, http.MethodPut, "/tasks/"+strconv.Itoa(int(task.ID)), 1)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
	if gotRole != RoleProjectAdmin {
		t.Errorf("role = %s, want project_admin", gotRole)
	}
	if gotProject == nil || gotProject.ID != project.ID {
		t.Error("project should be attached to the context")
	}
	if gotTask == nil || gotTask.ID != task.ID {
		t.Error("task should be attached to the context")
	}
}

func TestCheckMemberAdd(t *testing.T) {
	project := &models.Project{CreatedBy: 1}
	project.ID = 5

	err := CheckMemberAdd(project, 2, 2)
	if got := denyReason(t, err); got != ReasonCannotAddSelf {
		t.Errorf("self add reason = %s, want %s", got, ReasonCannotAddSelf)
	}

	err = CheckMemberAdd(project, 2, 1)
	if got := denyReason(t, err); got != ReasonAlreadyMember {
		t.Errorf("creator add reason = %s, want %s", got, ReasonAlreadyMember)
	}

	if err := CheckMemberAdd(project, 2, 3); err != nil {
		t.Errorf("adding a third user should pass, got %v", err)
	}
}
