package authz

import (
	"testing"

	"github.com/liushuo/teamboard/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.Subtask{},
		&models.Note{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProject(t *testing.T, db *gorm.DB, createdBy uint) *models.Project {
	t.Helper()
	project := &models.Project{Name: "board", Status: "active", CreatedBy: createdBy}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return project
}

func seedMember(t *testing.T, db *gorm.DB, projectID, userID uint, role string) *models.ProjectMember {
	t.Helper()
	member := &models.ProjectMember{ProjectID: projectID, UserID: userID, Role: role}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return member
}

func TestResolveRole_CreatorIsProjectAdmin(t *testing.T) {
	db := testDB(t)
	project := seedProject(t, db, 1)

	role, err := NewResolver(db).ResolveRole(1, project.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != RoleProjectAdmin {
		t.Errorf("role = %s, want %s", role, RoleProjectAdmin)
	}
}

func TestResolveRole_CreatorOverridesMembershipRow(t *testing.T) {
	db := testDB(t)
	project := seedProject(t, db, 1)
	// A stale membership row must not demote the creator.
	seedMember(t, db, project.ID, 1, "member")

	role, err := NewResolver(db).ResolveRole(1, project.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != RoleProjectAdmin {
		t.Errorf("role = %s, want %s", role, RoleProjectAdmin)
	}
}

func TestResolveRole_MembershipRow(t *testing.T) {
	db := testDB(t)
	project := seedProject(t, db, 1)
	seedMember(t, db, project.ID, 2, "admin")
	seedMember(t, db, project.ID, 3, "member")

	resolver := NewResolver(db)

	role, err := resolver.ResolveRole(2, project.ID)
	if err != nil || role != RoleAdmin {
		t.Errorf("user 2: role = %s, err = %v, want %s", role, err, RoleAdmin)
	}

	role, err = resolver.ResolveRole(3, project.ID)
	if err != nil || role != RoleMember {
		t.Errorf("user 3: role = %s, err = %v, want %s", role, err, RoleMember)
	}
}

func TestResolveRole_NonMemberIsNone(t *testing.T) {
	db := testDB(t)
	project := seedProject(t, db, 1)

	role, err := NewResolver(db).ResolveRole(42, project.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != RoleNone {
		t.Errorf("role = %s, want none", role)
	}
}

func TestResolveRole_MissingProjectIsNone(t *testing.T) {
	db := testDB(t)

	role, err := NewResolver(db).ResolveRole(1, 999)
	if err != nil {
		t.Fatalf("missing project must not be an error, got %v", err)
	}
	if role != RoleNone {
		t.Errorf("role = %s, want none", role)
	}
}

func TestResolveRole_CorruptRoleColumnIsNone(t *testing.T) {
	db := testDB(t)
	project := seedProject(t, db, 1)
	seedMember(t, db, project.ID, 2, "superuser")

	role, err := NewResolver(db).ResolveRole(2, project.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != RoleNone {
		t.Errorf("corrupt role should resolve to none, got %s", role)
	}
}

func TestResolveRole_RolesAreProjectScoped(t *testing.T) {
	db := testDB(t)
	alpha := seedProject(t, db, 1)
	beta := seedProject(t, db, 9)
	seedMember(t, db, alpha.ID, 2, "admin")

	resolver := NewResolver(db)

	role, _ := resolver.ResolveRole(2, alpha.ID)
	if role != RoleAdmin {
		t.Errorf("alpha role = %s, want admin", role)
	}

	role, _ = resolver.ResolveRole(2, beta.ID)
	if role != RoleNone {
		t.Errorf("beta role = %s, want none", role)
	}
}

func TestResolveProject_ReturnsRecord(t *testing.T) {
	db := testDB(t)
	project := seedProject(t, db, 1)
	seedMember(t, db, project.ID, 2, "member")

	role, got, err := NewResolver(db).ResolveProject(2, project.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != RoleMember {
		t.Errorf("role = %s, want member", role)
	}
	if got == nil || got.ID != project.ID {
		t.Error("project record should be returned alongside the role")
	}
}
