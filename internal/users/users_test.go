package users

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/dengas/devtimetracker/internal/db"
	"github.com/dengas/devtimetracker/internal/models"
	"github.com/dengas/devtimetracker/internal/security"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	return conn
}

func TestEnsureCreatesUser(t *testing.T) {
	conn := testDB(t)

	pr := &security.Principal{ID: "user-1", Email: "dev@example.com", Name: "Dev One"}
	user, err := Ensure(conn, pr)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if user.ID != "user-1" || user.Email != "dev@example.com" || user.Username != "Dev One" {
		t.Fatalf("unexpected user: %+v", user)
	}

	again, err := Ensure(conn, pr)
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if again.ID != user.ID {
		t.Fatalf("ensure must be idempotent, got %q", again.ID)
	}

	var count int64
	if errCount := conn.Model(&models.User{}).Count(&count).Error; errCount != nil {
		t.Fatalf("count users: %v", errCount)
	}
	if count != 1 {
		t.Fatalf("expected one user row, found %d", count)
	}
}

func TestEnsureBackfillsUsernameFromEmail(t *testing.T) {
	conn := testDB(t)

	pr := &security.Principal{ID: "user-2", Email: "gasylo.dv@example.com"}
	user, err := Ensure(conn, pr)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if user.Username != "gasylo.dv" {
		t.Fatalf("username must come from the email local part, got %q", user.Username)
	}

	// Rows written before the backfill existed lack a username too.
	if errSave := conn.Model(&models.User{}).Where("id = ?", "user-2").Update("username", "").Error; errSave != nil {
		t.Fatalf("clear username: %v", errSave)
	}
	refreshed, err := Ensure(conn, pr)
	if err != nil {
		t.Fatalf("refresh ensure: %v", err)
	}
	if refreshed.Username != "gasylo.dv" {
		t.Fatalf("existing row must be backfilled, got %q", refreshed.Username)
	}
}

func TestGetByID(t *testing.T) {
	conn := testDB(t)
	svc := NewService(conn)
	ctx := context.Background()

	if _, err := svc.GetByID(ctx, "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if _, err := svc.Ensure(ctx, &security.Principal{ID: "user-3", Email: "a@b.c"}); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	user, err := svc.GetByID(ctx, "user-3")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if user.Email != "a@b.c" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestInfoReportsTeamMembership(t *testing.T) {
	conn := testDB(t)
	svc := NewService(conn)
	ctx := context.Background()

	lead, err := svc.Ensure(ctx, &security.Principal{ID: "lead-1", Email: "lead@example.com", Name: "Lead"})
	if err != nil {
		t.Fatalf("ensure lead: %v", err)
	}
	member, err := svc.Ensure(ctx, &security.Principal{ID: "member-1", Email: "member@example.com", Name: "Member"})
	if err != nil {
		t.Fatalf("ensure member: %v", err)
	}

	team := &models.Team{Name: "backend", TeamLeadID: &lead.ID, Members: []models.User{*lead, *member}}
	if errCreate := conn.Create(team).Error; errCreate != nil {
		t.Fatalf("create team: %v", errCreate)
	}

	info, err := svc.Info(ctx, &security.Principal{ID: "lead-1", Email: "lead@example.com", Name: "Lead"})
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if !info.IsTeamLead || info.LeadingTeamID == nil || *info.LeadingTeamID != team.ID {
		t.Fatalf("lead info wrong: %+v", info)
	}
	if len(info.TeamIDs) != 1 || info.TeamIDs[0] != team.ID {
		t.Fatalf("lead team ids wrong: %+v", info.TeamIDs)
	}

	info, err = svc.Info(ctx, &security.Principal{ID: "member-1", Email: "member@example.com", Name: "Member"})
	if err != nil {
		t.Fatalf("member info: %v", err)
	}
	if info.IsTeamLead || info.LeadingTeamID != nil {
		t.Fatalf("member must not lead: %+v", info)
	}
	if len(info.TeamIDs) != 1 {
		t.Fatalf("member team ids wrong: %+v", info.TeamIDs)
	}
}
