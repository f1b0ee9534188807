package store

import (
	"context"
	"testing"

	"logitrack/internal/db"
	"logitrack/internal/model"
)

func TestCreateAndGetUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	created, err := CreateUser(ctx, database, "dispatcher", "hash-1", model.RoleUser)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if created.Username != "dispatcher" || created.Role != model.RoleUser {
		t.Errorf("unexpected account: %+v", created)
	}
	if created.DeletedAt != nil {
		t.Error("new account must not be soft-deleted")
	}

	got, err := GetUser(ctx, database, created.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got == nil || got.Username != "dispatcher" {
		t.Errorf("GetUser returned %+v", got)
	}

	if missing, err := GetUser(ctx, database, created.ID+100); err != nil || missing != nil {
		t.Errorf("expected nil for unknown id, got %+v, %v", missing, err)
	}
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, database, "foreman", "hash", model.RoleManager); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := CreateUser(ctx, database, "foreman", "hash", model.RoleUser); err == nil {
		t.Error("expected error for duplicate active username")
	}
}

func TestGetUserByUsername(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, database, "foreman", "hash", model.RoleAdmin); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	user, err := GetUserByUsername(ctx, database, "foreman")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if user == nil || user.Role != model.RoleAdmin {
		t.Fatalf("unexpected account: %+v", user)
	}

	if missing, err := GetUserByUsername(ctx, database, "picker"); err != nil || missing != nil {
		t.Errorf("expected nil for unknown name, got %+v, %v", missing, err)
	}
}

func TestDeleteUserSoftDeletes(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	account, err := CreateUser(ctx, database, "picker", "hash", model.RoleUser)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := DeleteUser(ctx, database, account.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	// Gone from the active list.
	users, err := ListUsers(ctx, database)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("expected no active accounts, got %d", len(users))
	}

	// Still resolvable by name so login can refuse it explicitly.
	got, err := GetUserByUsername(ctx, database, "picker")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got == nil || got.DeletedAt == nil {
		t.Errorf("expected soft-deleted row to remain, got %+v", got)
	}
}

func TestListUsersOrderedByID(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"dispatcher", "foreman", "picker"} {
		if _, err := CreateUser(ctx, database, name, "hash", model.RoleUser); err != nil {
			t.Fatalf("CreateUser %q: %v", name, err)
		}
	}

	users, err := ListUsers(ctx, database)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 accounts, got %d", len(users))
	}
	for i := 1; i < len(users); i++ {
		if users[i].ID <= users[i-1].ID {
			t.Errorf("accounts out of id order: %d before %d", users[i-1].ID, users[i].ID)
		}
	}
}

func TestUpdateUserRole(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	account, err := CreateUser(ctx, database, "picker", "hash", model.RoleUser)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if err := UpdateUserRole(ctx, database, account.ID, model.RoleManager); err != nil {
		t.Fatalf("UpdateUserRole: %v", err)
	}

	got, err := GetUser(ctx, database, account.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Role != model.RoleManager {
		t.Errorf("role = %q, want manager", got.Role)
	}
}

func TestUpdateUserPassword(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	account, err := CreateUser(ctx, database, "dispatcher", "old-hash", model.RoleUser)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if err := UpdateUserPassword(ctx, database, account.ID, "new-hash"); err != nil {
		t.Fatalf("UpdateUserPassword: %v", err)
	}

	got, err := GetUser(ctx, database, account.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.PasswordHash != "new-hash" {
		t.Errorf("password hash = %q, want new-hash", got.PasswordHash)
	}
}
