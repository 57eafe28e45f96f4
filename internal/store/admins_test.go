package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/stockroom/internal/db"
)

func TestCreateAndGetAdminUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateAdminUser(ctx, database, "admin", "correct horse")
	if err != nil {
		t.Fatalf("CreateAdminUser: %v", err)
	}
	if user.Username != "admin" {
		t.Errorf("expected username 'admin', got %q", user.Username)
	}
	if user.PasswordHash == "correct horse" {
		t.Error("password must be stored hashed")
	}

	got, err := GetAdminUserByUsername(ctx, database, "admin")
	if err != nil {
		t.Fatalf("GetAdminUserByUsername: %v", err)
	}
	if !CheckAdminPassword(got, "correct horse") {
		t.Error("expected password to match")
	}
	if CheckAdminPassword(got, "wrong") {
		t.Error("expected wrong password to fail")
	}

	missing, err := GetAdminUserByUsername(ctx, database, "nobody")
	if err != nil {
		t.Fatalf("GetAdminUserByUsername: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing admin")
	}
	if CheckAdminPassword(missing, "anything") {
		t.Error("nil admin must never match")
	}
}

func TestCreateAdminUserValidation(t *testing.T) {
	database := db.NewTestDB(t)

	if _, err := CreateAdminUser(context.Background(), database, "", "pw"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestCreateAdminUserDuplicate(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateAdminUser(ctx, database, "admin", "one")
	if _, err := CreateAdminUser(ctx, database, "admin", "two"); err == nil {
		t.Error("expected unique constraint error for duplicate username")
	}
}

func TestSyncAdminUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	changed, err := SyncAdminUser(ctx, database, "admin", "first")
	if err != nil || !changed {
		t.Fatalf("first sync: changed=%v err=%v", changed, err)
	}

	changed, err = SyncAdminUser(ctx, database, "admin", "first")
	if err != nil || changed {
		t.Errorf("unchanged sync: changed=%v err=%v", changed, err)
	}

	changed, err = SyncAdminUser(ctx, database, "admin", "second")
	if err != nil || !changed {
		t.Fatalf("password change sync: changed=%v err=%v", changed, err)
	}

	got, _ := GetAdminUserByUsername(ctx, database, "admin")
	if !CheckAdminPassword(got, "second") {
		t.Error("expected new password to match after sync")
	}
}
