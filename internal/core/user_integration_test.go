package core_test

import (
	"errors"
	"testing"

	"warehouse-manager/internal/core"
)

func TestUserService_RegisterAndAuthenticate(t *testing.T) {
	pool, ctx := setupTestDB(t)
	defer pool.Close()
	svc := core.NewUserService(pool)

	u, err := svc.Create(ctx, "Alice@Example.com", "correct horse", "Alice")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if u.Email != "alice@example.com" {
		t.Errorf("email not normalized: %q", u.Email)
	}
	if u.IsAdmin {
		t.Error("new user must not be admin")
	}
	if u.PasswordHash == "correct horse" {
		t.Error("password stored in plain text")
	}

	got, err := svc.Authenticate(ctx, "alice@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("authenticated wrong user: %s", got.ID)
	}

	if _, err := svc.Authenticate(ctx, "alice@example.com", "wrong"); !errors.Is(err, core.ErrInvalidCredentials) {
		t.Errorf("bad password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@example.com", "x"); !errors.Is(err, core.ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

func TestUserService_DuplicateEmail(t *testing.T) {
	pool, ctx := setupTestDB(t)
	defer pool.Close()
	svc := core.NewUserService(pool)

	if _, err := svc.Create(ctx, "bob@example.com", "password123", "Bob"); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := svc.Create(ctx, "BOB@example.com", "password123", "Bob Again")
	if !core.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "User with this email already exists" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestUserService_EnsureAdminIdempotent(t *testing.T) {
	pool, ctx := setupTestDB(t)
	defer pool.Close()
	svc := core.NewUserService(pool)

	if err := svc.EnsureAdmin(ctx, "admin@example.com", "super secret", "Admin"); err != nil {
		t.Fatalf("first EnsureAdmin failed: %v", err)
	}
	if err := svc.EnsureAdmin(ctx, "admin@example.com", "different secret", "Admin"); err != nil {
		t.Fatalf("second EnsureAdmin failed: %v", err)
	}

	u, err := svc.Authenticate(ctx, "admin@example.com", "super secret")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if !u.IsAdmin {
		t.Error("seeded admin is not an admin")
	}
}
