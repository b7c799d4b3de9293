package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"travelreview/internal/apperr"
	"travelreview/internal/repository"
	"travelreview/internal/testutil"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()
	db := testutil.NewDB(t)
	return NewUserService(repository.NewUserRepository(db))
}

func TestRegisterAndFetch(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "maria", "maria@example.com", "s3cret-pass", "Maria Silva")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("user id not assigned")
	}
	if u.IsVerified {
		t.Fatal("new account must start unverified")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")) != nil {
		t.Fatal("stored hash does not match the password")
	}

	got, err := svc.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Username != "maria" || got.Email != "maria@example.com" {
		t.Fatalf("fetched account mismatch: %+v", got)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"empty username", "  ", "a@example.com", "longenough"},
		{"bad email", "bob", "not-an-email", "longenough"},
		{"short password", "bob", "bob@example.com", "short"},
	}
	for _, tc := range cases {
		if _, err := svc.Register(ctx, tc.username, tc.email, tc.password, ""); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("%s: want ErrValidation, got %v", tc.name, err)
		}
	}
}

func TestRegisterDuplicateIsConflict(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "nina", "nina@example.com", "longenough", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, "nina", "other@example.com", "longenough", ""); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("duplicate username: want ErrConflict, got %v", err)
	}
	if _, err := svc.Register(ctx, "other", "nina@example.com", "longenough", ""); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("duplicate email: want ErrConflict, got %v", err)
	}
}

func TestUpdateProfileKeepsUsername(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "piotr", "piotr@example.com", "longenough", "Piotr")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := svc.UpdateProfile(ctx, u.ID, "new@example.com", "Piotr K.")
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Email != "new@example.com" || updated.FullName != "Piotr K." {
		t.Fatalf("profile not updated: %+v", updated)
	}
	if updated.Username != "piotr" {
		t.Fatalf("username changed to %q", updated.Username)
	}

	if _, err := svc.UpdateProfile(ctx, 9999, "x@example.com", ""); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing user: want ErrNotFound, got %v", err)
	}
}

func TestVerify(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "vera", "vera@example.com", "longenough", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Verify(ctx, u.ID); err != nil {
		t.Fatalf("verify: %v", err)
	}
	got, err := svc.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.IsVerified {
		t.Fatal("account still unverified")
	}

	if err := svc.Verify(ctx, 9999); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing user: want ErrNotFound, got %v", err)
	}
}
