package service

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRegisterFirstAccountGetsBothRoles(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestAccountService()

	first, err := s.Register(ctx, "alice", "pw-alice")
	if err != nil {
		t.Fatalf("Register first: %v", err)
	}
	if !first.IsAdmin || !first.IsSuperAdmin {
		t.Errorf("first account flags = admin:%v super:%v, want both true", first.IsAdmin, first.IsSuperAdmin)
	}

	second, err := s.Register(ctx, "bob", "pw-bob")
	if err != nil {
		t.Fatalf("Register second: %v", err)
	}
	if second.IsAdmin || second.IsSuperAdmin {
		t.Errorf("second account flags = admin:%v super:%v, want both false", second.IsAdmin, second.IsSuperAdmin)
	}
	if second.PasswordHash == "pw-bob" || second.PasswordHash == "" {
		t.Errorf("password was not hashed: %q", second.PasswordHash)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s, accounts := newTestAccountService()

	if _, err := s.Register(ctx, "alice", "pw"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Register(ctx, "alice", "other"); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("Register duplicate = %v, want ErrUsernameTaken", err)
	}

	// Usernames are case-sensitive.
	if _, err := s.Register(ctx, "Alice", "pw"); err != nil {
		t.Errorf("Register case variant = %v, want success", err)
	}
	if n, _ := accounts.Count(ctx); n != 2 {
		t.Errorf("account count = %d, want 2", n)
	}
}

func TestAuthenticateIsGeneric(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestAccountService()
	if _, err := s.Register(ctx, "alice", "correct horse"); err != nil {
		t.Fatal(err)
	}

	a, err := s.Authenticate(ctx, "alice", "correct horse")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if a.Username != "alice" {
		t.Errorf("Username = %q", a.Username)
	}

	_, wrongPassword := s.Authenticate(ctx, "alice", "battery staple")
	_, unknownUser := s.Authenticate(ctx, "mallory", "correct horse")
	_, wrongCase := s.Authenticate(ctx, "ALICE", "correct horse")

	for name, err := range map[string]error{"wrong password": wrongPassword, "unknown user": unknownUser, "wrong case": wrongCase} {
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("%s: err = %v, want ErrInvalidCredentials", name, err)
		}
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Errorf("errors differ: %q vs %q", wrongPassword, unknownUser)
	}
}

func TestRegisterStoreFailure(t *testing.T) {
	s, accounts := newTestAccountService()
	accounts.Fail = true
	if _, err := s.Register(context.Background(), "alice", "pw"); err == nil || errors.Is(err, ErrUsernameTaken) {
		t.Errorf("Register with failing store = %v, want wrapped infrastructure error", err)
	}
}

func TestRegisterPasswordByteLimit(t *testing.T) {
	ctx := context.Background()
	s, accounts := newTestAccountService()

	if _, err := s.Register(ctx, "alice", strings.Repeat("a", 100)); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("Register 100-byte password = %v, want ErrPasswordTooLong", err)
	}
	// 60 runes but 90 bytes.
	if _, err := s.Register(ctx, "bob", strings.Repeat("é", 30)+strings.Repeat("x", 30)); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("Register multi-byte password = %v, want ErrPasswordTooLong", err)
	}
	if n, _ := accounts.Count(ctx); n != 0 {
		t.Errorf("account count = %d, want 0", n)
	}

	if _, err := s.Register(ctx, "carol", strings.Repeat("a", MaxPasswordBytes)); err != nil {
		t.Errorf("Register 72-byte password = %v, want success", err)
	}
}
