package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stemsi/gamesurvey-backend/internal/testutil"
)

func TestHashAndCheckPassword(t *testing.T) {
	s := NewAuthService(testConfig(), testutil.NewSessions())

	hash, err := s.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("password stored in plain text")
	}
	if err := s.CheckPassword(hash, "hunter2"); err != nil {
		t.Errorf("CheckPassword(correct) = %v", err)
	}
	if err := s.CheckPassword(hash, "hunter3"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("CheckPassword(wrong) = %v, want ErrInvalidCredentials", err)
	}
}

func TestIssueAndValidateSession(t *testing.T) {
	ctx := context.Background()
	sessions := testutil.NewSessions()
	s := NewAuthService(testConfig(), sessions)

	token, issued, err := s.IssueSession(ctx, 7)
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}
	if sessions.TTLs[issued.SessionID()] != time.Hour {
		t.Errorf("session TTL = %v, want 1h", sessions.TTLs[issued.SessionID()])
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.AccountID != 7 || claims.SessionID() != issued.SessionID() {
		t.Errorf("claims = %+v, want account 7 session %s", claims, issued.SessionID())
	}
	if err := s.ValidateSession(ctx, claims); err != nil {
		t.Errorf("ValidateSession: %v", err)
	}

	t.Run("logout invalidates", func(t *testing.T) {
		if err := s.EndSession(ctx, claims.SessionID()); err != nil {
			t.Fatalf("EndSession: %v", err)
		}
		if err := s.ValidateSession(ctx, claims); !errors.Is(err, ErrSessionInvalidated) {
			t.Errorf("ValidateSession after logout = %v, want ErrSessionInvalidated", err)
		}
	})

	t.Run("session bound to another account", func(t *testing.T) {
		_, other, err := s.IssueSession(ctx, 8)
		if err != nil {
			t.Fatal(err)
		}
		forged := *other
		forged.AccountID = 1
		if err := s.ValidateSession(ctx, &forged); !errors.Is(err, ErrSessionInvalidated) {
			t.Errorf("ValidateSession(forged) = %v, want ErrSessionInvalidated", err)
		}
	})
}

func TestValidateTokenRejects(t *testing.T) {
	s := NewAuthService(testConfig(), testutil.NewSessions())

	t.Run("garbage", func(t *testing.T) {
		if _, err := s.ValidateToken("not-a-jwt"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := testConfig()
		other.JWTSecret = "someone-else"
		token, _, err := NewAuthService(other, testutil.NewSessions()).IssueSession(context.Background(), 1)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := s.ValidateToken(token); err == nil {
			t.Error("expected signature error")
		}
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewAuthService(testConfig(), testutil.NewSessions())
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := expired.IssueSession(context.Background(), 1)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := s.ValidateToken(token); !errors.Is(err, jwt.ErrTokenExpired) {
			t.Errorf("ValidateToken(expired) = %v, want jwt.ErrTokenExpired", err)
		}
	})
}
