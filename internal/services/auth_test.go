package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/knowligo/knowligo-backend/internal/pkg/ctxutil"
	"github.com/knowligo/knowligo-backend/internal/platform/apierr"
)

func newTestAuthService(t *testing.T, users *stubUserRepo) AuthService {
	t.Helper()
	return NewAuthService(nil, testLogger(t), users, nil, "test-secret", 7*24*time.Hour)
}

func TestAuthRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	users := newStubUserRepo()
	svc := newTestAuthService(t, users)

	user, token, err := svc.Register(ctx, RegisterInput{
		Email:    "Grace@Example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "grace@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Username != "grace" {
		t.Fatalf("username not derived from email: %q", user.Username)
	}
	if user.Password == nil || *user.Password == "correct-horse" {
		t.Fatalf("password stored in the clear")
	}
	if token == "" {
		t.Fatalf("no token issued")
	}

	// The issued token round-trips into request data.
	authed, err := svc.SetContextFromToken(ctx, token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := ctxutil.GetRequestData(authed)
	if rd == nil || rd.UserID != user.ID || rd.Email != user.Email {
		t.Fatalf("request data mismatch: %+v", rd)
	}

	if _, _, err := svc.Register(ctx, RegisterInput{Email: "grace@example.com", Password: "another-pass"}); err == nil {
		t.Fatalf("Register(duplicate): want conflict")
	} else if e, ok := apierr.As(err); !ok || e.Status != http.StatusConflict {
		t.Fatalf("Register(duplicate): got %v", err)
	}

	if _, _, err := svc.Register(ctx, RegisterInput{Email: "short@example.com", Password: "tiny"}); err == nil {
		t.Fatalf("Register(short password): want validation error")
	}

	got, tok2, err := svc.Login(ctx, "grace@example.com", "correct-horse")
	if err != nil || got.ID != user.ID || tok2 == "" {
		t.Fatalf("Login: got=%v err=%v", got, err)
	}

	if _, _, err := svc.Login(ctx, "grace@example.com", "wrong"); err == nil {
		t.Fatalf("Login(wrong password): want error")
	} else if e, ok := apierr.As(err); !ok || e.Status != http.StatusUnauthorized {
		t.Fatalf("Login(wrong password): got %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "whatever"); err == nil {
		t.Fatalf("Login(unknown email): want error")
	}
}

func TestAuthTokenValidation(t *testing.T) {
	ctx := context.Background()
	users := newStubUserRepo()
	svc := newTestAuthService(t, users)

	if _, err := svc.SetContextFromToken(ctx, "not-a-token"); err == nil {
		t.Fatalf("SetContextFromToken(garbage): want error")
	}

	// A token signed with a different secret is rejected.
	other := NewAuthService(nil, testLogger(t), users, nil, "other-secret", time.Hour)
	_, token, err := other.Register(ctx, RegisterInput{Email: "eve@example.com", Password: "long-enough"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.SetContextFromToken(ctx, token); err == nil {
		t.Fatalf("SetContextFromToken(foreign signature): want error")
	}

	// An expired token is rejected.
	expired := NewAuthService(nil, testLogger(t), users, nil, "test-secret", -time.Minute)
	_, token, err = expired.Register(ctx, RegisterInput{Email: "old@example.com", Password: "long-enough"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.SetContextFromToken(ctx, token); err == nil {
		t.Fatalf("SetContextFromToken(expired): want error")
	}
}

func TestAuthCurrentUser(t *testing.T) {
	ctx := context.Background()
	users := newStubUserRepo()
	svc := newTestAuthService(t, users)

	if _, err := svc.CurrentUser(ctx); err == nil {
		t.Fatalf("CurrentUser(no auth): want error")
	}

	user, token, err := svc.Register(ctx, RegisterInput{Email: "me@example.com", Password: "long-enough"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	authed, err := svc.SetContextFromToken(ctx, token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	got, err := svc.CurrentUser(authed)
	if err != nil || got.ID != user.ID {
		t.Fatalf("CurrentUser: got=%v err=%v", got, err)
	}
}
