package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/learnhub/learnhub-api/internal/core/domain"
)

const testSecret = "test-secret"

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	user, err := svc.Register(context.Background(), "John Smith", "john@example.com", "hunter22", domain.RoleInstructor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == "" {
		t.Error("registered user must have an id")
	}
	if user.PasswordHash == "hunter22" {
		t.Error("password must be hashed")
	}
	if user.Role != domain.RoleInstructor {
		t.Errorf("wrong role: %q", user.Role)
	}
}

func TestAuthService_Register_InvalidInput(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	cases := []struct{ name, email, password, role string }{
		{"", "a@b.c", "pw", domain.RoleStudent},
		{"A", "", "pw", domain.RoleStudent},
		{"A", "a@b.c", "", domain.RoleStudent},
		{"A", "a@b.c", "pw", "superuser"},
	}
	for _, tc := range cases {
		if _, err := svc.Register(context.Background(), tc.name, tc.email, tc.password, tc.role); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("register(%q,%q,...,%q): expected ErrInvalidCredentials, got %v", tc.name, tc.email, tc.role, err)
		}
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), "A", "dup@example.com", "pw", domain.RoleStudent); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "B", "dup@example.com", "pw", domain.RoleStudent); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)
	registered, _ := svc.Register(context.Background(), "Emily Chen", "emily@example.com", "pw-123", domain.RoleInstructor)

	token, user, err := svc.Login(context.Background(), "emily@example.com", "pw-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != registered.ID {
		t.Error("login must return the registered user")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token must be valid: %v", err)
	}
	if claims["user_id"] != registered.ID {
		t.Errorf("token user_id claim wrong: %v", claims["user_id"])
	}
	if claims["role"] != domain.RoleInstructor {
		t.Errorf("token role claim wrong: %v", claims["role"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)
	_, _ = svc.Register(context.Background(), "A", "a@example.com", "correct", domain.RoleStudent)

	_, _, err := svc.Login(context.Background(), "a@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "pw")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
