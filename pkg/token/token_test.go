package token

import (
	"errors"
	"testing"
	"time"

	"tic-marketplace/internal/data/entity"
	"tic-marketplace/pkg/apperr"

	"github.com/google/uuid"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test-secret")
	userID := uuid.New()

	tokenStr, err := issuer.Issue(userID, "ana@example.com", entity.RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := issuer.Verify(tokenStr)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.Email != "ana@example.com" {
		t.Errorf("expected email ana@example.com, got %s", claims.Email)
	}
	if claims.Role != entity.RoleUser {
		t.Errorf("expected role user, got %s", claims.Role)
	}

	subject, err := claims.Subject()
	if err != nil {
		t.Fatalf("Subject returned error: %v", err)
	}
	if subject != userID {
		t.Errorf("expected subject %s, got %s", userID, subject)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	tokenStr, err := NewIssuer("secret-a").Issue(uuid.New(), "x@example.com", entity.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = NewIssuer("secret-b").Verify(tokenStr)
	if err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindInvalidToken {
		t.Errorf("expected KindInvalidToken, got %v", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	issuer := NewIssuer("test-secret")
	tokenStr, err := issuer.Issue(uuid.New(), "x@example.com", entity.RoleUser, -time.Minute)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = issuer.Verify(tokenStr)
	if err == nil {
		t.Fatal("expected error for expired token")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindExpiredToken {
		t.Errorf("expected KindExpiredToken, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	_, err := NewIssuer("test-secret").Verify("not-a-jwt")
	if err == nil {
		t.Fatal("expected error for malformed token")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindInvalidToken {
		t.Errorf("expected KindInvalidToken, got %v", err)
	}
}
