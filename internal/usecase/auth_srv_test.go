package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tic-marketplace/internal/data/entity"
	"tic-marketplace/internal/dto/request"
	"tic-marketplace/pkg/apperr"
	"tic-marketplace/pkg/token"
	"tic-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{
			FrontendURL: "http://localhost:5173",
		},
		Admin: utils.AdminConfig{
			GateCode: "codigo-admin",
		},
	}
}

func newTestAuthService(users *fakeUserRepo, resets *fakeResetRepo, mailer *fakeMailer) AuthService {
	return NewAuthService(
		testRepos(users, resets),
		token.NewIssuer("test-secret"),
		mailer,
		testConfig(),
		zap.NewNop(),
	)
}

func signupReq() *request.SignupRequest {
	return &request.SignupRequest{
		Name:            "Ana Torres",
		Email:           "ana@example.com",
		Password:        "secreto123",
		ConfirmPassword: "secreto123",
		Role:            "user",
	}
}

func expectKind(t *testing.T, err error, want apperr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperr.Error, got %T: %v", err, err)
	}
	if appErr.Kind != want {
		t.Fatalf("expected kind %d, got %d (%s)", want, appErr.Kind, appErr.Message)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, newFakeResetRepo(users), &fakeMailer{})

	resp, err := svc.Register(context.Background(), signupReq())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a session token after signup")
	}
	if resp.User.Role != "" {
		t.Errorf("signup response must not carry a role, got %q", resp.User.Role)
	}

	stored, err := users.FindByEmail(context.Background(), "ana@example.com")
	if err != nil || stored == nil {
		t.Fatalf("expected user stored, got %v %v", stored, err)
	}
	if stored.PasswordHash == "secreto123" {
		t.Error("password must be stored hashed")
	}
	if stored.AdminPasswordHash != nil {
		t.Error("regular user must not carry an admin hash")
	}

	login, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "ana@example.com",
		Password: "secreto123",
		Role:     "user",
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if login.User.Role != entity.RoleUser {
		t.Errorf("login response must include the role, got %q", login.User.Role)
	}

	claims, err := token.NewIssuer("test-secret").Verify(login.Token)
	if err != nil {
		t.Fatalf("login token did not verify: %v", err)
	}
	if claims.Email != "ana@example.com" {
		t.Errorf("expected token email ana@example.com, got %s", claims.Email)
	}
}

func TestRegisterValidation(t *testing.T) {
	svcFor := func() AuthService {
		users := newFakeUserRepo()
		return newTestAuthService(users, newFakeResetRepo(users), &fakeMailer{})
	}

	req := signupReq()
	req.ConfirmPassword = "otra"
	_, err := svcFor().Register(context.Background(), req)
	expectKind(t, err, apperr.KindValidation)

	req = signupReq()
	req.Password = "corta"
	req.ConfirmPassword = "corta"
	_, err = svcFor().Register(context.Background(), req)
	expectKind(t, err, apperr.KindValidation)

	req = signupReq()
	req.Name = ""
	_, err = svcFor().Register(context.Background(), req)
	expectKind(t, err, apperr.KindValidation)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, newFakeResetRepo(users), &fakeMailer{})

	if _, err := svc.Register(context.Background(), signupReq()); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}

	_, err := svc.Register(context.Background(), signupReq())
	expectKind(t, err, apperr.KindConflict)
	if got := apperr.MessageOf(err); got != "El correo ya está registrado." {
		t.Errorf("unexpected message %q", got)
	}
}

func TestRegisterAdminGateCode(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, newFakeResetRepo(users), &fakeMailer{})

	req := signupReq()
	req.Role = "admin"
	req.AdminPassword = "equivocado"
	_, err := svc.Register(context.Background(), req)
	expectKind(t, err, apperr.KindGateCode)
	if got := apperr.MessageOf(err); got != "Contraseña de Admin incorrecta." {
		t.Errorf("unexpected message %q", got)
	}

	// Surrounding whitespace is tolerated on both sides
	req.AdminPassword = "  codigo-admin  "
	resp, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register with padded gate-code returned error: %v", err)
	}

	stored, _ := users.FindByEmail(context.Background(), req.Email)
	if stored == nil || stored.Role != entity.RoleAdmin {
		t.Fatal("expected admin user stored")
	}
	if stored.AdminPasswordHash == nil {
		t.Error("expected admin hash stored for admin signup")
	}
	if resp.Token == "" {
		t.Error("expected a session token")
	}
}

func TestLoginFailures(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, newFakeResetRepo(users), &fakeMailer{})

	if _, err := svc.Register(context.Background(), signupReq()); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Email: "nadie@example.com", Password: "secreto123", Role: "user",
	})
	expectKind(t, err, apperr.KindNotFound)

	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Email: "ana@example.com", Password: "equivocada", Role: "user",
	})
	expectKind(t, err, apperr.KindInvalidCredentials)

	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Email: "ana@example.com", Password: "secreto123", Role: "admin",
	})
	expectKind(t, err, apperr.KindAuthorization)
	if got := apperr.MessageOf(err); !strings.Contains(got, "registrada como user") {
		t.Errorf("role mismatch message should name the stored role, got %q", got)
	}
}

func TestRequestPasswordReset(t *testing.T) {
	users := newFakeUserRepo()
	resets := newFakeResetRepo(users)
	mailer := &fakeMailer{}
	svc := newTestAuthService(users, resets, mailer)

	if _, err := svc.Register(context.Background(), signupReq()); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	err := svc.RequestPasswordReset(context.Background(), "nadie@example.com")
	expectKind(t, err, apperr.KindNotFound)

	if err := svc.RequestPasswordReset(context.Background(), "ana@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset returned error: %v", err)
	}

	mail, ok := mailer.lastSent()
	if !ok {
		t.Fatal("expected a reset email to be sent")
	}
	if mail.to != "ana@example.com" {
		t.Errorf("expected mail to ana@example.com, got %s", mail.to)
	}
	if mail.subject != "Restablecer Contraseña - TIC Americas" {
		t.Errorf("unexpected subject %q", mail.subject)
	}
	if !strings.Contains(mail.body, "http://localhost:5173/reset-password?token=") {
		t.Errorf("reset link missing from body: %s", mail.body)
	}
}

func TestRequestPasswordResetDeliveryFailure(t *testing.T) {
	users := newFakeUserRepo()
	resets := newFakeResetRepo(users)
	mailer := &fakeMailer{failWith: errors.New("smtp down")}
	svc := newTestAuthService(users, resets, mailer)

	if _, err := svc.Register(context.Background(), signupReq()); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	err := svc.RequestPasswordReset(context.Background(), "ana@example.com")
	expectKind(t, err, apperr.KindInternal)
}

func TestResetPassword(t *testing.T) {
	users := newFakeUserRepo()
	resets := newFakeResetRepo(users)
	mailer := &fakeMailer{}
	svc := newTestAuthService(users, resets, mailer)

	if _, err := svc.Register(context.Background(), signupReq()); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if err := svc.RequestPasswordReset(context.Background(), "ana@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset returned error: %v", err)
	}

	mail, _ := mailer.lastSent()
	idx := strings.Index(mail.body, "token=")
	if idx < 0 {
		t.Fatal("token missing from reset email")
	}
	resetToken := mail.body[idx+len("token="):]
	resetToken = resetToken[:strings.IndexAny(resetToken, "\"<")]

	err := svc.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Token: "token-inexistente", NewPassword: "nueva-clave",
	})
	expectKind(t, err, apperr.KindInvalidToken)

	err = svc.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Token: resetToken, NewPassword: "corta",
	})
	expectKind(t, err, apperr.KindValidation)

	if err := svc.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Token: resetToken, NewPassword: "nueva-clave",
	}); err != nil {
		t.Fatalf("ResetPassword returned error: %v", err)
	}

	// Token is single-use
	err = svc.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Token: resetToken, NewPassword: "otra-clave1",
	})
	expectKind(t, err, apperr.KindInvalidToken)

	// Old password no longer works, the new one does
	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Email: "ana@example.com", Password: "secreto123", Role: "user",
	})
	expectKind(t, err, apperr.KindInvalidCredentials)

	if _, err := svc.Login(context.Background(), &request.LoginRequest{
		Email: "ana@example.com", Password: "nueva-clave", Role: "user",
	}); err != nil {
		t.Fatalf("Login with new password returned error: %v", err)
	}
}

func TestResetPasswordExpiredToken(t *testing.T) {
	users := newFakeUserRepo()
	resets := newFakeResetRepo(users)
	svc := newTestAuthService(users, resets, &fakeMailer{})

	resp, err := svc.Register(context.Background(), signupReq())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	userID, err := uuid.Parse(resp.User.UserID)
	if err != nil {
		t.Fatalf("bad user id in response: %v", err)
	}

	expired := &entity.PasswordReset{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now().Add(-2 * time.Hour)},
		UserID:     userID,
		Token:      "abcdef0123456789abcdef0123456789abcdef01",
		ExpiresAt:  time.Now().Add(-time.Hour),
	}
	if err := resets.Create(context.Background(), expired); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	err = svc.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Token: expired.Token, NewPassword: "nueva-clave",
	})
	expectKind(t, err, apperr.KindExpiredToken)
	if got := apperr.MessageOf(err); got != "El token ha expirado." {
		t.Errorf("unexpected message %q", got)
	}
}

func TestVerifyPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, newFakeResetRepo(users), &fakeMailer{})

	resp, err := svc.Register(context.Background(), signupReq())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	userID, _ := uuid.Parse(resp.User.UserID)

	valid, err := svc.VerifyPassword(context.Background(), userID, "secreto123")
	if err != nil {
		t.Fatalf("VerifyPassword returned error: %v", err)
	}
	if !valid {
		t.Error("expected correct password to validate")
	}

	valid, err = svc.VerifyPassword(context.Background(), userID, "equivocada")
	if err != nil {
		t.Fatalf("VerifyPassword returned error: %v", err)
	}
	if valid {
		t.Error("expected wrong password to fail validation")
	}

	_, err = svc.VerifyPassword(context.Background(), uuid.New(), "secreto123")
	expectKind(t, err, apperr.KindNotFound)
}
