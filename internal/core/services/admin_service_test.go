package services

import (
	"context"
	"errors"
	"testing"
)

func newTestAdminService() (*AdminService, *fakeAdminRepo, SessionStore) {
	repo := newFakeAdminRepo()
	sessions := NewSessionStore()
	return NewAdminService(repo, sessions), repo, sessions
}

func TestAdminSignupAndLogin(t *testing.T) {
	svc, repo, sessions := newTestAdminService()
	ctx := context.Background()

	admin, err := svc.Signup(ctx, AdminSignupInput{
		Email: "admin@test.rw", Telephone: "0788000001", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Signup() error: %v", err)
	}
	if repo.admins[admin.ID].Password == "secret123" {
		t.Error("password must be stored hashed")
	}

	if _, err := svc.Signup(ctx, AdminSignupInput{
		Email: "admin@test.rw", Telephone: "0788000002", Password: "another1",
	}); !errors.Is(err, ErrAdminExists) {
		t.Errorf("duplicate email error = %v, want ErrAdminExists", err)
	}

	got, sessionID, err := svc.Login(ctx, "admin@test.rw", "secret123")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if got.Email != "admin@test.rw" {
		t.Errorf("Email = %q", got.Email)
	}
	identity, ok := sessions.Resolve(sessionID)
	if !ok || identity.Kind != SessionKindAdmin {
		t.Errorf("session identity = %+v, resolved = %v", identity, ok)
	}

	if _, _, err := svc.Login(ctx, "admin@test.rw", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@test.rw", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAdminUpdateProfileRefreshesSession(t *testing.T) {
	svc, _, sessions := newTestAdminService()
	ctx := context.Background()

	admin, _ := svc.Signup(ctx, AdminSignupInput{
		Email: "admin@test.rw", Telephone: "0788000001", Password: "secret123",
	})
	_, sessionID, err := svc.Login(ctx, "admin@test.rw", "secret123")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	updated, err := svc.UpdateProfile(ctx, admin.ID, sessionID, UpdateProfileInput{
		Email: "new@test.rw", Telephone: "0788000009",
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error: %v", err)
	}
	if updated.Email != "new@test.rw" {
		t.Errorf("Email = %q", updated.Email)
	}

	identity, ok := sessions.Resolve(sessionID)
	if !ok {
		t.Fatal("session must survive a profile update")
	}
	if identity.Email != "new@test.rw" || identity.Telephone != "0788000009" {
		t.Errorf("session identity not refreshed: %+v", identity)
	}
}

func TestAdminPasswordChangeRequiresCurrentPassword(t *testing.T) {
	svc, _, _ := newTestAdminService()
	ctx := context.Background()

	admin, _ := svc.Signup(ctx, AdminSignupInput{
		Email: "admin@test.rw", Telephone: "0788000001", Password: "secret123",
	})
	_, sessionID, _ := svc.Login(ctx, "admin@test.rw", "secret123")

	_, err := svc.UpdateProfile(ctx, admin.ID, sessionID, UpdateProfileInput{
		Email: "admin@test.rw", Telephone: "0788000001",
		CurrentPassword: "wrong", NewPassword: "brandnew1",
	})
	if !errors.Is(err, ErrCurrentPasswordWrong) {
		t.Fatalf("error = %v, want ErrCurrentPasswordWrong", err)
	}

	if _, err := svc.UpdateProfile(ctx, admin.ID, sessionID, UpdateProfileInput{
		Email: "admin@test.rw", Telephone: "0788000001",
		CurrentPassword: "secret123", NewPassword: "brandnew1",
	}); err != nil {
		t.Fatalf("UpdateProfile() error: %v", err)
	}

	if _, _, err := svc.Login(ctx, "admin@test.rw", "brandnew1"); err != nil {
		t.Errorf("login with the new password failed: %v", err)
	}
}

func TestAdminUpdateProfileEmailTaken(t *testing.T) {
	svc, _, _ := newTestAdminService()
	ctx := context.Background()

	first, _ := svc.Signup(ctx, AdminSignupInput{
		Email: "first@test.rw", Telephone: "0788000001", Password: "secret123",
	})
	if _, err := svc.Signup(ctx, AdminSignupInput{
		Email: "second@test.rw", Telephone: "0788000002", Password: "secret123",
	}); err != nil {
		t.Fatalf("Signup() error: %v", err)
	}

	_, sessionID, _ := svc.Login(ctx, "first@test.rw", "secret123")

	if _, err := svc.UpdateProfile(ctx, first.ID, sessionID, UpdateProfileInput{
		Email: "second@test.rw", Telephone: "0788000001",
	}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("error = %v, want ErrEmailTaken", err)
	}

	// keeping one's own email is never a conflict
	if _, err := svc.UpdateProfile(ctx, first.ID, sessionID, UpdateProfileInput{
		Email: "first@test.rw", Telephone: "0788000003",
	}); err != nil {
		t.Errorf("self-email update error: %v", err)
	}
}

func TestAdminLogoutIdempotent(t *testing.T) {
	svc, _, sessions := newTestAdminService()
	ctx := context.Background()

	if _, err := svc.Signup(ctx, AdminSignupInput{
		Email: "admin@test.rw", Telephone: "0788000001", Password: "secret123",
	}); err != nil {
		t.Fatalf("Signup() error: %v", err)
	}
	_, sessionID, _ := svc.Login(ctx, "admin@test.rw", "secret123")

	svc.Logout(sessionID)
	if _, ok := sessions.Resolve(sessionID); ok {
		t.Error("session must be gone after logout")
	}
	svc.Logout(sessionID) // second logout is a no-op
}
