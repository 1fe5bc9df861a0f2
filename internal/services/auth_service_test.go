package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"safecity/internal/config"
	"safecity/internal/models"
	"safecity/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return user, nil
}

func newAuthServiceForTest(t *testing.T) (AuthService, *fakeUserRepo, *fakeCache) {
	t.Helper()

	repo := newFakeUserRepo()
	cache := newFakeCache()
	service := NewAuthService(repo, cache, newTestLogger(t), &config.AuthConfig{
		JWTSecret:  "test-secret",
		SessionTTL: time.Hour,
	})

	return service, repo, cache
}

func TestSignUpAndSignIn(t *testing.T) {
	service, repo, _ := newAuthServiceForTest(t)

	user, err := service.SignUp(context.Background(), "Asha Kumar", "Asha@Example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Errorf("role = %q, want %q", user.Role, models.RoleUser)
	}
	if user.Password == "correct horse battery" {
		t.Error("password stored in plaintext")
	}
	if _, ok := repo.users["asha@example.com"]; !ok {
		t.Error("email not normalized to lowercase")
	}

	token, session, err := service.SignIn(context.Background(), "asha@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if token == "" {
		t.Fatal("empty session token")
	}
	if session.UserID != user.ID {
		t.Errorf("session user = %v, want %v", session.UserID, user.ID)
	}

	resolved, err := service.SessionFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("SessionFromToken: %v", err)
	}
	if resolved.UserID != user.ID || resolved.Role != models.RoleUser {
		t.Errorf("resolved session = %+v", resolved)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	service, _, _ := newAuthServiceForTest(t)

	if _, err := service.SignUp(context.Background(), "Asha", "asha@example.com", "longpassword"); err != nil {
		t.Fatalf("first SignUp: %v", err)
	}

	_, err := service.SignUp(context.Background(), "Other", "asha@example.com", "otherpassword")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestSignUpValidation(t *testing.T) {
	service, _, _ := newAuthServiceForTest(t)

	_, err := service.SignUp(context.Background(), "A", "not-an-email", "short")

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	for _, field := range []string{"name", "email", "password"} {
		if _, ok := validationErr.Fields[field]; !ok {
			t.Errorf("fields = %v, want entry for %q", validationErr.Fields, field)
		}
	}
}

func TestSignInWrongPassword(t *testing.T) {
	service, _, _ := newAuthServiceForTest(t)

	if _, err := service.SignUp(context.Background(), "Asha", "asha@example.com", "longpassword"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if _, _, err := service.SignIn(context.Background(), "asha@example.com", "wrongpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := service.SignIn(context.Background(), "nobody@example.com", "longpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestSignOutRevokesSession(t *testing.T) {
	service, _, _ := newAuthServiceForTest(t)

	if _, err := service.SignUp(context.Background(), "Asha", "asha@example.com", "longpassword"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	token, _, err := service.SignIn(context.Background(), "asha@example.com", "longpassword")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	if err := service.SignOut(context.Background(), token); err != nil {
		t.Fatalf("SignOut: %v", err)
	}

	if _, err := service.SessionFromToken(context.Background(), token); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("revoked session err = %v, want ErrUnauthorized", err)
	}
}

func TestUserBehindSession(t *testing.T) {
	service, _, _ := newAuthServiceForTest(t)

	created, err := service.SignUp(context.Background(), "Asha Kumar", "asha@example.com", "longpassword")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	_, session, err := service.SignIn(context.Background(), "asha@example.com", "longpassword")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	user, err := service.User(context.Background(), session)
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if user.ID != created.ID || user.Email != "asha@example.com" {
		t.Errorf("user = %+v, want the signed-up account", user)
	}

	// a session whose account has disappeared resolves to not found
	orphan := &models.Session{
		ID:        "orphan",
		UserID:    primitive.NewObjectID(),
		Role:      models.RoleUser,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if _, err := service.User(context.Background(), orphan); !errors.Is(err, interfaces.ErrNotFound) {
		t.Errorf("orphan session err = %v, want ErrNotFound", err)
	}

	if _, err := service.User(context.Background(), nil); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("nil session err = %v, want ErrUnauthorized", err)
	}
}

func TestSessionFromTokenRejectsGarbage(t *testing.T) {
	service, _, _ := newAuthServiceForTest(t)

	if _, err := service.SessionFromToken(context.Background(), "not.a.token"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestSessionFromTokenRejectsForgedSignature(t *testing.T) {
	service, _, cache := newAuthServiceForTest(t)

	if _, err := service.SignUp(context.Background(), "Asha", "asha@example.com", "longpassword"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	token, _, err := service.SignIn(context.Background(), "asha@example.com", "longpassword")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	// a service with a different key must not accept the token, even
	// though the session is live in the shared store
	other := NewAuthService(newFakeUserRepo(), cache, newTestLogger(t), &config.AuthConfig{
		JWTSecret:  "different-secret",
		SessionTTL: time.Hour,
	})

	if _, err := other.SessionFromToken(context.Background(), token); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("forged token err = %v, want ErrUnauthorized", err)
	}
}
