package service

import (
	"context"
	"errors"
	"testing"

	"github.com/akoreshkov/taskkeeper/internal/models"
	"github.com/akoreshkov/taskkeeper/internal/password"
	"github.com/akoreshkov/taskkeeper/internal/repository"
)

type mockUserRepo struct {
	CreateFunc      func(ctx context.Context, user *models.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*models.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.CreateFunc(ctx, user)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.FindByEmailFunc(ctx, email)
}

type mockIssuer struct {
	IssueFunc func(userID, email string) (string, error)
}

func (m *mockIssuer) Issue(userID, email string) (string, error) {
	return m.IssueFunc(userID, email)
}

func staticIssuer(tok string) *mockIssuer {
	return &mockIssuer{IssueFunc: func(userID, email string) (string, error) { return tok, nil }}
}

func TestAuthService_Register_Success(t *testing.T) {
	var created *models.User
	repo := &mockUserRepo{
		CreateFunc: func(ctx context.Context, user *models.User) error {
			created = user
			return nil
		},
	}
	svc := NewAuthService(repo, password.NewHasher(), staticIssuer("tok-1"))

	user, tok, err := svc.Register(context.Background(), "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if tok != "tok-1" {
		t.Errorf("expected issued token, got %q", tok)
	}
	if user.Email != "a@x.com" {
		t.Errorf("unexpected public view: %+v", user)
	}
	if user.ID == "" {
		t.Error("expected an assigned id")
	}
	if created == nil {
		t.Fatal("expected Create to be called")
	}
	if created.PasswordHash == "secret1" || created.PasswordHash == "" {
		t.Errorf("password must be stored hashed, got %q", created.PasswordHash)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{
		CreateFunc: func(ctx context.Context, user *models.User) error {
			return repository.ErrDuplicateEmail
		},
	}
	svc := NewAuthService(repo, password.NewHasher(), staticIssuer("tok"))

	_, _, err := svc.Register(context.Background(), "a@x.com", "secret1")
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	hasher := password.NewHasher()
	hash, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	repo := &mockUserRepo{
		FindByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: "u1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := NewAuthService(repo, hasher, staticIssuer("fresh-token"))

	user, tok, err := svc.Login(context.Background(), "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if tok != "fresh-token" {
		t.Errorf("expected a fresh token, got %q", tok)
	}
	if user.ID != "u1" {
		t.Errorf("unexpected public view: %+v", user)
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestAuthService_Login_UniformFailure(t *testing.T) {
	hasher := password.NewHasher()
	hash, err := hasher.Hash("right-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	unknownEmail := &mockUserRepo{
		FindByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return nil, repository.ErrNotFound
		},
	}
	wrongPassword := &mockUserRepo{
		FindByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: "u1", Email: email, PasswordHash: hash}, nil
		},
	}

	_, _, errUnknown := NewAuthService(unknownEmail, hasher, staticIssuer("t")).
		Login(context.Background(), "missing@x.com", "whatever")
	_, _, errWrong := NewAuthService(wrongPassword, hasher, staticIssuer("t")).
		Login(context.Background(), "a@x.com", "wrong-password")

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrong, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrong)
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Errorf("failure modes must be identical: %q vs %q", errUnknown, errWrong)
	}
}
