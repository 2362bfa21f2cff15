package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hitoshi/cinelog/internal/model"
)

// mockUserRepo はUserRepositoryのモック実装。
type mockUserRepo struct {
	findByIDFunc    func(ctx context.Context, id string) (*model.User, error)
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	createFunc      func(ctx context.Context, user *model.User) error
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func newTestService(repo *mockUserRepo) *Service {
	return NewService(repo, NewTokenCodec(testSecret))
}

func TestSignup_NewEmail_CreatesUser(t *testing.T) {
	var created *model.User
	repo := &mockUserRepo{
		createFunc: func(ctx context.Context, user *model.User) error {
			created = user
			return nil
		},
	}
	svc := newTestService(repo)

	pub, err := svc.Signup(context.Background(), "new@example.com", "password1", "New User")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if created == nil {
		t.Fatal("expected Create to be called")
	}
	if created.ID == "" {
		t.Error("expected generated user ID")
	}
	if created.PasswordHash == "password1" {
		t.Error("password must be hashed before persisting")
	}
	if !VerifyPassword("password1", created.PasswordHash) {
		t.Error("persisted hash should verify against the original password")
	}

	if pub.Email != "new@example.com" {
		t.Errorf("Email = %q, want %q", pub.Email, "new@example.com")
	}
	if pub.Name != "New User" {
		t.Errorf("Name = %q, want %q", pub.Name, "New User")
	}
}

func TestSignup_ExistingEmail_ReturnsEmailExists(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "u-1", Email: email}, nil
		},
	}
	svc := newTestService(repo)

	_, err := svc.Signup(context.Background(), "dup@example.com", "password1", "")
	assertAPIErrorCode(t, err, model.ErrCodeEmailExists)
}

// 事前チェックをすり抜けた競合はリポジトリの一意制約エラーがそのまま返ること
func TestSignup_CreateRace_PropagatesEmailExists(t *testing.T) {
	repo := &mockUserRepo{
		createFunc: func(ctx context.Context, user *model.User) error {
			return model.NewEmailExistsError()
		},
	}
	svc := newTestService(repo)

	_, err := svc.Signup(context.Background(), "race@example.com", "password1", "")
	assertAPIErrorCode(t, err, model.ErrCodeEmailExists)
}

func TestSignup_RepoError_IsWrapped(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return nil, errors.New("db down")
		},
	}
	svc := newTestService(repo)

	_, err := svc.Signup(context.Background(), "x@example.com", "password1", "")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestLogin_ValidCredentials_ReturnsUser(t *testing.T) {
	hash, err := HashPassword("password1")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	now := time.Now()
	repo := &mockUserRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID: "u-1", Email: email, PasswordHash: hash,
				Name: "Test User", CreatedAt: now, UpdatedAt: now,
			}, nil
		},
	}
	svc := newTestService(repo)

	pub, err := svc.Login(context.Background(), "test@example.com", "password1", false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pub.ID != "u-1" {
		t.Errorf("ID = %q, want %q", pub.ID, "u-1")
	}
}

func TestLogin_UnknownEmail_ReturnsEmailNotFound(t *testing.T) {
	svc := newTestService(&mockUserRepo{})

	_, err := svc.Login(context.Background(), "missing@example.com", "password1", false)
	assertAPIErrorCode(t, err, model.ErrCodeEmailNotFound)
}

func TestLogin_WrongPassword_ReturnsWrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-password1")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	repo := &mockUserRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "u-1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := newTestService(repo)

	_, err = svc.Login(context.Background(), "test@example.com", "wrong-password1", false)
	assertAPIErrorCode(t, err, model.ErrCodeWrongPassword)
}

func TestGetUserByID_Found_ReturnsPublicUser(t *testing.T) {
	repo := &mockUserRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Email: "test@example.com", PasswordHash: "hash"}, nil
		},
	}
	svc := newTestService(repo)

	pub, err := svc.GetUserByID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pub.ID != "u-1" {
		t.Errorf("ID = %q, want %q", pub.ID, "u-1")
	}
}

func TestGetUserByID_Missing_ReturnsUserNotFound(t *testing.T) {
	svc := newTestService(&mockUserRepo{})

	_, err := svc.GetUserByID(context.Background(), "missing")
	assertAPIErrorCode(t, err, model.ErrCodeUserNotFound)
}

func TestIssueTokenAndVerifyToken_RoundTrip(t *testing.T) {
	svc := newTestService(&mockUserRepo{})

	user := &model.PublicUser{ID: "u-1", Email: "test@example.com"}
	token, err := svc.IssueToken(user, true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if claims.Subject != "u-1" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "u-1")
	}
	if claims.Email != "test@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "test@example.com")
	}
}

// assertAPIErrorCode は指定コードのAPIErrorであることを検証する。
func assertAPIErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.Code != code {
		t.Errorf("error code = %q, want %q", apiErr.Code, code)
	}
}
