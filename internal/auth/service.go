package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/cinelog/internal/model"
	"github.com/hitoshi/cinelog/internal/repository"
)

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
	tokens   *TokenCodec
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository, tokens *TokenCodec) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Signup は新規ユーザーを登録する。
// 登録済みメールアドレスの場合はEMAIL_EXISTSエラーを返す。
// 事前チェックと一意制約の間の競合はストアの制約が最終権威であり、
// 挿入時の重複キー違反も同じEMAIL_EXISTSに変換される（リポジトリ側）。
// トークン発行はこの操作の契約に含まれない（境界層が後続で発行する）。
func (s *Service) Signup(ctx context.Context, email, password, name string) (*model.PublicUser, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if existing != nil {
		return nil, model.NewEmailExistsError()
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("new user signed up",
		slog.String("user_id", user.ID),
	)

	pub := user.Public()
	return &pub, nil
}

// Login は認証情報を検証してユーザーの公開プロジェクションを返す。
// 未登録メールはEMAIL_NOT_FOUND、ハッシュ不一致はWRONG_PASSWORDを返す。
// rememberMeはこの操作の内部では使用しない。トークン発行ステップへの
// パススルーとして呼び出し側の便宜のために受け取る。
func (s *Service) Login(ctx context.Context, email, password string, rememberMe bool) (*model.PublicUser, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if user == nil {
		return nil, model.NewEmailNotFoundError()
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, model.NewWrongPasswordError()
	}

	slog.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.Bool("remember_me", rememberMe),
	)

	pub := user.Public()
	return &pub, nil
}

// GetUserByID は検証済みトークンクレームから現在の呼び出し元を実体化する。
// 見つからない場合はUSER_NOT_FOUNDを返す。
func (s *Service) GetUserByID(ctx context.Context, id string) (*model.PublicUser, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	pub := user.Public()
	return &pub, nil
}

// IssueToken はユーザーのベアラートークンを発行する。
func (s *Service) IssueToken(user *model.PublicUser, rememberMe bool) (string, error) {
	return s.tokens.Generate(user.ID, user.Email, rememberMe)
}

// VerifyToken はトークンを検証してクレームを返す。
func (s *Service) VerifyToken(token string) (*Claims, error) {
	return s.tokens.Verify(token)
}
