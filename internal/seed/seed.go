// Package seed は開発・デモ用の初期データ投入を提供する。
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/cinelog/internal/auth"
	"github.com/hitoshi/cinelog/internal/model"
	"github.com/hitoshi/cinelog/internal/repository"
)

// demoUserEmail はシードで作成されるデモユーザーのメールアドレス。
const demoUserEmail = "demo@cinelog.dev"

// demoUserPassword はデモユーザーの初期パスワード。
const demoUserPassword = "demo1234!"

// entryCount は生成されるエントリの総数。
// ページネーションの動作確認に十分な件数にする。
const entryCount = 200

// Seeder はシードデータの投入を行う。
type Seeder struct {
	userRepo  repository.UserRepository
	entryRepo repository.EntryRepository
}

// NewSeeder はSeederを生成する。
func NewSeeder(userRepo repository.UserRepository, entryRepo repository.EntryRepository) *Seeder {
	return &Seeder{
		userRepo:  userRepo,
		entryRepo: entryRepo,
	}
}

// Run はシードデータを投入する。
// 既存のエントリを全削除してから再生成する（冪等）。
// デモユーザーは存在しない場合のみ作成する。
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.ensureDemoUser(ctx); err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}

	if err := s.entryRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}

	// 再現性のある生成のためシードを固定する
	rng := rand.New(rand.NewSource(42))

	// CreatedAtをずらしてカーソルページネーションの全順序を安定させる
	base := time.Now().Add(-time.Duration(entryCount) * time.Minute)

	for i := 0; i < entryCount; i++ {
		e := generateEntry(rng, base.Add(time.Duration(i)*time.Minute))
		if err := s.entryRepo.Create(ctx, e); err != nil {
			return fmt.Errorf("failed to create seed entry %q: %w", e.Title, err)
		}
	}

	total, err := s.entryRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count entries: %w", err)
	}

	slog.Info("seed completed",
		slog.Int("entries", total),
		slog.String("demo_user", demoUserEmail),
	)
	return nil
}

// ensureDemoUser はデモユーザーが存在しない場合に作成する。
func (s *Seeder) ensureDemoUser(ctx context.Context) error {
	existing, err := s.userRepo.FindByEmail(ctx, demoUserEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := auth.HashPassword(demoUserPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        demoUserEmail,
		PasswordHash: hash,
		Name:         "デモユーザー",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.userRepo.Create(ctx, user)
}

var movieTitles = []string{
	"Inception", "The Matrix", "Interstellar", "Parasite", "Seven Samurai",
	"Spirited Away", "Pulp Fiction", "The Godfather", "Blade Runner", "Alien",
	"Whiplash", "The Departed", "Mad Max: Fury Road", "Arrival", "Her",
	"No Country for Old Men", "There Will Be Blood", "Oldboy", "Drive", "Heat",
}

var tvTitles = []string{
	"Breaking Bad", "The Wire", "True Detective", "Chernobyl", "The Sopranos",
	"Better Call Saul", "Dark", "Mindhunter", "Fargo", "Severance",
	"The Expanse", "Succession", "Band of Brothers", "Mr. Robot", "Atlanta",
}

var directors = []string{
	"Christopher Nolan", "Denis Villeneuve", "Bong Joon-ho", "Akira Kurosawa",
	"Hayao Miyazaki", "Quentin Tarantino", "Martin Scorsese", "Ridley Scott",
	"David Fincher", "Vince Gilligan", "Park Chan-wook", "Greta Gerwig",
}

var locations = []string{
	"Los Angeles", "Tokyo", "Seoul", "London", "Paris", "New Mexico",
	"Vancouver", "Sydney", "Reykjavik", "Prague", "Toronto", "Atlanta",
}

var budgets = []string{
	"$5 million", "$20 million", "$45 million", "$90 million",
	"$160 million", "$250 million",
}

var durations = []string{
	"96 min", "108 min", "121 min", "136 min", "148 min", "169 min",
}

var years = []string{
	"1994", "1999", "2008", "2014", "2017", "2019", "2021", "2023",
}

// generateEntry は1件のエントリを生成する。
// 同名タイトルが複数回出現し得るため、タイトルに連番は付けず
// 検索・フィルタの動作確認ができる自然な重複を許容する。
func generateEntry(rng *rand.Rand, createdAt time.Time) *model.Entry {
	entryType := model.EntryTypeMovie
	title := movieTitles[rng.Intn(len(movieTitles))]
	if rng.Intn(5) < 2 {
		entryType = model.EntryTypeTVShow
		title = tvTitles[rng.Intn(len(tvTitles))]
	}

	return &model.Entry{
		ID:        uuid.New().String(),
		Title:     title,
		Type:      entryType,
		Director:  directors[rng.Intn(len(directors))],
		Budget:    budgets[rng.Intn(len(budgets))],
		Location:  locations[rng.Intn(len(locations))],
		Duration:  durations[rng.Intn(len(durations))],
		YearTime:  years[rng.Intn(len(years))],
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}
