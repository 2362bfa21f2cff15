// Package entry はカタログエントリの管理機能を提供する。
package entry

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/cinelog/internal/model"
	"github.com/hitoshi/cinelog/internal/repository"
)

const (
	// DefaultPageLimit は一覧・検索の1ページあたりのデフォルト件数。
	DefaultPageLimit = 20
	// MaxPageLimit は1ページあたりの最大件数。これを超えるlimitはクランプされる。
	MaxPageLimit = 100
)

// TextSanitizer はテキスト入力のサニタイズのインターフェース。
// 保存前にHTMLタグ等を除去する。
type TextSanitizer interface {
	Sanitize(raw string) string
}

// Service はエントリのCRUD、カーソルページネーション、検索のサービス。
type Service struct {
	entryRepo repository.EntryRepository
	sanitizer TextSanitizer
}

// NewService はServiceを生成する。
func NewService(entryRepo repository.EntryRepository, sanitizer TextSanitizer) *Service {
	return &Service{
		entryRepo: entryRepo,
		sanitizer: sanitizer,
	}
}

// ListResult はListの戻り値。
type ListResult struct {
	Entries    []model.Entry
	NextCursor string
	HasMore    bool
}

// List はフィルタ条件付きのカーソルページネーションでエントリ一覧を返す。
// limitが0以下の場合はデフォルト値を使い、最大値にクランプする
// （不正なlimitのリクエスト拒否は境界層の責務）。
// cursorが存在しない行を参照する場合はINVALID_CURSORエラーを返す。
// limit+1件を取得してHasMoreを判定する。
func (s *Service) List(
	ctx context.Context,
	limit int,
	cursor string,
	search string,
	entryType model.EntryType,
) (*ListResult, error) {
	limit = clampLimit(limit)

	// カーソル行から全順序のアンカー(created_at, id)を復元する。
	// 行が削除済みの場合は黙って再開せず明示的にエラーにする。
	var anchor *repository.PageAnchor
	if cursor != "" {
		row, err := s.entryRepo.FindByID(ctx, cursor)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, model.NewInvalidCursorError(cursor)
		}
		anchor = &repository.PageAnchor{CreatedAt: row.CreatedAt, ID: row.ID}
	}

	filter := repository.EntryFilter{
		Search: strings.TrimSpace(search),
		Type:   entryType,
	}

	entries, err := s.entryRepo.ListPage(ctx, filter, anchor, limit+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(entries) > limit
	if hasMore {
		entries = entries[:limit]
	}

	var nextCursor string
	if hasMore && len(entries) > 0 {
		nextCursor = entries[len(entries)-1].ID
	}

	return &ListResult{
		Entries:    entries,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

// Search は部分一致検索の単一ページを返す。カーソルには対応しない。
// 空白のみのクエリはINVALID_QUERYエラーを返す
// （境界層でも拒否されるが、エンジン側でも全件一致に黙って倒さない）。
func (s *Service) Search(ctx context.Context, query string, limit int) ([]model.Entry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, model.NewInvalidQueryError("検索クエリが空です")
	}

	limit = clampLimit(limit)

	entries, err := s.entryRepo.ListPage(ctx, repository.EntryFilter{Search: query}, nil, limit)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GetByID は指定IDのエントリを返す。見つからない場合はENTRY_NOT_FOUNDを返す。
func (s *Service) GetByID(ctx context.Context, id string) (*model.Entry, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, model.NewEntryNotFoundError(id)
	}
	return entry, nil
}

// Create は新規エントリを作成する。
// テキストフィールドはサニタイズしてから検証・保存する。
func (s *Service) Create(ctx context.Context, input *CreateEntryInput) (*model.Entry, error) {
	s.sanitizeCreateInput(input)

	if verr := ValidateCreateInput(input); verr != nil {
		return nil, verr
	}

	now := time.Now()
	entry := &model.Entry{
		ID:        uuid.New().String(),
		Title:     input.Title,
		Type:      input.Type,
		Director:  input.Director,
		Budget:    input.Budget,
		Location:  input.Location,
		Duration:  input.Duration,
		YearTime:  input.YearTime,
		PosterURL: input.PosterURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	slog.Info("entry created",
		slog.String("entry_id", entry.ID),
		slog.String("type", string(entry.Type)),
	)

	return entry, nil
}

// Update は供給されたフィールドのみを適用する部分更新を行う。
// 対象が存在しない場合はENTRY_NOT_FOUNDを返す。
func (s *Service) Update(ctx context.Context, id string, input *UpdateEntryInput) (*model.Entry, error) {
	s.sanitizeUpdateInput(input)

	if verr := ValidateUpdateInput(input); verr != nil {
		return nil, verr
	}

	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, model.NewEntryNotFoundError(id)
	}

	applyPatch(entry, input)
	entry.UpdatedAt = time.Now()

	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	slog.Info("entry updated", slog.String("entry_id", entry.ID))

	return entry, nil
}

// Delete は指定IDのエントリを削除する。
// 対象が存在しない場合はENTRY_NOT_FOUNDを返す（2回目の削除は設計上失敗する）。
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.entryRepo.DeleteByID(ctx, id); err != nil {
		return err
	}

	slog.Info("entry deleted", slog.String("entry_id", id))
	return nil
}

// clampLimit はlimitをデフォルト値で補完し最大値にクランプする。
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageLimit
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}

// sanitizeCreateInput は作成入力のテキストフィールドをサニタイズする。
func (s *Service) sanitizeCreateInput(input *CreateEntryInput) {
	if s.sanitizer == nil {
		return
	}
	input.Title = s.sanitizer.Sanitize(input.Title)
	input.Director = s.sanitizer.Sanitize(input.Director)
	input.Budget = s.sanitizer.Sanitize(input.Budget)
	input.Location = s.sanitizer.Sanitize(input.Location)
	input.Duration = s.sanitizer.Sanitize(input.Duration)
	input.YearTime = s.sanitizer.Sanitize(input.YearTime)
}

// sanitizeUpdateInput は更新入力の供給済みテキストフィールドをサニタイズする。
func (s *Service) sanitizeUpdateInput(input *UpdateEntryInput) {
	if s.sanitizer == nil {
		return
	}
	for _, field := range []*string{
		input.Title, input.Director, input.Budget,
		input.Location, input.Duration, input.YearTime,
	} {
		if field != nil {
			*field = s.sanitizer.Sanitize(*field)
		}
	}
}

// applyPatch は供給されたフィールドのみをエントリに適用する。
func applyPatch(entry *model.Entry, input *UpdateEntryInput) {
	if input.Title != nil {
		entry.Title = *input.Title
	}
	if input.Type != nil {
		entry.Type = *input.Type
	}
	if input.Director != nil {
		entry.Director = *input.Director
	}
	if input.Budget != nil {
		entry.Budget = *input.Budget
	}
	if input.Location != nil {
		entry.Location = *input.Location
	}
	if input.Duration != nil {
		entry.Duration = *input.Duration
	}
	if input.YearTime != nil {
		entry.YearTime = *input.YearTime
	}
	if input.PosterURL != nil {
		entry.PosterURL = *input.PosterURL
	}
}
