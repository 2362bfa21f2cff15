package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hitoshi/cinelog/internal/model"
)

// entryColumns はentriesテーブルのSELECT対象カラム。
const entryColumns = `id, title, type, director, budget, location, duration, year_time, poster_url, created_at, updated_at`

// PostgresEntryRepo はPostgreSQLを使用したエントリリポジトリ。
type PostgresEntryRepo struct {
	db *sql.DB
}

// NewPostgresEntryRepo はPostgresEntryRepoを生成する。
func NewPostgresEntryRepo(db *sql.DB) *PostgresEntryRepo {
	return &PostgresEntryRepo{db: db}
}

// FindByID は指定IDのエントリを取得する。見つからない場合はnilを返す。
func (r *PostgresEntryRepo) FindByID(ctx context.Context, id string) (*model.Entry, error) {
	entry := &model.Entry{}
	var posterURL sql.NullString

	err := r.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE id = $1`,
		id,
	).Scan(
		&entry.ID, &entry.Title, &entry.Type, &entry.Director, &entry.Budget,
		&entry.Location, &entry.Duration, &entry.YearTime, &posterURL,
		&entry.CreatedAt, &entry.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("エントリの取得に失敗しました: %w", err)
	}

	entry.PosterURL = posterURL.String
	return entry, nil
}

// Create はエントリを作成する。
func (r *PostgresEntryRepo) Create(ctx context.Context, entry *model.Entry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO entries (id, title, type, director, budget, location, duration, year_time, poster_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		entry.ID, entry.Title, entry.Type, entry.Director, entry.Budget,
		entry.Location, entry.Duration, entry.YearTime, nullString(entry.PosterURL),
		entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("エントリの作成に失敗しました: %w", err)
	}
	return nil
}

// Update はエントリの全フィールドを上書き更新する。
// 対象行が存在しない場合はENTRY_NOT_FOUNDドメインエラーを返す。
func (r *PostgresEntryRepo) Update(ctx context.Context, entry *model.Entry) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE entries SET
		    title = $2, type = $3, director = $4, budget = $5,
		    location = $6, duration = $7, year_time = $8, poster_url = $9,
		    updated_at = $10
		 WHERE id = $1`,
		entry.ID, entry.Title, entry.Type, entry.Director, entry.Budget,
		entry.Location, entry.Duration, entry.YearTime, nullString(entry.PosterURL),
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("エントリの更新に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("エントリ更新の結果取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewEntryNotFoundError(entry.ID)
	}
	return nil
}

// DeleteByID は指定IDのエントリを削除する。
// 対象行が存在しない場合はENTRY_NOT_FOUNDドメインエラーを返す。
func (r *PostgresEntryRepo) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM entries WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("エントリの削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("エントリ削除の結果取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewEntryNotFoundError(id)
	}
	return nil
}

// ListPage はフィルタ条件に一致するエントリを(created_at DESC, id DESC)の全順序で取得する。
// anchorが非nilの場合はその位置より厳密に後の行から返す。
// カーソルはIDのみを運ぶが、走査は作成日時+IDの行比較で行うため、
// 作成日時が同一の行があってもページ間で重複・欠落しない。
func (r *PostgresEntryRepo) ListPage(
	ctx context.Context,
	filter EntryFilter,
	anchor *PageAnchor,
	limit int,
) ([]model.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries`

	var conds []string
	var args []interface{}

	conds, args = appendFilterConds(conds, args, filter)

	if anchor != nil {
		args = append(args, anchor.CreatedAt, anchor.ID)
		conds = append(conds, fmt.Sprintf("(created_at, id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", len(args))

	return r.queryEntries(ctx, query, args...)
}

// Count はエントリの総数を返す。
func (r *PostgresEntryRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("エントリ数の取得に失敗しました: %w", err)
	}
	return count, nil
}

// DeleteAll は全エントリを削除する。
func (r *PostgresEntryRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM entries`)
	if err != nil {
		return fmt.Errorf("エントリの全削除に失敗しました: %w", err)
	}
	return nil
}

// appendFilterConds は検索・種別フィルタのWHERE条件を組み立てる。
// 検索はtitle/director/locationのOR部分一致（ILIKE、大文字小文字を区別しない）。
func appendFilterConds(conds []string, args []interface{}, filter EntryFilter) ([]string, []interface{}) {
	if q := strings.TrimSpace(filter.Search); q != "" {
		args = append(args, "%"+escapeLike(q)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(title ILIKE $%d OR director ILIKE $%d OR location ILIKE $%d)", n, n, n))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	return conds, args
}

// escapeLike はLIKE/ILIKEパターンのメタ文字をエスケープする。
// ユーザー入力の % と _ はリテラルとして扱う。
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// queryEntries はクエリを実行して複数エントリを読み取る。
func (r *PostgresEntryRepo) queryEntries(ctx context.Context, query string, args ...interface{}) ([]model.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("エントリ一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		var entry model.Entry
		var posterURL sql.NullString

		if err := rows.Scan(
			&entry.ID, &entry.Title, &entry.Type, &entry.Director, &entry.Budget,
			&entry.Location, &entry.Duration, &entry.YearTime, &posterURL,
			&entry.CreatedAt, &entry.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("エントリ行の読み取りに失敗しました: %w", err)
		}

		entry.PosterURL = posterURL.String
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("エントリ一覧の走査に失敗しました: %w", err)
	}

	return entries, nil
}

// compile-time interface check
var _ EntryRepository = (*PostgresEntryRepo)(nil)
