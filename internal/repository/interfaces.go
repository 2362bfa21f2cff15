// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"time"

	"github.com/hitoshi/cinelog/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレス完全一致でユーザーを検索する。
	// 見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。
	// メールアドレスの一意制約違反はEMAIL_EXISTSドメインエラーに変換して返す。
	// 事前チェックとの競合はここが最終権威となる。
	Create(ctx context.Context, user *model.User) error
}

// PageAnchor はカーソル行の全順序位置（作成日時 + IDタイブレーク）を表す。
// カーソル自体はエントリIDのみを運ぶため、リポジトリがカーソル行から復元する。
type PageAnchor struct {
	CreatedAt time.Time
	ID        string
}

// EntryFilter はエントリ一覧・検索の絞り込み条件。
type EntryFilter struct {
	// Search は部分一致検索クエリ。空文字列の場合は検索条件なし。
	// title、director、locationのOR部分一致（大文字小文字を区別しない）。
	Search string
	// Type はエントリ種別の等値フィルタ。空の場合は種別条件なし。
	Type model.EntryType
}

// EntryRepository はエントリデータの永続化インターフェース。
type EntryRepository interface {
	// FindByID は指定IDのエントリを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Entry, error)

	// Create はエントリを作成する。
	Create(ctx context.Context, entry *model.Entry) error

	// Update はエントリの全フィールドを上書き更新する。
	// 対象行が存在しない場合はENTRY_NOT_FOUNDドメインエラーを返す。
	Update(ctx context.Context, entry *model.Entry) error

	// DeleteByID は指定IDのエントリを削除する。
	// 対象行が存在しない場合はENTRY_NOT_FOUNDドメインエラーを返す。
	DeleteByID(ctx context.Context, id string) error

	// ListPage はフィルタ条件に一致するエントリを(created_at DESC, id DESC)の
	// 全順序で取得する。anchorが非nilの場合はその位置より厳密に後の行から返す。
	// 作成日時が同一の行があってもページ間で重複・欠落しない。
	ListPage(ctx context.Context, filter EntryFilter, anchor *PageAnchor, limit int) ([]model.Entry, error)

	// Count はエントリの総数を返す。
	Count(ctx context.Context) (int, error)

	// DeleteAll は全エントリを削除する。シードデータ投入前のクリアに使用する。
	DeleteAll(ctx context.Context) error
}
