// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// 境界層でHTTPステータスコードへマップされる既知ドメインエラーのカテゴリを含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, entry, conflict, system
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeEmailExists   = "EMAIL_EXISTS"
	ErrCodeEmailNotFound = "EMAIL_NOT_FOUND"
	ErrCodeWrongPassword = "WRONG_PASSWORD"
	ErrCodeUserNotFound  = "USER_NOT_FOUND"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeInvalidToken  = "INVALID_TOKEN"
	ErrCodeEntryNotFound = "ENTRY_NOT_FOUND"
	ErrCodeInvalidCursor = "INVALID_CURSOR"
	ErrCodeInvalidQuery  = "INVALID_QUERY"
	ErrCodeInvalidInput  = "INVALID_INPUT"
)

// FieldError はバリデーションエラーのフィールド単位の詳細。
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError は入力バリデーション失敗を表す。
// 境界層で400とフィールド単位の詳細リストにマップされる。
type ValidationError struct {
	Fields []FieldError
}

// Error はerrorインターフェースを実装する。
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %d個のフィールドが無効です", ErrCodeInvalidInput, len(e.Fields))
}

// NewEmailExistsError は登録済みメールアドレスの重複エラーを生成する。
func NewEmailExistsError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailExists,
		Message:  "このメールアドレスは既に登録されています。",
		Category: "conflict",
	}
}

// NewEmailNotFoundError は未登録メールアドレスのエラーを生成する。
func NewEmailNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailNotFound,
		Message:  "このメールアドレスのアカウントが見つかりません。",
		Category: "auth",
	}
}

// NewWrongPasswordError はパスワード不一致エラーを生成する。
func NewWrongPasswordError() *APIError {
	return &APIError{
		Code:     ErrCodeWrongPassword,
		Message:  "パスワードが正しくありません。",
		Category: "auth",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "auth",
	}
}

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
	}
}

// NewInvalidTokenError はトークン検証失敗の統一エラーを生成する。
// 不正形式・署名不一致・期限切れを区別しない（失敗理由の漏洩防止）。
func NewInvalidTokenError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidToken,
		Message:  "トークンが無効または期限切れです。",
		Category: "auth",
	}
}

// NewEntryNotFoundError はエントリ未検出エラーを生成する。
func NewEntryNotFoundError(entryID string) *APIError {
	return &APIError{
		Code:     ErrCodeEntryNotFound,
		Message:  fmt.Sprintf("指定されたエントリが見つかりません: %s", entryID),
		Category: "entry",
	}
}

// NewInvalidCursorError は存在しない行を参照するページカーソルのエラーを生成する。
func NewInvalidCursorError(cursor string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCursor,
		Message:  fmt.Sprintf("無効なページカーソルです: %s", cursor),
		Category: "validation",
	}
}

// NewInvalidQueryError は無効なクエリパラメータのエラーを生成する。
func NewInvalidQueryError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidQuery,
		Message:  fmt.Sprintf("無効なクエリパラメータです: %s", reason),
		Category: "validation",
	}
}

// NewValidationError はフィールド単位の詳細付きバリデーションエラーを生成する。
func NewValidationError(fields []FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}
