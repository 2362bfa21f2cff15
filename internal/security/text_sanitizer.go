// Package security はアプリケーションのセキュリティ機能を提供する。
//
// TextSanitizerService はエントリのテキスト入力（タイトル、監督名等）を
// サニタイズし、格納型XSSからユーザーを保護する。
// bluemondayのStrictPolicyにより、HTMLタグは一切通過させない。
package security

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizerService はテキスト入力のサニタイズ機能のインターフェースを定義する。
// エントリの作成・更新時、保存前に使用される。
type TextSanitizerService interface {
	// Sanitize は入力からHTMLタグを全て除去したプレーンテキストを返す。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// textSanitizer はTextSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type textSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer はTextSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicy（許可タグなし）を使用する。エントリのテキストフィールドは
// プレーンテキストであり、HTMLを含む正当なユースケースは存在しない。
func NewTextSanitizer() *textSanitizer {
	return &textSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力からHTMLタグを全て除去したプレーンテキストを返す。
// bluemondayはタグ除去後にエンティティをエスケープするため、
// "&amp;"等を元のリテラル文字に戻してから保存する。
func (s *textSanitizer) Sanitize(raw string) string {
	return html.UnescapeString(s.policy.Sanitize(raw))
}

// compile-time interface check
var _ TextSanitizerService = (*textSanitizer)(nil)
