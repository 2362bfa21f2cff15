// Package poster はポスター画像のサーバーサイド取得（プロキシ）を提供する。
// フロントエンドが外部サイトの画像を直接参照することによる
// 混在コンテンツ・CORS問題を避けるため、SSRF防止付きクライアントで代理取得する。
package poster

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hitoshi/cinelog/internal/security"
)

// defaultMaxPosterSize はポスター画像の最大サイズ（5MB）。
const defaultMaxPosterSize = 5 * 1024 * 1024

// defaultPosterTimeout はポスター取得のタイムアウト。
const defaultPosterTimeout = 10 * time.Second

// FetcherService はポスター画像取得のインターフェース。
type FetcherService interface {
	// Fetch は指定URLからポスター画像を取得する。
	// URLが危険、応答が画像でない、サイズ超過のいずれの場合もエラーを返す。
	Fetch(ctx context.Context, posterURL string) (data []byte, mimeType string, err error)
}

// Fetcher はポスター画像取得機能の実装。
type Fetcher struct {
	guard   security.URLGuardService
	timeout time.Duration
	maxSize int64
}

// NewFetcher はFetcherの新しいインスタンスを生成する。
// timeoutとmaxSizeが0以下の場合はデフォルト値を使う。
func NewFetcher(guard security.URLGuardService, timeout time.Duration, maxSize int64) *Fetcher {
	if timeout <= 0 {
		timeout = defaultPosterTimeout
	}
	if maxSize <= 0 {
		maxSize = defaultMaxPosterSize
	}
	return &Fetcher{guard: guard, timeout: timeout, maxSize: maxSize}
}

// Fetch は指定URLからポスター画像を取得する。
func (f *Fetcher) Fetch(ctx context.Context, posterURL string) ([]byte, string, error) {
	if err := f.guard.ValidateURL(posterURL); err != nil {
		return nil, "", fmt.Errorf("ポスターURLがブロックされました: %w", err)
	}

	client := f.guard.NewSafeClient(f.timeout)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, posterURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("ポスター取得リクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("User-Agent", "Cinelog/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("ポスターの取得に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("ポスター取得先がステータス%dを返しました", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("ポスター応答の読み取りに失敗しました: %w", err)
	}
	if int64(len(body)) > f.maxSize {
		return nil, "", fmt.Errorf("ポスター画像のサイズが上限(%dバイト)を超えています", f.maxSize)
	}

	mimeType := extractMimeType(resp.Header.Get("Content-Type"))
	if !isImageMime(mimeType) {
		return nil, "", fmt.Errorf("ポスター取得先が画像以外のContent-Typeを返しました: %s", mimeType)
	}

	return body, mimeType, nil
}

// extractMimeType はContent-Typeヘッダーからメディアタイプを抽出する。
func extractMimeType(contentType string) string {
	if contentType == "" {
		return ""
	}
	// セミコロンの前の部分（charset等を除去）
	parts := strings.SplitN(contentType, ";", 2)
	return strings.TrimSpace(strings.ToLower(parts[0]))
}

// isImageMime はMIMEタイプが画像かどうかを判定する。
func isImageMime(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

// compile-time interface check
var _ FetcherService = (*Fetcher)(nil)
