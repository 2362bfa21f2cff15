// Package middleware はHTTPミドルウェア群を提供する。
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/hitoshi/cinelog/internal/auth"
)

// contextKey はコンテキストキーの衝突を避けるための非公開型。
type contextKey string

const (
	userIDKey    contextKey = "userID"
	userEmailKey contextKey = "userEmail"
)

// authCookieName はセッショントークンを運ぶCookie名。
const authCookieName = "authToken"

// TokenVerifier はセッショントークンの検証インターフェース。
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

// AuthFailureRecorder は認証失敗のメトリクス記録インターフェース。
type AuthFailureRecorder interface {
	RecordAuthFailure()
}

// NewAuthMiddleware はCookieのセッショントークンを検証するミドルウェアを返す。
// 検証に成功した場合、ユーザーIDとメールアドレスをリクエストコンテキストに注入する。
// Cookieの欠落とトークンの無効・期限切れはいずれも401を返す。
// recorderはnil可（テスト・メトリクス無効時）。
func NewAuthMiddleware(verifier TokenVerifier, recorder AuthFailureRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(authCookieName)
			if err != nil || cookie.Value == "" {
				if recorder != nil {
					recorder.RecordAuthFailure()
				}
				writeJSONError(w, http.StatusUnauthorized, "認証が必要です。")
				return
			}

			claims, err := verifier.VerifyToken(cookie.Value)
			if err != nil {
				if recorder != nil {
					recorder.RecordAuthFailure()
				}
				writeJSONError(w, http.StatusUnauthorized, "トークンが無効または期限切れです。")
				return
			}

			// 外側のロギングミドルウェアにユーザーIDを持ち帰る
			if logAttrs, ok := r.Context().Value(logAttrsKey).(*requestLogAttrs); ok {
				logAttrs.userID = claims.Subject
			}

			ctx := ContextWithUserID(r.Context(), claims.Subject)
			ctx = ContextWithUserEmail(ctx, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ContextWithUserID はユーザーIDをコンテキストに設定する。
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext はコンテキストからユーザーIDを取得する。
// 認証ミドルウェアを通過していない場合はエラーを返す。
func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", errors.New("user ID not found in context")
	}
	return userID, nil
}

// ContextWithUserEmail はユーザーのメールアドレスをコンテキストに設定する。
func ContextWithUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userEmailKey, email)
}

// UserEmailFromContext はコンテキストからユーザーのメールアドレスを取得する。
func UserEmailFromContext(ctx context.Context) (string, error) {
	email, ok := ctx.Value(userEmailKey).(string)
	if !ok || email == "" {
		return "", errors.New("user email not found in context")
	}
	return email, nil
}
