package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/cinelog/internal/auth"
	"github.com/hitoshi/cinelog/internal/middleware"
	"github.com/hitoshi/cinelog/internal/model"
)

// authCookieName はセッショントークンを運ぶCookie名。
const authCookieName = "authToken"

// persistentCookieMaxAge はrememberMe=true時のCookie有効期間（秒）。
// トークンの有効期限（7日）と一致させる。
const persistentCookieMaxAge = 7 * 24 * 60 * 60

// AuthServiceInterface は認証サービスのインターフェース。
type AuthServiceInterface interface {
	Signup(ctx context.Context, email, password, name string) (*model.PublicUser, error)
	Login(ctx context.Context, email, password string, rememberMe bool) (*model.PublicUser, error)
	GetUserByID(ctx context.Context, id string) (*model.PublicUser, error)
	IssueToken(user *model.PublicUser, rememberMe bool) (string, error)
}

// AuthHandler は認証関連のHTTPハンドラー。
type AuthHandler struct {
	service      AuthServiceInterface
	cookieSecure bool
}

// NewAuthHandler はAuthHandlerを生成する。
// cookieSecureはHTTPS配下で動作する場合にtrueを指定する。
func NewAuthHandler(service AuthServiceInterface, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		service:      service,
		cookieSecure: cookieSecure,
	}
}

// signupRequest はサインアップのリクエストボディ。
type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// loginRequest はログインのリクエストボディ。
type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// Signup は POST /auth/signup を処理する。
// 成功時は201とユーザーの公開情報を返し、セッションCookieを設定する。
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "リクエストボディの形式が正しくありません。", nil)
		return
	}

	if verr := auth.ValidateSignupInput(req.Email, req.Password, req.Name); verr != nil {
		writeError(w, http.StatusBadRequest, "入力内容に誤りがあります。", verr.Fields)
		return
	}

	user, err := h.service.Signup(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	// サインアップ直後はセッションスコープのCookieを発行する
	token, err := h.service.IssueToken(user, false)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	h.setAuthCookie(w, token, false)

	writeSuccess(w, http.StatusCreated, user, "ユーザーを登録しました。")
}

// Login は POST /auth/login を処理する。
// rememberMe=trueの場合は7日間有効な永続Cookieを、
// それ以外はブラウザセッション限りのCookieを設定する。
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "リクエストボディの形式が正しくありません。", nil)
		return
	}

	if verr := auth.ValidateLoginInput(req.Email, req.Password); verr != nil {
		writeError(w, http.StatusBadRequest, "入力内容に誤りがあります。", verr.Fields)
		return
	}

	user, err := h.service.Login(r.Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	token, err := h.service.IssueToken(user, req.RememberMe)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	h.setAuthCookie(w, token, req.RememberMe)

	writeSuccess(w, http.StatusOK, user, "ログインしました。")
}

// Logout は POST /auth/logout を処理する。
// 認証状態に関わらずCookieを削除して200を返す（冪等）。
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearAuthCookie(w)
	writeSuccess(w, http.StatusOK, nil, "ログアウトしました。")
}

// Me は GET /auth/me を処理する。
// 認証ミドルウェアが注入したユーザーIDで現在のユーザーを返す。
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "認証が必要です。", nil)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, user, "")
}

// setAuthCookie はセッショントークンのCookieを設定する。
// rememberMe=falseの場合はMaxAgeを設定せず、ブラウザセッション限りとする。
func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, token string, rememberMe bool) {
	cookie := &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
	if rememberMe {
		cookie.MaxAge = persistentCookieMaxAge
	}
	http.SetCookie(w, cookie)
}

// clearAuthCookie はセッショントークンのCookieを即時失効させる。
func (h *AuthHandler) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}
