// Package handler はHTTP APIのハンドラー群を提供する。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/cinelog/internal/model"
)

// successEnvelope は成功レスポンスの統一フォーマット。
type successEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// errorEnvelope はエラーレスポンスの統一フォーマット。
// Detailsはバリデーションエラーのフィールド単位の詳細。
type errorEnvelope struct {
	Success bool               `json:"success"`
	Error   string             `json:"error"`
	Details []model.FieldError `json:"details,omitempty"`
}

// writeJSON は任意のペイロードをJSONで書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

// writeSuccess は成功エンベロープを書き込む。
func writeSuccess(w http.ResponseWriter, statusCode int, data interface{}, message string) {
	writeJSON(w, statusCode, successEnvelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// writeError はエラーエンベロープを書き込む。
func writeError(w http.ResponseWriter, statusCode int, message string, details []model.FieldError) {
	writeJSON(w, statusCode, errorEnvelope{
		Success: false,
		Error:   message,
		Details: details,
	})
}

// handleServiceError はサービス層のエラーをHTTPレスポンスへ変換する。
// 既知ドメインエラー（APIError）はコードに応じたステータスへマップし、
// バリデーションエラーは400とフィールド詳細を返す。
// それ以外は詳細をログに残し、クライアントには一般化した500のみを返す。
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, "入力内容に誤りがあります。", verr.Fields)
		return
	}

	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeError(w, mapAPIErrorToHTTPStatus(apiErr), apiErr.Message, nil)
		return
	}

	slog.Error("unhandled service error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	writeError(w, http.StatusInternalServerError, "サーバー内部でエラーが発生しました。", nil)
}

// mapAPIErrorToHTTPStatus はAPIエラーコードをHTTPステータスコードへマップする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeEmailExists:
		return http.StatusConflict
	case model.ErrCodeEmailNotFound, model.ErrCodeUserNotFound, model.ErrCodeEntryNotFound:
		return http.StatusNotFound
	case model.ErrCodeWrongPassword, model.ErrCodeUnauthorized, model.ErrCodeInvalidToken:
		return http.StatusUnauthorized
	case model.ErrCodeInvalidCursor, model.ErrCodeInvalidQuery, model.ErrCodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
