package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// writeJSONError はミドルウェア層からAPI共通のエラーエンベロープを返す。
// ハンドラー層のヘルパーとは依存方向の都合で分離している。
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	body := struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}{
		Success: false,
		Error:   message,
	}

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode error response", slog.Any("error", err))
	}
}
