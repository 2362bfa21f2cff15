package handler

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker はデータベース接続の疎通確認インターフェース。
// *sql.DB がこれを満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// HealthHandler はヘルスチェックのHTTPハンドラー。
type HealthHandler struct {
	db HealthChecker
}

// NewHealthHandler はHealthHandlerを生成する。
func NewHealthHandler(db HealthChecker) *HealthHandler {
	return &HealthHandler{db: db}
}

// healthResponse はヘルスチェックのレスポンス。
type healthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
}

// Health は GET /health を処理する。
// データベースへの疎通が取れない場合は500を返す。
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	now := time.Now().UTC().Format(time.RFC3339)

	if err := h.db.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusInternalServerError, healthResponse{
			Success:   false,
			Message:   "データベースに接続できません。",
			Timestamp: now,
			Database:  "disconnected",
		})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Success:   true,
		Message:   "サーバーは正常に稼働しています。",
		Timestamp: now,
		Database:  "connected",
	})
}
