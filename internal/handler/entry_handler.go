package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/cinelog/internal/entry"
	"github.com/hitoshi/cinelog/internal/model"
)

// EntryServiceInterface はエントリサービスのインターフェース。
type EntryServiceInterface interface {
	List(ctx context.Context, limit int, cursor, search string, entryType model.EntryType) (*entry.ListResult, error)
	Search(ctx context.Context, query string, limit int) ([]model.Entry, error)
	GetByID(ctx context.Context, id string) (*model.Entry, error)
	Create(ctx context.Context, input *entry.CreateEntryInput) (*model.Entry, error)
	Update(ctx context.Context, id string, input *entry.UpdateEntryInput) (*model.Entry, error)
	Delete(ctx context.Context, id string) error
}

// PosterFetcherInterface はポスター画像の代理取得インターフェース。
type PosterFetcherInterface interface {
	Fetch(ctx context.Context, posterURL string) (data []byte, mimeType string, err error)
}

// EntryMetricsRecorder はエントリ作成・削除のメトリクス記録インターフェース。
type EntryMetricsRecorder interface {
	RecordEntryCreated()
	RecordEntryDeleted()
}

// EntryHandler はエントリ関連のHTTPハンドラー。
type EntryHandler struct {
	service EntryServiceInterface
	posters PosterFetcherInterface
	metrics EntryMetricsRecorder
}

// NewEntryHandler はEntryHandlerを生成する。
// metricsはnil可（テスト時）。
func NewEntryHandler(service EntryServiceInterface, posters PosterFetcherInterface, metrics EntryMetricsRecorder) *EntryHandler {
	return &EntryHandler{
		service: service,
		posters: posters,
		metrics: metrics,
	}
}

// paginationInfo は一覧レスポンスのページネーション情報。
// NextPageTokenは次ページがない場合nullになる。
type paginationInfo struct {
	NextPageToken *string `json:"nextPageToken"`
	HasMore       bool    `json:"hasMore"`
}

// listEnvelope は一覧レスポンスのフォーマット。
type listEnvelope struct {
	Success    bool           `json:"success"`
	Data       []model.Entry  `json:"data"`
	Pagination paginationInfo `json:"pagination"`
}

// List は GET /entries を処理する。
// クエリパラメータ: limit（省略時20、最大100）、pageToken（カーソル）、
// search（部分一致）、type（MOVIE | TV_SHOW）。
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, err := parseLimit(q.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "limitには正の整数を指定してください。", nil)
		return
	}

	entryType := model.EntryType(q.Get("type"))
	if entryType != "" && !entryType.Valid() {
		writeError(w, http.StatusBadRequest, "typeにはMOVIEまたはTV_SHOWを指定してください。", nil)
		return
	}

	result, err := h.service.List(r.Context(), limit, q.Get("pageToken"), q.Get("search"), entryType)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	var nextToken *string
	if result.NextCursor != "" {
		nextToken = &result.NextCursor
	}

	writeJSON(w, http.StatusOK, listEnvelope{
		Success: true,
		Data:    nonNilEntries(result.Entries),
		Pagination: paginationInfo{
			NextPageToken: nextToken,
			HasMore:       result.HasMore,
		},
	})
}

// Search は GET /entries/search を処理する。
// クエリパラメータqは必須で、空白のみの場合は400を返す。
func (h *EntryHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := strings.TrimSpace(q.Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "検索クエリqを指定してください。", nil)
		return
	}

	limit, err := parseLimit(q.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "limitには正の整数を指定してください。", nil)
		return
	}

	entries, err := h.service.Search(r.Context(), query, limit)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, nonNilEntries(entries), "")
}

// GetByID は GET /entries/{id} を処理する。
func (h *EntryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	e, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, e, "")
}

// Create は POST /entries を処理する。成功時は201と作成されたエントリを返す。
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input entry.CreateEntryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "リクエストボディの形式が正しくありません。", nil)
		return
	}

	e, err := h.service.Create(r.Context(), &input)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordEntryCreated()
	}
	writeSuccess(w, http.StatusCreated, e, "エントリを作成しました。")
}

// Update は PUT /entries/{id} を処理する。供給されたフィールドのみを更新する。
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input entry.UpdateEntryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "リクエストボディの形式が正しくありません。", nil)
		return
	}

	e, err := h.service.Update(r.Context(), id, &input)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, e, "エントリを更新しました。")
}

// Delete は DELETE /entries/{id} を処理する。
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordEntryDeleted()
	}
	writeSuccess(w, http.StatusOK, nil, "エントリを削除しました。")
}

// GetPoster は GET /entries/{id}/poster を処理する。
// エントリのポスターURLをサーバーサイドで代理取得し、画像を直接返す。
// ポスター未設定は404、取得失敗は502を返す。
func (h *EntryHandler) GetPoster(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	e, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if e.PosterURL == "" {
		writeError(w, http.StatusNotFound, "このエントリにはポスターが設定されていません。", nil)
		return
	}

	data, mimeType, err := h.posters.Fetch(r.Context(), e.PosterURL)
	if err != nil {
		writeError(w, http.StatusBadGateway, "ポスター画像の取得に失敗しました。", nil)
		return
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		return
	}
}

// parseLimit はlimitクエリパラメータを解析する。
// 省略時は0を返し、サービス層がデフォルト値を補完する。
// 数値でない値と0以下の値はエラーを返す（境界での拒否）。
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if limit <= 0 {
		return 0, strconv.ErrRange
	}
	return limit, nil
}

// nonNilEntries はJSONでnullではなく[]を返すためのガード。
func nonNilEntries(entries []model.Entry) []model.Entry {
	if entries == nil {
		return []model.Entry{}
	}
	return entries
}
