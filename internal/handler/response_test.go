package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/cinelog/internal/model"
)

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(rec, http.StatusCreated, map[string]string{"id": "e-1"}, "作成しました。")

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["success"] != true {
		t.Error("expected success=true")
	}
	if body["message"] != "作成しました。" {
		t.Errorf("message = %v", body["message"])
	}
}

// messageが空の場合はキー自体が省略されること
func TestWriteSuccess_EmptyMessageOmitted(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(rec, http.StatusOK, nil, "")

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := body["message"]; ok {
		t.Error("empty message should be omitted")
	}
}

func TestWriteError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	fields := []model.FieldError{{Field: "email", Message: "必須です。"}}
	writeError(rec, http.StatusBadRequest, "入力内容に誤りがあります。", fields)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var body struct {
		Success bool               `json:"success"`
		Error   string             `json:"error"`
		Details []model.FieldError `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Success {
		t.Error("expected success=false")
	}
	if len(body.Details) != 1 || body.Details[0].Field != "email" {
		t.Errorf("details = %v", body.Details)
	}
}

func TestMapAPIErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{model.ErrCodeEmailExists, http.StatusConflict},
		{model.ErrCodeEmailNotFound, http.StatusNotFound},
		{model.ErrCodeUserNotFound, http.StatusNotFound},
		{model.ErrCodeEntryNotFound, http.StatusNotFound},
		{model.ErrCodeWrongPassword, http.StatusUnauthorized},
		{model.ErrCodeUnauthorized, http.StatusUnauthorized},
		{model.ErrCodeInvalidToken, http.StatusUnauthorized},
		{model.ErrCodeInvalidCursor, http.StatusBadRequest},
		{model.ErrCodeInvalidQuery, http.StatusBadRequest},
		{model.ErrCodeInvalidInput, http.StatusBadRequest},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		got := mapAPIErrorToHTTPStatus(&model.APIError{Code: tt.code})
		if got != tt.want {
			t.Errorf("code %s: status = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestHandleServiceError_ValidationError_Returns400WithDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/entries", nil)

	verr := &model.ValidationError{Fields: []model.FieldError{{Field: "title", Message: "必須です。"}}}
	handleServiceError(rec, req, verr)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var body struct {
		Details []model.FieldError `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body.Details) != 1 {
		t.Errorf("details = %v", body.Details)
	}
}

// 未知のエラーはクライアントに詳細を漏らさず一般化した500を返すこと
func TestHandleServiceError_UnknownError_Returns500Generic(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/entries", nil)

	handleServiceError(rec, req, errors.New("pq: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Error != "サーバー内部でエラーが発生しました。" {
		t.Errorf("error = %q, internal detail must not leak", body.Error)
	}
}
