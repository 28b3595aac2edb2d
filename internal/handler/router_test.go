package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/askgrid/backend/internal/handler"
	answerModel "github.com/askgrid/backend/internal/model/answer"
	chatservice "github.com/askgrid/backend/internal/service/chat"
)

type stubSource struct{}

func (stubSource) Fetch() answerModel.Payload {
	return answerModel.Fallback()
}

func TestHealthEndpoint(t *testing.T) {
	router := handler.NewRouter(chatservice.NewService(stubSource{}))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Body.String(); got != "{\"ok\":true}\n" {
		t.Fatalf("unexpected body: %q", got)
	}
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	router := handler.NewRouter(chatservice.NewService(stubSource{}))

	req := httptest.NewRequest(http.MethodOptions, "/api/sessions", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
}
