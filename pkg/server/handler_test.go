package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeAssistant struct {
	answer string
	err    error
	query  string
}

func (f *fakeAssistant) Reply(_ context.Context, query string) (string, error) {
	f.query = query
	return f.answer, f.err
}

func newTestRouter(a Replier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(a).RegisterRoutes(r)
	return r
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(&fakeAssistant{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestChatReturnsAnswer(t *testing.T) {
	fake := &fakeAssistant{answer: "Try **Dune**."}
	r := newTestRouter(fake)

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"query": "something epic in space"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chat", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if fake.query != "something epic in space" {
		t.Errorf("assistant got query %q", fake.query)
	}

	var resp chatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Answer != "Try **Dune**." {
		t.Errorf("unexpected answer: %q", resp.Answer)
	}
}

func TestChatRejectsEmptyQuery(t *testing.T) {
	r := newTestRouter(&fakeAssistant{})

	for _, body := range []string{`{}`, `{"query": "   "}`, `not json`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, w.Code)
		}
	}
}

func TestChatReportsAssistantFailure(t *testing.T) {
	r := newTestRouter(&fakeAssistant{err: errors.New("model unavailable")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"query": "anything"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "model unavailable") {
		t.Errorf("expected error in body, got %s", w.Body.String())
	}
}
