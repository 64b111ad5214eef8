package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"shopfront/internal/domain"
)

type stubNewsletter struct {
	err      error
	gotEmail string
}

func (s *stubNewsletter) Subscribe(_ context.Context, email, _ string) error {
	s.gotEmail = email
	return s.err
}

func newsletterRouter(repo NewsletterRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/newsletter/subscribe", subscribeHandler(log.New(io.Discard, "", 0), repo))
	return router
}

func postSubscribe(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/newsletter/subscribe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSubscribeHandler_Success(t *testing.T) {
	repo := &stubNewsletter{}
	rec := postSubscribe(newsletterRouter(repo), `{"email": "a@b.c", "source": "footer"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if repo.gotEmail != "a@b.c" {
		t.Fatalf("unexpected email %q", repo.gotEmail)
	}
}

func TestSubscribeHandler_Duplicate(t *testing.T) {
	rec := postSubscribe(newsletterRouter(&stubNewsletter{err: domain.ErrAlreadyExists}), `{"email": "a@b.c"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestSubscribeHandler_InvalidEmail(t *testing.T) {
	for _, body := range []string{`{}`, `{"email": "not-an-email"}`} {
		rec := postSubscribe(newsletterRouter(&stubNewsletter{}), body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}
