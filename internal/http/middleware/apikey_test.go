package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeKeyStore struct {
	key string
	err error
}

func (f fakeKeyStore) APIKey(_ context.Context) (string, error) {
	return f.key, f.err
}

func serve(store KeyStore, header string) *httptest.ResponseRecorder {
	handler := RequireAPIKey(store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodGet, "/vdriver/v1/events", nil)
	if header != "" {
		req.Header.Set(HeaderAPIKey, header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRequireAPIKey(t *testing.T) {
	store := fakeKeyStore{key: "secret"}

	if rec := serve(store, "secret"); rec.Code != http.StatusNoContent {
		t.Fatalf("valid key: status = %d", rec.Code)
	}
	if rec := serve(store, "wrong"); rec.Code != http.StatusForbidden {
		t.Fatalf("wrong key: status = %d", rec.Code)
	}
	if rec := serve(store, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("missing key: status = %d", rec.Code)
	}
}

func TestRequireAPIKeyUnconfigured(t *testing.T) {
	rec := serve(fakeKeyStore{key: ""}, "anything")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unconfigured: status = %d", rec.Code)
	}
}

func TestRequireAPIKeyLookupError(t *testing.T) {
	rec := serve(fakeKeyStore{err: errors.New("db down")}, "secret")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("lookup error: status = %d", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	limiter := NewClientLimiter(1, 2)
	handler := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/vdriver/v1/em/register", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusNoContent {
		t.Fatalf("burst should pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("third request should throttle, got %v", codes)
	}

	// A different client gets its own bucket.
	req := httptest.NewRequest(http.MethodPost, "/vdriver/v1/em/register", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("separate client throttled: %d", rec.Code)
	}
}
