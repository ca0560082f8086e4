package middleware

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
)

// HeaderAPIKey is the header each protected request must carry.
const HeaderAPIKey = "X-Api-Key"

// KeyStore resolves the expected access key. The options table is the source
// of truth, so a rotation takes effect without a restart.
type KeyStore interface {
	APIKey(ctx context.Context) (string, error)
}

// RequireAPIKey gates every request on the shared access key. An empty
// stored key means the gate was never configured, which is a server fault,
// not a client one.
func RequireAPIKey(store KeyStore, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			expected, err := store.APIKey(r.Context())
			if err != nil {
				logger.Error("api_key_lookup", "error", err)
				writeAuthError(w, http.StatusInternalServerError, "internal", "could not verify credentials")
				return
			}
			if expected == "" {
				logger.Error("api_key_unconfigured")
				writeAuthError(w, http.StatusInternalServerError, "unconfigured", "access key is not configured")
				return
			}
			presented := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) != 1 {
				logger.Warn("api_key_rejected", "path", r.URL.Path, "ip", r.RemoteAddr)
				writeAuthError(w, http.StatusForbidden, "forbidden", "invalid api key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"code": code, "message": message})
}
