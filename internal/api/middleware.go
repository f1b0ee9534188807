package api

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"logitrack/internal/auth"
	"logitrack/internal/model"
	"logitrack/internal/store"
)

type contextKey string

const claimsKey contextKey = "claims"

// validateBearer extracts and validates the bearer token, rejecting revoked
// tokens. Returns nil claims when no Authorization header is present.
func validateBearer(r *http.Request, secret string, db *sql.DB) (*auth.Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, nil
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, errInvalidToken
	}

	claims, err := auth.ValidateToken(secret, strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil, errInvalidToken
	}

	revoked, err := store.IsTokenRevoked(r.Context(), db, claims.ID)
	if err != nil || revoked {
		return nil, errInvalidToken
	}
	return claims, nil
}

var errInvalidToken = errors.New("invalid token")

// OptionalAuth resolves claims when a token is supplied but lets anonymous
// requests through. A present-but-invalid token is still rejected; silently
// downgrading it to anonymous would mask expired sessions.
func OptionalAuth(secret string, db *sql.DB, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := validateBearer(r, secret, db)
			if err != nil {
				jsonError(logger, w, http.StatusUnauthorized, "invalid token")
				return
			}
			if claims != nil {
				r = r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests without a valid token.
func RequireAuth(secret string, db *sql.DB, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := validateBearer(r, secret, db)
			if err != nil {
				jsonError(logger, w, http.StatusUnauthorized, "invalid token")
				return
			}
			if claims == nil {
				jsonError(logger, w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole returns middleware that checks if the user has at least the
// given role. Must run after RequireAuth.
func RequireRole(minimum string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r.Context())
			if claims == nil {
				jsonError(logger, w, http.StatusUnauthorized, "not authenticated")
				return
			}
			if !model.RoleAtLeast(claims.Role, minimum) {
				jsonError(logger, w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetClaims retrieves the JWT claims from the context.
func GetClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Logging logs HTTP requests with method, path, status, and duration.
func Logging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.RequestURI()),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
