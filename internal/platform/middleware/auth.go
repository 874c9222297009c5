package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// Credentials is the caller identity forwarded to the reservation backend in
// nearly every outgoing envelope. It lives for one request and is never
// persisted by the gateway.
type Credentials struct {
	UserID      string
	APIPassword string
	AgencyID    string
}

// JWTValidator defines the interface for validating JWT tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator.
type JWTClaims struct {
	Username    string
	UserID      string
	APIPassword string
	AgencyID    string
}

type contextKeyCredentials struct{}
type contextKeyUsername struct{}

// ContextKeyCredentials is exported for use in handlers.
var (
	ContextKeyCredentials = contextKeyCredentials{}
	ContextKeyUsername    = contextKeyUsername{}
)

// GetCredentials retrieves the authenticated caller's upstream credentials
// from the context. The second return is false when no valid session exists.
func GetCredentials(ctx context.Context) (Credentials, bool) {
	creds, ok := ctx.Value(ContextKeyCredentials).(Credentials)
	return creds, ok
}

// GetUsername retrieves the authenticated username from the context.
func GetUsername(ctx context.Context) string {
	username, ok := ctx.Value(ContextKeyUsername).(string)
	if !ok {
		return ""
	}
	return username
}

// RequireAuth validates the bearer token and stores the caller's upstream
// credentials in the request context.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok {
				ctx := r.Context()
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				ctx := r.Context()
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, ContextKeyUsername, claims.Username)
			ctx = context.WithValue(ctx, ContextKeyCredentials, Credentials{
				UserID:      claims.UserID,
				APIPassword: claims.APIPassword,
				AgencyID:    claims.AgencyID,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
