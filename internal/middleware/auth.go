package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/myfans/settlement/internal/apperror"
	"github.com/myfans/settlement/internal/config"
)

type callerContextKey struct{}

// protectedPrefixes lists the routes whose caller identity comes from a
// bearer token when a JWT secret is configured.
var protectedPrefixes = []string{
	"/api/v1/purchases",
	"/api/v1/access",
}

// Auth creates middleware that verifies HS256 bearer tokens on protected
// routes and stores the token subject (the caller's account address) in the
// request context. With no secret configured, requests pass through
// unauthenticated.
func Auth(cfg *config.AuthConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if cfg.JWTSecret == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isProtectedPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			subject, err := verifyBearer(r.Header.Get("Authorization"), cfg)
			if err != nil {
				logger.Debug("rejected bearer token",
					"path", r.URL.Path,
					"error", err,
				)
				apperror.WriteJSON(w, apperror.Classify(apperror.KindUnauthorized, apperror.Overrides{
					Cause: err,
				}))
				return
			}

			ctx := context.WithValue(r.Context(), callerContextKey{}, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerFrom returns the authenticated caller stored by Auth.
func CallerFrom(ctx context.Context) (string, bool) {
	caller, ok := ctx.Value(callerContextKey{}).(string)
	return caller, ok && caller != ""
}

// WithCaller returns a copy of ctx carrying caller as the authenticated
// identity.
func WithCaller(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, callerContextKey{}, caller)
}

func verifyBearer(header string, cfg *config.AuthConfig) (string, error) {
	if header == "" {
		return "", errors.New("authorization header required")
	}

	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenString == "" {
		return "", errors.New("invalid authorization header format")
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return []byte(cfg.JWTSecret), nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", errors.New("token has no subject")
	}

	return subject, nil
}

func isProtectedPath(path string) bool {
	for _, prefix := range protectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
