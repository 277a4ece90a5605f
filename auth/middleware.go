package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"plantreport/config"
)

type ctxKey string

const claimsKey ctxKey = "auth"

// Middleware は Authorization: Bearer トークンを検証し、クレームをコンテキストに載せます。
// public に含まれるパスは検証しません。
func Middleware(public ...string) func(http.Handler) http.Handler {
	open := make(map[string]bool, len(public))
	for _, p := range public {
		open[p] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearer(r)
			if open[r.URL.Path] || r.Method == http.MethodOptions {
				// 公開パスでも有効なトークンがあればクレームを載せる
				if token != "" {
					if claims, err := ValidateToken(config.GetConfig().JWTSecret, token); err == nil {
						r = r.WithContext(WithClaims(r.Context(), claims))
					}
				}
				next.ServeHTTP(w, r)
				return
			}

			if token == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			claims, err := ValidateToken(config.GetConfig().JWTSecret, token)
			if err != nil {
				config.GetLogger().WithField("path", r.URL.Path).Debugf("token rejected: %v", err)
				unauthorized(w, "invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func bearer(r *http.Request) string {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// FromContext はリクエストのクレームを返します。未認証なら nil です。
func FromContext(ctx context.Context) *Claims {
	c, _ := ctx.Value(claimsKey).(*Claims)
	return c
}

// UserID は認証済みユーザーの ID を返します。未認証なら0です。
func UserID(ctx context.Context) int64 {
	if c := FromContext(ctx); c != nil {
		return c.ID
	}
	return 0
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
