package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"plantreport/config"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("secret", 1, 7, "op@plant.lk", "manager")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	c, err := ValidateToken("secret", token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if c.ID != 7 || c.Email != "op@plant.lk" || !c.IsManager() {
		t.Fatalf("unexpected claims %+v", c)
	}
	if c.Id == "" {
		t.Errorf("token id not set")
	}

	if _, err := ValidateToken("other", token); err == nil {
		t.Errorf("token signed with another secret must be rejected")
	}
}

func TestExpiredToken(t *testing.T) {
	token, err := GenerateToken("secret", -1, 1, "a@b.c", "user")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ValidateToken("secret", token); err == nil {
		t.Fatalf("expired token must be rejected")
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "secret1") {
		t.Errorf("correct password rejected")
	}
	if CheckPassword(hash, "secret2") {
		t.Errorf("wrong password accepted")
	}
}

func TestMiddleware(t *testing.T) {
	secret := config.GetConfig().JWTSecret
	var seen int64
	h := Middleware("/api/users/login")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	token, err := GenerateToken(secret, 1, 42, "a@b.c", "user")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tests := []struct {
		name   string
		path   string
		header string
		want   int
		userID int64
	}{
		{"public path", "/api/users/login", "", http.StatusNoContent, 0},
		{"public path with token", "/api/users/login", "Bearer " + token, http.StatusNoContent, 42},
		{"public path with bad token", "/api/users/login", "Bearer nope", http.StatusNoContent, 0},
		{"missing token", "/api/stock", "", http.StatusUnauthorized, 0},
		{"bad token", "/api/stock", "Bearer nope", http.StatusUnauthorized, 0},
		{"valid token", "/api/stock", "Bearer " + token, http.StatusNoContent, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = 0
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
			if seen != tt.userID {
				t.Errorf("user id = %d, want %d", seen, tt.userID)
			}
		})
	}
}
