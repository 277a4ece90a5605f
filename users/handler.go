package users

import (
	"errors"
	"net/http"
	"strings"

	"plantreport/auth"
	"plantreport/config"
	"plantreport/database"
	"plantreport/model"
	"plantreport/web"

	"github.com/jmoiron/sqlx"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Mobile   string `json:"mobile" validate:"max=20"`
	Password string `json:"password" validate:"required,min=6"`
	UserType string `json:"userType" validate:"omitempty,oneof=user manager admin"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userTypeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// canAssign は登録者が userType を付与できるかを返します。
// 未ログインの登録は user のみ、manager は管理者、admin は admin だけが付与できます。
func canAssign(c *auth.Claims, userType string) bool {
	switch userType {
	case "user":
		return true
	case "manager":
		return c != nil && c.IsManager()
	default:
		return c != nil && c.UserType == "admin"
	}
}

// RegisterHandler はユーザーを登録します。isManager は常に0で作成します。
func RegisterHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := web.Decode(r, &req); err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.UserType == "" {
			req.UserType = "user"
		}
		if !canAssign(auth.FromContext(r.Context()), req.UserType) {
			web.WriteJSONError(w, "not allowed to register a "+req.UserType+" account", http.StatusForbidden)
			return
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			web.StoreError(w, "users", "RegisterHandler", req.Email, err)
			return
		}
		u, err := database.CreateUser(db, model.User{
			Name:     strings.TrimSpace(req.Name),
			Email:    req.Email,
			Mobile:   req.Mobile,
			UserType: req.UserType,
		}, hash)
		if err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				web.WriteJSONError(w, "a user with this email already exists", http.StatusConflict)
				return
			}
			web.StoreError(w, "users", "RegisterHandler", req.Email, err)
			return
		}
		web.WriteCreated(w, "User registered successfully", u)
	}
}

// LoginHandler はメールアドレスとパスワードを確認し、{token, user} を返します。
func LoginHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := web.Decode(r, &req); err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		u, hash, err := database.GetUserByEmail(db, req.Email)
		if err != nil && !errors.Is(err, database.ErrNotFound) {
			web.StoreError(w, "users", "LoginHandler", req.Email, err)
			return
		}
		// 未登録とパスワード違いは区別しない
		if err != nil || !auth.CheckPassword(hash, req.Password) {
			web.WriteJSONError(w, "invalid email or password", http.StatusUnauthorized)
			return
		}

		cfg := config.GetConfig()
		token, err := auth.GenerateToken(cfg.JWTSecret, cfg.TokenHours, u.ID, u.Email, u.UserType)
		if err != nil {
			web.StoreError(w, "users", "LoginHandler", req.Email, err)
			return
		}
		config.GetLogger().WithField("userId", u.ID).Info("user logged in")
		web.WriteJSON(w, http.StatusOK, map[string]any{"token": token, "user": u})
	}
}

// UserTypeHandler は {email} のユーザー種別を返します。
// 管理者以外は自分のメールアドレスしか照会できません。
func UserTypeHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req userTypeRequest
		if err := web.Decode(r, &req); err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		claims := auth.FromContext(r.Context())
		if claims == nil || (!claims.IsManager() && !strings.EqualFold(claims.Email, strings.TrimSpace(req.Email))) {
			web.WriteJSONError(w, "not allowed to look up this user", http.StatusForbidden)
			return
		}
		u, _, err := database.GetUserByEmail(db, req.Email)
		if err != nil {
			web.StoreError(w, "users", "UserTypeHandler", req.Email, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, map[string]string{"userType": u.UserType})
	}
}

// MeHandler はトークンのユーザーを返します。
func MeHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.FromContext(r.Context())
		if claims == nil {
			web.WriteJSONError(w, "not authenticated", http.StatusUnauthorized)
			return
		}
		u, err := database.GetUserByID(db, claims.ID)
		if err != nil {
			web.StoreError(w, "users", "MeHandler", claims.ID, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, u)
	}
}
