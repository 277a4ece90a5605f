package database

import (
	"database/sql"
	"fmt"
	"strings"

	"plantreport/model"

	"github.com/jmoiron/sqlx"
)

const userColumns = "id, name, email, mobile, user_type, is_manager, created_at"

// userRow はパスワードハッシュ付きのユーザー行です。
type userRow struct {
	model.User
	PasswordHash string `db:"password_hash"`
}

// CreateUser はハッシュ済みパスワードでユーザーを登録します。
// メールアドレスは小文字に正規化され、重複時は ErrDuplicate を返します。
func CreateUser(db *sqlx.DB, u model.User, passwordHash string) (model.User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.UserType == "" {
		u.UserType = "user"
	}
	u.CreatedAt = now()
	err := db.Get(&u.ID, db.Rebind(`
		INSERT INTO users (name, email, mobile, password_hash, user_type, is_manager, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		u.Name, u.Email, u.Mobile, passwordHash, u.UserType, u.IsManager, u.CreatedAt)
	if err != nil {
		return u, wrapInsertError(err, "user "+u.Email)
	}
	return u, nil
}

// GetUserByEmail はユーザーとパスワードハッシュを返します。
func GetUserByEmail(db *sqlx.DB, email string) (model.User, string, error) {
	var row userRow
	err := db.Get(&row, db.Rebind("SELECT "+userColumns+", password_hash FROM users WHERE email = ?"),
		strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == sql.ErrNoRows {
			return model.User{}, "", ErrNotFound
		}
		return model.User{}, "", fmt.Errorf("failed to get user %s: %w", email, err)
	}
	return row.User, row.PasswordHash, nil
}

func GetUserByID(db *sqlx.DB, id int64) (model.User, error) {
	var u model.User
	err := db.Get(&u, db.Rebind("SELECT "+userColumns+" FROM users WHERE id = ?"), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return u, ErrNotFound
		}
		return u, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return u, nil
}
