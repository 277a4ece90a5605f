// Package dbtest はテスト用のインメモリ SQLite を用意します。
package dbtest

import (
	"testing"

	"plantreport/database"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Open はスキーマ適用済みのインメモリデータベースを返します。テスト終了時に閉じられます。
func Open(t testing.TB) *sqlx.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := database.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.ApplySchema(db); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}
