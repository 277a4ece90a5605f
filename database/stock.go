package database

import (
	"database/sql"
	"fmt"

	"plantreport/model"

	"github.com/jmoiron/sqlx"
)

// DefaultStockItems は在庫ダッシュボードの初期品目です。
var DefaultStockItems = []string{
	"CEB Covers",
	"LECO Covers",
	"Base",
	"Shutters",
	"Cover Beading",
	"Shutter Beading",
	"Springs",
	"Corrugated Boxes",
	"Sellotapes",
}

const stockColumns = "id, name, quantity, unit, updated_at"

func ListStockItems(db *sqlx.DB) ([]model.StockItem, error) {
	items := []model.StockItem{}
	if err := db.Select(&items, "SELECT "+stockColumns+" FROM stock_items ORDER BY id"); err != nil {
		return nil, fmt.Errorf("failed to list stock items: %w", err)
	}
	return items, nil
}

func GetStockItem(db *sqlx.DB, id int64) (model.StockItem, error) {
	var item model.StockItem
	err := db.Get(&item, db.Rebind("SELECT "+stockColumns+" FROM stock_items WHERE id = ?"), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return item, ErrNotFound
		}
		return item, fmt.Errorf("failed to get stock item %d: %w", id, err)
	}
	return item, nil
}

// CreateStockItem は品目を追加します。同名の品目があれば ErrDuplicate を返します。
func CreateStockItem(db *sqlx.DB, item model.StockItem) (model.StockItem, error) {
	if item.Unit == "" {
		item.Unit = "pcs"
	}
	item.UpdatedAt = now()
	err := db.Get(&item.ID, db.Rebind(`INSERT INTO stock_items (name, quantity, unit, updated_at) VALUES (?, ?, ?, ?) RETURNING id`),
		item.Name, item.Quantity, item.Unit, item.UpdatedAt)
	if err != nil {
		return item, wrapInsertError(err, "stock item "+item.Name)
	}
	return item, nil
}

// UpdateStockItem は数量と単位を更新します。
func UpdateStockItem(db *sqlx.DB, item model.StockItem) (model.StockItem, error) {
	if item.Unit == "" {
		item.Unit = "pcs"
	}
	item.UpdatedAt = now()
	res, err := db.Exec(db.Rebind(`UPDATE stock_items SET name = ?, quantity = ?, unit = ?, updated_at = ? WHERE id = ?`),
		item.Name, item.Quantity, item.Unit, item.UpdatedAt, item.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return item, fmt.Errorf("stock item %s: %w", item.Name, ErrDuplicate)
		}
		return item, fmt.Errorf("failed to update stock item %d: %w", item.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return item, ErrNotFound
	}
	return item, nil
}

func DeleteStockItem(db *sqlx.DB, id int64) error {
	res, err := db.Exec(db.Rebind(`DELETE FROM stock_items WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete stock item %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SeedStockItems は未登録の初期品目を数量0で作成します。
func SeedStockItems(db *sqlx.DB) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(tx.Rebind(`INSERT INTO stock_items (name, quantity, unit, updated_at) VALUES (?, 0, 'pcs', ?) ON CONFLICT (name) DO NOTHING`))
	if err != nil {
		return fmt.Errorf("failed to prepare stock seed: %w", err)
	}
	defer stmt.Close()

	ts := now()
	for _, name := range DefaultStockItems {
		if _, err := stmt.Exec(name, ts); err != nil {
			return fmt.Errorf("failed to seed stock item %s: %w", name, err)
		}
	}
	return tx.Commit()
}

// UpsertStockItems は品目名をキーに数量と単位をまとめて更新します。未登録の品目は追加されます。
func UpsertStockItems(db *sqlx.DB, items []model.StockItem) (int, error) {
	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(tx.Rebind(`
		INSERT INTO stock_items (name, quantity, unit, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET quantity = excluded.quantity, unit = excluded.unit, updated_at = excluded.updated_at`))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare stock upsert: %w", err)
	}
	defer stmt.Close()

	ts := now()
	for _, item := range items {
		if item.Unit == "" {
			item.Unit = "pcs"
		}
		if _, err := stmt.Exec(item.Name, item.Quantity, item.Unit, ts); err != nil {
			return 0, fmt.Errorf("failed to upsert stock item %s: %w", item.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit stock upsert: %w", err)
	}
	return len(items), nil
}
