package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"plantreport/auth"
	"plantreport/config"
	"plantreport/database"
	"plantreport/model"

	"github.com/jmoiron/sqlx"
)

// InitDatabase はスキーマを適用し、在庫の初期品目を登録します。
// seedPath に CSV があれば在庫数量をそのファイルで上書きします。
func InitDatabase(db *sqlx.DB, seedPath string) error {
	logger := config.GetLogger()

	logger.Info("Applying database schema...")
	if err := database.ApplySchema(db); err != nil {
		return err
	}
	if err := database.SeedStockItems(db); err != nil {
		return fmt.Errorf("failed to seed stock items: %w", err)
	}
	logger.Info("Schema applied successfully.")

	if seedPath == "" {
		return nil
	}
	f, err := os.Open(seedPath)
	if os.IsNotExist(err) {
		logger.Warnf("%s not found, skipping stock seed.", seedPath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", seedPath, err)
	}
	defer f.Close()

	items, err := ParseStockCSV(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", seedPath, err)
	}
	n, err := database.UpsertStockItems(db, items)
	if err != nil {
		return err
	}
	logger.Infof("Loaded %d stock items from %s.", n, seedPath)
	return nil
}

// SeedAdmin は email の admin ユーザーが無ければ作成します。email が空なら何もしません。
func SeedAdmin(db *sqlx.DB, email, password string) error {
	if email == "" {
		return nil
	}
	_, _, err := database.GetUserByEmail(db, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return err
	}
	if len(password) < 6 {
		return fmt.Errorf("admin password for %s must be at least 6 characters", email)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := database.CreateUser(db, model.User{Name: "Administrator", Email: email, UserType: "admin"}, hash); err != nil {
		return fmt.Errorf("failed to create admin %s: %w", email, err)
	}
	config.GetLogger().WithField("email", email).Info("Admin user created.")
	return nil
}

// ParseStockCSV は "name,quantity,unit" 形式の CSV を読み込みます。
// 1行目が見出しの場合は読み飛ばします。数量の空欄は0、単位の空欄は pcs です。
func ParseStockCSV(r io.Reader) ([]model.StockItem, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var items []model.StockItem
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv read error: %w", err)
		}
		line++
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "name") {
			continue
		}

		item := model.StockItem{Name: strings.TrimSpace(rec[0]), Unit: "pcs"}
		if len(rec) > 1 && strings.TrimSpace(rec[1]) != "" {
			q, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid quantity %q", line, rec[1])
			}
			if q < 0 {
				return nil, fmt.Errorf("line %d: quantity must not be negative", line)
			}
			item.Quantity = q
		}
		if len(rec) > 2 && strings.TrimSpace(rec[2]) != "" {
			item.Unit = strings.TrimSpace(rec[2])
		}
		items = append(items, item)
	}
	return items, nil
}
