package database

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"plantreport/config"

	"github.com/jmoiron/sqlx"
)

// NextSequenceInTx はシーケンスを1つ進め、prefix と桁数で整形したコードを返します。
func NextSequenceInTx(tx *sqlx.Tx, name, prefix string, padding int) (string, error) {
	var newNo int
	err := tx.Get(&newNo, tx.Rebind(`UPDATE code_sequences SET last_no = last_no + 1 WHERE name = ? RETURNING last_no`), name)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("sequence '%s' not found", name)
		}
		return "", fmt.Errorf("failed to update sequence '%s': %w", name, err)
	}

	format := fmt.Sprintf("%s%%0%dd", prefix, padding)
	newCode := fmt.Sprintf(format, newNo)
	config.GetLogger().WithField("sequence", name).Debugf("generated code %s", newCode)
	return newCode, nil
}

// ensureSequenceInTx はシーケンスが無ければ lastNo で作成します。
func ensureSequenceInTx(tx *sqlx.Tx, name string, lastNo int) error {
	_, err := tx.Exec(tx.Rebind(`INSERT INTO code_sequences (name, last_no) VALUES (?, ?) ON CONFLICT (name) DO NOTHING`), name, lastNo)
	if err != nil {
		return fmt.Errorf("failed to initialize sequence '%s': %w", name, err)
	}
	return nil
}

// DeliveryNotePrefix は納品書番号の日付部分 "DN<yyyy><ddd>-" を返します。
// ddd は1始まりの年間通算日です。
func DeliveryNotePrefix(date time.Time) string {
	return fmt.Sprintf("DN%d%03d-", date.Year(), date.YearDay())
}

// queryBinder は *sqlx.DB と *sqlx.Tx の共通部分です。
type queryBinder interface {
	sqlx.Queryer
	Rebind(string) string
}

// maxDeliveryNoteSeq はその日の納品書番号の連番部分の最大値を返します。
// 連番は桁数が変わるため文字列順ではなく数値で比較する。
func maxDeliveryNoteSeq(q queryBinder, prefix string) (int, error) {
	var codes []string
	err := sqlx.Select(q, &codes, q.Rebind(
		`SELECT delivery_note_number FROM delivery_notes WHERE delivery_note_number LIKE ?`),
		prefix+"%")
	if err != nil {
		return 0, fmt.Errorf("failed to get delivery note numbers for %s: %w", prefix, err)
	}
	maxNum := 0
	for _, code := range codes {
		n, err := strconv.Atoi(strings.TrimPrefix(code, prefix))
		if err == nil && n > maxNum {
			maxNum = n
		}
	}
	return maxNum, nil
}

// NextDeliveryNoteNumberInTx はその日の次の納品書番号を採番します。
// 手入力の番号がシーケンスより先に進んでいる場合はそこから続けます。
func NextDeliveryNoteNumberInTx(tx *sqlx.Tx, date time.Time) (string, error) {
	prefix := DeliveryNotePrefix(date)
	maxNum, err := maxDeliveryNoteSeq(tx, prefix)
	if err != nil {
		return "", err
	}
	if err := ensureSequenceInTx(tx, prefix, maxNum); err != nil {
		return "", err
	}
	_, err = tx.Exec(tx.Rebind(`UPDATE code_sequences SET last_no = ? WHERE name = ? AND last_no < ?`), maxNum, prefix, maxNum)
	if err != nil {
		return "", fmt.Errorf("failed to advance sequence '%s': %w", prefix, err)
	}
	return NextSequenceInTx(tx, prefix, prefix, 2)
}

// PeekDeliveryNoteNumber は採番せずに次の納品書番号を返します (画面表示用)。
func PeekDeliveryNoteNumber(db *sqlx.DB, date time.Time) (string, error) {
	prefix := DeliveryNotePrefix(date)
	maxNum, err := maxDeliveryNoteSeq(db, prefix)
	if err != nil {
		return "", err
	}
	var lastNo sql.NullInt64
	err = db.Get(&lastNo, db.Rebind(`SELECT last_no FROM code_sequences WHERE name = ?`), prefix)
	if err != nil && err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to read sequence '%s': %w", prefix, err)
	}
	if lastNo.Valid && int(lastNo.Int64) > maxNum {
		maxNum = int(lastNo.Int64)
	}
	return fmt.Sprintf("%s%02d", prefix, maxNum+1), nil
}
