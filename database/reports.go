package database

import (
	"encoding/json"
	"fmt"

	"plantreport/model"

	"github.com/jmoiron/sqlx"
)

const headerColumns = "id, report_date, shift, shift_number, display_shift_number, created_by, created_at"

// payloadRow は JSON ペイロード付きレポートの1行です。
type payloadRow struct {
	model.ReportHeader
	Payload string `db:"payload"`
}

func (r payloadRow) decode(dst any) error {
	if r.Payload == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(r.Payload), dst); err != nil {
		return fmt.Errorf("failed to decode payload of report %d: %w", r.ID, err)
	}
	return nil
}

func filterClause(f model.ReportFilters) (string, []any) {
	where := " WHERE 1=1 "
	var args []any
	if f.Date != "" {
		where += " AND report_date = ? "
		args = append(args, f.Date)
	}
	if f.Shift != "" {
		where += " AND shift = ? "
		args = append(args, f.Shift)
	}
	if f.UpToDate != "" {
		where += " AND report_date <= ? "
		args = append(args, f.UpToDate)
	}
	return where, args
}

const reportOrder = " ORDER BY report_date, shift_number, id "

func selectPayloadRows(db *sqlx.DB, table, extraWhere string, extraArgs []any, f model.ReportFilters) ([]payloadRow, error) {
	where, args := filterClause(f)
	if extraWhere != "" {
		where += " AND " + extraWhere + " "
		args = append(args, extraArgs...)
	}
	query := "SELECT " + headerColumns + ", payload FROM " + table + where + reportOrder
	var rows []payloadRow
	if err := db.Select(&rows, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to select from %s: %w", table, err)
	}
	return rows, nil
}

func insertPayloadRow(db *sqlx.DB, table string, h model.ReportHeader, extraCols []string, extraVals []any, payload any) (int64, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to encode payload for %s: %w", table, err)
	}
	cols := "report_date, shift, shift_number, display_shift_number, payload, created_by, created_at"
	marks := "?, ?, ?, ?, ?, ?, ?"
	args := []any{h.Date, h.Shift, h.ShiftNumber, h.DisplayShiftNumber, string(b), h.CreatedBy, now()}
	for i, c := range extraCols {
		cols += ", " + c
		marks += ", ?"
		args = append(args, extraVals[i])
	}
	query := "INSERT INTO " + table + " (" + cols + ") VALUES (" + marks + ") RETURNING id"

	var id int64
	if err := db.Get(&id, db.Rebind(query), args...); err != nil {
		return 0, wrapInsertError(err, fmt.Sprintf("%s (shift number %d)", table, h.ShiftNumber))
	}
	return id, nil
}
