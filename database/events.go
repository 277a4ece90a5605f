package database

import (
	"fmt"

	"plantreport/model"

	"github.com/jmoiron/sqlx"
)

// ListCalendarEvents は from から to までに重なる予定を返します。どちらも空なら全件です。
func ListCalendarEvents(db *sqlx.DB, from, to string) ([]model.CalendarEvent, error) {
	query := `SELECT id, title, start_at, end_at, description, color, created_by FROM calendar_events WHERE 1=1 `
	var args []any
	if from != "" {
		query += " AND end_at >= ? "
		args = append(args, from)
	}
	if to != "" {
		query += " AND start_at <= ? "
		args = append(args, to)
	}
	query += " ORDER BY start_at, id "

	events := []model.CalendarEvent{}
	if err := db.Select(&events, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}
	return events, nil
}

func CreateCalendarEvent(db *sqlx.DB, e model.CalendarEvent) (model.CalendarEvent, error) {
	if e.Color == "" {
		e.Color = "#ffcc00"
	}
	err := db.Get(&e.ID, db.Rebind(`
		INSERT INTO calendar_events (title, start_at, end_at, description, color, created_by)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`),
		e.Title, e.Start, e.End, e.Description, e.Color, e.CreatedBy)
	if err != nil {
		return e, wrapInsertError(err, "calendar event "+e.Title)
	}
	return e, nil
}

func DeleteCalendarEvent(db *sqlx.DB, id int64) error {
	res, err := db.Exec(db.Rebind(`DELETE FROM calendar_events WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete calendar event %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
