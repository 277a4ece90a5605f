package database

import (
	"database/sql"
	"fmt"
	"time"

	"plantreport/model"

	"github.com/jmoiron/sqlx"
)

const deliveryNoteColumns = `id, delivery_note_number, delivery_date, cheque_received, purchase_order_no,
	proforma_invoice_no, invoice_no, customer, from_location, to_location, description, quantity,
	checked_by, approved_by, remarks, received_by_name, signature, received_date, created_by, created_at`

// CreateDeliveryNote は納品書番号を採番して登録します。
// 番号が指定されている場合はそれを使い、重複時は ErrDuplicate を返します。
func CreateDeliveryNote(db *sqlx.DB, n model.DeliveryNote) (model.DeliveryNote, error) {
	date, err := time.Parse("2006-01-02", n.DeliveryDate)
	if err != nil {
		return n, fmt.Errorf("invalid delivery date %q: %w", n.DeliveryDate, err)
	}

	tx, err := db.Beginx()
	if err != nil {
		return n, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if n.DeliveryNoteNumber == "" {
		n.DeliveryNoteNumber, err = NextDeliveryNoteNumberInTx(tx, date)
		if err != nil {
			return n, err
		}
	}
	if n.ChequeReceived == "" {
		n.ChequeReceived = "No"
	}
	n.CreatedAt = now()

	const q = `
		INSERT INTO delivery_notes (
			delivery_note_number, delivery_date, cheque_received, purchase_order_no,
			proforma_invoice_no, invoice_no, customer, from_location, to_location, description, quantity,
			checked_by, approved_by, remarks, received_by_name, signature, received_date, created_by, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`
	err = tx.Get(&n.ID, tx.Rebind(q),
		n.DeliveryNoteNumber, n.DeliveryDate, n.ChequeReceived, n.PurchaseOrderNo,
		n.ProformaInvoiceNo, n.InvoiceNo, n.Customer, n.From, n.To, n.Description, n.Quantity,
		n.CheckedBy, n.ApprovedBy, n.Remarks, n.ReceivedByName, n.Signature, n.ReceivedDate, n.CreatedBy, n.CreatedAt)
	if err != nil {
		return n, wrapInsertError(err, "delivery note "+n.DeliveryNoteNumber)
	}

	if err := tx.Commit(); err != nil {
		return n, fmt.Errorf("failed to commit delivery note: %w", err)
	}
	return n, nil
}

// GetDeliveryNotes は納品書を日付・番号順で返します。date が空なら全件です。
func GetDeliveryNotes(db *sqlx.DB, date string) ([]model.DeliveryNote, error) {
	query := "SELECT " + deliveryNoteColumns + " FROM delivery_notes WHERE 1=1 "
	var args []any
	if date != "" {
		query += " AND delivery_date = ? "
		args = append(args, date)
	}
	query += " ORDER BY delivery_date, delivery_note_number "

	notes := []model.DeliveryNote{}
	if err := db.Select(&notes, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get delivery notes: %w", err)
	}
	return notes, nil
}

func GetDeliveryNoteByID(db *sqlx.DB, id int64) (model.DeliveryNote, error) {
	var n model.DeliveryNote
	err := db.Get(&n, db.Rebind("SELECT "+deliveryNoteColumns+" FROM delivery_notes WHERE id = ?"), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return n, ErrNotFound
		}
		return n, fmt.Errorf("failed to get delivery note %d: %w", id, err)
	}
	return n, nil
}
