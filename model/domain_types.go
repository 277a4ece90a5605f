package model

// DeliveryNote は納品書です。
type DeliveryNote struct {
	ID                 int64    `db:"id" json:"id"`
	DeliveryNoteNumber string   `db:"delivery_note_number" json:"deliveryNoteNumber"`
	DeliveryDate       string   `db:"delivery_date" json:"deliveryDate" validate:"required,datetime=2006-01-02"`
	ChequeReceived     string   `db:"cheque_received" json:"chequeReceived" validate:"omitempty,oneof=Yes No"`
	PurchaseOrderNo    string   `db:"purchase_order_no" json:"purchaseOrderNo" validate:"max=64"`
	ProformaInvoiceNo  string   `db:"proforma_invoice_no" json:"proformaInvoiceNo" validate:"max=64"`
	InvoiceNo          string   `db:"invoice_no" json:"invoiceNo" validate:"max=64"`
	Customer           string   `db:"customer" json:"customer" validate:"required,max=200"`
	From               string   `db:"from_location" json:"from" validate:"max=200"`
	To                 string   `db:"to_location" json:"to" validate:"max=200"`
	Description        string   `db:"description" json:"description" validate:"required,max=500"`
	Quantity           Quantity `db:"quantity" json:"quantity" validate:"present,gte=0"`
	CheckedBy          string   `db:"checked_by" json:"checkedBy" validate:"max=100"`
	ApprovedBy         string   `db:"approved_by" json:"approvedBy" validate:"max=100"`
	Remarks            string   `db:"remarks" json:"remarks" validate:"max=1000"`
	ReceivedByName     string   `db:"received_by_name" json:"receivedByName" validate:"required,max=100"`
	Signature          string   `db:"signature" json:"signature"`
	ReceivedDate       string   `db:"received_date" json:"receivedDate" validate:"omitempty,datetime=2006-01-02"`
	CreatedBy          int64    `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt          string   `db:"created_at" json:"createdAt,omitempty"`
}

// StockItem は在庫ダッシュボードの1品目です。
type StockItem struct {
	ID        int64   `db:"id" json:"id"`
	Name      string  `db:"name" json:"name" validate:"required,max=100"`
	Quantity  float64 `db:"quantity" json:"quantity" validate:"gte=0"`
	Unit      string  `db:"unit" json:"unit" validate:"max=20"`
	UpdatedAt string  `db:"updated_at" json:"updatedAt,omitempty"`
}

// CalendarEvent はカレンダーの予定です。
type CalendarEvent struct {
	ID          int64  `db:"id" json:"id"`
	Title       string `db:"title" json:"title" validate:"required,max=200"`
	Start       string `db:"start_at" json:"start" validate:"required"`
	End         string `db:"end_at" json:"end" validate:"required"`
	Description string `db:"description" json:"description" validate:"max=1000"`
	Color       string `db:"color" json:"color" validate:"omitempty,hexcolor"`
	CreatedBy   int64  `db:"created_by" json:"createdBy,omitempty"`
}

// User はログインユーザーです。パスワードハッシュは含みません。
type User struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email"`
	Mobile    string `db:"mobile" json:"mobile"`
	UserType  string `db:"user_type" json:"userType"`
	IsManager int    `db:"is_manager" json:"isManager"`
	CreatedAt string `db:"created_at" json:"createdAt,omitempty"`
}
