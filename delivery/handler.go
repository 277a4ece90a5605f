package delivery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"plantreport/auth"
	"plantreport/config"
	"plantreport/database"
	"plantreport/model"
	"plantreport/printing"
	"plantreport/render"
	"plantreport/web"

	"github.com/jmoiron/sqlx"
)

// PDFFunc は HTML を PDF に変換します。テストでは差し替えます。
type PDFFunc func(ctx context.Context, html string) ([]byte, error)

// CreateHandler は納品書を登録します。番号はサーバー側で採番します。
func CreateHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var note model.DeliveryNote
		if err := web.Decode(r, &note); err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		cfg := config.GetConfig()
		if note.From == "" {
			note.From = cfg.PlantName
		}
		note.CreatedBy = auth.UserID(r.Context())

		saved, err := database.CreateDeliveryNote(db, note)
		if err != nil {
			web.StoreError(w, "delivery", "CreateHandler", note.DeliveryNoteNumber, err)
			return
		}
		web.WriteCreated(w, fmt.Sprintf("Delivery note %s saved successfully", saved.DeliveryNoteNumber), saved)
	}
}

// ListHandler は ?date= の納品書を返します。
func ListHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notes, err := database.GetDeliveryNotes(db, r.URL.Query().Get("date"))
		if err != nil {
			web.StoreError(w, "delivery", "ListHandler", nil, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, notes)
	}
}

// NextNumberHandler は ?date= (省略時は今日) の次の納品書番号を返します。採番はしません。
func NextNumberHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := time.Now()
		if raw := r.URL.Query().Get("date"); raw != "" {
			d, err := time.Parse("2006-01-02", raw)
			if err != nil {
				web.WriteJSONError(w, "date must be a date in YYYY-MM-DD format", http.StatusBadRequest)
				return
			}
			date = d
		}
		next, err := database.PeekDeliveryNoteNumber(db, date)
		if err != nil {
			web.StoreError(w, "delivery", "NextNumberHandler", date.Format("2006-01-02"), err)
			return
		}
		web.WriteJSON(w, http.StatusOK, map[string]string{"deliveryNoteNumber": next})
	}
}

func GetHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := web.PathID(r)
		if err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		note, err := database.GetDeliveryNoteByID(db, id)
		if err != nil {
			web.StoreError(w, "delivery", "GetHandler", id, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, note)
	}
}

// PDFHandler は納品書を印刷用 PDF で返します。pdf が nil なら printing.PDF を使います。
// ?format=html で変換前の HTML を返します。
func PDFHandler(db *sqlx.DB, pdf PDFFunc) http.HandlerFunc {
	if pdf == nil {
		pdf = printing.PDF
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := web.PathID(r)
		if err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		note, err := database.GetDeliveryNoteByID(db, id)
		if err != nil {
			web.StoreError(w, "delivery", "PDFHandler", id, err)
			return
		}
		html, err := render.DeliveryNoteHTML(note, config.GetConfig().PlantName)
		if err != nil {
			web.StoreError(w, "delivery", "PDFHandler", id, err)
			return
		}
		if r.URL.Query().Get("format") == "html" {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(html))
			return
		}

		b, err := pdf(r.Context(), html)
		if err != nil {
			if errors.Is(err, printing.ErrNoBrowser) {
				web.WriteJSONError(w, "pdf printing is not available on this server", http.StatusServiceUnavailable)
				return
			}
			config.LogError(config.GetLogger(), "delivery", "PDFHandler", "render pdf", id, err)
			web.WriteJSONError(w, "failed to render pdf", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%s.pdf", note.DeliveryNoteNumber))
		w.Write(b)
	}
}
