package calendar

import (
	"errors"
	"net/http"
	"time"

	"plantreport/auth"
	"plantreport/database"
	"plantreport/model"
	"plantreport/web"

	"github.com/jmoiron/sqlx"
)

var layouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

func parseTime(s string) (time.Time, error) {
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("invalid date/time: " + s)
}

// ListHandler は ?from=&to= の期間に重なる予定を返します。
func ListHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		events, err := database.ListCalendarEvents(db, q.Get("from"), q.Get("to"))
		if err != nil {
			web.StoreError(w, "calendar", "ListHandler", nil, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, events)
	}
}

// CreateHandler は予定を登録します。終了が開始より前なら 400 です。
func CreateHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var e model.CalendarEvent
		if err := web.Decode(r, &e); err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		start, err := parseTime(e.Start)
		if err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		end, err := parseTime(e.End)
		if err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if end.Before(start) {
			web.WriteJSONError(w, "end must not be before start", http.StatusBadRequest)
			return
		}
		e.CreatedBy = auth.UserID(r.Context())

		saved, err := database.CreateCalendarEvent(db, e)
		if err != nil {
			web.StoreError(w, "calendar", "CreateHandler", e.Title, err)
			return
		}
		web.WriteCreated(w, "Event added", saved)
	}
}

func DeleteHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := web.PathID(r)
		if err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := database.DeleteCalendarEvent(db, id); err != nil {
			web.StoreError(w, "calendar", "DeleteHandler", id, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, map[string]string{"message": "Event deleted"})
	}
}
