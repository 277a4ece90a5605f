package calendar

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"plantreport/database/dbtest"
	"plantreport/model"

	"github.com/gorilla/mux"
)

func TestEventHandlers(t *testing.T) {
	db := dbtest.Open(t)
	create := CreateHandler(db)

	cases := []struct {
		body   string
		status int
	}{
		{`{"title":"Mould maintenance","start":"2025-03-10T08:00","end":"2025-03-10T12:00"}`, http.StatusCreated},
		{`{"title":"Audit","start":"2025-03-20","end":"2025-03-21","color":"#00aaff"}`, http.StatusCreated},
		{`{"title":"Backwards","start":"2025-03-12","end":"2025-03-11"}`, http.StatusBadRequest},
		{`{"title":"Bad","start":"tomorrow","end":"2025-03-11"}`, http.StatusBadRequest},
		{`{"start":"2025-03-12","end":"2025-03-12"}`, http.StatusBadRequest},
		{`{"title":"Colour","start":"2025-03-12","end":"2025-03-12","color":"red"}`, http.StatusBadRequest},
	}
	var first model.CalendarEvent
	for i, c := range cases {
		rec := httptest.NewRecorder()
		create(rec, httptest.NewRequest(http.MethodPost, "/api/calendar/events", strings.NewReader(c.body)))
		if rec.Code != c.status {
			t.Fatalf("case %d: status = %d, want %d: %s", i, rec.Code, c.status, rec.Body.String())
		}
		if i == 0 {
			var resp struct {
				Data model.CalendarEvent `json:"data"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			first = resp.Data
		}
	}
	if first.Color != "#ffcc00" {
		t.Errorf("default color = %q", first.Color)
	}

	rec := httptest.NewRecorder()
	ListHandler(db)(rec, httptest.NewRequest(http.MethodGet, "/?from=2025-03-15&to=2025-03-31", nil))
	var events []model.CalendarEvent
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil || len(events) != 1 || events[0].Title != "Audit" {
		t.Fatalf("list = %+v, %v", events, err)
	}

	del := func(id int64) int {
		rec := httptest.NewRecorder()
		r := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/", nil), map[string]string{"id": strconv.FormatInt(id, 10)})
		DeleteHandler(db)(rec, r)
		return rec.Code
	}
	if code := del(first.ID); code != http.StatusOK {
		t.Fatalf("delete status = %d", code)
	}
	if code := del(first.ID); code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", code)
	}
}
