package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"plantreport/database/dbtest"
	"plantreport/model"
	"plantreport/printing"

	"github.com/gorilla/mux"
)

const noteBody = `{"deliveryDate":"2025-02-01","customer":"CEB","description":"CEB Meter Enclosure","quantity":"250","receivedByName":"Nimal","chequeReceived":"Yes"}`

func create(t *testing.T, h http.HandlerFunc, body string) (*httptest.ResponseRecorder, model.DeliveryNote) {
	t.Helper()
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/api/delivery-notes", strings.NewReader(body)))
	var resp struct {
		Data model.DeliveryNote `json:"data"`
	}
	if rec.Code == http.StatusCreated {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return rec, resp.Data
}

func withID(r *http.Request, id int64) *http.Request {
	return mux.SetURLVars(r, map[string]string{"id": strconv.FormatInt(id, 10)})
}

func TestCreateAndNumbering(t *testing.T) {
	db := dbtest.Open(t)
	h := CreateHandler(db)

	rec, first := create(t, h, noteBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	_, second := create(t, h, noteBody)
	if first.DeliveryNoteNumber != "DN2025032-01" || second.DeliveryNoteNumber != "DN2025032-02" {
		t.Fatalf("numbers = %q, %q", first.DeliveryNoteNumber, second.DeliveryNoteNumber)
	}
	if first.From == "" {
		t.Errorf("from location not defaulted")
	}

	rec, _ = create(t, h, `{"deliveryDate":"2025-02-01","customer":"CEB","description":"x","receivedByName":"N"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing quantity: status = %d", rec.Code)
	}
	rec, zero := create(t, h, strings.Replace(noteBody, `"250"`, `0`, 1))
	if rec.Code != http.StatusCreated || !zero.Quantity.Valid || zero.Quantity.Float64 != 0 {
		t.Errorf("zero quantity: status = %d, quantity %+v", rec.Code, zero.Quantity)
	}
	rec, _ = create(t, h, strings.Replace(noteBody, `"Yes"`, `"Maybe"`, 1))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad cheque flag: status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	NextNumberHandler(db)(rec, httptest.NewRequest(http.MethodGet, "/?date=2025-02-01", nil))
	if !strings.Contains(rec.Body.String(), "DN2025032-04") {
		t.Fatalf("next number = %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	ListHandler(db)(rec, httptest.NewRequest(http.MethodGet, "/?date=2025-02-01", nil))
	var list []model.DeliveryNote
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil || len(list) != 3 {
		t.Fatalf("list = %d, %v", len(list), err)
	}
}

func TestGetAndPDF(t *testing.T) {
	db := dbtest.Open(t)
	_, note := create(t, CreateHandler(db), noteBody)

	rec := httptest.NewRecorder()
	GetHandler(db)(rec, withID(httptest.NewRequest(http.MethodGet, "/", nil), note.ID))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	GetHandler(db)(rec, withID(httptest.NewRequest(http.MethodGet, "/", nil), note.ID+100))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing note status = %d", rec.Code)
	}

	var printed string
	fake := func(ctx context.Context, html string) ([]byte, error) {
		printed = html
		return []byte("%PDF-1.4 fake"), nil
	}
	rec = httptest.NewRecorder()
	PDFHandler(db, fake)(rec, withID(httptest.NewRequest(http.MethodGet, "/", nil), note.ID))
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("pdf status = %d, type %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(printed, note.DeliveryNoteNumber) {
		t.Errorf("printed html missing note number")
	}

	noBrowser := func(ctx context.Context, html string) ([]byte, error) { return nil, printing.ErrNoBrowser }
	rec = httptest.NewRecorder()
	PDFHandler(db, noBrowser)(rec, withID(httptest.NewRequest(http.MethodGet, "/", nil), note.ID))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("no browser status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	PDFHandler(db, noBrowser)(rec, withID(httptest.NewRequest(http.MethodGet, "/?format=html", nil), note.ID))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "DELIVERY NOTE") {
		t.Fatalf("html fallback status = %d", rec.Code)
	}
}
