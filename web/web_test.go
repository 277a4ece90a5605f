package web

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"plantreport/database"
	"plantreport/model"

	"github.com/gorilla/mux"
)

func TestDecodeValidatesQuantities(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"date":"2025-01-01","shift":"day","receivedQuantity":"3","receivedWeight":1.5,"crushedPCWeight":0}`, ""},
		{"all zero", `{"date":"2025-01-01","shift":"day","receivedQuantity":0,"receivedWeight":"0","crushedPCWeight":0}`, ""},
		{"missing crushed weight", `{"date":"2025-01-01","shift":"day","receivedQuantity":1,"receivedWeight":1}`, "crushedPCWeight is required"},
		{"infinite quantity", `{"date":"2025-01-01","shift":"day","receivedQuantity":"Infinity","receivedWeight":1,"crushedPCWeight":1}`, "invalid request body"},
		{"missing required quantity", `{"date":"2025-01-01","shift":"day","receivedQuantity":3,"receivedWeight":""}`, "receivedWeight is required"},
		{"negative", `{"date":"2025-01-01","shift":"day","receivedQuantity":-3,"receivedWeight":1,"crushedPCWeight":1}`, "receivedQuantity must be greater than or equal to 0"},
		{"bad shift", `{"date":"2025-01-01","shift":"evening","receivedQuantity":3,"receivedWeight":1,"crushedPCWeight":1}`, "shift must be one of"},
		{"bad date", `{"date":"01-01-2025","shift":"day","receivedQuantity":3,"receivedWeight":1,"crushedPCWeight":1}`, "date must be a date"},
		{"broken json", `{"date":`, "invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var rep model.DefectiveCrushedReport
			err := Decode(req, &rep)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyShiftCode(t *testing.T) {
	h := model.ReportHeader{Date: "2025-01-02", Shift: "night"}
	if err := ApplyShiftCode(&h); err != nil {
		t.Fatalf("ApplyShiftCode: %v", err)
	}
	if h.ShiftNumber != 250006 || h.DisplayShiftNumber != "2 250006" {
		t.Fatalf("unexpected header %+v", h)
	}

	h = model.ReportHeader{Date: "2025-01-02", Shift: "night", ShiftNumber: 250005}
	if err := ApplyShiftCode(&h); err == nil {
		t.Fatalf("mismatched shift number accepted")
	}
}

func TestStoreError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{database.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("user a@b.c: %w", database.ErrDuplicate), http.StatusConflict},
		{fmt.Errorf("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		StoreError(rec, "web", "TestStoreError", nil, tt.err)
		if rec.Code != tt.want {
			t.Errorf("%v: status = %d, want %d", tt.err, rec.Code, tt.want)
		}
	}
}

func TestPathID(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/stock/12", nil), map[string]string{"id": "12"})
	if id, err := PathID(req); err != nil || id != 12 {
		t.Fatalf("PathID = %d, %v", id, err)
	}
	req = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/stock/x", nil), map[string]string{"id": "x"})
	if _, err := PathID(req); err == nil {
		t.Fatalf("invalid id accepted")
	}
}
