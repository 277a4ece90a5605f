package shift

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"plantreport/shiftcode"
)

func get(t *testing.T, h http.HandlerFunc, target string) (*httptest.ResponseRecorder, shiftcode.Code) {
	t.Helper()
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var code shiftcode.Code
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &code); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return rec, code
}

func TestCodeHandler(t *testing.T) {
	tests := []struct {
		target  string
		status  int
		display string
	}{
		{"/api/shifts/code?date=2025-01-01&shift=morning", http.StatusOK, "1 250001"},
		{"/api/shifts/code?date=2025-01-02&shift=night", http.StatusOK, "2 250006"},
		{"/api/shifts/code?date=2025-01-02", http.StatusBadRequest, ""},
		{"/api/shifts/code?date=bad&shift=day", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		rec, code := get(t, CodeHandler(), tt.target)
		if rec.Code != tt.status {
			t.Errorf("%s: status = %d, want %d", tt.target, rec.Code, tt.status)
			continue
		}
		if code.DisplayCode != tt.display {
			t.Errorf("%s: display = %q, want %q", tt.target, code.DisplayCode, tt.display)
		}
	}
}

func TestCurrentHandler(t *testing.T) {
	fixed := func() time.Time { return time.Date(2025, 1, 2, 17, 30, 0, 0, time.UTC) }
	rec, code := get(t, CurrentHandler(fixed), "/api/shifts/current")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if code.Shift != shiftcode.Night || code.SequenceNumber != 250006 {
		t.Fatalf("unexpected current shift %+v", code)
	}
}

func TestDecodeHandler(t *testing.T) {
	rec, code := get(t, DecodeHandler(), "/api/shifts/decode?number=251095")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if code.Date != "2025-12-31" || code.Shift != shiftcode.Night {
		t.Fatalf("unexpected decode %+v", code)
	}

	rec, _ = get(t, DecodeHandler(), "/api/shifts/decode?number=abc")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestOptionsHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	OptionsHandler()(rec, httptest.NewRequest(http.MethodGet, "/api/shifts", nil))
	var opts []shiftcode.Option
	if err := json.Unmarshal(rec.Body.Bytes(), &opts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(opts) != 3 || opts[0].Value != shiftcode.Morning {
		t.Fatalf("unexpected options %+v", opts)
	}
}
