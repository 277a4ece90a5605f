package export

import (
	"bytes"
	"testing"

	"plantreport/aggregation"
	"plantreport/model"

	"github.com/xuri/excelize/v2"
)

func TestTitle(t *testing.T) {
	tests := map[string]string{
		"cebCovers.goodProductsQty": "Ceb Covers / Good Products Qty",
		"crushedPCWeight":           "Crushed PC Weight",
		"rawMaterialPC":             "Raw Material PC",
		"leco1.qcNoStart":           "Leco 1 / Qc No Start",
	}
	for in, want := range tests {
		if got := Title(in); got != want {
			t.Errorf("Title(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteReport(t *testing.T) {
	headers := []model.ReportHeader{
		{Date: "2025-01-01", Shift: "morning", DisplayShiftNumber: "1 250001"},
		{Date: "2025-01-01", Shift: "day", DisplayShiftNumber: "1 250002"},
	}
	records := []aggregation.Record{
		{"ceb": map[string]any{"quantity": 10.0, "qcNoStart": "A1", "qcNoEnd": "A10"}},
		{"ceb": map[string]any{"quantity": 5.0, "qcNoEnd": "A15"}, "leco1": map[string]any{"quantity": 2.0}},
	}
	header, rows := Report(headers, records, aggregation.AssembledSchema)
	totals := Totals(aggregation.Aggregate(records, aggregation.AssembledSchema), aggregation.AssembledSchema)

	if len(header) != 9 || header[3] != "Ceb / Quantity" {
		t.Fatalf("unexpected header %v", header)
	}
	if rows[1][5] != "A15" || rows[1][6] != 2.0 {
		t.Fatalf("unexpected row %v", rows[1])
	}
	if totals[3] != 15.0 || totals[5] != "A15" {
		t.Fatalf("unexpected totals %v", totals)
	}

	var buf bytes.Buffer
	if err := WriteReport(&buf, "Assembled", header, rows, totals); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows("Assembled")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("rows = %d, want 4", len(got))
	}
	if got[0][0] != "Date" || got[1][2] != "1 250001" || got[3][0] != "Total" {
		t.Errorf("unexpected sheet content %v", got)
	}
}
