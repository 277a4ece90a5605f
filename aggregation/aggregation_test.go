package aggregation

import (
	"encoding/json"
	"math"
	"testing"
)

func decodeRecords(t *testing.T, raw string) []Record {
	t.Helper()
	var recs []Record
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return recs
}

func TestAggregateFlat(t *testing.T) {
	recs := decodeRecords(t, `[
		{"cebCovers": 10, "lecoCovers": "5", "springs": null},
		{"cebCovers": 2.5, "base": "", "springs": 4, "sellotapes": "abc"},
		{}
	]`)
	got := Aggregate(recs, ItemCountsSchema)

	expect := map[string]float64{
		"cebCovers": 12.5, "lecoCovers": 5, "springs": 4, "base": 0, "sellotapes": 0, "shutters": 0,
	}
	for f, v := range expect {
		if got[f] != v {
			t.Errorf("%s: expected %v, got %v", f, v, got[f])
		}
	}
	if len(got) != len(ItemFields) {
		t.Errorf("expected %d fields, got %d", len(ItemFields), len(got))
	}
}

func TestAggregateNonFiniteCountsAsZero(t *testing.T) {
	inf := math.Inf(1)
	recs := []Record{
		{"cebCovers": math.NaN(), "lecoCovers": float32(math.Inf(-1)), "base": &inf, "springs": "NaN"},
		{"cebCovers": 3, "lecoCovers": 2, "base": 1, "springs": "Infinity"},
	}
	got := Aggregate(recs, ItemCountsSchema)
	expect := map[string]float64{"cebCovers": 3, "lecoCovers": 2, "base": 1, "springs": 0}
	for f, v := range expect {
		if got[f] != v {
			t.Errorf("%s: expected %v, got %v", f, v, got[f])
		}
	}
	if n := SumPaths(Record{"a": math.Inf(1), "b": 1.5}, "a", "b"); n != 1.5 {
		t.Errorf("SumPaths = %v, expected 1.5", n)
	}
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(nil, AssembledSchema)
	for _, p := range AssembledProducts {
		sub, ok := got[p].(Record)
		if !ok {
			t.Fatalf("%s: expected sub record, got %T", p, got[p])
		}
		if sub["quantity"] != 0.0 || sub["qcNoStart"] != "" || sub["qcNoEnd"] != "" {
			t.Errorf("%s: expected zero defaults, got %v", p, sub)
		}
	}

	flat := Aggregate([]Record{}, ItemCountsSchema)
	for _, f := range ItemFields {
		if flat[f] != 0.0 {
			t.Errorf("%s: expected 0, got %v", f, flat[f])
		}
	}
}

func TestAggregateLastNonEmptyTextWins(t *testing.T) {
	recs := decodeRecords(t, `[
		{"ceb": {"quantity": 100, "qcNoStart": "A001", "qcNoEnd": "A100"}},
		{"ceb": {"quantity": "50", "qcNoStart": "B001", "qcNoEnd": ""}},
		{"ceb": {"quantity": null, "qcNoStart": "", "qcNoEnd": ""}, "leco1": {"quantity": 7}}
	]`)
	got := Aggregate(recs, AssembledSchema)

	ceb := got["ceb"].(Record)
	if ceb["quantity"] != 150.0 {
		t.Errorf("ceb quantity: expected 150, got %v", ceb["quantity"])
	}
	if ceb["qcNoStart"] != "B001" {
		t.Errorf("qcNoStart: expected B001, got %v", ceb["qcNoStart"])
	}
	if ceb["qcNoEnd"] != "A100" {
		t.Errorf("qcNoEnd: expected A100, got %v", ceb["qcNoEnd"])
	}
	leco := got["leco1"].(Record)
	if leco["quantity"] != 7.0 || leco["qcNoStart"] != "" {
		t.Errorf("leco1: unexpected %v", leco)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	recs := decodeRecords(t, `[
		{"cebCovers": {"rawMaterialPC": 0.1, "goodProductsWeight": 12.35}, "base": {"wastage": 0.2}},
		{"cebCovers": {"rawMaterialPC": 0.2, "goodProductsWeight": "7.65"}, "base": {"wastage": 0.1}},
		{"shutters": {"goodProductsQty": 40}}
	]`)
	first := Aggregate(recs, ProductionSchema)
	second := Aggregate([]Record{first}, ProductionSchema)

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Fatalf("re-aggregation changed the result:\n%s\n%s", a, b)
	}
	ceb := first["cebCovers"].(Record)
	if ceb["rawMaterialPC"] != 0.3 {
		t.Errorf("expected exact 0.3, got %v", ceb["rawMaterialPC"])
	}
	if ceb["goodProductsWeight"] != 20.0 {
		t.Errorf("expected 20, got %v", ceb["goodProductsWeight"])
	}
}

type typedSection struct {
	Quantity  *float64 `json:"quantity"`
	QcNoStart string   `json:"qcNoStart"`
}

func TestToRecordAndDecode(t *testing.T) {
	q := 3.0
	recs, err := ToRecords([]map[string]typedSection{
		{"ceb": {Quantity: &q, QcNoStart: "X1"}},
		{"ceb": {Quantity: nil, QcNoStart: ""}},
	})
	if err != nil {
		t.Fatalf("ToRecords: %v", err)
	}
	got := Aggregate(recs, AssembledSchema)

	var out map[string]typedSection
	if err := Decode(got, &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out["ceb"].Quantity == nil || *out["ceb"].Quantity != 3 || out["ceb"].QcNoStart != "X1" {
		t.Fatalf("unexpected decoded aggregate %+v", out["ceb"])
	}
}

func TestAverages(t *testing.T) {
	recs := decodeRecords(t, `[{"rawMaterialPC": 10}, {"rawMaterialPC": 20, "rawMaterialMB": 3}]`)
	got := Averages(recs, RawMaterialFields, 4)
	if got["rawMaterialPC"] != 7.5 || got["rawMaterialMB"] != 0.75 || got["rawMaterialCrushedPC"] != 0 {
		t.Fatalf("unexpected averages %v", got)
	}
	zero := Averages(recs, RawMaterialFields, 0)
	if zero["rawMaterialPC"] != 0 {
		t.Fatalf("expected 0 with no days, got %v", zero)
	}
}

func TestDistinctDays(t *testing.T) {
	if n := DistinctDays([]string{"2025-01-01", "2025-01-01", "", "2025-01-03"}); n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}
}

func TestDailyTotals(t *testing.T) {
	rows := []Dated{
		{Date: "2025-01-02", Record: Record{"ceb": map[string]any{"quantity": 5.0}}},
		{Date: "2025-01-01", Record: Record{"ceb": map[string]any{"quantity": 1.0}}},
		{Date: "2025-01-02", Record: Record{"leco1": map[string]any{"quantity": "2"}}},
	}
	got := DailyTotals(rows, AssembledSchema)
	if len(got) != 2 || got[0].Date != "2025-01-01" || got[1].Date != "2025-01-02" {
		t.Fatalf("unexpected grouping %+v", got)
	}
	if Number(got[1].Record["ceb"].(Record)["quantity"]) != 5 || Number(got[1].Record["leco1"].(Record)["quantity"]) != 2 {
		t.Fatalf("unexpected totals %+v", got[1].Record)
	}
}

func TestColumnsAndGet(t *testing.T) {
	cols := AssembledSchema.Columns()
	want := []string{"ceb.quantity", "ceb.qcNoStart", "ceb.qcNoEnd", "leco1.quantity", "leco1.qcNoStart", "leco1.qcNoEnd"}
	if len(cols) != len(want) {
		t.Fatalf("columns = %v", cols)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, cols[i], want[i])
		}
	}

	recs := decodeRecords(t, `[{"ceb":{"quantity":5,"qcNoEnd":"Q9"}}]`)
	if got := recs[0].Get("ceb.quantity"); Number(got) != 5 {
		t.Errorf("ceb.quantity = %v", got)
	}
	if got := recs[0].Get("ceb.qcNoEnd"); got != "Q9" {
		t.Errorf("ceb.qcNoEnd = %v", got)
	}
	if got := recs[0].Get("leco1.quantity"); got != nil {
		t.Errorf("missing path = %v, want nil", got)
	}
}
