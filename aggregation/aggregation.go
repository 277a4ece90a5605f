package aggregation

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Record は取得済みレポートの1セクションです (JSON をデコードしたもの)。
type Record map[string]any

// ItemSchema は二階層スキーマの下位項目 (例: ceb → quantity/qcNoStart/qcNoEnd) です。
type ItemSchema struct {
	Name    string
	Numeric []string
	Text    []string
}

// Schema は集計対象のフィールド定義です。
type Schema struct {
	Numeric []string
	Items   []ItemSchema
}

// Zero はスキーマの初期値 (数値は 0、文字列は空) を返します。
func (s Schema) Zero() Record {
	out := make(Record, len(s.Numeric)+len(s.Items))
	for _, f := range s.Numeric {
		out[f] = 0.0
	}
	for _, item := range s.Items {
		sub := make(Record, len(item.Numeric)+len(item.Text))
		for _, f := range item.Numeric {
			sub[f] = 0.0
		}
		for _, f := range item.Text {
			sub[f] = ""
		}
		out[item.Name] = sub
	}
	return out
}

// Aggregate はレコード列をスキーマに従って1件に集計します。
// 数値は合計し、未設定・数値以外は 0 として扱います。
// 文字列項目は入力順で最後に現れた空でない値を採用します。
func Aggregate(records []Record, s Schema) Record {
	sums := make(map[string]decimal.Decimal, len(s.Numeric))
	itemSums := make(map[string]map[string]decimal.Decimal, len(s.Items))
	texts := make(map[string]map[string]string, len(s.Items))

	for _, rec := range records {
		for _, f := range s.Numeric {
			sums[f] = sums[f].Add(toDecimal(rec[f]))
		}
		for _, item := range s.Items {
			sub, ok := asRecord(rec[item.Name])
			if !ok {
				continue
			}
			if itemSums[item.Name] == nil {
				itemSums[item.Name] = make(map[string]decimal.Decimal, len(item.Numeric))
				texts[item.Name] = make(map[string]string, len(item.Text))
			}
			for _, f := range item.Numeric {
				itemSums[item.Name][f] = itemSums[item.Name][f].Add(toDecimal(sub[f]))
			}
			for _, f := range item.Text {
				if v := toText(sub[f]); v != "" {
					texts[item.Name][f] = v
				}
			}
		}
	}

	out := s.Zero()
	for _, f := range s.Numeric {
		out[f] = sums[f].InexactFloat64()
	}
	for _, item := range s.Items {
		sub := out[item.Name].(Record)
		for _, f := range item.Numeric {
			sub[f] = itemSums[item.Name][f].InexactFloat64()
		}
		for _, f := range item.Text {
			sub[f] = texts[item.Name][f]
		}
	}
	return out
}

// ToRecord は型付きのレポート構造体を Record に変換します。
func ToRecord(v any) (Record, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	if rec == nil {
		rec = Record{}
	}
	return rec, nil
}

// ToRecords は ToRecord のスライス版です。
func ToRecords[T any](items []T) ([]Record, error) {
	out := make([]Record, 0, len(items))
	for i := range items {
		rec, err := ToRecord(items[i])
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Decode は集計結果を型付き構造体に戻します。
func Decode(rec Record, dst any) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal aggregate: %w", err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("failed to decode aggregate: %w", err)
	}
	return nil
}

// Number は Record の値を数値として読み取ります。
func Number(v any) float64 {
	return toDecimal(v).InexactFloat64()
}

func toDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return decimal.Zero
	case float64:
		return fromFloat(n)
	case float32:
		if math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat32(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return d
	case *float64:
		if n == nil {
			return decimal.Zero
		}
		return fromFloat(*n)
	default:
		return decimal.Zero
	}
}

// fromFloat は NaN と無限大を0として扱います。
func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func toText(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(s))
	}
}

func asRecord(v any) (Record, bool) {
	switch m := v.(type) {
	case Record:
		return m, true
	case map[string]any:
		return Record(m), true
	default:
		return nil, false
	}
}

// Averages は各フィールドの合計を日数で割った平均を返します。
// days が 0 以下の場合はすべて 0 です。
func Averages(records []Record, fields []string, days int) map[string]float64 {
	out := make(map[string]float64, len(fields))
	sums := make(map[string]decimal.Decimal, len(fields))
	for _, rec := range records {
		for _, f := range fields {
			sums[f] = sums[f].Add(toDecimal(rec[f]))
		}
	}
	for _, f := range fields {
		if days <= 0 {
			out[f] = 0
			continue
		}
		out[f] = sums[f].Div(decimal.NewFromInt(int64(days))).Round(4).InexactFloat64()
	}
	return out
}

// DistinctDays は日付の異なり数を返します。
func DistinctDays(dates []string) int {
	seen := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		if d == "" {
			continue
		}
		seen[d] = struct{}{}
	}
	return len(seen)
}

// Dated は日付付きのレコードです。
type Dated struct {
	Date   string
	Record Record
}

// DailyTotals は日付ごとにレコードを集計し、日付順で返します。
func DailyTotals(rows []Dated, s Schema) []Dated {
	byDate := make(map[string][]Record)
	var dates []string
	for _, r := range rows {
		if _, ok := byDate[r.Date]; !ok {
			dates = append(dates, r.Date)
		}
		byDate[r.Date] = append(byDate[r.Date], r.Record)
	}
	sort.Strings(dates)

	out := make([]Dated, 0, len(dates))
	for _, d := range dates {
		out = append(out, Dated{Date: d, Record: Aggregate(byDate[d], s)})
	}
	return out
}

// Columns はスキーマの列を "item.field" 形式のパスで返します。
func (s Schema) Columns() []string {
	var cols []string
	cols = append(cols, s.Numeric...)
	for _, item := range s.Items {
		for _, f := range item.Numeric {
			cols = append(cols, item.Name+"."+f)
		}
		for _, f := range item.Text {
			cols = append(cols, item.Name+"."+f)
		}
	}
	return cols
}

// Get は "item.field" 形式のパスで値を取り出します。無ければ nil です。
func (r Record) Get(path string) any {
	head, rest, nested := strings.Cut(path, ".")
	if !nested {
		return r[path]
	}
	sub, ok := asRecord(r[head])
	if !ok {
		return nil
	}
	return sub.Get(rest)
}

// SumPaths は複数パスの値を合計します。
func SumPaths(rec Record, paths ...string) float64 {
	total := decimal.Zero
	for _, p := range paths {
		total = total.Add(toDecimal(rec.Get(p)))
	}
	return total.InexactFloat64()
}
