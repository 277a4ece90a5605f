package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"plantreport/shiftcode"
)

// Quantity は空欄を許容する数値項目です。
// 画面からは数値・数値文字列・空文字・null のいずれかで送られてきます。
type Quantity struct {
	Float64 float64
	Valid   bool
}

func Q(v float64) Quantity {
	return Quantity{Float64: v, Valid: true}
}

func (q Quantity) Value() (driver.Value, error) {
	if !q.Valid {
		return nil, nil
	}
	return q.Float64, nil
}

func (q *Quantity) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		q.Float64, q.Valid = 0, false
	case float64:
		if !finite(v) {
			return fmt.Errorf("cannot scan non-finite number %v into Quantity", v)
		}
		q.Float64, q.Valid = v, true
	case int64:
		q.Float64, q.Valid = float64(v), true
	case []byte:
		return q.parse(string(v))
	case string:
		return q.parse(v)
	default:
		return fmt.Errorf("cannot scan %T into Quantity", src)
	}
	return nil
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	if !q.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(q.Float64)
}

func (q *Quantity) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		q.Float64, q.Valid = 0, false
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		return q.parse(s)
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil || !finite(f) {
		return fmt.Errorf("invalid number %s", string(b))
	}
	q.Float64, q.Valid = f, true
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (q *Quantity) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		q.Float64, q.Valid = 0, false
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(f) {
		return fmt.Errorf("invalid number %q", s)
	}
	q.Float64, q.Valid = f, true
	return nil
}

// QuantityValue は validator 用の変換関数です。未入力は nil を返します。
func QuantityValue(v reflect.Value) any {
	q, ok := v.Interface().(Quantity)
	if !ok || !q.Valid {
		return nil
	}
	return q.Float64
}

// ShiftNumber は画面から送られるシフト番号です。
// 数値 (250006) と表示用文字列 ("2 250006") のどちらも受け付けます。
type ShiftNumber int

func (n *ShiftNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	var raw string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	} else {
		raw = string(b)
	}
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		*n = 0
		return nil
	}
	if len(fields) > 2 {
		return fmt.Errorf("invalid shift number %q", raw)
	}
	v, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return fmt.Errorf("invalid shift number %q", raw)
	}
	// 表示形式 "日 番号" の日は番号から求まる日付と一致しなければならない
	if len(fields) == 2 {
		day, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("invalid shift number %q", raw)
		}
		date, _, err := shiftcode.Decode(v)
		if err != nil {
			return fmt.Errorf("invalid shift number %q: %w", raw, err)
		}
		if date.Day() != day {
			return fmt.Errorf("shift number %q does not match its date (expected %d %06d)", raw, date.Day(), v)
		}
	}
	*n = ShiftNumber(v)
	return nil
}
