package shiftcode

import (
	"fmt"
	"strings"
	"time"
)

// Shift は工場の勤務区分 (morning / day / night) です。
type Shift string

const (
	Morning Shift = "morning"
	Day     Shift = "day"
	Night   Shift = "night"
)

const (
	baseYear     = 2025
	baseNumber   = 250001
	yearStride   = 10000
	shiftsPerDay = 3
	dateLayout   = "2006-01-02"
)

// Index はシフトの番号 (1〜3) を返します。不正な値は 0 です。
func (s Shift) Index() int {
	switch s {
	case Morning:
		return 1
	case Day:
		return 2
	case Night:
		return 3
	default:
		return 0
	}
}

func (s Shift) Valid() bool {
	return s.Index() != 0
}

// ParseShift は画面から渡されたシフト名を解釈します。
func ParseShift(s string) (Shift, bool) {
	sh := Shift(strings.ToLower(strings.TrimSpace(s)))
	if !sh.Valid() {
		return "", false
	}
	return sh, true
}

// Code は日付とシフトから求めたシフト番号です。
type Code struct {
	Date           string `json:"date"`
	Shift          Shift  `json:"shift"`
	DayOfMonth     int    `json:"dayOfMonth"`
	SequenceNumber int    `json:"shiftNumber"`
	DisplayCode    string `json:"displayShiftNumber"`
}

// Base はその年の最初の番号です。年ごとに 10000 ずつ進みます。
func Base(year int) int {
	return baseNumber + (year-baseYear)*yearStride
}

// Generate は日付とシフトからシフト番号を生成します。
// 日付が未設定、またはシフトが不正な場合は false を返します。
// 年初からの日数は暦日で数えるため、夏時間の切り替えの影響を受けません。
func Generate(date time.Time, s Shift) (Code, bool) {
	if date.IsZero() || !s.Valid() {
		return Code{}, false
	}
	year, month, day := date.Date()
	dayOffset := date.YearDay() - 1
	seq := Base(year) + dayOffset*shiftsPerDay + (s.Index() - 1)

	return Code{
		Date:           time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(dateLayout),
		Shift:          s,
		DayOfMonth:     day,
		SequenceNumber: seq,
		DisplayCode:    fmt.Sprintf("%d %06d", day, seq),
	}, true
}

// GenerateString は "YYYY-MM-DD" 形式の日付とシフト名から番号を生成します。
func GenerateString(date, shift string) (Code, bool) {
	if date == "" || shift == "" {
		return Code{}, false
	}
	d, err := time.Parse(dateLayout, strings.TrimSpace(date))
	if err != nil {
		return Code{}, false
	}
	s, ok := ParseShift(shift)
	if !ok {
		return Code{}, false
	}
	return Generate(d, s)
}

// Decode はシフト番号から日付とシフトを逆算します。
func Decode(seq int) (time.Time, Shift, error) {
	rel := seq - baseNumber
	yearOffset := rel / yearStride
	if rel%yearStride < 0 {
		yearOffset--
	}
	year := baseYear + yearOffset
	rem := seq - Base(year)

	dayOffset := rem / shiftsPerDay
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	date := jan1.AddDate(0, 0, dayOffset)
	if date.Year() != year {
		return time.Time{}, "", fmt.Errorf("shift number %d is outside the numbering range of %d", seq, year)
	}

	var s Shift
	switch rem % shiftsPerDay {
	case 0:
		s = Morning
	case 1:
		s = Day
	default:
		s = Night
	}
	return date, s, nil
}

// Option は画面のシフト選択肢です。
type Option struct {
	Value      Shift  `json:"value"`
	Label      string `json:"label"`
	ShiftIndex int    `json:"shiftIndex"`
	StartHour  int    `json:"startHour"`
	EndHour    int    `json:"endHour"`
}

var options = []Option{
	{Value: Morning, Label: "Morning Shift (12:00 AM - 7:00 AM)", ShiftIndex: 1, StartHour: 0, EndHour: 7},
	{Value: Day, Label: "Day Shift (7:00 AM - 4:00 PM)", ShiftIndex: 2, StartHour: 7, EndHour: 16},
	{Value: Night, Label: "Night Shift (4:00 PM - 12:00 AM)", ShiftIndex: 3, StartHour: 16, EndHour: 24},
}

func Options() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

// ShiftAt は時刻 t が属するシフトを返します。
func ShiftAt(t time.Time) Shift {
	h := t.Hour()
	for _, o := range options {
		if h >= o.StartHour && h < o.EndHour {
			return o.Value
		}
	}
	return Night
}
