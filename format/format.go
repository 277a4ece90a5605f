package format

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// Fixed は小数点以下 places 桁の桁区切り付き文字列を返します (例: 1,234.50)。
func Fixed(v float64, places int) string {
	if places < 0 {
		places = 0
	}
	return printer.Sprint(number.Decimal(v, number.Scale(places)))
}

// FieldPlaces は表示時の小数桁数です。重量と廃棄量は 2 桁、それ以外は整数です。
func FieldPlaces(field string) int {
	if strings.Contains(strings.ToLower(field), "weight") || field == "wastage" {
		return 2
	}
	return 0
}

// Field はフィールド名に応じた桁数で整形します。
func Field(field string, v float64) string {
	return Fixed(v, FieldPlaces(field))
}
