package export

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"plantreport/aggregation"
	"plantreport/format"
	"plantreport/model"

	"github.com/xuri/excelize/v2"
)

// ContentType は XLSX のレスポンス種別です。
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// 列の表示形式 (excelize の組み込み番号)
const (
	numFmtInteger = 3 // #,##0
	numFmtFixed2  = 4 // #,##0.00
)

// WriteReport は見出し・明細・合計行を1シートのブックにして w に書き出します。
// totals が空なら合計行は出力しません。
func WriteReport(w io.Writer, sheet string, header []string, rows [][]any, totals []any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	integer, err := f.NewStyle(&excelize.Style{NumFmt: numFmtInteger})
	if err != nil {
		return fmt.Errorf("failed to create number style: %w", err)
	}
	fixed2, err := f.NewStyle(&excelize.Style{NumFmt: numFmtFixed2})
	if err != nil {
		return fmt.Errorf("failed to create number style: %w", err)
	}

	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	last := len(rows) + 1
	if len(totals) > 0 {
		last++
		if err := setRow(f, sheet, last, totals); err != nil {
			return err
		}
		if err := f.SetRowStyle(sheet, last, last, bold); err != nil {
			return fmt.Errorf("failed to style totals row: %w", err)
		}
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}

	// 明細の数値列に桁区切りを設定
	if len(rows) > 0 {
		for c, h := range header {
			style := integer
			if format.FieldPlaces(lastSegment(h)) == 2 {
				style = fixed2
			}
			if _, ok := rows[0][c].(float64); !ok {
				continue
			}
			from, _ := excelize.CoordinatesToCellName(c+1, 2)
			to, _ := excelize.CoordinatesToCellName(c+1, last)
			if err := f.SetCellStyle(sheet, from, to, style); err != nil {
				return fmt.Errorf("failed to style column %s: %w", h, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	switch v := values.(type) {
	case []string:
		err = f.SetSheetRow(sheet, cell, &v)
	case []any:
		err = f.SetSheetRow(sheet, cell, &v)
	default:
		err = fmt.Errorf("unsupported row type %T", values)
	}
	if err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// Report は日付・シフト列とスキーマ列からなる表を作ります。
// headers と records は同じ順序で対応している必要があります。
func Report(headers []model.ReportHeader, records []aggregation.Record, s aggregation.Schema) ([]string, [][]any) {
	cols := s.Columns()
	header := []string{"Date", "Shift", "Shift Number"}
	for _, c := range cols {
		header = append(header, Title(c))
	}

	rows := make([][]any, 0, len(records))
	for i, rec := range records {
		row := make([]any, 0, len(header))
		if i < len(headers) {
			h := headers[i]
			row = append(row, h.Date, h.Shift, h.DisplayShiftNumber)
		} else {
			row = append(row, "", "", "")
		}
		for _, c := range cols {
			row = append(row, cellValue(rec.Get(c), s, c))
		}
		rows = append(rows, row)
	}
	return header, rows
}

// Totals は Report と同じ列順の合計行を作ります。
func Totals(total aggregation.Record, s aggregation.Schema) []any {
	cols := s.Columns()
	row := []any{"Total", "", ""}
	for _, c := range cols {
		row = append(row, cellValue(total.Get(c), s, c))
	}
	return row
}

func cellValue(v any, s aggregation.Schema, path string) any {
	if isText(s, path) {
		if v == nil {
			return ""
		}
		return fmt.Sprint(v)
	}
	return aggregation.Number(v)
}

func isText(s aggregation.Schema, path string) bool {
	item, field, ok := strings.Cut(path, ".")
	if !ok {
		return false
	}
	for _, it := range s.Items {
		if it.Name != item {
			continue
		}
		for _, t := range it.Text {
			if t == field {
				return true
			}
		}
	}
	return false
}

// Title は "cebCovers.goodProductsQty" を "Ceb Covers / Good Products Qty" に変換します。
func Title(path string) string {
	parts := strings.Split(path, ".")
	for i, p := range parts {
		parts[i] = words(p)
	}
	return strings.Join(parts, " / ")
}

func words(camel string) string {
	var b strings.Builder
	runes := []rune(camel)
	for i, r := range runes {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		prev := runes[i-1]
		nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
		if unicode.IsUpper(r) && (!unicode.IsUpper(prev) || nextLower) {
			b.WriteByte(' ')
		} else if unicode.IsDigit(r) && !unicode.IsDigit(prev) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func lastSegment(title string) string {
	if i := strings.LastIndex(title, " / "); i >= 0 {
		title = title[i+3:]
	}
	return strings.ToLower(strings.ReplaceAll(title, " ", ""))
}
