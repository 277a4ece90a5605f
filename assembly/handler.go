package assembly

import (
	"fmt"
	"net/http"

	"plantreport/aggregation"
	"plantreport/auth"
	"plantreport/database"
	"plantreport/export"
	"plantreport/model"
	"plantreport/web"

	"github.com/jmoiron/sqlx"
)

var titles = map[model.AssemblyKind]string{
	model.AssemblyReceived:  "Received items",
	model.AssemblyRejected:  "Rejected items",
	model.AssemblyAssembled: "Assembled items",
}

func schemaOf(kind model.AssemblyKind) aggregation.Schema {
	if kind == model.AssemblyAssembled {
		return aggregation.AssembledSchema
	}
	return aggregation.ItemCountsSchema
}

// section は種別に対応するセクションを取り出します。未設定なら nil です。
func section(r model.AssemblyReport) any {
	switch r.Kind {
	case model.AssemblyReceived:
		if r.ReceivedItems != nil {
			return r.ReceivedItems
		}
	case model.AssemblyRejected:
		if r.RejectedItems != nil {
			return r.RejectedItems
		}
	case model.AssemblyAssembled:
		if r.AssembledItems != nil {
			return r.AssembledItems
		}
	}
	return nil
}

// CreateHandler は組立ラインのレポートを種別ごとに登録します。
// 本文には種別に対応するセクション (receivedItems など) が必要です。
func CreateHandler(db *sqlx.DB, kind model.AssemblyKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var report model.AssemblyReport
		if err := web.Decode(r, &report); err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		report.Kind = kind
		// 他種別のセクションは保存しない
		switch kind {
		case model.AssemblyReceived:
			report.RejectedItems, report.AssembledItems = nil, nil
		case model.AssemblyRejected:
			report.ReceivedItems, report.AssembledItems = nil, nil
		case model.AssemblyAssembled:
			report.ReceivedItems, report.RejectedItems = nil, nil
		}
		if section(report) == nil {
			web.WriteJSONError(w, kind.Section()+" is required", http.StatusBadRequest)
			return
		}
		if err := web.ApplyShiftCode(&report.ReportHeader); err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		report.CreatedBy = auth.UserID(r.Context())

		id, err := database.InsertAssemblyReport(db, report)
		if err != nil {
			web.StoreError(w, "assembly", "CreateHandler", report.ReportHeader, err)
			return
		}
		report.ID = id
		web.WriteCreated(w, fmt.Sprintf("%s report saved successfully", titles[kind]), report)
	}
}

func ListHandler(db *sqlx.DB, kind model.AssemblyKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reports, err := database.GetAssemblyReports(db, kind, web.Filters(r))
		if err != nil {
			web.StoreError(w, "assembly", "ListHandler", kind, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, reports)
	}
}

// TotalsHandler は絞り込んだレポートのセクションを合計します。
func TotalsHandler(db *sqlx.DB, kind model.AssemblyKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, records, err := load(db, kind, web.Filters(r))
		if err != nil {
			web.StoreError(w, "assembly", "TotalsHandler", kind, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, map[string]any{
			"count":  len(records),
			"totals": aggregation.Aggregate(records, schemaOf(kind)),
		})
	}
}

func ExportHandler(db *sqlx.DB, kind model.AssemblyKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		headers, records, err := load(db, kind, web.Filters(r))
		if err != nil {
			web.StoreError(w, "assembly", "ExportHandler", kind, err)
			return
		}
		s := schemaOf(kind)
		header, rows := export.Report(headers, records, s)
		totals := export.Totals(aggregation.Aggregate(records, s), s)

		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=assembly_%s.xlsx", kind))
		if err := export.WriteReport(w, titles[kind], header, rows, totals); err != nil {
			web.StoreError(w, "assembly", "ExportHandler", kind, err)
		}
	}
}

// DailyAssembledTotalsHandler はダッシュボード用に日別の組立数を返します。
func DailyAssembledTotalsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		headers, records, err := load(db, model.AssemblyAssembled, web.Filters(r))
		if err != nil {
			web.StoreError(w, "assembly", "DailyAssembledTotalsHandler", nil, err)
			return
		}
		rows := make([]aggregation.Dated, 0, len(records))
		for i, rec := range records {
			rows = append(rows, aggregation.Dated{Date: headers[i].Date, Record: rec})
		}

		daily := aggregation.DailyTotals(rows, aggregation.AssembledSchema)
		out := make([]model.DailyAssembledTotal, 0, len(daily))
		for _, d := range daily {
			out = append(out, model.DailyAssembledTotal{
				Date:          d.Date,
				CebQuantity:   aggregation.Number(d.Record.Get("ceb.quantity")),
				Leco1Quantity: aggregation.Number(d.Record.Get("leco1.quantity")),
			})
		}
		web.WriteJSON(w, http.StatusOK, out)
	}
}

func load(db *sqlx.DB, kind model.AssemblyKind, f model.ReportFilters) ([]model.ReportHeader, []aggregation.Record, error) {
	reports, err := database.GetAssemblyReports(db, kind, f)
	if err != nil {
		return nil, nil, err
	}
	headers := make([]model.ReportHeader, 0, len(reports))
	records := make([]aggregation.Record, 0, len(reports))
	for _, rep := range reports {
		rec, err := aggregation.ToRecord(section(rep))
		if err != nil {
			return nil, nil, err
		}
		headers = append(headers, rep.ReportHeader)
		records = append(records, rec)
	}
	return headers, records, nil
}
