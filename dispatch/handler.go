package dispatch

import (
	"net/http"

	"plantreport/aggregation"
	"plantreport/auth"
	"plantreport/config"
	"plantreport/database"
	"plantreport/export"
	"plantreport/model"
	"plantreport/web"

	"github.com/jmoiron/sqlx"
)

// CreateHandler はシフト出荷サマリーを登録します。
// totalQuantity が未入力なら出荷行の合計、managerName が未入力なら設定の既定値を使います。
func CreateHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var report model.DispatchReport
		if err := web.Decode(r, &report); err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := web.ApplyShiftCode(&report.ReportHeader); err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if report.Entries == nil {
			report.Entries = []model.DispatchEntry{}
		}
		if !report.TotalQuantity.Valid {
			report.TotalQuantity = model.Q(EntriesTotal(report.Entries))
		}
		if report.ManagerName == "" {
			report.ManagerName = config.GetConfig().DefaultManager
		}
		report.CreatedBy = auth.UserID(r.Context())

		id, err := database.InsertDispatchReport(db, report)
		if err != nil {
			web.StoreError(w, "dispatch", "CreateHandler", report.ReportHeader, err)
			return
		}
		report.ID = id
		web.WriteCreated(w, "Shift dispatch summary saved successfully", report)
	}
}

// EntriesTotal は出荷行の数量合計です。
func EntriesTotal(entries []model.DispatchEntry) float64 {
	recs, err := aggregation.ToRecords(entries)
	if err != nil {
		return 0
	}
	return aggregation.Number(aggregation.Aggregate(recs, aggregation.DispatchEntrySchema)["quantity"])
}

func ListHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reports, err := database.GetDispatchReports(db, web.Filters(r))
		if err != nil {
			web.StoreError(w, "dispatch", "ListHandler", nil, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, reports)
	}
}

func TotalsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reports, err := database.GetDispatchReports(db, web.Filters(r))
		if err != nil {
			web.StoreError(w, "dispatch", "TotalsHandler", nil, err)
			return
		}
		_, records, err := records(reports)
		if err != nil {
			web.StoreError(w, "dispatch", "TotalsHandler", nil, err)
			return
		}
		entries := 0
		for _, rep := range reports {
			entries += len(rep.Entries)
		}
		web.WriteJSON(w, http.StatusOK, map[string]any{
			"count":   len(reports),
			"entries": entries,
			"totals":  aggregation.Aggregate(records, aggregation.DispatchSchema),
		})
	}
}

func ExportHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reports, err := database.GetDispatchReports(db, web.Filters(r))
		if err != nil {
			web.StoreError(w, "dispatch", "ExportHandler", nil, err)
			return
		}
		headers, recs, err := records(reports)
		if err != nil {
			web.StoreError(w, "dispatch", "ExportHandler", nil, err)
			return
		}
		s := aggregation.DispatchSchema
		header, rows := export.Report(headers, recs, s)

		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition", "attachment; filename=shift_dispatch.xlsx")
		if err := export.WriteReport(w, "Shift Dispatch", header, rows, export.Totals(aggregation.Aggregate(recs, s), s)); err != nil {
			web.StoreError(w, "dispatch", "ExportHandler", nil, err)
		}
	}
}

func records(reports []model.DispatchReport) ([]model.ReportHeader, []aggregation.Record, error) {
	headers := make([]model.ReportHeader, 0, len(reports))
	for _, rep := range reports {
		headers = append(headers, rep.ReportHeader)
	}
	recs, err := aggregation.ToRecords(reports)
	return headers, recs, err
}
