package defective

import (
	"net/http"

	"plantreport/aggregation"
	"plantreport/auth"
	"plantreport/database"
	"plantreport/export"
	"plantreport/model"
	"plantreport/web"

	"github.com/jmoiron/sqlx"
)

// CreateHandler は不良品粉砕レポートを登録します。
func CreateHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var report model.DefectiveCrushedReport
		if err := web.Decode(r, &report); err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := web.ApplyShiftCode(&report.ReportHeader); err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		report.CreatedBy = auth.UserID(r.Context())

		id, err := database.InsertDefectiveCrushedReport(db, report)
		if err != nil {
			web.StoreError(w, "defective", "CreateHandler", report.ReportHeader, err)
			return
		}
		report.ID = id
		web.WriteCreated(w, "Defective crushed report saved successfully", report)
	}
}

func ListHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reports, err := database.GetDefectiveCrushedReports(db, web.Filters(r))
		if err != nil {
			web.StoreError(w, "defective", "ListHandler", nil, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, reports)
	}
}

func TotalsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, records, err := load(db, web.Filters(r))
		if err != nil {
			web.StoreError(w, "defective", "TotalsHandler", nil, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, map[string]any{
			"count":  len(records),
			"totals": aggregation.Aggregate(records, aggregation.DefectiveSchema),
		})
	}
}

func ExportHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		headers, records, err := load(db, web.Filters(r))
		if err != nil {
			web.StoreError(w, "defective", "ExportHandler", nil, err)
			return
		}
		s := aggregation.DefectiveSchema
		header, rows := export.Report(headers, records, s)

		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition", "attachment; filename=defective_crushed.xlsx")
		if err := export.WriteReport(w, "Defective Crushed", header, rows, export.Totals(aggregation.Aggregate(records, s), s)); err != nil {
			web.StoreError(w, "defective", "ExportHandler", nil, err)
		}
	}
}

func load(db *sqlx.DB, f model.ReportFilters) ([]model.ReportHeader, []aggregation.Record, error) {
	reports, err := database.GetDefectiveCrushedReports(db, f)
	if err != nil {
		return nil, nil, err
	}
	headers := make([]model.ReportHeader, 0, len(reports))
	for _, rep := range reports {
		headers = append(headers, rep.ReportHeader)
	}
	records, err := aggregation.ToRecords(reports)
	return headers, records, err
}
