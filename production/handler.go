package production

import (
	"net/http"
	"time"

	"plantreport/aggregation"
	"plantreport/auth"
	"plantreport/database"
	"plantreport/export"
	"plantreport/model"
	"plantreport/web"

	"github.com/jmoiron/sqlx"
)

// CreateHandler は成形ラインのシフトレポートを登録します。
func CreateHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var report model.ProductionShiftReport
		if err := web.Decode(r, &report); err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := web.ApplyShiftCode(&report.ReportHeader); err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		report.CreatedBy = auth.UserID(r.Context())

		id, err := database.InsertProductionShiftReport(db, report)
		if err != nil {
			web.StoreError(w, "production", "CreateHandler", report.ReportHeader, err)
			return
		}
		report.ID = id
		web.WriteCreated(w, "Production shift report saved successfully", report)
	}
}

func ListHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reports, err := database.GetProductionShiftReports(db, web.Filters(r))
		if err != nil {
			web.StoreError(w, "production", "ListHandler", nil, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, reports)
	}
}

// TotalsHandler は絞り込んだレポートを製品セクションごとに合計します。
func TotalsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reports, err := database.GetProductionShiftReports(db, web.Filters(r))
		if err != nil {
			web.StoreError(w, "production", "TotalsHandler", nil, err)
			return
		}
		_, records, err := sections(reports)
		if err != nil {
			web.StoreError(w, "production", "TotalsHandler", nil, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, map[string]any{
			"count":  len(reports),
			"totals": aggregation.Aggregate(records, aggregation.ProductionSchema),
		})
	}
}

func ExportHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reports, err := database.GetProductionShiftReports(db, web.Filters(r))
		if err != nil {
			web.StoreError(w, "production", "ExportHandler", nil, err)
			return
		}
		headers, records, err := sections(reports)
		if err != nil {
			web.StoreError(w, "production", "ExportHandler", nil, err)
			return
		}
		header, rows := export.Report(headers, records, aggregation.ProductionSchema)
		totals := export.Totals(aggregation.Aggregate(records, aggregation.ProductionSchema), aggregation.ProductionSchema)

		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition", "attachment; filename=production_shift_reports.xlsx")
		if err := export.WriteReport(w, "Production", header, rows, totals); err != nil {
			web.StoreError(w, "production", "ExportHandler", nil, err)
		}
	}
}

// RawMaterialAveragesHandler は ?upToDate= までの原材料投入量の1日平均を返します。
// 各レポートの原材料は全製品セクションの合計です。
func RawMaterialAveragesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		upTo, ok := upToDate(w, r)
		if !ok {
			return
		}
		reports, err := database.GetProductionShiftReports(db, model.ReportFilters{UpToDate: upTo})
		if err != nil {
			web.StoreError(w, "production", "RawMaterialAveragesHandler", upTo, err)
			return
		}
		headers, records, err := sections(reports)
		if err != nil {
			web.StoreError(w, "production", "RawMaterialAveragesHandler", upTo, err)
			return
		}

		flat := make([]aggregation.Record, 0, len(records))
		for _, rec := range records {
			row := aggregation.Record{}
			for _, f := range aggregation.RawMaterialFields {
				paths := make([]string, 0, len(aggregation.ProductionProducts))
				for _, product := range aggregation.ProductionProducts {
					paths = append(paths, product+"."+f)
				}
				row[f] = aggregation.SumPaths(rec, paths...)
			}
			flat = append(flat, row)
		}
		web.WriteJSON(w, http.StatusOK, averages(upTo, headers, flat, aggregation.RawMaterialFields))
	}
}

// ReceivedAveragesHandler は ?upToDate= までの組立ライン受入数の1日平均を返します。
func ReceivedAveragesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		upTo, ok := upToDate(w, r)
		if !ok {
			return
		}
		reports, err := database.GetAssemblyReports(db, model.AssemblyReceived, model.ReportFilters{UpToDate: upTo})
		if err != nil {
			web.StoreError(w, "production", "ReceivedAveragesHandler", upTo, err)
			return
		}
		headers := make([]model.ReportHeader, 0, len(reports))
		items := make([]*model.ItemCounts, 0, len(reports))
		for _, rep := range reports {
			headers = append(headers, rep.ReportHeader)
			items = append(items, rep.ReceivedItems)
		}
		records, err := aggregation.ToRecords(items)
		if err != nil {
			web.StoreError(w, "production", "ReceivedAveragesHandler", upTo, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, averages(upTo, headers, records, aggregation.ItemFields))
	}
}

func upToDate(w http.ResponseWriter, r *http.Request) (string, bool) {
	upTo := r.URL.Query().Get("upToDate")
	if upTo == "" {
		return time.Now().Format("2006-01-02"), true
	}
	if _, err := time.Parse("2006-01-02", upTo); err != nil {
		web.WriteJSONError(w, "upToDate must be a date in YYYY-MM-DD format", http.StatusBadRequest)
		return "", false
	}
	return upTo, true
}

func averages(upTo string, headers []model.ReportHeader, records []aggregation.Record, fields []string) model.RawMaterialAverages {
	dates := make([]string, 0, len(headers))
	for _, h := range headers {
		dates = append(dates, h.Date)
	}
	days := aggregation.DistinctDays(dates)
	return model.RawMaterialAverages{
		UpToDate:     upTo,
		NumberOfDays: days,
		Averages:     aggregation.Averages(records, fields, days),
	}
}

func sections(reports []model.ProductionShiftReport) ([]model.ReportHeader, []aggregation.Record, error) {
	headers := make([]model.ReportHeader, 0, len(reports))
	secs := make([]model.ProductionSections, 0, len(reports))
	for _, rep := range reports {
		headers = append(headers, rep.ReportHeader)
		secs = append(secs, rep.ProductionSections)
	}
	records, err := aggregation.ToRecords(secs)
	return headers, records, err
}
