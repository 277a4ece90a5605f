package database

import (
	"plantreport/model"

	"github.com/jmoiron/sqlx"
)

const productionTable = "production_shift_reports"

// InsertProductionShiftReport は成形ラインのシフトレポートを登録します。
func InsertProductionShiftReport(db *sqlx.DB, r model.ProductionShiftReport) (int64, error) {
	return insertPayloadRow(db, productionTable, r.ReportHeader, nil, nil, r.ProductionSections)
}

// GetProductionShiftReports は条件に合うシフトレポートを日付・シフト番号順で返します。
func GetProductionShiftReports(db *sqlx.DB, f model.ReportFilters) ([]model.ProductionShiftReport, error) {
	rows, err := selectPayloadRows(db, productionTable, "", nil, f)
	if err != nil {
		return nil, err
	}
	reports := make([]model.ProductionShiftReport, 0, len(rows))
	for _, row := range rows {
		r := model.ProductionShiftReport{ReportHeader: row.ReportHeader}
		if err := row.decode(&r.ProductionSections); err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}
