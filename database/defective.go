package database

import (
	"fmt"

	"plantreport/model"

	"github.com/jmoiron/sqlx"
)

func InsertDefectiveCrushedReport(db *sqlx.DB, r model.DefectiveCrushedReport) (int64, error) {
	const q = `
		INSERT INTO defective_crushed_reports
			(report_date, shift, shift_number, display_shift_number,
			 received_quantity, received_weight, crushed_pc_weight, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`
	var id int64
	err := db.Get(&id, db.Rebind(q),
		r.Date, r.Shift, r.ShiftNumber, r.DisplayShiftNumber,
		r.ReceivedQuantity, r.ReceivedWeight, r.CrushedPCWeight, r.CreatedBy, now())
	if err != nil {
		return 0, wrapInsertError(err, fmt.Sprintf("defective crushed report (shift number %d)", r.ShiftNumber))
	}
	return id, nil
}

func GetDefectiveCrushedReports(db *sqlx.DB, f model.ReportFilters) ([]model.DefectiveCrushedReport, error) {
	where, args := filterClause(f)
	query := "SELECT " + headerColumns + ", received_quantity, received_weight, crushed_pc_weight FROM defective_crushed_reports" + where + reportOrder

	reports := []model.DefectiveCrushedReport{}
	if err := db.Select(&reports, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get defective crushed reports: %w", err)
	}
	return reports, nil
}
