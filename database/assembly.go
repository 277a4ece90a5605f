package database

import (
	"fmt"

	"plantreport/model"

	"github.com/jmoiron/sqlx"
)

const assemblyTable = "assembly_reports"

// InsertAssemblyReport は組立ラインのレポートを種別ごとに登録します。
func InsertAssemblyReport(db *sqlx.DB, r model.AssemblyReport) (int64, error) {
	var payload any
	switch r.Kind {
	case model.AssemblyReceived:
		payload = r.ReceivedItems
	case model.AssemblyRejected:
		payload = r.RejectedItems
	case model.AssemblyAssembled:
		payload = r.AssembledItems
	default:
		return 0, fmt.Errorf("unknown assembly report kind %q", r.Kind)
	}
	return insertPayloadRow(db, assemblyTable, r.ReportHeader, []string{"kind"}, []any{string(r.Kind)}, payload)
}

// GetAssemblyReports は指定種別のレポートを返します。
func GetAssemblyReports(db *sqlx.DB, kind model.AssemblyKind, f model.ReportFilters) ([]model.AssemblyReport, error) {
	rows, err := selectPayloadRows(db, assemblyTable, "kind = ?", []any{string(kind)}, f)
	if err != nil {
		return nil, err
	}
	reports := make([]model.AssemblyReport, 0, len(rows))
	for _, row := range rows {
		r := model.AssemblyReport{ReportHeader: row.ReportHeader, Kind: kind}
		switch kind {
		case model.AssemblyReceived:
			r.ReceivedItems = &model.ItemCounts{}
			err = row.decode(r.ReceivedItems)
		case model.AssemblyRejected:
			r.RejectedItems = &model.ItemCounts{}
			err = row.decode(r.RejectedItems)
		case model.AssemblyAssembled:
			r.AssembledItems = &model.AssembledItems{}
			err = row.decode(r.AssembledItems)
		}
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}
