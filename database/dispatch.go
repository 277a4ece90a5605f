package database

import (
	"plantreport/model"

	"github.com/jmoiron/sqlx"
)

const dispatchTable = "shift_dispatch_reports"

type dispatchPayload struct {
	Entries        []model.DispatchEntry `json:"entries"`
	TotalQuantity  model.Quantity        `json:"totalQuantity"`
	Balance        model.DispatchBalance `json:"balance"`
	PlaName        string                `json:"plaName"`
	SupervisorName string                `json:"supervisorName"`
	ManagerName    string                `json:"managerName"`
}

func InsertDispatchReport(db *sqlx.DB, r model.DispatchReport) (int64, error) {
	p := dispatchPayload{
		Entries:        r.Entries,
		TotalQuantity:  r.TotalQuantity,
		Balance:        r.Balance,
		PlaName:        r.PlaName,
		SupervisorName: r.SupervisorName,
		ManagerName:    r.ManagerName,
	}
	return insertPayloadRow(db, dispatchTable, r.ReportHeader, nil, nil, p)
}

func GetDispatchReports(db *sqlx.DB, f model.ReportFilters) ([]model.DispatchReport, error) {
	rows, err := selectPayloadRows(db, dispatchTable, "", nil, f)
	if err != nil {
		return nil, err
	}
	reports := make([]model.DispatchReport, 0, len(rows))
	for _, row := range rows {
		var p dispatchPayload
		if err := row.decode(&p); err != nil {
			return nil, err
		}
		if p.Entries == nil {
			p.Entries = []model.DispatchEntry{}
		}
		reports = append(reports, model.DispatchReport{
			ReportHeader:   row.ReportHeader,
			Entries:        p.Entries,
			TotalQuantity:  p.TotalQuantity,
			Balance:        p.Balance,
			PlaName:        p.PlaName,
			SupervisorName: p.SupervisorName,
			ManagerName:    p.ManagerName,
		})
	}
	return reports, nil
}
