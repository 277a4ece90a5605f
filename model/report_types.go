package model

// ReportHeader はシフト単位のレポートに共通する項目です。
type ReportHeader struct {
	ID                 int64       `db:"id" json:"id"`
	Date               string      `db:"report_date" json:"date" validate:"required,datetime=2006-01-02"`
	Shift              string      `db:"shift" json:"shift" validate:"required,oneof=morning day night"`
	ShiftNumber        ShiftNumber `db:"shift_number" json:"shiftNumber"`
	DisplayShiftNumber string      `db:"display_shift_number" json:"displayShiftNumber"`
	CreatedBy          int64       `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt          string      `db:"created_at" json:"createdAt,omitempty"`
}

// ReportFilters は一覧取得の絞り込み条件です。
type ReportFilters struct {
	Date     string
	Shift    string
	UpToDate string
}

// ItemCounts は受入・不良の部材数です。
type ItemCounts struct {
	CebCovers       Quantity `json:"cebCovers" validate:"omitempty,gte=0"`
	LecoCovers      Quantity `json:"lecoCovers" validate:"omitempty,gte=0"`
	Base            Quantity `json:"base" validate:"omitempty,gte=0"`
	Shutters        Quantity `json:"shutters" validate:"omitempty,gte=0"`
	CoverBeading    Quantity `json:"coverBeading" validate:"omitempty,gte=0"`
	ShutterBeading  Quantity `json:"shutterBeading" validate:"omitempty,gte=0"`
	Springs         Quantity `json:"springs" validate:"omitempty,gte=0"`
	CorrugatedBoxes Quantity `json:"corrugatedBoxes" validate:"omitempty,gte=0"`
	Sellotapes      Quantity `json:"sellotapes" validate:"omitempty,gte=0"`
}

// AssembledItem は組立品1種類の数量と QC 番号範囲です。
type AssembledItem struct {
	Quantity  Quantity `json:"quantity" validate:"omitempty,gte=0"`
	QcNoStart string   `json:"qcNoStart" validate:"max=64"`
	QcNoEnd   string   `json:"qcNoEnd" validate:"max=64"`
}

type AssembledItems struct {
	Ceb   AssembledItem `json:"ceb"`
	Leco1 AssembledItem `json:"leco1"`
}

// AssemblyKind は組立ラインのレポート種別です。
type AssemblyKind string

const (
	AssemblyReceived  AssemblyKind = "received"
	AssemblyRejected  AssemblyKind = "rejected"
	AssemblyAssembled AssemblyKind = "assembled"
)

// Section は JSON 上のセクション名を返します。
func (k AssemblyKind) Section() string {
	switch k {
	case AssemblyReceived:
		return "receivedItems"
	case AssemblyRejected:
		return "rejectedItems"
	case AssemblyAssembled:
		return "assembledItems"
	}
	return ""
}

// AssemblyReport は組立ラインのレポートです。種別に応じて1セクションだけ設定されます。
type AssemblyReport struct {
	ReportHeader
	Kind           AssemblyKind    `json:"kind"`
	ReceivedItems  *ItemCounts     `json:"receivedItems,omitempty"`
	RejectedItems  *ItemCounts     `json:"rejectedItems,omitempty"`
	AssembledItems *AssembledItems `json:"assembledItems,omitempty"`
}

// ProductionSection は製品1種類分の生産実績です。
type ProductionSection struct {
	RawMaterialPC           Quantity `json:"rawMaterialPC" validate:"omitempty,gte=0"`
	RawMaterialCrushedPC    Quantity `json:"rawMaterialCrushedPC" validate:"omitempty,gte=0"`
	RawMaterialMB           Quantity `json:"rawMaterialMB" validate:"omitempty,gte=0"`
	GoodProductsQty         Quantity `json:"goodProductsQty" validate:"omitempty,gte=0"`
	GoodProductsWeight      Quantity `json:"goodProductsWeight" validate:"omitempty,gte=0"`
	DefectiveProductsQty    Quantity `json:"defectiveProductsQty" validate:"omitempty,gte=0"`
	DefectiveProductsWeight Quantity `json:"defectiveProductsWeight" validate:"omitempty,gte=0"`
	Wastage                 Quantity `json:"wastage" validate:"omitempty,gte=0"`
}

type ProductionSections struct {
	CebCovers  ProductionSection `json:"cebCovers"`
	LecoCovers ProductionSection `json:"lecoCovers"`
	Base       ProductionSection `json:"base"`
	Shutters   ProductionSection `json:"shutters"`
}

// ProductionShiftReport は成形ラインのシフト生産レポートです。
type ProductionShiftReport struct {
	ReportHeader
	ProductionSections
}

// DefectiveCrushedReport は不良品粉砕のレポートです。
type DefectiveCrushedReport struct {
	ReportHeader
	ReceivedQuantity Quantity `db:"received_quantity" json:"receivedQuantity" validate:"present,gte=0"`
	ReceivedWeight   Quantity `db:"received_weight" json:"receivedWeight" validate:"present,gte=0"`
	CrushedPCWeight  Quantity `db:"crushed_pc_weight" json:"crushedPCWeight" validate:"present,gte=0"`
}

// DispatchEntry は出荷1行です。
type DispatchEntry struct {
	Customer  string   `json:"customer" validate:"max=200"`
	Quantity  Quantity `json:"quantity" validate:"omitempty,gte=0"`
	InvoiceNo string   `json:"invoiceNo" validate:"max=64"`
}

type DispatchBalance struct {
	Ceb  Quantity `json:"ceb" validate:"omitempty,gte=0"`
	Leco Quantity `json:"leco" validate:"omitempty,gte=0"`
}

// MaxDispatchEntries は1シフトの出荷行の上限です。
const MaxDispatchEntries = 8

// DispatchReport はシフト出荷サマリーです。
type DispatchReport struct {
	ReportHeader
	Entries        []DispatchEntry `json:"entries" validate:"max=8,dive"`
	TotalQuantity  Quantity        `json:"totalQuantity" validate:"omitempty,gte=0"`
	Balance        DispatchBalance `json:"balance"`
	PlaName        string          `json:"plaName" validate:"max=100"`
	SupervisorName string          `json:"supervisorName" validate:"max=100"`
	ManagerName    string          `json:"managerName" validate:"max=100"`
}

// RawMaterialAverages は原材料の1日平均です。
type RawMaterialAverages struct {
	UpToDate     string             `json:"upToDate"`
	NumberOfDays int                `json:"numberOfDays"`
	Averages     map[string]float64 `json:"averages"`
}

// DailyAssembledTotal はダッシュボード用の日別組立数です。
type DailyAssembledTotal struct {
	Date          string  `json:"date"`
	CebQuantity   float64 `json:"cebQuantity"`
	Leco1Quantity float64 `json:"leco1Quantity"`
}
