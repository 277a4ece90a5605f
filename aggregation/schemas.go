package aggregation

// 受入・不良部材の項目
var ItemFields = []string{
	"cebCovers",
	"lecoCovers",
	"base",
	"shutters",
	"coverBeading",
	"shutterBeading",
	"springs",
	"corrugatedBoxes",
	"sellotapes",
}

// 成形ラインの製品セクション
var ProductionProducts = []string{"cebCovers", "lecoCovers", "base", "shutters"}

var ProductionFields = []string{
	"rawMaterialPC",
	"rawMaterialCrushedPC",
	"rawMaterialMB",
	"goodProductsQty",
	"goodProductsWeight",
	"defectiveProductsQty",
	"defectiveProductsWeight",
	"wastage",
}

// RawMaterialFields は原材料平均の対象項目です。
var RawMaterialFields = []string{"rawMaterialPC", "rawMaterialCrushedPC", "rawMaterialMB"}

var AssembledProducts = []string{"ceb", "leco1"}

var (
	ItemCountsSchema = Schema{Numeric: ItemFields}

	AssembledSchema = Schema{Items: itemsOf(AssembledProducts, []string{"quantity"}, []string{"qcNoStart", "qcNoEnd"})}

	ProductionSchema = Schema{Items: itemsOf(ProductionProducts, ProductionFields, nil)}

	DefectiveSchema = Schema{Numeric: []string{"receivedQuantity", "receivedWeight", "crushedPCWeight"}}

	DispatchSchema = Schema{
		Numeric: []string{"totalQuantity"},
		Items:   []ItemSchema{{Name: "balance", Numeric: []string{"ceb", "leco"}}},
	}

	DispatchEntrySchema = Schema{Numeric: []string{"quantity"}}
)

func itemsOf(names, numeric, text []string) []ItemSchema {
	out := make([]ItemSchema, 0, len(names))
	for _, n := range names {
		out = append(out, ItemSchema{Name: n, Numeric: numeric, Text: text})
	}
	return out
}
