package main

import (
	"net/http"
	"time"

	"plantreport/assembly"
	"plantreport/auth"
	"plantreport/calendar"
	"plantreport/defective"
	"plantreport/delivery"
	"plantreport/dispatch"
	"plantreport/loader"
	"plantreport/middleware"
	"plantreport/model"
	"plantreport/production"
	"plantreport/shift"
	"plantreport/stock"
	"plantreport/users"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
)

// publicPaths はトークンなしで呼べる API です。
var publicPaths = []string{
	"/api/users/login",
	"/api/users/users",
	"/api/shifts",
	"/api/shifts/code",
	"/api/shifts/current",
	"/api/shifts/decode",
}

// NewRouter は全 API を登録したハンドラーを返します。
// pdf が nil の場合はヘッドレスブラウザで印刷します。
func NewRouter(db *sqlx.DB, pdf delivery.PDFFunc) http.Handler {
	r := mux.NewRouter()

	// --- シフト番号 ---
	r.HandleFunc("/api/shifts", shift.OptionsHandler()).Methods("GET")
	r.HandleFunc("/api/shifts/code", shift.CodeHandler()).Methods("GET")
	r.HandleFunc("/api/shifts/current", shift.CurrentHandler(time.Now)).Methods("GET")
	r.HandleFunc("/api/shifts/decode", shift.DecodeHandler()).Methods("GET")

	// --- 生産シフト ---
	r.HandleFunc("/api/production-shift", production.ListHandler(db)).Methods("GET")
	r.HandleFunc("/api/production-shift", production.CreateHandler(db)).Methods("POST")
	r.HandleFunc("/api/production-shift/totals", production.TotalsHandler(db)).Methods("GET")
	r.HandleFunc("/api/production-shift/export", production.ExportHandler(db)).Methods("GET")
	r.HandleFunc("/api/production-shift/raw-material-averages", production.RawMaterialAveragesHandler(db)).Methods("GET")
	r.HandleFunc("/api/production-shift/received-averages", production.ReceivedAveragesHandler(db)).Methods("GET")

	// --- 組立ライン ---
	for prefix, kind := range map[string]model.AssemblyKind{
		"/api/assembly/received":      model.AssemblyReceived,
		"/api/rejected/rejected":      model.AssemblyRejected,
		"/api/assemblyLine/assembled": model.AssemblyAssembled,
	} {
		r.HandleFunc(prefix, assembly.ListHandler(db, kind)).Methods("GET")
		r.HandleFunc(prefix, assembly.CreateHandler(db, kind)).Methods("POST")
		r.HandleFunc(prefix+"/totals", assembly.TotalsHandler(db, kind)).Methods("GET")
		r.HandleFunc(prefix+"/export", assembly.ExportHandler(db, kind)).Methods("GET")
	}
	r.HandleFunc("/api/assemblyLine/assembled/total", assembly.DailyAssembledTotalsHandler(db)).Methods("GET")

	// --- 不良品破砕 ---
	r.HandleFunc("/api/defectivecrushed/defective-crushed", defective.ListHandler(db)).Methods("GET")
	r.HandleFunc("/api/defectivecrushed/defective-crushed", defective.CreateHandler(db)).Methods("POST")
	r.HandleFunc("/api/defectivecrushed/defective-crushed/totals", defective.TotalsHandler(db)).Methods("GET")
	r.HandleFunc("/api/defectivecrushed/defective-crushed/export", defective.ExportHandler(db)).Methods("GET")

	// --- 出荷 ---
	r.HandleFunc("/api/shift-dispatch", dispatch.ListHandler(db)).Methods("GET")
	r.HandleFunc("/api/shift-dispatch", dispatch.CreateHandler(db)).Methods("POST")
	r.HandleFunc("/api/shift-dispatch/totals", dispatch.TotalsHandler(db)).Methods("GET")
	r.HandleFunc("/api/shift-dispatch/export", dispatch.ExportHandler(db)).Methods("GET")

	// --- 納品書 ---
	r.HandleFunc("/api/delivery-notes", delivery.ListHandler(db)).Methods("GET")
	r.HandleFunc("/api/delivery-notes", delivery.CreateHandler(db)).Methods("POST")
	r.HandleFunc("/api/delivery-notes/next-number", delivery.NextNumberHandler(db)).Methods("GET")
	r.HandleFunc("/api/delivery-notes/{id:[0-9]+}", delivery.GetHandler(db)).Methods("GET")
	r.HandleFunc("/api/delivery-notes/{id:[0-9]+}/pdf", delivery.PDFHandler(db, pdf)).Methods("GET")

	// --- 在庫 ---
	r.HandleFunc("/api/stock", stock.ListHandler(db)).Methods("GET")
	r.HandleFunc("/api/stock", stock.CreateHandler(db)).Methods("POST")
	r.HandleFunc("/api/stock/import", loader.ImportStockHandler(db)).Methods("POST")
	r.HandleFunc("/api/stock/{id:[0-9]+}", stock.UpdateHandler(db)).Methods("PUT")
	r.HandleFunc("/api/stock/{id:[0-9]+}", stock.DeleteHandler(db)).Methods("DELETE")

	// --- カレンダー ---
	r.HandleFunc("/api/calendar/events", calendar.ListHandler(db)).Methods("GET")
	r.HandleFunc("/api/calendar/events", calendar.CreateHandler(db)).Methods("POST")
	r.HandleFunc("/api/calendar/events/{id:[0-9]+}", calendar.DeleteHandler(db)).Methods("DELETE")

	// --- ユーザー ---
	r.HandleFunc("/api/users/users", users.RegisterHandler(db)).Methods("POST")
	r.HandleFunc("/api/users/login", users.LoginHandler(db)).Methods("POST")
	r.HandleFunc("/api/users/get-user-type", users.UserTypeHandler(db)).Methods("POST")
	r.HandleFunc("/api/users/me", users.MeHandler(db)).Methods("GET")

	// --- 設定 ---
	r.HandleFunc("/api/config", GetConfigHandler()).Methods("GET")
	r.HandleFunc("/api/config", SaveConfigHandler()).Methods("POST")

	// mux のメソッド判定より前に CORS と認証を通す
	return middleware.CORS(middleware.RequestLogger(auth.Middleware(publicPaths...)(r)))
}
