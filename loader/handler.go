package loader

import (
	"net/http"

	"plantreport/config"
	"plantreport/database"
	"plantreport/web"

	"github.com/jmoiron/sqlx"
)

// ImportStockHandler はアップロードされた CSV で在庫数量を一括更新します。
func ImportStockHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			web.WriteJSONError(w, "failed to parse form", http.StatusBadRequest)
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			web.WriteJSONError(w, "file is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		items, err := ParseStockCSV(file)
		if err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		n, err := database.UpsertStockItems(db, items)
		if err != nil {
			config.LogError(config.GetLogger(), "loader", "ImportStockHandler", "upsert stock items", map[string]any{"count": len(items)}, err)
			web.WriteJSONError(w, "failed to import stock", http.StatusInternalServerError)
			return
		}
		web.WriteJSON(w, http.StatusOK, map[string]any{"message": "stock imported", "count": n})
	}
}
