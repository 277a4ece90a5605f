package stock

import (
	"net/http"

	"plantreport/database"
	"plantreport/model"
	"plantreport/web"

	"github.com/jmoiron/sqlx"
)

// ListHandler は在庫ダッシュボードの品目一覧を返します。
func ListHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := database.ListStockItems(db)
		if err != nil {
			web.StoreError(w, "stock", "ListHandler", nil, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, items)
	}
}

func CreateHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var item model.StockItem
		if err := web.Decode(r, &item); err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		saved, err := database.CreateStockItem(db, item)
		if err != nil {
			web.StoreError(w, "stock", "CreateHandler", item.Name, err)
			return
		}
		web.WriteCreated(w, "Stock item added", saved)
	}
}

// UpdateHandler は {id} の品目を更新します。名前が空なら現在の名前を維持します。
func UpdateHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := web.PathID(r)
		if err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		current, err := database.GetStockItem(db, id)
		if err != nil {
			web.StoreError(w, "stock", "UpdateHandler", id, err)
			return
		}

		item := current
		if err := web.Decode(r, &item); err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		item.ID = id
		saved, err := database.UpdateStockItem(db, item)
		if err != nil {
			web.StoreError(w, "stock", "UpdateHandler", id, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, saved)
	}
}

func DeleteHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := web.PathID(r)
		if err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := database.DeleteStockItem(db, id); err != nil {
			web.StoreError(w, "stock", "DeleteHandler", id, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, map[string]string{"message": "Stock item deleted"})
	}
}
