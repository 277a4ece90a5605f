// Package web は各画面のハンドラが共有する JSON 入出力と検証の処理です。
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"plantreport/config"
	"plantreport/database"
	"plantreport/model"
	"plantreport/shiftcode"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(model.QuantityValue, model.Quantity{})
	// 未入力の Quantity は nil に変換され、先頭タグのエラーになる。
	// 0 は入力済みなので required ではなく present で必須を表す。
	v.RegisterValidation("present", func(validator.FieldLevel) bool { return true })
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// WriteJSON は v を JSON で返します。
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		config.GetLogger().Warnf("failed to encode response: %v", err)
	}
}

// WriteCreated は登録結果を {"message", "data"} の形で 201 で返します。
func WriteCreated(w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusCreated, map[string]any{"message": message, "data": data})
}

func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, statusCode, map[string]string{"message": message})
}

// Decode はリクエストボディを dst に読み込み、validate タグで検証します。
// 返すエラーはそのまま利用者に見せられる文言です。
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %v", err)
	}
	return Validate(dst)
}

// Validate は構造体を検証します。
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), strings.SplitN(fe.Namespace(), ".", 2)[0]+".")
	switch fe.Tag() {
	case "required", "present":
		return field + " is required"
	case "gte":
		return field + " must be greater than or equal to " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param()
	case "min":
		return field + " must be at least " + fe.Param()
	case "oneof":
		return field + " must be one of " + fe.Param()
	case "datetime":
		return field + " must be a date in YYYY-MM-DD format"
	case "email":
		return field + " must be a valid email address"
	}
	return field + " is invalid (" + fe.Tag() + ")"
}

// ApplyShiftCode は日付とシフトからシフト番号を計算してヘッダーに設定します。
// 送信された番号が計算結果と異なる場合はエラーです。
func ApplyShiftCode(h *model.ReportHeader) error {
	code, ok := shiftcode.GenerateString(h.Date, h.Shift)
	if !ok {
		return fmt.Errorf("cannot compute shift number for date %q and shift %q", h.Date, h.Shift)
	}
	if h.ShiftNumber != 0 && int(h.ShiftNumber) != code.SequenceNumber {
		return fmt.Errorf("shift number %d does not match %s %s (expected %s)",
			h.ShiftNumber, h.Date, h.Shift, code.DisplayCode)
	}
	h.ShiftNumber = model.ShiftNumber(code.SequenceNumber)
	h.DisplayShiftNumber = code.DisplayCode
	return nil
}

// Filters はクエリ文字列の date, shift, upToDate を読み取ります。
func Filters(r *http.Request) model.ReportFilters {
	q := r.URL.Query()
	return model.ReportFilters{
		Date:     q.Get("date"),
		Shift:    q.Get("shift"),
		UpToDate: q.Get("upToDate"),
	}
}

// PathID はパスの {id} を読み取ります。
func PathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// StoreError はデータベースのエラーを HTTP ステータスに変換して返します。
func StoreError(w http.ResponseWriter, module, funcName string, data any, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		WriteJSONError(w, "not found", http.StatusNotFound)
	case errors.Is(err, database.ErrDuplicate):
		WriteJSONError(w, err.Error(), http.StatusConflict)
	default:
		config.LogError(config.GetLogger(), module, funcName, "database", data, err)
		WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
