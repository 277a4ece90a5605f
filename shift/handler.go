package shift

import (
	"net/http"
	"strconv"
	"time"

	"plantreport/shiftcode"
	"plantreport/web"
)

// OptionsHandler はシフトの選択肢を返します。
func OptionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		web.WriteJSON(w, http.StatusOK, shiftcode.Options())
	}
}

// CodeHandler は ?date=&shift= からシフト番号を計算します。
func CodeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		code, ok := shiftcode.GenerateString(q.Get("date"), q.Get("shift"))
		if !ok {
			web.WriteJSONError(w, "valid date (YYYY-MM-DD) and shift (morning, day, night) are required", http.StatusBadRequest)
			return
		}
		web.WriteJSON(w, http.StatusOK, code)
	}
}

// CurrentHandler は現在時刻のシフトとその番号を返します。
func CurrentHandler(now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := now()
		code, _ := shiftcode.Generate(t, shiftcode.ShiftAt(t))
		web.WriteJSON(w, http.StatusOK, code)
	}
}

// DecodeHandler は ?number= のシフト番号から日付とシフトを逆算します。
func DecodeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("number")
		seq, err := strconv.Atoi(raw)
		if err != nil {
			web.WriteJSONError(w, "number must be an integer shift number", http.StatusBadRequest)
			return
		}
		date, s, err := shiftcode.Decode(seq)
		if err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		code, _ := shiftcode.Generate(date, s)
		web.WriteJSON(w, http.StatusOK, code)
	}
}
