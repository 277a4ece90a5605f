package loader

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"plantreport/database"
	"plantreport/database/dbtest"
)

func TestParseStockCSV(t *testing.T) {
	items, err := ParseStockCSV(strings.NewReader("name,quantity,unit\nCEB Covers,120,pcs\nSprings,,\n\nSellotapes, 4.5 ,rolls\n"))
	if err != nil {
		t.Fatalf("ParseStockCSV: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	if items[0].Quantity != 120 || items[1].Quantity != 0 || items[1].Unit != "pcs" || items[2].Unit != "rolls" || items[2].Quantity != 4.5 {
		t.Fatalf("unexpected items %+v", items)
	}

	for _, bad := range []string{"Base,-1,pcs\n", "Base,ten,pcs\n"} {
		if _, err := ParseStockCSV(strings.NewReader(bad)); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}

func TestInitDatabase(t *testing.T) {
	db := dbtest.Open(t)
	path := filepath.Join(t.TempDir(), "stock_seed.csv")
	if err := os.WriteFile(path, []byte("Base,75\nPackaging Film,3,rolls\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := InitDatabase(db, path); err != nil {
		t.Fatalf("InitDatabase: %v", err)
	}
	if err := InitDatabase(db, filepath.Join(t.TempDir(), "missing.csv")); err != nil {
		t.Fatalf("missing seed file should be skipped: %v", err)
	}

	items, err := database.ListStockItems(db)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != len(database.DefaultStockItems)+1 {
		t.Fatalf("len = %d", len(items))
	}
	for _, it := range items {
		if it.Name == "Base" && it.Quantity != 75 {
			t.Errorf("Base quantity = %v, want 75", it.Quantity)
		}
	}
}

func TestImportStockHandler(t *testing.T) {
	db := dbtest.Open(t)
	if err := database.SeedStockItems(db); err != nil {
		t.Fatal(err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "stock.csv")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("name,quantity,unit\nShutters,40,pcs\nSprings,900,pcs\n"))
	mw.Close()

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/stock/import", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	ImportStockHandler(db)(rec, r)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"count":2`) {
		t.Fatalf("import = %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	ImportStockHandler(db)(rec, httptest.NewRequest(http.MethodPost, "/api/stock/import", strings.NewReader("")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("no file status = %d", rec.Code)
	}
}

func TestSeedAdmin(t *testing.T) {
	db := dbtest.Open(t)
	if err := SeedAdmin(db, "", ""); err != nil {
		t.Fatalf("empty email: %v", err)
	}
	if err := SeedAdmin(db, "root@plant.lk", "123"); err == nil {
		t.Fatalf("short password accepted")
	}
	for i := 0; i < 2; i++ {
		if err := SeedAdmin(db, "root@plant.lk", "rootpass"); err != nil {
			t.Fatalf("SeedAdmin #%d: %v", i+1, err)
		}
	}
	u, _, err := database.GetUserByEmail(db, "root@plant.lk")
	if err != nil || u.UserType != "admin" {
		t.Fatalf("admin = %+v, %v", u, err)
	}
}
