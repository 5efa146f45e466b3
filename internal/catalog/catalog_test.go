package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"pharmapos/m/domain"
	"pharmapos/m/internal/migrations"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	migrations.Run(db)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDeleteMedicineReferentialGuard(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	referenced, err := store.CreateMedicine(ctx, domain.Medicine{BrandName: "Paracetamol"})
	if err != nil {
		t.Fatalf("CreateMedicine() error = %v", err)
	}
	unreferenced, err := store.CreateMedicine(ctx, domain.Medicine{BrandName: "Aspirin"})
	if err != nil {
		t.Fatalf("CreateMedicine() error = %v", err)
	}
	if _, err := db.Exec(`INSERT INTO batches (medicine_id, batch_number, initial_qty, current_qty) VALUES (?, ?, ?, ?)`,
		referenced, "B-1", 10, 10); err != nil {
		t.Fatalf("seed batch: %v", err)
	}

	if err := store.DeleteMedicine(ctx, referenced); !errors.Is(err, ErrReferenced) {
		t.Errorf("DeleteMedicine(referenced) error = %v, want ErrReferenced", err)
	}
	if err := store.DeleteMedicine(ctx, unreferenced); err != nil {
		t.Errorf("DeleteMedicine(unreferenced) error = %v, want nil", err)
	}

	var count int
	if err := db.Get(&count, `SELECT count(*) FROM medicines`); err != nil {
		t.Fatalf("count medicines: %v", err)
	}
	if count != 1 {
		t.Errorf("medicines remaining = %d, want 1", count)
	}
}

func TestDeleteSupplierReferentialGuard(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	medicineID, err := store.CreateMedicine(ctx, domain.Medicine{BrandName: "Paracetamol"})
	if err != nil {
		t.Fatalf("CreateMedicine() error = %v", err)
	}
	supplierID, err := store.CreateSupplier(ctx, domain.Supplier{Name: "Global Meds"})
	if err != nil {
		t.Fatalf("CreateSupplier() error = %v", err)
	}
	if _, err := db.Exec(`INSERT INTO batches (medicine_id, supplier_id, batch_number, initial_qty, current_qty) VALUES (?, ?, ?, ?, ?)`,
		medicineID, supplierID, "B-1", 10, 10); err != nil {
		t.Fatalf("seed batch: %v", err)
	}

	if err := store.DeleteSupplier(ctx, supplierID); !errors.Is(err, ErrReferenced) {
		t.Errorf("DeleteSupplier(referenced) error = %v, want ErrReferenced", err)
	}
}

func TestDuplicateBarcodeRejected(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	barcode := "123456789"
	if _, err := store.CreateMedicine(ctx, domain.Medicine{BrandName: "First", Barcode: &barcode}); err != nil {
		t.Fatalf("CreateMedicine() error = %v", err)
	}
	if _, err := store.CreateMedicine(ctx, domain.Medicine{BrandName: "Second", Barcode: &barcode}); err == nil {
		t.Error("CreateMedicine() with duplicate barcode error = nil, want constraint violation")
	}
	// Absent barcodes never collide.
	if _, err := store.CreateMedicine(ctx, domain.Medicine{BrandName: "Third"}); err != nil {
		t.Errorf("CreateMedicine() without barcode error = %v, want nil", err)
	}
	if _, err := store.CreateMedicine(ctx, domain.Medicine{BrandName: "Fourth"}); err != nil {
		t.Errorf("CreateMedicine() without barcode error = %v, want nil", err)
	}
}

func TestSearchPOSFiltersStockAndExpiry(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	barcode := "555000111"
	medicineID, err := store.CreateMedicine(ctx, domain.Medicine{BrandName: "Paracetamol", GenericName: "Acetaminophen", Barcode: &barcode})
	if err != nil {
		t.Fatalf("CreateMedicine() error = %v", err)
	}
	future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	past := time.Now().AddDate(-1, 0, 0).Format("2006-01-02")
	seed := []struct {
		number string
		expiry string
		qty    int64
	}{
		{"B-OK", future, 10},
		{"B-EXPIRED", past, 10},
		{"B-EMPTY", future, 0},
	}
	for _, b := range seed {
		if _, err := db.Exec(`INSERT INTO batches (medicine_id, batch_number, expiry_date, initial_qty, current_qty) VALUES (?, ?, ?, ?, ?)`,
			medicineID, b.number, b.expiry, b.qty, b.qty); err != nil {
			t.Fatalf("seed batch %s: %v", b.number, err)
		}
	}

	rows, err := store.SearchPOS(ctx, "parace")
	if err != nil {
		t.Fatalf("SearchPOS() error = %v", err)
	}
	if len(rows) != 1 || rows[0].BatchNumber != "B-OK" {
		t.Errorf("SearchPOS(name) = %+v, want only B-OK", rows)
	}

	rows, err = store.SearchPOS(ctx, barcode)
	if err != nil {
		t.Fatalf("SearchPOS(barcode) error = %v", err)
	}
	if len(rows) != 1 || rows[0].BatchNumber != "B-OK" {
		t.Errorf("SearchPOS(barcode) = %+v, want only B-OK", rows)
	}
}

func TestInventoryListsInStockByExpiry(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	medicineID, err := store.CreateMedicine(ctx, domain.Medicine{BrandName: "Amoxicillin"})
	if err != nil {
		t.Fatalf("CreateMedicine() error = %v", err)
	}
	seed := []struct {
		number string
		expiry string
		qty    int64
	}{
		{"B-LATER", "2031-01-01", 5},
		{"B-SOON", "2030-01-01", 5},
		{"B-GONE", "2030-06-01", 0},
	}
	for _, b := range seed {
		if _, err := db.Exec(`INSERT INTO batches (medicine_id, batch_number, expiry_date, initial_qty, current_qty) VALUES (?, ?, ?, ?, ?)`,
			medicineID, b.number, b.expiry, b.qty, b.qty); err != nil {
			t.Fatalf("seed batch %s: %v", b.number, err)
		}
	}

	rows, err := store.Inventory(ctx)
	if err != nil {
		t.Fatalf("Inventory() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Inventory() rows = %d, want 2", len(rows))
	}
	if rows[0].BatchNumber != "B-SOON" || rows[1].BatchNumber != "B-LATER" {
		t.Errorf("Inventory() order = %s, %s, want B-SOON then B-LATER", rows[0].BatchNumber, rows[1].BatchNumber)
	}
}

func TestUpdateBatchLeavesQuantitiesAlone(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	medicineID, err := store.CreateMedicine(ctx, domain.Medicine{BrandName: "Paracetamol"})
	if err != nil {
		t.Fatalf("CreateMedicine() error = %v", err)
	}
	var batchID int64
	if err := db.QueryRowx(`INSERT INTO batches (medicine_id, batch_number, expiry_date, mrp, selling_rate, initial_qty, current_qty)
        VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		medicineID, "B-1", "2030-01-01", 20.0, 18.0, 50, 40).Scan(&batchID); err != nil {
		t.Fatalf("seed batch: %v", err)
	}

	if err := store.UpdateBatch(ctx, batchID, "2031-06-30", 25, 22); err != nil {
		t.Fatalf("UpdateBatch() error = %v", err)
	}

	var row struct {
		ExpiryDate  string  `db:"expiry_date"`
		MRP         float64 `db:"mrp"`
		SellingRate float64 `db:"selling_rate"`
		InitialQty  int64   `db:"initial_qty"`
		CurrentQty  int64   `db:"current_qty"`
	}
	if err := db.Get(&row, `SELECT expiry_date, mrp, selling_rate, initial_qty, current_qty FROM batches WHERE id = ?`, batchID); err != nil {
		t.Fatalf("read batch: %v", err)
	}
	if row.ExpiryDate != "2031-06-30" || row.MRP != 25 || row.SellingRate != 22 {
		t.Errorf("batch after update = %+v, want new expiry/mrp/selling_rate", row)
	}
	if row.InitialQty != 50 || row.CurrentQty != 40 {
		t.Errorf("quantities after update = %d/%d, want unchanged 50/40", row.InitialQty, row.CurrentQty)
	}
}
