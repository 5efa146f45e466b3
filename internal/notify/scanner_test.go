package notify

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

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

func seedExpiringBatch(t *testing.T, db *sqlx.DB, batchNumber string, daysToExpiry int, qty int64) {
	t.Helper()
	var medicineID int64
	err := db.QueryRowx(`INSERT INTO medicines (brand_name) VALUES (?) RETURNING id`, "Paracetamol").Scan(&medicineID)
	if err != nil {
		t.Fatalf("seed medicine: %v", err)
	}
	expiry := time.Now().AddDate(0, 0, daysToExpiry).Format("2006-01-02")
	if _, err := db.Exec(`INSERT INTO batches (medicine_id, batch_number, expiry_date, initial_qty, current_qty) VALUES (?, ?, ?, ?, ?)`,
		medicineID, batchNumber, expiry, qty, qty); err != nil {
		t.Fatalf("seed batch: %v", err)
	}
}

func notificationCount(t *testing.T, db *sqlx.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Get(&count, `SELECT count(*) FROM notifications`); err != nil {
		t.Fatalf("count notifications: %v", err)
	}
	return count
}

func TestCheckExpiryMatchesAndInserts(t *testing.T) {
	db := newTestDB(t)
	seedExpiringBatch(t, db, "B-EXP", 5, 10)
	seedExpiringBatch(t, db, "B-FAR", 365, 10)
	scanner := NewScanner(db)

	count, err := scanner.CheckExpiry(context.Background(), 0)
	if err != nil {
		t.Fatalf("CheckExpiry() error = %v", err)
	}
	if count != 1 {
		t.Errorf("matched batches = %d, want 1", count)
	}
	if got := notificationCount(t, db); got != 1 {
		t.Errorf("notifications = %d, want 1", got)
	}
}

func TestCheckExpirySkipsEmptyBatches(t *testing.T) {
	db := newTestDB(t)
	seedExpiringBatch(t, db, "B-EMPTY", 5, 0)
	scanner := NewScanner(db)

	count, err := scanner.CheckExpiry(context.Background(), 0)
	if err != nil {
		t.Fatalf("CheckExpiry() error = %v", err)
	}
	if count != 0 {
		t.Errorf("matched batches = %d, want 0 for empty stock", count)
	}
	if got := notificationCount(t, db); got != 0 {
		t.Errorf("notifications = %d, want 0", got)
	}
}

func TestCheckExpiryDeduplicatesUnread(t *testing.T) {
	db := newTestDB(t)
	seedExpiringBatch(t, db, "B-DUP", 5, 10)
	scanner := NewScanner(db)

	if _, err := scanner.CheckExpiry(context.Background(), 0); err != nil {
		t.Fatalf("first CheckExpiry() error = %v", err)
	}
	count, err := scanner.CheckExpiry(context.Background(), 0)
	if err != nil {
		t.Fatalf("second CheckExpiry() error = %v", err)
	}

	// The second scan still reports the matched batch but inserts nothing.
	if count != 1 {
		t.Errorf("matched batches = %d, want 1", count)
	}
	if got := notificationCount(t, db); got != 1 {
		t.Errorf("notifications = %d, want 1 after duplicate scan", got)
	}
}

func TestCheckExpiryReinsertsAfterRead(t *testing.T) {
	db := newTestDB(t)
	seedExpiringBatch(t, db, "B-READ", 5, 10)
	scanner := NewScanner(db)

	if _, err := scanner.CheckExpiry(context.Background(), 0); err != nil {
		t.Fatalf("first CheckExpiry() error = %v", err)
	}
	if err := scanner.MarkAllRead(context.Background()); err != nil {
		t.Fatalf("MarkAllRead() error = %v", err)
	}
	if _, err := scanner.CheckExpiry(context.Background(), 0); err != nil {
		t.Fatalf("second CheckExpiry() error = %v", err)
	}

	// Dedup only considers unread rows; a fresh alert appears once the old
	// one is read.
	if got := notificationCount(t, db); got != 2 {
		t.Errorf("notifications = %d, want 2 after mark-read and rescan", got)
	}
}

func TestCheckExpiryThresholdFromSettings(t *testing.T) {
	db := newTestDB(t)
	if _, err := db.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)`, "expiry_notification_days", "10"); err != nil {
		t.Fatalf("seed setting: %v", err)
	}
	seedExpiringBatch(t, db, "B-20D", 20, 10)
	scanner := NewScanner(db)

	// 20 days out is beyond the configured 10-day window.
	count, err := scanner.CheckExpiry(context.Background(), 0)
	if err != nil {
		t.Fatalf("CheckExpiry() error = %v", err)
	}
	if count != 0 {
		t.Errorf("matched batches = %d, want 0 with 10-day threshold", count)
	}

	// An explicit override widens the window.
	count, err = scanner.CheckExpiry(context.Background(), 30)
	if err != nil {
		t.Fatalf("CheckExpiry(30) error = %v", err)
	}
	if count != 1 {
		t.Errorf("matched batches = %d, want 1 with 30-day override", count)
	}
}
