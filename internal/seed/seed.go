package seed

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// Run inserts default settings and, on a fresh database, the admin user and
// a small demo catalog. Existing rows are left untouched.
func Run(db *sqlx.DB) {
	if _, err := db.Exec(`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`,
		"expiry_notification_days", "30"); err != nil {
		log.Printf("unable to seed settings: %v", err)
	}

	var adminCount int
	if err := db.Get(&adminCount, `SELECT count(*) FROM users WHERE username = ?`, "admin"); err != nil {
		log.Printf("unable to check admin user: %v", err)
		return
	}
	if adminCount > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("unable to hash admin password: %v", err)
		return
	}

	tx, err := db.Beginx()
	if err != nil {
		log.Printf("unable to start seed transaction: %v", err)
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO users (username, password, role, full_name) VALUES (?, ?, ?, ?)`,
		"admin", string(hashed), "admin", "System Administrator"); err != nil {
		log.Printf("unable to seed admin user: %v", err)
		return
	}

	var m1, m2, s1 int64
	err = tx.QueryRowx(`INSERT INTO medicines (brand_name, generic_name, strength, dosage_form, pack_size, barcode, manufacturer) VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		"Paracetamol", "Acetaminophen", "500mg", "Tablet", "10x10", "123456789", "HealthCorp").Scan(&m1)
	if err == nil {
		err = tx.QueryRowx(`INSERT INTO medicines (brand_name, generic_name, strength, dosage_form, pack_size, barcode, manufacturer) VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
			"Amoxicillin", "Amoxicillin", "250mg", "Capsule", "10x10", "987654321", "BioPharma").Scan(&m2)
	}
	if err == nil {
		err = tx.QueryRowx(`INSERT INTO suppliers (name, contact_info, license_number, payment_terms) VALUES (?, ?, ?, ?) RETURNING id`,
			"Global Meds", "global@meds.com", "LIC-001", "Net 30").Scan(&s1)
	}
	if err != nil {
		log.Printf("unable to seed demo catalog: %v", err)
		return
	}

	batches := []struct {
		medicineID  int64
		batchNumber string
		expiry      string
		mfg         string
		rate        float64
		mrp         float64
		selling     float64
		tax         float64
		initial     int64
		current     int64
	}{
		{m1, "B-001", "2026-12-31", "2024-01-01", 10, 20, 18, 12, 100, 85},
		{m2, "B-002", "2026-06-30", "2024-02-01", 50, 100, 90, 12, 50, 42},
	}
	for _, b := range batches {
		if _, err := tx.Exec(`INSERT INTO batches (medicine_id, batch_number, expiry_date, mfg_date, purchase_rate, mrp, selling_rate, tax_percent, supplier_id, initial_qty, current_qty)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.medicineID, b.batchNumber, b.expiry, b.mfg, b.rate, b.mrp, b.selling, b.tax, s1, b.initial, b.current); err != nil {
			log.Printf("unable to seed batch %s: %v", b.batchNumber, err)
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("unable to commit seed data: %v", err)
		return
	}
	log.Printf("seeded admin user and demo catalog")
}
