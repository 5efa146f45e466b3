// Package catalog holds the medicine, supplier and batch records and the
// read queries over them. It never changes batch quantities; that is the
// ledger's job.
package catalog

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"pharmapos/m/domain"
)

// ErrReferenced is returned when a medicine or supplier cannot be deleted
// because batches still reference it.
var ErrReferenced = errors.New("record is referenced by existing batches")

// Store provides access to catalog records.
type Store struct {
	db *sqlx.DB
}

// NewStore constructs a Store on top of the shared database handle.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Medicines

func (s *Store) ListMedicines(ctx context.Context) ([]domain.Medicine, error) {
	medicines := []domain.Medicine{}
	err := s.db.SelectContext(ctx, &medicines,
		`SELECT id, brand_name, COALESCE(generic_name, '') AS generic_name, COALESCE(strength, '') AS strength,
                COALESCE(dosage_form, '') AS dosage_form, COALESCE(pack_size, '') AS pack_size, barcode,
                COALESCE(manufacturer, '') AS manufacturer, COALESCE(salt_composition, '') AS salt_composition,
                COALESCE(storage_notes, '') AS storage_notes
         FROM medicines ORDER BY brand_name`)
	return medicines, err
}

func (s *Store) CreateMedicine(ctx context.Context, m domain.Medicine) (int64, error) {
	var id int64
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO medicines (brand_name, generic_name, strength, dosage_form, pack_size, barcode, manufacturer, salt_composition, storage_notes)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		m.BrandName, m.GenericName, m.Strength, m.DosageForm, m.PackSize, m.Barcode,
		m.Manufacturer, m.SaltComposition, m.StorageNotes).Scan(&id)
	return id, err
}

func (s *Store) UpdateMedicine(ctx context.Context, id int64, m domain.Medicine) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE medicines
         SET brand_name = ?, generic_name = ?, strength = ?, dosage_form = ?, pack_size = ?, barcode = ?, manufacturer = ?, salt_composition = ?, storage_notes = ?
         WHERE id = ?`,
		m.BrandName, m.GenericName, m.Strength, m.DosageForm, m.PackSize, m.Barcode,
		m.Manufacturer, m.SaltComposition, m.StorageNotes, id)
	return err
}

// DeleteMedicine removes a medicine unless batches still reference it.
func (s *Store) DeleteMedicine(ctx context.Context, id int64) error {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT count(*) FROM batches WHERE medicine_id = ?`, id); err != nil {
		return err
	}
	if count > 0 {
		return ErrReferenced
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM medicines WHERE id = ?`, id)
	return err
}

// Suppliers

func (s *Store) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	suppliers := []domain.Supplier{}
	err := s.db.SelectContext(ctx, &suppliers,
		`SELECT id, name, COALESCE(contact_info, '') AS contact_info, COALESCE(license_number, '') AS license_number,
                COALESCE(payment_terms, '') AS payment_terms
         FROM suppliers ORDER BY name`)
	return suppliers, err
}

func (s *Store) CreateSupplier(ctx context.Context, sp domain.Supplier) (int64, error) {
	var id int64
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO suppliers (name, contact_info, license_number, payment_terms) VALUES (?, ?, ?, ?) RETURNING id`,
		sp.Name, sp.ContactInfo, sp.LicenseNumber, sp.PaymentTerms).Scan(&id)
	return id, err
}

func (s *Store) UpdateSupplier(ctx context.Context, id int64, sp domain.Supplier) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE suppliers SET name = ?, contact_info = ?, license_number = ?, payment_terms = ? WHERE id = ?`,
		sp.Name, sp.ContactInfo, sp.LicenseNumber, sp.PaymentTerms, id)
	return err
}

// DeleteSupplier removes a supplier unless batches still reference it.
func (s *Store) DeleteSupplier(ctx context.Context, id int64) error {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT count(*) FROM batches WHERE supplier_id = ?`, id); err != nil {
		return err
	}
	if count > 0 {
		return ErrReferenced
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id = ?`, id)
	return err
}

// SupplierPurchase is a purchase row joined with the recording user's name.
type SupplierPurchase struct {
	domain.Purchase
	UserName string `db:"user_name" json:"user_name"`
}

func (s *Store) SupplierPurchases(ctx context.Context, supplierID int64) ([]SupplierPurchase, error) {
	purchases := []SupplierPurchase{}
	err := s.db.SelectContext(ctx, &purchases,
		`SELECT p.id, p.supplier_id, COALESCE(p.invoice_number, '') AS invoice_number, p.total_amount, p.timestamp, p.user_id,
                u.full_name AS user_name
         FROM purchases p
         JOIN users u ON p.user_id = u.id
         WHERE p.supplier_id = ?
         ORDER BY p.timestamp DESC`, supplierID)
	return purchases, err
}

// SupplierMedicines lists the distinct medicines ever supplied by one
// supplier, derived from its batches.
func (s *Store) SupplierMedicines(ctx context.Context, supplierID int64) ([]domain.Medicine, error) {
	medicines := []domain.Medicine{}
	err := s.db.SelectContext(ctx, &medicines,
		`SELECT DISTINCT m.id, m.brand_name, COALESCE(m.generic_name, '') AS generic_name, COALESCE(m.strength, '') AS strength,
                COALESCE(m.dosage_form, '') AS dosage_form, COALESCE(m.pack_size, '') AS pack_size, m.barcode,
                COALESCE(m.manufacturer, '') AS manufacturer, COALESCE(m.salt_composition, '') AS salt_composition,
                COALESCE(m.storage_notes, '') AS storage_notes
         FROM medicines m
         JOIN batches b ON m.id = b.medicine_id
         WHERE b.supplier_id = ?`, supplierID)
	return medicines, err
}
