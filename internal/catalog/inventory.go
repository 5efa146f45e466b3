package catalog

import (
	"context"

	"pharmapos/m/domain"
)

// InventoryRow is a batch joined with its medicine and supplier for the
// stock listing.
type InventoryRow struct {
	domain.Batch
	BrandName    string `db:"brand_name" json:"brand_name"`
	GenericName  string `db:"generic_name" json:"generic_name"`
	Strength     string `db:"strength" json:"strength"`
	SupplierName string `db:"supplier_name" json:"supplier_name"`
}

// Inventory lists all in-stock batches ordered by expiry.
func (s *Store) Inventory(ctx context.Context) ([]InventoryRow, error) {
	rows := []InventoryRow{}
	err := s.db.SelectContext(ctx, &rows,
		`SELECT b.id, b.medicine_id, COALESCE(b.batch_number, '') AS batch_number, COALESCE(b.expiry_date, '') AS expiry_date,
                COALESCE(b.mfg_date, '') AS mfg_date, COALESCE(b.purchase_rate, 0) AS purchase_rate, COALESCE(b.mrp, 0) AS mrp,
                COALESCE(b.selling_rate, 0) AS selling_rate, COALESCE(b.tax_percent, 0) AS tax_percent,
                b.supplier_id, b.purchase_id, b.initial_qty, b.current_qty,
                m.brand_name, COALESCE(m.generic_name, '') AS generic_name, COALESCE(m.strength, '') AS strength,
                COALESCE(s.name, '') AS supplier_name
         FROM batches b
         JOIN medicines m ON b.medicine_id = m.id
         LEFT JOIN suppliers s ON b.supplier_id = s.id
         WHERE b.current_qty > 0
         ORDER BY b.expiry_date ASC`)
	return rows, err
}

// POSRow is a sellable batch with the medicine fields the POS screen shows.
type POSRow struct {
	domain.Batch
	BrandName   string `db:"brand_name" json:"brand_name"`
	GenericName string `db:"generic_name" json:"generic_name"`
	Strength    string `db:"strength" json:"strength"`
	DosageForm  string `db:"dosage_form" json:"dosage_form"`
}

// SearchPOS finds unexpired, in-stock batches whose medicine matches the
// query by name substring or exact barcode.
func (s *Store) SearchPOS(ctx context.Context, query string) ([]POSRow, error) {
	like := "%" + query + "%"
	rows := []POSRow{}
	err := s.db.SelectContext(ctx, &rows,
		`SELECT b.id, b.medicine_id, COALESCE(b.batch_number, '') AS batch_number, COALESCE(b.expiry_date, '') AS expiry_date,
                COALESCE(b.mfg_date, '') AS mfg_date, COALESCE(b.purchase_rate, 0) AS purchase_rate, COALESCE(b.mrp, 0) AS mrp,
                COALESCE(b.selling_rate, 0) AS selling_rate, COALESCE(b.tax_percent, 0) AS tax_percent,
                b.supplier_id, b.purchase_id, b.initial_qty, b.current_qty,
                m.brand_name, COALESCE(m.generic_name, '') AS generic_name, COALESCE(m.strength, '') AS strength,
                COALESCE(m.dosage_form, '') AS dosage_form
         FROM batches b
         JOIN medicines m ON b.medicine_id = m.id
         WHERE (m.brand_name LIKE ? OR m.generic_name LIKE ? OR m.barcode = ?)
         AND b.current_qty > 0
         AND b.expiry_date > date('now')
         ORDER BY b.expiry_date ASC`, like, like, query)
	return rows, err
}

// UpdateBatch edits the fields a pharmacist may correct on an existing
// batch. Quantities are out of reach; only the ledger changes those.
func (s *Store) UpdateBatch(ctx context.Context, id int64, expiryDate string, mrp, sellingRate float64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE batches SET expiry_date = ?, mrp = ?, selling_rate = ? WHERE id = ?`,
		expiryDate, mrp, sellingRate, id)
	return err
}

// BatchAdjustment is an audit row joined with the acting user's name.
type BatchAdjustment struct {
	domain.StockAdjustment
	UserName string `db:"user_name" json:"user_name"`
}

// BatchAdjustments returns the audit trail for one batch, newest first.
func (s *Store) BatchAdjustments(ctx context.Context, batchID int64) ([]BatchAdjustment, error) {
	rows := []BatchAdjustment{}
	err := s.db.SelectContext(ctx, &rows,
		`SELECT sa.id, sa.batch_id, COALESCE(sa.type, '') AS type, sa.quantity, COALESCE(sa.reason, '') AS reason,
                sa.user_id, sa.timestamp, u.full_name AS user_name
         FROM stock_adjustments sa
         JOIN users u ON sa.user_id = u.id
         WHERE sa.batch_id = ?
         ORDER BY sa.timestamp DESC`, batchID)
	return rows, err
}

// AdjustmentRecord is an audit row with batch and medicine context for the
// global adjustment history.
type AdjustmentRecord struct {
	domain.StockAdjustment
	BatchNumber string `db:"batch_number" json:"batch_number"`
	BrandName   string `db:"brand_name" json:"brand_name"`
	UserName    string `db:"user_name" json:"user_name"`
}

// AllAdjustments returns the full audit trail across batches, newest first.
func (s *Store) AllAdjustments(ctx context.Context) ([]AdjustmentRecord, error) {
	rows := []AdjustmentRecord{}
	err := s.db.SelectContext(ctx, &rows,
		`SELECT sa.id, sa.batch_id, COALESCE(sa.type, '') AS type, sa.quantity, COALESCE(sa.reason, '') AS reason,
                sa.user_id, sa.timestamp, COALESCE(b.batch_number, '') AS batch_number, m.brand_name, u.full_name AS user_name
         FROM stock_adjustments sa
         JOIN batches b ON sa.batch_id = b.id
         JOIN medicines m ON b.medicine_id = m.id
         JOIN users u ON sa.user_id = u.id
         ORDER BY sa.timestamp DESC`)
	return rows, err
}
