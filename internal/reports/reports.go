// Package reports holds the read-only aggregate queries. Nothing here
// mutates state.
package reports

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"pharmapos/m/domain"
)

// LowStockThreshold is the summed quantity below which a medicine is
// reported as low on stock.
const LowStockThreshold = 50

// NearExpiryDays is the report window for the near-expiry listing.
const NearExpiryDays = 90

// Reports runs the aggregate queries over the catalog store.
type Reports struct {
	db *sqlx.DB
}

// New constructs Reports on top of the shared database handle.
func New(db *sqlx.DB) *Reports {
	return &Reports{db: db}
}

// DailySales is one calendar day's sales rollup.
type DailySales struct {
	Date  string  `db:"date" json:"date"`
	Total float64 `db:"total" json:"total"`
	Count int64   `db:"count" json:"count"`
}

// SalesByDay groups sales by calendar date over the last 30 distinct dates.
func (r *Reports) SalesByDay(ctx context.Context) ([]DailySales, error) {
	rows := []DailySales{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT date(timestamp) AS date, SUM(total_amount) AS total, COUNT(*) AS count
         FROM sales
         GROUP BY date(timestamp)
         ORDER BY date DESC
         LIMIT 30`)
	return rows, err
}

// ExpiryRow is a near-expiry batch with its medicine names.
type ExpiryRow struct {
	domain.Batch
	BrandName   string `db:"brand_name" json:"brand_name"`
	GenericName string `db:"generic_name" json:"generic_name"`
}

// NearExpiry lists in-stock batches expiring within NearExpiryDays, soonest
// first.
func (r *Reports) NearExpiry(ctx context.Context) ([]ExpiryRow, error) {
	cutoff := time.Now().AddDate(0, 0, NearExpiryDays).Format("2006-01-02")
	rows := []ExpiryRow{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT b.id, b.medicine_id, COALESCE(b.batch_number, '') AS batch_number, COALESCE(b.expiry_date, '') AS expiry_date,
                COALESCE(b.mfg_date, '') AS mfg_date, COALESCE(b.purchase_rate, 0) AS purchase_rate, COALESCE(b.mrp, 0) AS mrp,
                COALESCE(b.selling_rate, 0) AS selling_rate, COALESCE(b.tax_percent, 0) AS tax_percent,
                b.supplier_id, b.purchase_id, b.initial_qty, b.current_qty,
                m.brand_name, COALESCE(m.generic_name, '') AS generic_name
         FROM batches b
         JOIN medicines m ON b.medicine_id = m.id
         WHERE b.expiry_date <= ?
         AND b.current_qty > 0
         ORDER BY b.expiry_date ASC`, cutoff)
	return rows, err
}

// LowStockRow is a medicine whose total stock across batches is low.
type LowStockRow struct {
	BrandName string `db:"brand_name" json:"brand_name"`
	TotalQty  int64  `db:"total_qty" json:"total_qty"`
}

// LowStock lists medicines whose summed current quantity is below
// LowStockThreshold.
func (r *Reports) LowStock(ctx context.Context) ([]LowStockRow, error) {
	rows := []LowStockRow{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT m.brand_name, SUM(b.current_qty) AS total_qty
         FROM medicines m
         JOIN batches b ON m.id = b.medicine_id
         GROUP BY m.id
         HAVING total_qty < ?`, LowStockThreshold)
	return rows, err
}

// SaleRecord is a sale row joined with the selling user's name.
type SaleRecord struct {
	domain.Sale
	UserName string `db:"user_name" json:"user_name"`
}

// SalesHistory returns all sales, newest first.
func (r *Reports) SalesHistory(ctx context.Context) ([]SaleRecord, error) {
	rows := []SaleRecord{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT s.id, COALESCE(s.customer_name, '') AS customer_name, COALESCE(s.customer_phone, '') AS customer_phone,
                s.total_amount, s.tax_amount, s.discount_amount, COALESCE(s.payment_method, '') AS payment_method,
                s.user_id, s.timestamp, u.full_name AS user_name
         FROM sales s
         JOIN users u ON s.user_id = u.id
         ORDER BY s.timestamp DESC, s.id DESC`)
	return rows, err
}

// PurchaseRecord is a purchase row joined with supplier and user names.
type PurchaseRecord struct {
	domain.Purchase
	SupplierName string `db:"supplier_name" json:"supplier_name"`
	UserName     string `db:"user_name" json:"user_name"`
}

// PurchaseHistory returns all purchases, newest first.
func (r *Reports) PurchaseHistory(ctx context.Context) ([]PurchaseRecord, error) {
	rows := []PurchaseRecord{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT p.id, p.supplier_id, COALESCE(p.invoice_number, '') AS invoice_number, p.total_amount, p.timestamp, p.user_id,
                s.name AS supplier_name, u.full_name AS user_name
         FROM purchases p
         JOIN suppliers s ON p.supplier_id = s.id
         JOIN users u ON p.user_id = u.id
         ORDER BY p.timestamp DESC, p.id DESC`)
	return rows, err
}

// PurchaseItemRow is a batch created by a purchase, with its medicine names.
type PurchaseItemRow struct {
	domain.Batch
	BrandName   string `db:"brand_name" json:"brand_name"`
	GenericName string `db:"generic_name" json:"generic_name"`
	Strength    string `db:"strength" json:"strength"`
}

// PurchaseItems lists the batches created by one purchase.
func (r *Reports) PurchaseItems(ctx context.Context, purchaseID int64) ([]PurchaseItemRow, error) {
	rows := []PurchaseItemRow{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT b.id, b.medicine_id, COALESCE(b.batch_number, '') AS batch_number, COALESCE(b.expiry_date, '') AS expiry_date,
                COALESCE(b.mfg_date, '') AS mfg_date, COALESCE(b.purchase_rate, 0) AS purchase_rate, COALESCE(b.mrp, 0) AS mrp,
                COALESCE(b.selling_rate, 0) AS selling_rate, COALESCE(b.tax_percent, 0) AS tax_percent,
                b.supplier_id, b.purchase_id, b.initial_qty, b.current_qty,
                m.brand_name, COALESCE(m.generic_name, '') AS generic_name, COALESCE(m.strength, '') AS strength
         FROM batches b
         JOIN medicines m ON b.medicine_id = m.id
         WHERE b.purchase_id = ?`, purchaseID)
	return rows, err
}
