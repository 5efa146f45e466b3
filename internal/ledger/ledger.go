// Package ledger is the only code path allowed to change batch stock
// quantities. Every operation runs inside a single database transaction:
// either all of its rows are written or none are.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	// ErrBatchNotFound is returned by Adjust when the batch does not exist.
	ErrBatchNotFound = errors.New("batch not found")
	// ErrNegativeStock is returned when an adjustment would drive a batch
	// quantity below zero.
	ErrNegativeStock = errors.New("adjustment results in negative stock")
	// ErrNoItems is returned when a sale or purchase carries no line items.
	ErrNoItems = errors.New("at least one item is required")
)

// InsufficientStockError names the first batch in a sale whose available
// quantity could not cover the requested quantity, or which does not exist.
type InsufficientStockError struct {
	BatchID int64
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for batch %d", e.BatchID)
}

// Ledger performs the all-or-nothing stock mutations.
type Ledger struct {
	db *sqlx.DB
}

// New constructs a Ledger on top of the shared database handle.
func New(db *sqlx.DB) *Ledger {
	return &Ledger{db: db}
}

// withTx runs fn inside a transaction, committing on nil and rolling back on
// any error.
func (l *Ledger) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

type SaleItemInput struct {
	BatchID        int64   `json:"batch_id"`
	Quantity       int64   `json:"quantity"`
	UnitPrice      float64 `json:"unit_price"`
	TaxAmount      float64 `json:"tax_amount"`
	DiscountAmount float64 `json:"discount_amount"`
}

type SaleInput struct {
	CustomerName   string
	CustomerPhone  string
	TotalAmount    float64
	TaxAmount      float64
	DiscountAmount float64
	PaymentMethod  string
	UserID         int64
	Items          []SaleItemInput
}

// Sell records a sale and decrements stock for every line item in cart
// order. The submitted total, tax and discount amounts are stored as-is; the
// server does not recompute them from the line items.
func (l *Ledger) Sell(ctx context.Context, in SaleInput) (int64, error) {
	if len(in.Items) == 0 {
		return 0, ErrNoItems
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return 0, fmt.Errorf("quantity must be positive for batch %d", item.BatchID)
		}
	}

	var saleID int64
	err := l.withTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx,
			`INSERT INTO sales (customer_name, customer_phone, total_amount, tax_amount, discount_amount, payment_method, user_id)
             VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
			in.CustomerName, in.CustomerPhone, in.TotalAmount, in.TaxAmount, in.DiscountAmount, in.PaymentMethod, in.UserID).Scan(&saleID)
		if err != nil {
			return fmt.Errorf("create sale: %w", err)
		}

		for _, item := range in.Items {
			var currentQty int64
			err := tx.GetContext(ctx, &currentQty, `SELECT current_qty FROM batches WHERE id = ?`, item.BatchID)
			if errors.Is(err, sql.ErrNoRows) {
				return InsufficientStockError{BatchID: item.BatchID}
			}
			if err != nil {
				return fmt.Errorf("read batch %d: %w", item.BatchID, err)
			}
			if currentQty < item.Quantity {
				return InsufficientStockError{BatchID: item.BatchID}
			}

			if _, err := tx.ExecContext(ctx, `UPDATE batches SET current_qty = current_qty - ? WHERE id = ?`,
				item.Quantity, item.BatchID); err != nil {
				return fmt.Errorf("decrement batch %d: %w", item.BatchID, err)
			}

			if _, err := tx.ExecContext(ctx,
				`INSERT INTO sale_items (sale_id, batch_id, quantity, unit_price, tax_amount, discount_amount)
                 VALUES (?, ?, ?, ?, ?, ?)`,
				saleID, item.BatchID, item.Quantity, item.UnitPrice, item.TaxAmount, item.DiscountAmount); err != nil {
				return fmt.Errorf("record sale item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return saleID, nil
}

type PurchaseItemInput struct {
	MedicineID   int64   `json:"medicine_id"`
	BatchNumber  string  `json:"batch_number"`
	ExpiryDate   string  `json:"expiry_date"`
	MfgDate      string  `json:"mfg_date"`
	PurchaseRate float64 `json:"purchase_rate"`
	MRP          float64 `json:"mrp"`
	SellingRate  float64 `json:"selling_rate"`
	TaxPercent   float64 `json:"tax_percent"`
	Quantity     int64   `json:"quantity"`
}

type PurchaseInput struct {
	SupplierID    int64
	InvoiceNumber string
	TotalAmount   float64
	UserID        int64
	Items         []PurchaseItemInput
}

// Purchase records a supplier invoice and creates one brand-new batch per
// line item with initial and current quantity equal to the received
// quantity. Lines are never merged into existing batches, even when the
// batch number collides.
func (l *Ledger) Purchase(ctx context.Context, in PurchaseInput) (int64, error) {
	if len(in.Items) == 0 {
		return 0, ErrNoItems
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return 0, fmt.Errorf("quantity must be positive for batch %q", item.BatchNumber)
		}
	}

	var purchaseID int64
	err := l.withTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx,
			`INSERT INTO purchases (supplier_id, invoice_number, total_amount, user_id)
             VALUES (?, ?, ?, ?) RETURNING id`,
			in.SupplierID, in.InvoiceNumber, in.TotalAmount, in.UserID).Scan(&purchaseID)
		if err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}

		for _, item := range in.Items {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO batches (medicine_id, batch_number, expiry_date, mfg_date, purchase_rate, mrp, selling_rate, tax_percent, supplier_id, purchase_id, initial_qty, current_qty)
                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				item.MedicineID, item.BatchNumber, item.ExpiryDate, item.MfgDate,
				item.PurchaseRate, item.MRP, item.SellingRate, item.TaxPercent,
				in.SupplierID, purchaseID, item.Quantity, item.Quantity); err != nil {
				return fmt.Errorf("create batch %q: %w", item.BatchNumber, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return purchaseID, nil
}

type AdjustInput struct {
	BatchID  int64
	Type     string
	Quantity int64
	Reason   string
	UserID   int64
}

// Adjust applies a signed quantity change to a batch and appends an audit
// row. The caller supplies the sign: negative for damage, positive for
// returns. The type label is stored as free text.
func (l *Ledger) Adjust(ctx context.Context, in AdjustInput) error {
	return l.withTx(ctx, func(tx *sqlx.Tx) error {
		var currentQty int64
		err := tx.GetContext(ctx, &currentQty, `SELECT current_qty FROM batches WHERE id = ?`, in.BatchID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBatchNotFound
		}
		if err != nil {
			return fmt.Errorf("read batch %d: %w", in.BatchID, err)
		}

		newQty := currentQty + in.Quantity
		if newQty < 0 {
			return ErrNegativeStock
		}

		if _, err := tx.ExecContext(ctx, `UPDATE batches SET current_qty = ? WHERE id = ?`, newQty, in.BatchID); err != nil {
			return fmt.Errorf("update batch %d: %w", in.BatchID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO stock_adjustments (batch_id, type, quantity, reason, user_id) VALUES (?, ?, ?, ?, ?)`,
			in.BatchID, in.Type, in.Quantity, in.Reason, in.UserID); err != nil {
			return fmt.Errorf("record adjustment: %w", err)
		}
		return nil
	})
}
