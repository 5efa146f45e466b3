package domain

type Purchase struct {
	ID            int64   `db:"id" json:"id"`
	SupplierID    int64   `db:"supplier_id" json:"supplier_id"`
	InvoiceNumber string  `db:"invoice_number" json:"invoice_number"`
	TotalAmount   float64 `db:"total_amount" json:"total_amount"`
	Timestamp     string  `db:"timestamp" json:"timestamp"`
	UserID        *int64  `db:"user_id" json:"user_id,omitempty"`
}
