package domain

type Sale struct {
	ID             int64   `db:"id" json:"id"`
	CustomerName   string  `db:"customer_name" json:"customer_name"`
	CustomerPhone  string  `db:"customer_phone" json:"customer_phone"`
	TotalAmount    float64 `db:"total_amount" json:"total_amount"`
	TaxAmount      float64 `db:"tax_amount" json:"tax_amount"`
	DiscountAmount float64 `db:"discount_amount" json:"discount_amount"`
	PaymentMethod  string  `db:"payment_method" json:"payment_method"`
	UserID         *int64  `db:"user_id" json:"user_id,omitempty"`
	Timestamp      string  `db:"timestamp" json:"timestamp"`
}

type SaleItem struct {
	ID             int64   `db:"id" json:"id"`
	SaleID         int64   `db:"sale_id" json:"sale_id"`
	BatchID        int64   `db:"batch_id" json:"batch_id"`
	Quantity       int64   `db:"quantity" json:"quantity"`
	UnitPrice      float64 `db:"unit_price" json:"unit_price"`
	TaxAmount      float64 `db:"tax_amount" json:"tax_amount"`
	DiscountAmount float64 `db:"discount_amount" json:"discount_amount"`
}
