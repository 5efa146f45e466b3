package domain

// StockAdjustment is an append-only audit record. Quantity carries the
// caller's sign: negative for damage, positive for returns.
type StockAdjustment struct {
	ID        int64  `db:"id" json:"id"`
	BatchID   int64  `db:"batch_id" json:"batch_id"`
	Type      string `db:"type" json:"type"`
	Quantity  int64  `db:"quantity" json:"quantity"`
	Reason    string `db:"reason" json:"reason"`
	UserID    *int64 `db:"user_id" json:"user_id,omitempty"`
	Timestamp string `db:"timestamp" json:"timestamp"`
}
