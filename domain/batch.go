package domain

// Batch is one physical lot of a medicine. current_qty may only be changed
// by the stock ledger; initial_qty is fixed at creation.
type Batch struct {
	ID           int64   `db:"id" json:"id"`
	MedicineID   int64   `db:"medicine_id" json:"medicine_id"`
	BatchNumber  string  `db:"batch_number" json:"batch_number"`
	ExpiryDate   string  `db:"expiry_date" json:"expiry_date"`
	MfgDate      string  `db:"mfg_date" json:"mfg_date"`
	PurchaseRate float64 `db:"purchase_rate" json:"purchase_rate"`
	MRP          float64 `db:"mrp" json:"mrp"`
	SellingRate  float64 `db:"selling_rate" json:"selling_rate"`
	TaxPercent   float64 `db:"tax_percent" json:"tax_percent"`
	SupplierID   *int64  `db:"supplier_id" json:"supplier_id,omitempty"`
	PurchaseID   *int64  `db:"purchase_id" json:"purchase_id,omitempty"`
	InitialQty   int64   `db:"initial_qty" json:"initial_qty"`
	CurrentQty   int64   `db:"current_qty" json:"current_qty"`
}
