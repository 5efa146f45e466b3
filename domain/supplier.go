package domain

type Supplier struct {
	ID            int64  `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	ContactInfo   string `db:"contact_info" json:"contact_info"`
	LicenseNumber string `db:"license_number" json:"license_number"`
	PaymentTerms  string `db:"payment_terms" json:"payment_terms"`
}
