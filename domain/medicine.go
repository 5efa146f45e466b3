package domain

type Medicine struct {
	ID              int64   `db:"id" json:"id"`
	BrandName       string  `db:"brand_name" json:"brand_name"`
	GenericName     string  `db:"generic_name" json:"generic_name"`
	Strength        string  `db:"strength" json:"strength"`
	DosageForm      string  `db:"dosage_form" json:"dosage_form"`
	PackSize        string  `db:"pack_size" json:"pack_size"`
	Barcode         *string `db:"barcode" json:"barcode,omitempty"`
	Manufacturer    string  `db:"manufacturer" json:"manufacturer"`
	SaltComposition string  `db:"salt_composition" json:"salt_composition"`
	StorageNotes    string  `db:"storage_notes" json:"storage_notes"`
}
