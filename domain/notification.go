package domain

type Notification struct {
	ID        int64  `db:"id" json:"id"`
	Type      string `db:"type" json:"type"`
	Message   string `db:"message" json:"message"`
	IsRead    bool   `db:"is_read" json:"is_read"`
	CreatedAt string `db:"created_at" json:"created_at"`
}
