package domain

type User struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"password,omitempty"`
	Role     string `db:"role" json:"role"`
	FullName string `db:"full_name" json:"full_name"`
}
