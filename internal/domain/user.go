package domain

type User struct {
	ID       string `db:"id"`
	Username string `db:"username"`
	Hash     string `db:"password_hash"`
	Role     string `db:"role"` // USER | STAFF
}
