package domain

type User struct {
	ID        string `db:"id"`
	Username  string `db:"username"` // unique, store-enforced
	Email     string `db:"email"`
	Location  string `db:"location"`
	Hash      string `db:"password_hash"`
	CreatedAt string `db:"created_at"`
}
