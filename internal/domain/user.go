package domain

type User struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	Name  string `db:"name"`
	Hash  string `db:"password_hash"`
	Role  string `db:"role"`
}

func (u *User) Admin() bool { return u != nil && u.Role == "ADMIN" }

// OwnerKey identifies the owner of exactly one cart: either an authenticated
// user or an anonymous session token, never both.
type OwnerKey struct {
	UserID string
	Token  string
}

func (k OwnerKey) Anonymous() bool { return k.UserID == "" }

// UserOwner keys a cart by an authenticated user id.
func UserOwner(userID string) OwnerKey { return OwnerKey{UserID: userID} }

// TokenOwner keys a cart by an anonymous session token.
func TokenOwner(token string) OwnerKey { return OwnerKey{Token: token} }
