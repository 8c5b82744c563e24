package model

// Account is a seeded login identity. Accounts are read once at startup and
// never modified.
type Account struct {
	ID           string `mapstructure:"id" json:"id"`
	Email        string `mapstructure:"email" json:"email"`
	PasswordHash string `mapstructure:"password_hash" json:"-"`
}

// User is the public part of an Account returned after login.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// User returns the public view of the account.
func (a Account) User() User {
	return User{ID: a.ID, Email: a.Email}
}
