// Package auth checks seeded login credentials and issues the bearer
// tokens that prove a session.
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"github.com/nhle/email-triage/internal/model"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials is the read-only set of accounts allowed to log in.
type Credentials struct {
	byEmail map[string]model.Account
}

// NewCredentials indexes accounts by email. Duplicate emails and accounts
// without a hash are rejected.
func NewCredentials(accounts []model.Account) (*Credentials, error) {
	c := &Credentials{byEmail: make(map[string]model.Account, len(accounts))}
	for _, a := range accounts {
		if a.Email == "" || a.PasswordHash == "" {
			return nil, fmt.Errorf("account %q: email and password_hash are required", a.ID)
		}
		if _, dup := c.byEmail[a.Email]; dup {
			return nil, fmt.Errorf("account %q: duplicate email %s", a.ID, a.Email)
		}
		if a.ID == "" {
			a.ID = a.Email
		}
		c.byEmail[a.Email] = a
	}
	return c, nil
}

// LoadAccounts reads the accounts file:
//
//	accounts:
//	  - id: "1"
//	    email: user@example.com
//	    password_hash: $2a$10$...
func LoadAccounts(path string) ([]model.Account, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("accounts file %s: %w", path, os.ErrNotExist)
		}
		return nil, fmt.Errorf("reading accounts %s: %w", path, err)
	}

	var file struct {
		Accounts []model.Account `mapstructure:"accounts"`
	}
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("parsing accounts %s: %w", path, err)
	}
	return file.Accounts, nil
}

// Len returns the number of known accounts.
func (c *Credentials) Len() int {
	return len(c.byEmail)
}

// Authenticate returns the account whose email matches exactly and whose
// hash accepts password.
func (c *Credentials) Authenticate(email, password string) (model.Account, error) {
	a, ok := c.byEmail[strings.TrimSpace(email)]
	if !ok {
		return model.Account{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return model.Account{}, ErrInvalidCredentials
	}
	return a, nil
}

// HashPassword produces a bcrypt hash for an accounts file entry.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}
