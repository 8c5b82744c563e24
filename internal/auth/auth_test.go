package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nhle/email-triage/internal/model"
)

func testAccount(t *testing.T, email, password string) model.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return model.Account{ID: "1", Email: email, PasswordHash: string(hash)}
}

func TestAuthenticate(t *testing.T) {
	creds, err := NewCredentials([]model.Account{testAccount(t, "ana@example.com", "s3cret")})
	require.NoError(t, err)

	a, err := creds.Authenticate("ana@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "1", a.ID)

	_, err = creds.Authenticate("ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = creds.Authenticate("bob@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = creds.Authenticate("ANA@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "email match is exact")
}

func TestNewCredentialsRejectsBadAccounts(t *testing.T) {
	a := testAccount(t, "ana@example.com", "pw")

	_, err := NewCredentials([]model.Account{a, a})
	assert.Error(t, err)

	_, err = NewCredentials([]model.Account{{ID: "2", Email: "x@example.com"}})
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter2")))

	_, err = HashPassword("")
	assert.Error(t, err)
}

func TestLoadAccounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.yaml")
	content := `accounts:
  - id: "1"
    email: ana@example.com
    password_hash: "$2a$10$abcdefghijklmnopqrstuv"
  - id: "2"
    email: bob@example.com
    password_hash: "$2a$10$zyxwvutsrqponmlkjihgfe"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	accounts, err := LoadAccounts(path)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "ana@example.com", accounts[0].Email)
	assert.Equal(t, "$2a$10$zyxwvutsrqponmlkjihgfe", accounts[1].PasswordHash)

	_, err = LoadAccounts(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTokenRoundTrip(t *testing.T) {
	svc, err := NewTokenService("secret", time.Hour)
	require.NoError(t, err)

	token, err := svc.Issue(model.Account{ID: "1", Email: "ana@example.com"})
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestVerifyRejects(t *testing.T) {
	svc, err := NewTokenService("secret", time.Hour)
	require.NoError(t, err)
	account := model.Account{ID: "1", Email: "ana@example.com"}

	t.Run("malformed", func(t *testing.T) {
		_, err := svc.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokenService("other", time.Hour)
		require.NoError(t, err)
		token, err := other.Issue(account)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past, err := NewTokenService("secret", time.Hour)
		require.NoError(t, err)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := past.Issue(account)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "1"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	assert.Error(t, err)

	svc, err := NewTokenService("s", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, svc.ttl)
}
