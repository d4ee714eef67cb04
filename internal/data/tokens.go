// internal/data/tokens.go
// Stateful bearer tokens for API authentication. Only the SHA-256 hash of a
// token is stored; the plaintext exists once, in the response to the client
// that authenticated.
package data

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/base32"
	"time"

	"github.com/avelichko/locallibrary/internal/validator"
)

// ScopeAuthentication marks tokens issued for routine API authentication.
const ScopeAuthentication = "authentication"

// Token holds the data for a single bearer token.
type Token struct {
	Plaintext string    `json:"token"`  // The value handed to the client
	Hash      []byte    `json:"-"`      // SHA-256 hash stored in the database
	UserID    int64     `json:"-"`      // Owning user
	Expiry    time.Time `json:"expiry"` // Moment the token stops working
	Scope     string    `json:"-"`      // What the token may be used for
}

// generateToken creates a token for the given user with 128 bits of entropy,
// encoded as an unpadded base32 string (26 characters).
func generateToken(userID int64, ttl time.Duration, scope string) (*Token, error) {
	token := &Token{
		UserID: userID,
		Expiry: time.Now().Add(ttl),
		Scope:  scope,
	}

	randomBytes := make([]byte, 16)
	if _, err := rand.Read(randomBytes); err != nil {
		return nil, err
	}

	token.Plaintext = base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	hash := hashToken(token.Plaintext)
	token.Hash = hash[:]

	return token, nil
}

// hashToken returns the SHA-256 digest of a plaintext token.
func hashToken(plaintext string) [32]byte {
	return sha256.Sum256([]byte(plaintext))
}

// ValidateTokenPlaintext checks that a client-supplied token has the exact
// shape generateToken produces.
func ValidateTokenPlaintext(v *validator.Validator, tokenPlaintext string) {
	v.Check(tokenPlaintext != "", "token", "must be provided")
	v.Check(len(tokenPlaintext) == 26, "token", "must be 26 bytes long")
}

// TokenModel wraps a *sql.DB connection and provides methods for token records.
type TokenModel struct {
	DB *sql.DB // Shared database connection pool
}

// New generates a token, inserts it, and returns it with the plaintext set.
func (m TokenModel) New(userID int64, ttl time.Duration, scope string) (*Token, error) {
	token, err := generateToken(userID, ttl, scope)
	if err != nil {
		return nil, err
	}
	return token, m.Insert(token)
}

// Insert adds a token record to the database.
func (m TokenModel) Insert(token *Token) error {
	query := `
		INSERT INTO tokens (hash, user_id, expiry, scope)
		VALUES ($1, $2, $3, $4)`

	_, err := m.DB.Exec(query, token.Hash, token.UserID, token.Expiry, token.Scope)
	return err
}

// DeleteAllForUser removes every token with the given scope for a user.
func (m TokenModel) DeleteAllForUser(scope string, userID int64) error {
	_, err := m.DB.Exec(`DELETE FROM tokens WHERE scope = $1 AND user_id = $2`, scope, userID)
	return err
}
