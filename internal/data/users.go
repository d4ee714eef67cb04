// internal/data/users.go
// User accounts for patrons and librarians. The catalog itself only needs an
// identity to lend copies to and a permission check to gate librarian
// actions; everything here exists to serve those two needs.
package data

import (
	"database/sql"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/avelichko/locallibrary/internal/validator"
)

// AnonymousUser represents an unauthenticated request. Checking against this
// sentinel is how middleware distinguishes visitors from signed-in patrons.
var AnonymousUser = &User{}

// User represents an individual account.
type User struct {
	ID        int64     `json:"id"`         // Unique identifier assigned by the database
	CreatedAt time.Time `json:"created_at"` // Timestamp when the account was created
	Name      string    `json:"name"`       // Display name
	Email     string    `json:"email"`      // Email address, unique across all users
	Password  password  `json:"-"`          // Hashed password, never serialized
}

// IsAnonymous reports whether the user is the AnonymousUser sentinel.
func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}

// password holds both the plaintext (only while validating a just-received
// value) and the bcrypt hash that is actually stored.
type password struct {
	plaintext *string
	hash      []byte
}

// Set calculates the bcrypt hash of a plaintext password and stores both
// values in the struct.
func (p *password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), 12)
	if err != nil {
		return err
	}
	p.plaintext = &plaintextPassword
	p.hash = hash
	return nil
}

// Matches checks whether the provided plaintext password matches the stored hash.
func (p *password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.hash, []byte(plaintextPassword))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}
	return true, nil
}

// ValidateEmail checks that an email address is present and plausible.
func ValidateEmail(v *validator.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(validator.Matches(email, validator.EmailRX), "email", "must be a valid email address")
}

// ValidatePasswordPlaintext checks the strength bounds for a plaintext password.
func ValidatePasswordPlaintext(v *validator.Validator, plaintext string) {
	v.Check(plaintext != "", "password", "must be provided")
	v.Check(len(plaintext) >= 8, "password", "must be at least 8 characters long")
	v.Check(len(plaintext) <= 72, "password", "must not be more than 72 characters long")
}

// ValidateUser checks the business rules for a user record.
func ValidateUser(v *validator.Validator, user *User) {
	v.Check(user.Name != "", "name", "must be provided")
	v.Check(len(user.Name) <= 200, "name", "must not be more than 200 characters long")

	ValidateEmail(v, user.Email)

	if user.Password.plaintext != nil {
		ValidatePasswordPlaintext(v, *user.Password.plaintext)
	}

	// A missing hash at this point is a bug in the calling code, not a
	// client error.
	if user.Password.hash == nil {
		panic("missing password hash for user")
	}
}

// UserModel wraps a *sql.DB connection and provides methods for user records.
type UserModel struct {
	DB *sql.DB // Shared database connection pool
}

// Insert adds a new user record to the database.
// Returns ErrDuplicateEmail if the email address is already registered.
func (m UserModel) Insert(user *User) error {
	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := m.DB.QueryRow(query, user.Name, user.Email, user.Password.hash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return translateWriteError(err)
	}
	return nil
}

// GetByEmail retrieves the user record with the given email address.
// Returns ErrRecordNotFound if no matching user exists.
func (m UserModel) GetByEmail(email string) (*User, error) {
	query := `
		SELECT id, created_at, name, email, password_hash
		FROM users
		WHERE email = $1`

	var user User
	err := m.DB.QueryRow(query, email).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.Name,
		&user.Email,
		&user.Password.hash,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &user, nil
}

// GetForToken retrieves the user that owns an unexpired token with the given
// scope and plaintext value. The token is hashed here and looked up by hash;
// plaintext tokens are never stored.
func (m UserModel) GetForToken(scope, tokenPlaintext string) (*User, error) {
	tokenHash := hashToken(tokenPlaintext)

	query := `
		SELECT users.id, users.created_at, users.name, users.email, users.password_hash
		FROM users
		INNER JOIN tokens ON tokens.user_id = users.id
		WHERE tokens.hash = $1 AND tokens.scope = $2 AND tokens.expiry > $3`

	var user User
	err := m.DB.QueryRow(query, tokenHash[:], scope, time.Now()).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.Name,
		&user.Email,
		&user.Password.hash,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &user, nil
}
