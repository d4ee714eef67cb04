// internal/data/models.go
package data

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// Models is a top-level container that groups all database model types together.
// It is passed around the application via applicationDependencies so every handler
// has access to the database without importing sql directly.
type Models struct {
	Authors     AuthorModel       // Database operations for the authors table
	Books       BookModel         // Database operations for the books and book_genres tables
	Genres      GenreModel        // Database operations for the genres table
	Instances   BookInstanceModel // Database operations for the book_instances table
	Languages   LanguageModel     // Database operations for the languages table
	Permissions PermissionModel   // Database operations for the permission tables
	Tokens      TokenModel        // Database operations for the tokens table
	Users       UserModel         // Database operations for the users table
}

// NewModels constructs a Models value wired up to the given database connection pool.
// Call this once during application startup and store the result in applicationDependencies.
func NewModels(db *sql.DB) Models {
	return Models{
		Authors:     AuthorModel{DB: db},
		Books:       BookModel{DB: db},
		Genres:      GenreModel{DB: db},
		Instances:   BookInstanceModel{DB: db},
		Languages:   LanguageModel{DB: db},
		Permissions: PermissionModel{DB: db},
		Tokens:      TokenModel{DB: db},
		Users:       UserModel{DB: db},
	}
}

var (
	// ErrRecordNotFound is returned when a query finds no matching row.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateISBN is returned when an insert or update violates the
	// UNIQUE constraint on books.isbn.
	ErrDuplicateISBN = errors.New("duplicate isbn")

	// ErrDuplicateSlug is returned when an insert or update violates the
	// UNIQUE constraint on books.slug.
	ErrDuplicateSlug = errors.New("duplicate slug")

	// ErrDuplicateEmail is returned when an insert violates the UNIQUE
	// constraint on users.email.
	ErrDuplicateEmail = errors.New("duplicate email")

	// ErrInvalidReference is returned when a write names a related record
	// (author, language, genre, book or borrower) that does not exist.
	ErrInvalidReference = errors.New("invalid reference")
)

// translateWriteError converts PostgreSQL constraint violations into the
// sentinel errors above so handlers can surface them as validation failures.
// Uniqueness lives in the schema, not in application-level pre-checks, which
// closes the check-then-insert race between concurrent writers.
func translateWriteError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code.Name() {
	case "unique_violation":
		switch pqErr.Constraint {
		case "books_isbn_key":
			return ErrDuplicateISBN
		case "books_slug_key":
			return ErrDuplicateSlug
		case "users_email_key":
			return ErrDuplicateEmail
		}
	case "foreign_key_violation":
		return ErrInvalidReference
	}
	return err
}
