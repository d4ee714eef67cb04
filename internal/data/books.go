// internal/data/books.go
// The Book entity describes a title in the abstract; physical borrowable
// copies are tracked separately as BookInstance records. Books carry a
// unique 13-character ISBN and a unique URL slug derived from the title.
package data

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/avelichko/locallibrary/internal/validator"
)

// Book represents a single book record stored in the database.
// AuthorID and LanguageID are pointers because both references are nullable:
// deleting the referenced author or language nulls them out rather than
// cascading into the book.
type Book struct {
	ID         int64     `json:"id"`                          // Unique identifier assigned by the database
	Title      string    `json:"title"`                       // Title of the book
	AuthorID   *int64    `json:"author_id"`                   // Referenced author, nil when unset or author deleted
	Summary    string    `json:"summary"`                     // Short description, at most 1000 characters
	ISBN       string    `json:"isbn"`                        // 13-character ISBN, unique across all books
	GenreIDs   []int64   `json:"genre_ids"`                   // Genres this book belongs to (many-to-many)
	LanguageID *int64    `json:"language_id"`                 // Referenced language, nil when unset or language deleted
	Slug       string    `json:"slug"`                        // URL-safe identifier derived from the title
	CreatedAt  time.Time `json:"created_at"`                  // Timestamp when the record was created
	UpdatedAt  time.Time `json:"updated_at"`                  // Timestamp when the record was last modified
	Available  *int      `json:"available_copies,omitempty"`  // Count of available copies, populated on detail views only
}

// ValidateBook checks the business rules for a book record.
// Note that only the ISBN's length is validated, not its characters; the
// catalog accepts any 13-character string.
func ValidateBook(v *validator.Validator, book *Book) {
	v.Check(book.Title != "", "title", "must be provided")
	v.Check(len(book.Title) <= 200, "title", "must not be more than 200 characters long")
	v.Check(book.Summary != "", "summary", "must be provided")
	v.Check(len(book.Summary) <= 1000, "summary", "must not be more than 1000 characters long")
	v.Check(len(book.ISBN) == 13, "isbn", "must be exactly 13 characters long")
	v.Check(validator.UniqueInt64(book.GenreIDs), "genre_ids", "must not contain duplicate values")
}

// BookModel wraps a *sql.DB connection and provides methods for creating,
// reading, updating, and deleting book records together with their genre set.
type BookModel struct {
	DB *sql.DB // Shared database connection pool
}

// SlugExists reports whether any book already uses the given slug.
// It is the existence probe handed to GenerateUniqueSlug.
func (m BookModel) SlugExists(slug string) (bool, error) {
	var exists bool
	err := m.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM books WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

// Insert adds a new book record and its genre links in a single transaction.
// When book.Slug is empty a unique slug is generated from the title first;
// a caller-supplied slug is kept as-is. After a successful insert the
// database-assigned id and timestamps are written back into the struct.
func (m BookModel) Insert(book *Book) error {
	// Assign a slug exactly once, only when none was provided.
	if book.Slug == "" {
		slug, err := GenerateUniqueSlug(book.Title, m.SlugExists)
		if err != nil {
			return err
		}
		book.Slug = slug
	}

	tx, err := m.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() // No-op after a successful Commit.

	query := `
		INSERT INTO books (title, author_id, summary, isbn, language_id, slug)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err = tx.QueryRow(
		query,
		book.Title,
		book.AuthorID,
		book.Summary,
		book.ISBN,
		book.LanguageID,
		book.Slug,
	).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		return translateWriteError(err)
	}

	if err := m.replaceGenres(tx, book.ID, book.GenreIDs); err != nil {
		return translateWriteError(err)
	}

	return tx.Commit()
}

// replaceGenres rewrites the book_genres rows for a book inside tx.
func (m BookModel) replaceGenres(tx *sql.Tx, bookID int64, genreIDs []int64) error {
	if _, err := tx.Exec(`DELETE FROM book_genres WHERE book_id = $1`, bookID); err != nil {
		return err
	}
	for _, genreID := range genreIDs {
		if _, err := tx.Exec(`INSERT INTO book_genres (book_id, genre_id) VALUES ($1, $2)`, bookID, genreID); err != nil {
			return err
		}
	}
	return nil
}

// bookColumns is the SELECT list shared by every book read query. The genre
// set is folded in with array_agg so a single round-trip returns the full record.
const bookColumns = `
	b.id, b.title, b.author_id, b.summary, b.isbn, b.language_id, b.slug, b.created_at, b.updated_at,
	coalesce(array_agg(bg.genre_id ORDER BY bg.genre_id) FILTER (WHERE bg.genre_id IS NOT NULL), '{}')`

// scanBook scans one row produced with bookColumns into a Book struct.
func scanBook(row interface{ Scan(...any) error }, book *Book) error {
	return row.Scan(
		&book.ID,
		&book.Title,
		&book.AuthorID,
		&book.Summary,
		&book.ISBN,
		&book.LanguageID,
		&book.Slug,
		&book.CreatedAt,
		&book.UpdatedAt,
		pq.Array(&book.GenreIDs),
	)
}

// GetBySlug retrieves a single book by its slug.
// Returns ErrRecordNotFound if no book with the given slug exists.
func (m BookModel) GetBySlug(slug string) (*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM books b
		LEFT JOIN book_genres bg ON bg.book_id = b.id
		WHERE b.slug = $1
		GROUP BY b.id`, bookColumns)

	var book Book
	err := scanBook(m.DB.QueryRow(query, slug), &book)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// GetAll retrieves a paginated, sorted list of books, optionally narrowed to
// titles containing the given substring (case-insensitive).
// It uses a COUNT(*) OVER() window function so only one round-trip is needed.
func (m BookModel) GetAll(title string, filters Filters) ([]*Book, Metadata, error) {
	// Build the query dynamically using the validated sort column and direction.
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), %s
		FROM books b
		LEFT JOIN book_genres bg ON bg.book_id = b.id
		WHERE (b.title ILIKE '%%' || $1 || '%%' OR $1 = '')
		GROUP BY b.id
		ORDER BY b.%s %s, b.id ASC
		LIMIT $2 OFFSET $3`, bookColumns, filters.sortColumn(), filters.sortDirection())

	rows, err := m.DB.Query(query, title, filters.limit(), filters.offset())
	if err != nil {
		return nil, Metadata{}, err
	}
	defer rows.Close()

	totalRecords := 0
	books := []*Book{}

	for rows.Next() {
		var book Book
		err := rows.Scan(
			&totalRecords, // COUNT(*) OVER(), same value on every row
			&book.ID,
			&book.Title,
			&book.AuthorID,
			&book.Summary,
			&book.ISBN,
			&book.LanguageID,
			&book.Slug,
			&book.CreatedAt,
			&book.UpdatedAt,
			pq.Array(&book.GenreIDs),
		)
		if err != nil {
			return nil, Metadata{}, err
		}
		books = append(books, &book)
	}
	if err = rows.Err(); err != nil {
		return nil, Metadata{}, err
	}

	metadata := calculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return books, metadata, nil
}

// GetAllByAuthor retrieves every book attributed to the given author,
// ordered by title. Used by the author detail view.
func (m BookModel) GetAllByAuthor(authorID int64) ([]*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM books b
		LEFT JOIN book_genres bg ON bg.book_id = b.id
		WHERE b.author_id = $1
		GROUP BY b.id
		ORDER BY b.title ASC`, bookColumns)

	rows, err := m.DB.Query(query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		var book Book
		if err := scanBook(rows, &book); err != nil {
			return nil, err
		}
		books = append(books, &book)
	}
	return books, rows.Err()
}

// Update saves the modified fields of book back to the database and rewrites
// its genre set. The database refreshes updated_at, which is scanned back
// into the struct. Returns ErrRecordNotFound if the book no longer exists.
func (m BookModel) Update(book *Book) error {
	tx, err := m.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE books
		SET title = $1, author_id = $2, summary = $3, isbn = $4, language_id = $5,
		    slug = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
		RETURNING updated_at`

	args := []any{
		book.Title,
		book.AuthorID,
		book.Summary,
		book.ISBN,
		book.LanguageID,
		book.Slug,
		book.ID,
	}

	err = tx.QueryRow(query, args...).Scan(&book.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		default:
			return translateWriteError(err)
		}
	}

	if err := m.replaceGenres(tx, book.ID, book.GenreIDs); err != nil {
		return translateWriteError(err)
	}

	return tx.Commit()
}

// Delete removes the book with the given slug from the database. Copies that
// reference the book keep existing with a null book reference (no cascade).
// Returns ErrRecordNotFound if no matching record exists.
func (m BookModel) Delete(slug string) error {
	result, err := m.DB.Exec(`DELETE FROM books WHERE slug = $1`, slug)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Count returns the total number of books in the catalog.
func (m BookModel) Count() (int, error) {
	var count int
	err := m.DB.QueryRow(`SELECT count(*) FROM books`).Scan(&count)
	return count, err
}

// CountTitleContains returns the number of books whose title contains the
// given substring, case-insensitively.
func (m BookModel) CountTitleContains(substring string) (int, error) {
	var count int
	err := m.DB.QueryRow(
		`SELECT count(*) FROM books WHERE title ILIKE '%' || $1 || '%'`,
		substring,
	).Scan(&count)
	return count, err
}
