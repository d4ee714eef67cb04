// internal/data/authors.go
package data

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/avelichko/locallibrary/internal/validator"
)

// Author represents an author record. Birth and death dates are optional.
type Author struct {
	ID          int64  `json:"id"`            // Unique identifier assigned by the database
	FirstName   string `json:"first_name"`    // Author's first name
	LastName    string `json:"last_name"`     // Author's last name
	DateOfBirth *Date  `json:"date_of_birth"` // Optional date of birth
	DateOfDeath *Date  `json:"date_of_death"` // Optional date of death
}

// ValidateAuthor checks the business rules for an author record.
// When both dates are present the death date must not precede the birth date.
func ValidateAuthor(v *validator.Validator, author *Author) {
	v.Check(author.FirstName != "", "first_name", "must be provided")
	v.Check(len(author.FirstName) <= 100, "first_name", "must not be more than 100 characters long")
	v.Check(author.LastName != "", "last_name", "must be provided")
	v.Check(len(author.LastName) <= 100, "last_name", "must not be more than 100 characters long")

	if author.DateOfBirth != nil && author.DateOfDeath != nil {
		v.Check(!author.DateOfDeath.Before(*author.DateOfBirth), "date_of_death", "must not precede the date of birth")
	}
}

// AuthorModel wraps a *sql.DB connection and provides methods for
// creating, reading, updating, and deleting author records.
type AuthorModel struct {
	DB *sql.DB // Shared database connection pool
}

// Insert adds a new author record to the database.
// The database-assigned id is written back into the struct.
func (m AuthorModel) Insert(author *Author) error {
	query := `
		INSERT INTO authors (first_name, last_name, date_of_birth, date_of_death)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := m.DB.QueryRow(
		query,
		author.FirstName,
		author.LastName,
		dateArg(author.DateOfBirth),
		dateArg(author.DateOfDeath),
	).Scan(&author.ID)
	if err != nil {
		return translateWriteError(err)
	}
	return nil
}

// Get retrieves a single author by primary key.
// Returns ErrRecordNotFound if no author with the given id exists.
func (m AuthorModel) Get(id int64) (*Author, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `
		SELECT id, first_name, last_name, date_of_birth, date_of_death
		FROM authors
		WHERE id = $1`

	var author Author
	err := m.DB.QueryRow(query, id).Scan(
		&author.ID,
		&author.FirstName,
		&author.LastName,
		&author.DateOfBirth,
		&author.DateOfDeath,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &author, nil
}

// GetAll retrieves a paginated, sorted list of authors.
func (m AuthorModel) GetAll(filters Filters) ([]*Author, Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), id, first_name, last_name, date_of_birth, date_of_death
		FROM authors
		ORDER BY %s %s, id ASC
		LIMIT $1 OFFSET $2`, filters.sortColumn(), filters.sortDirection())

	rows, err := m.DB.Query(query, filters.limit(), filters.offset())
	if err != nil {
		return nil, Metadata{}, err
	}
	defer rows.Close()

	totalRecords := 0
	authors := []*Author{}

	for rows.Next() {
		var author Author
		err := rows.Scan(
			&totalRecords,
			&author.ID,
			&author.FirstName,
			&author.LastName,
			&author.DateOfBirth,
			&author.DateOfDeath,
		)
		if err != nil {
			return nil, Metadata{}, err
		}
		authors = append(authors, &author)
	}
	if err = rows.Err(); err != nil {
		return nil, Metadata{}, err
	}

	metadata := calculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return authors, metadata, nil
}

// Update saves the modified fields of author back to the database.
// Returns ErrRecordNotFound if the author no longer exists.
func (m AuthorModel) Update(author *Author) error {
	query := `
		UPDATE authors
		SET first_name = $1, last_name = $2, date_of_birth = $3, date_of_death = $4
		WHERE id = $5`

	result, err := m.DB.Exec(
		query,
		author.FirstName,
		author.LastName,
		dateArg(author.DateOfBirth),
		dateArg(author.DateOfDeath),
		author.ID,
	)
	if err != nil {
		return translateWriteError(err)
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

// Delete removes the author with the given id. Books that reference the
// author keep existing with a null author reference (no cascade).
// Returns ErrRecordNotFound if no matching record exists.
func (m AuthorModel) Delete(id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}

	result, err := m.DB.Exec(`DELETE FROM authors WHERE id = $1`, id)
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

// Count returns the total number of authors in the catalog.
func (m AuthorModel) Count() (int, error) {
	var count int
	err := m.DB.QueryRow(`SELECT count(*) FROM authors`).Scan(&count)
	return count, err
}

// dateArg converts an optional Date into a driver-friendly argument,
// mapping nil to SQL NULL.
func dateArg(d *Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}
