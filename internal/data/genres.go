// internal/data/genres.go
package data

import (
	"database/sql"

	"github.com/avelichko/locallibrary/internal/validator"
)

// Genre represents a book genre (e.g. Science Fiction, French Poetry).
type Genre struct {
	ID   int64  `json:"id"`   // Unique identifier assigned by the database
	Name string `json:"name"` // Genre name
}

// ValidateGenre checks the business rules for a genre record.
func ValidateGenre(v *validator.Validator, genre *Genre) {
	v.Check(genre.Name != "", "name", "must be provided")
	v.Check(len(genre.Name) <= 200, "name", "must not be more than 200 characters long")
}

// GenreModel wraps a *sql.DB connection and provides methods for genre records.
type GenreModel struct {
	DB *sql.DB // Shared database connection pool
}

// Insert adds a new genre record to the database.
func (m GenreModel) Insert(genre *Genre) error {
	err := m.DB.QueryRow(
		`INSERT INTO genres (name) VALUES ($1) RETURNING id`,
		genre.Name,
	).Scan(&genre.ID)
	if err != nil {
		return translateWriteError(err)
	}
	return nil
}

// GetAll retrieves every genre, ordered by name.
func (m GenreModel) GetAll() ([]*Genre, error) {
	rows, err := m.DB.Query(`SELECT id, name FROM genres ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := []*Genre{}
	for rows.Next() {
		var genre Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			return nil, err
		}
		genres = append(genres, &genre)
	}
	return genres, rows.Err()
}

// CountNameContains returns the number of genres whose name contains the
// given substring, case-insensitively.
func (m GenreModel) CountNameContains(substring string) (int, error) {
	var count int
	err := m.DB.QueryRow(
		`SELECT count(*) FROM genres WHERE name ILIKE '%' || $1 || '%'`,
		substring,
	).Scan(&count)
	return count, err
}
