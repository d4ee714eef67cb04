// internal/data/languages.go
package data

import (
	"database/sql"

	"github.com/avelichko/locallibrary/internal/validator"
)

// Language represents the language a book is written in (e.g. English, French).
type Language struct {
	ID   int64  `json:"id"`   // Unique identifier assigned by the database
	Name string `json:"name"` // Language name
}

// ValidateLanguage checks the business rules for a language record.
func ValidateLanguage(v *validator.Validator, language *Language) {
	v.Check(language.Name != "", "name", "must be provided")
	v.Check(len(language.Name) <= 200, "name", "must not be more than 200 characters long")
}

// LanguageModel wraps a *sql.DB connection and provides methods for language records.
type LanguageModel struct {
	DB *sql.DB // Shared database connection pool
}

// Insert adds a new language record to the database.
func (m LanguageModel) Insert(language *Language) error {
	err := m.DB.QueryRow(
		`INSERT INTO languages (name) VALUES ($1) RETURNING id`,
		language.Name,
	).Scan(&language.ID)
	if err != nil {
		return translateWriteError(err)
	}
	return nil
}

// GetAll retrieves every language, ordered by name.
func (m LanguageModel) GetAll() ([]*Language, error) {
	rows, err := m.DB.Query(`SELECT id, name FROM languages ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	languages := []*Language{}
	for rows.Next() {
		var language Language
		if err := rows.Scan(&language.ID, &language.Name); err != nil {
			return nil, err
		}
		languages = append(languages, &language)
	}
	return languages, rows.Err()
}
