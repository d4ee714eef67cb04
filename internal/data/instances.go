// internal/data/instances.go
// A BookInstance is one physical, individually-tracked copy of a book: the
// thing a patron actually borrows. Copies move through a small status
// lifecycle (maintenance, available, on-loan, reserved) and carry a due-back
// date and borrower only while they are out on loan.
package data

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avelichko/locallibrary/internal/validator"
)

// InstanceStatus is the loan status of a single copy.
type InstanceStatus string

const (
	StatusMaintenance InstanceStatus = "maintenance"
	StatusOnLoan      InstanceStatus = "on-loan"
	StatusAvailable   InstanceStatus = "available"
	StatusReserved    InstanceStatus = "reserved"
)

var validInstanceStatuses = map[InstanceStatus]bool{
	StatusMaintenance: true,
	StatusOnLoan:      true,
	StatusAvailable:   true,
	StatusReserved:    true,
}

// ValidInstanceStatus reports whether s is one of the four known statuses.
func ValidInstanceStatus(s InstanceStatus) bool {
	return validInstanceStatuses[s]
}

// Renewal window: a librarian may push a copy's due-back date anywhere from
// today up to four weeks out, with three weeks as the proposed default.
const (
	maxRenewalDays      = 28
	proposedRenewalDays = 21
)

// BookInstance represents a specific borrowable copy of a book.
// BookID and BorrowerID are nullable references: deleting the book or the
// borrowing user nulls them out rather than deleting the copy.
type BookInstance struct {
	ID         uuid.UUID      `json:"id"`          // Globally unique identifier for this copy
	BookID     *int64         `json:"book_id"`     // Referenced book, nil when unset or book deleted
	Imprint    string         `json:"imprint"`     // Publisher imprint/edition details
	DueBack    *Date          `json:"due_back"`    // Date the copy is due back, set while on loan
	BorrowerID *int64         `json:"borrower_id"` // User the copy is lent to, set while on loan
	Status     InstanceStatus `json:"status"`      // Current loan status
	Overdue    bool           `json:"is_overdue"`  // Derived: due_back is set and already passed
}

// IsOverdueOn reports whether the copy is overdue as of the given day:
// true iff a due-back date is set and falls strictly before that day.
func (i *BookInstance) IsOverdueOn(day Date) bool {
	return i.DueBack != nil && i.DueBack.Before(day)
}

// deriveOverdue refreshes the Overdue field against today's date.
func (i *BookInstance) deriveOverdue() {
	i.Overdue = i.IsOverdueOn(DateOf(time.Now()))
}

// applyDefaultStatus puts a freshly created copy into maintenance when the
// caller did not name a status, matching the catalog's creation rule.
func (i *BookInstance) applyDefaultStatus() {
	if i.Status == "" {
		i.Status = StatusMaintenance
	}
}

// ValidateBookInstance checks the business rules for a copy record.
// A due-back date is required while the copy is on loan and meaningless enough
// otherwise that its absence is not an error.
func ValidateBookInstance(v *validator.Validator, instance *BookInstance) {
	v.Check(instance.Imprint != "", "imprint", "must be provided")
	v.Check(len(instance.Imprint) <= 200, "imprint", "must not be more than 200 characters long")
	v.Check(ValidInstanceStatus(instance.Status), "status", "must be one of maintenance, on-loan, available or reserved")

	if instance.Status == StatusOnLoan {
		v.Check(instance.DueBack != nil, "due_back", "must be provided while the copy is on loan")
	}
}

// ValidateRenewalDate applies the renewal window rules to a proposed due-back
// date: it must not be in the past and must not be more than four weeks after
// today. Every entry point that accepts a renewal date funnels through this
// one function so the rules cannot diverge.
func ValidateRenewalDate(v *validator.Validator, today, date Date) {
	v.Check(!date.Before(today), "due_back", "invalid date - renewal in past")
	v.Check(!date.After(Date{today.AddDate(0, 0, maxRenewalDays)}), "due_back", "invalid date - renewal more than 4 weeks ahead")
}

// ProposedRenewalDate returns the default due-back date offered when a
// renewal form is first shown: three weeks from today.
func ProposedRenewalDate(today Date) Date {
	return Date{today.AddDate(0, 0, proposedRenewalDays)}
}

// BookInstanceModel wraps a *sql.DB connection and provides methods for
// creating, reading, updating, and deleting copy records, plus the loan
// listing queries used by patrons and librarians.
type BookInstanceModel struct {
	DB *sql.DB // Shared database connection pool
}

// instanceColumns is the SELECT list shared by every copy read query.
const instanceColumns = `id, book_id, imprint, due_back, borrower_id, status`

// scanInstance scans one row produced with instanceColumns and derives the
// overdue flag.
func scanInstance(row interface{ Scan(...any) error }, instance *BookInstance) error {
	err := row.Scan(
		&instance.ID,
		&instance.BookID,
		&instance.Imprint,
		&instance.DueBack,
		&instance.BorrowerID,
		&instance.Status,
	)
	if err != nil {
		return err
	}
	instance.deriveOverdue()
	return nil
}

// Insert adds a new copy record to the database. The id is generated here
// (not by the database) so it can be logged before the write, and the status
// defaults to maintenance when the caller left it empty.
func (m BookInstanceModel) Insert(instance *BookInstance) error {
	if instance.ID == uuid.Nil {
		instance.ID = uuid.New()
	}
	instance.applyDefaultStatus()

	query := `
		INSERT INTO book_instances (id, book_id, imprint, due_back, borrower_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := m.DB.Exec(
		query,
		instance.ID,
		instance.BookID,
		instance.Imprint,
		dateArg(instance.DueBack),
		instance.BorrowerID,
		instance.Status,
	)
	if err != nil {
		return translateWriteError(err)
	}
	instance.deriveOverdue()
	return nil
}

// Get retrieves a single copy by its UUID.
// Returns ErrRecordNotFound if no copy with the given id exists.
func (m BookInstanceModel) Get(id uuid.UUID) (*BookInstance, error) {
	query := fmt.Sprintf(`SELECT %s FROM book_instances WHERE id = $1`, instanceColumns)

	var instance BookInstance
	err := scanInstance(m.DB.QueryRow(query, id), &instance)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &instance, nil
}

// Update saves the modified fields of instance back to the database.
// Returns ErrRecordNotFound if the copy no longer exists.
func (m BookInstanceModel) Update(instance *BookInstance) error {
	query := `
		UPDATE book_instances
		SET book_id = $1, imprint = $2, due_back = $3, borrower_id = $4, status = $5
		WHERE id = $6`

	result, err := m.DB.Exec(
		query,
		instance.BookID,
		instance.Imprint,
		dateArg(instance.DueBack),
		instance.BorrowerID,
		instance.Status,
		instance.ID,
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
	instance.deriveOverdue()
	return nil
}

// Delete removes the copy with the given id from the database.
// Returns ErrRecordNotFound if no matching record exists.
func (m BookInstanceModel) Delete(id uuid.UUID) error {
	result, err := m.DB.Exec(`DELETE FROM book_instances WHERE id = $1`, id)
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

// AllOnLoan retrieves a paginated list of every copy currently on loan to any
// borrower, ordered ascending by due-back date (nulls first). This is the
// librarian-only all-loans listing.
func (m BookInstanceModel) AllOnLoan(filters Filters) ([]*BookInstance, Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), %s
		FROM book_instances
		WHERE status = $1
		ORDER BY due_back ASC NULLS FIRST, id ASC
		LIMIT $2 OFFSET $3`, instanceColumns)

	rows, err := m.DB.Query(query, StatusOnLoan, filters.limit(), filters.offset())
	if err != nil {
		return nil, Metadata{}, err
	}
	defer rows.Close()

	totalRecords := 0
	instances := []*BookInstance{}

	for rows.Next() {
		var instance BookInstance
		err := rows.Scan(
			&totalRecords,
			&instance.ID,
			&instance.BookID,
			&instance.Imprint,
			&instance.DueBack,
			&instance.BorrowerID,
			&instance.Status,
		)
		if err != nil {
			return nil, Metadata{}, err
		}
		instance.deriveOverdue()
		instances = append(instances, &instance)
	}
	if err = rows.Err(); err != nil {
		return nil, Metadata{}, err
	}

	metadata := calculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return instances, metadata, nil
}

// OnLoanToUser retrieves every copy currently on loan to the given user,
// ordered ascending by due-back date. This backs the "my borrowed books" view.
func (m BookInstanceModel) OnLoanToUser(userID int64) ([]*BookInstance, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM book_instances
		WHERE status = $1 AND borrower_id = $2
		ORDER BY due_back ASC NULLS FIRST, id ASC`, instanceColumns)

	rows, err := m.DB.Query(query, StatusOnLoan, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	instances := []*BookInstance{}
	for rows.Next() {
		var instance BookInstance
		if err := scanInstance(rows, &instance); err != nil {
			return nil, err
		}
		instances = append(instances, &instance)
	}
	return instances, rows.Err()
}

// Count returns the total number of copies in the catalog.
func (m BookInstanceModel) Count() (int, error) {
	var count int
	err := m.DB.QueryRow(`SELECT count(*) FROM book_instances`).Scan(&count)
	return count, err
}

// CountByStatus returns the number of copies currently in the given status.
func (m BookInstanceModel) CountByStatus(status InstanceStatus) (int, error) {
	var count int
	err := m.DB.QueryRow(`SELECT count(*) FROM book_instances WHERE status = $1`, status).Scan(&count)
	return count, err
}

// AvailableCount returns the number of available copies of a specific book.
// Used by the book detail view's availability display.
func (m BookInstanceModel) AvailableCount(bookID int64) (int, error) {
	var count int
	err := m.DB.QueryRow(
		`SELECT count(*) FROM book_instances WHERE book_id = $1 AND status = $2`,
		bookID,
		StatusAvailable,
	).Scan(&count)
	return count, err
}
