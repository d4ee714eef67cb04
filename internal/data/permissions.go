// internal/data/permissions.go
// Permission codes gate the librarian surface. The catalog uses a single
// capability, PermissionMarkReturned, for every librarian action: catalog
// mutations, the all-loans listing, and renewals.
package data

import (
	"database/sql"

	"github.com/lib/pq"
)

// PermissionMarkReturned is the librarian capability code.
const PermissionMarkReturned = "can-mark-returned"

// Permissions holds the permission codes granted to a single user.
type Permissions []string

// Include reports whether the permission set contains the given code.
func (p Permissions) Include(code string) bool {
	for _, c := range p {
		if c == code {
			return true
		}
	}
	return false
}

// PermissionModel wraps a *sql.DB connection and provides methods for the
// permissions and users_permissions tables.
type PermissionModel struct {
	DB *sql.DB // Shared database connection pool
}

// GetAllForUser retrieves every permission code granted to the given user.
func (m PermissionModel) GetAllForUser(userID int64) (Permissions, error) {
	query := `
		SELECT permissions.code
		FROM permissions
		INNER JOIN users_permissions ON users_permissions.permission_id = permissions.id
		WHERE users_permissions.user_id = $1`

	rows, err := m.DB.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permissions Permissions
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		permissions = append(permissions, code)
	}
	return permissions, rows.Err()
}

// AddForUser grants the named permission codes to a user. Unknown codes are
// silently skipped by the subquery, so granting is idempotent over the seeded
// permission table.
func (m PermissionModel) AddForUser(userID int64, codes ...string) error {
	query := `
		INSERT INTO users_permissions (user_id, permission_id)
		SELECT $1, permissions.id FROM permissions WHERE permissions.code = ANY($2)
		ON CONFLICT DO NOTHING`

	_, err := m.DB.Exec(query, userID, pq.Array(codes))
	return err
}
