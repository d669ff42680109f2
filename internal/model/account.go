package model

import "time"

// Role is the closed set of account roles. The value stored in the
// `accounts.role` column is the string form.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// Account mirrors the `accounts` table. The json tags are omitted because
// these structs are used by the repository layer; handlers define separate
// response types with appropriate JSON tags.
//
// A self-registered account starts inactive and becomes active when its
// confirmation code is redeemed. Accounts provisioned by an admin start
// active.
type Account struct {
	ID          uint64    // accounts.id
	Username    string    // accounts.username (unique)
	Email       string    // accounts.email (unique)
	FirstName   string    // accounts.first_name
	LastName    string    // accounts.last_name
	Bio         string    // accounts.bio
	Role        Role      // accounts.role
	IsActive    bool      // accounts.is_active
	IsStaff     bool      // accounts.is_staff
	IsSuperuser bool      // accounts.is_superuser
	CreatedAt   time.Time // accounts.created_at
	UpdatedAt   time.Time // accounts.updated_at
}

// IsAdmin reports whether the account carries admin authority, either
// through the admin role or through the staff/superuser flags.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin || a.IsStaff || a.IsSuperuser
}

// IsModerator reports whether the account holds the moderator role.
func (a *Account) IsModerator() bool {
	return a.Role == RoleModerator
}

// Confirmation models an entry in the `confirmations` table. Each account
// has at most one entry holding its last issued confirmation code. The
// plain code is never stored; only a bcrypt hash.
type Confirmation struct {
	AccountID uint64    // confirmations.account_id (primary key, FK accounts.id)
	CodeHash  string    // confirmations.code_hash
	CreatedAt time.Time // confirmations.created_at
	UpdatedAt time.Time // confirmations.updated_at
}
