package entity

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// Valid reports whether the role is one of the known tiers.
func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	// AdminPasswordHash holds the bcrypt of the gate-code supplied at admin
	// signup. NULL for regular users.
	AdminPasswordHash *string  `db:"admin_password"`
	Role              UserRole `db:"role"`
	Phone             *string  `db:"phone"`
	Description       *string  `db:"description"`
	ProfilePhoto      *string  `db:"profile_photo"`
}
