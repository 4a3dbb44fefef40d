package entity

type UserRole string

const (
	RoleAgency UserRole = "agency"
	RoleAdmin  UserRole = "admin"
)

// User is an agency account or an administrator. Agencies own reservations.
type User struct {
	BaseNoDelete
	Name     string   `db:"name"`
	Email    string   `db:"email"`
	Phone    *string  `db:"phone"`
	Role     UserRole `db:"role"`
	IsActive bool     `db:"is_active"`
}
