package domain

// Role names stored in user_roles. Roles are a set per user, not a single
// column; registration grants RoleUser, the seed grants RoleAdmin.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

type User struct {
	ID        int64   `json:"id" db:"id"`
	Username  string  `json:"username" db:"username"`
	Email     string  `json:"email" db:"email"`
	Password  string  `json:"-" db:"password"`
	CreatedAt string  `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt *string `json:"updated_at,omitempty" db:"updated_at"`
}

// Profile is the response-shaped view of a user returned by the auth
// endpoints. The password hash never leaves the service layer.
type Profile struct {
	ID       int64    `json:"id"`
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}
