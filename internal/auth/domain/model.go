package domain

import "time"

// Role constants
const (
	RoleClient    = "client"
	RoleResponder = "responder"
	RoleAdmin     = "admin"
)

// ValidRoles lists the roles a user can sign up with.
var ValidRoles = []string{RoleClient, RoleResponder, RoleAdmin}

// User represents an account in the system. The bcrypt hash never leaves
// the server; json:"-" keeps it out of every response.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicUser is the subset of a user embedded into emergency request
// responses (the denormalized client/responder join).
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email"`
}

// Public returns the embeddable view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Phone:    u.Phone,
		Email:    u.Email,
	}
}

// CreateUserRequest carries signup / admin-create input.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
}

// Credentials carries a signin attempt. UsernameOrEmail matches either
// field, case-insensitively.
type Credentials struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
