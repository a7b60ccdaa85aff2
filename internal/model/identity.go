package model

// Role distinguishes the two portal audiences.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// Valid reports whether the role is one of the known portal roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

// Identity is the authenticated user's profile held for the session.
// It deliberately has no password field; the JSON layout below is the
// persisted session record contract.
type Identity struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	StudentID  string `json:"studentId,omitempty"`
	Department string `json:"department,omitempty"`
	Photo      string `json:"photo,omitempty"`
}

// Credential is one entry of the static account table. The table is
// read-only at runtime; Password is compared by exact string equality.
type Credential struct {
	Identity
	Password string
}

// LoginRequest is the payload for portal authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=4,max=128"`
	Role     Role   `json:"role" binding:"required,oneof=student teacher"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}
