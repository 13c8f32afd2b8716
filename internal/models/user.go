package models

import "time"

// UserRole represents the dashboard roles.
type UserRole string

const (
	RoleSuperuser     UserRole = "superuser"
	RoleKepalaSekolah UserRole = "kepala_sekolah"
	RoleGuru          UserRole = "guru"
	RoleKaryawan      UserRole = "karyawan"
	RoleSiswa         UserRole = "siswa"
)

// Roles lists every known role.
func Roles() []UserRole {
	return []UserRole{RoleSuperuser, RoleKepalaSekolah, RoleGuru, RoleKaryawan, RoleSiswa}
}

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	for _, known := range Roles() {
		if r == known {
			return true
		}
	}
	return false
}

// User represents an application user stored in the users table.
type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Name         string     `db:"name" json:"name"`
	Role         UserRole   `db:"role" json:"role"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}
