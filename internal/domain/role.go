package domain

// Role represents the acting user's role as asserted by the API gateway
type Role string

const (
	RoleTrainer Role = "trainer"
	RoleClient  Role = "client"
	RoleAdmin   Role = "admin"
)

// IsValidRole returns true if r is one of the known roles
func IsValidRole(r Role) bool {
	switch r {
	case RoleTrainer, RoleClient, RoleAdmin:
		return true
	default:
		return false
	}
}
