package models

// Roles recognized by the platform. Admins and censors moderate; censors
// cannot manage other users' content outside the moderation queue.
const (
	RoleUser   = "user"
	RoleAdmin  = "admin"
	RoleCensor = "censor"
)

// Principal is the authenticated actor behind a request, as supplied by
// the auth boundary. The core trusts it unchecked.
type Principal struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// IsModerator reports whether the principal may run the moderation queue.
func (p Principal) IsModerator() bool {
	return p.Role == RoleAdmin || p.Role == RoleCensor
}
