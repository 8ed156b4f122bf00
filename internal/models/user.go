package models

// User is the authenticated account as reported by the user service.
type User struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == "ROLE_ADMIN" {
			return true
		}
	}
	return false
}
