package model

const (
	RoleMember     = "member"
	RoleLeader     = "leader"
	RoleFullEditor = "full_editor"
	RoleAdmin      = "admin"
)

// roleLevels is a flat ordered hierarchy; comparison of levels is the only
// permission dispatch mechanism. Unknown roles rank below member.
var roleLevels = map[string]int{
	RoleMember:     1,
	RoleLeader:     2,
	RoleFullEditor: 3,
	RoleAdmin:      4,
}

func RoleLevel(role string) int {
	return roleLevels[role]
}

type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	IsActive     bool   `json:"is_active"`
	IsActivated  bool   `json:"is_activated"`
	Ctime        int64  `json:"ctime"`
	Mtime        int64  `json:"mtime"`
}

// HasPermission reports whether the user's role level meets requiredRole.
func (u *User) HasPermission(requiredRole string) bool {
	return RoleLevel(u.Role) >= RoleLevel(requiredRole)
}
