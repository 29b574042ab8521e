package model

// RoleKind enumerates the role kinds a user may hold. Diner is the
// default role granted at registration, Franchisee is scoped to a
// single franchise via UserRole.ObjectID, and Admin is global.
type RoleKind string

const (
	RoleDiner      RoleKind = "diner"
	RoleFranchisee RoleKind = "franchisee"
	RoleAdmin      RoleKind = "admin"
)

// UserRole is one role-binding attached to a user. For franchisee
// bindings Object carries the franchise name on input (registration
// payloads reference franchises by name) and ObjectID the resolved
// franchise id once persisted. Both are zero for unscoped roles.
type UserRole struct {
	Role     RoleKind `json:"role"`
	Object   string   `json:"object,omitempty"`
	ObjectID uint64   `json:"objectId,omitempty"`
}

// User mirrors the 'user' table plus its role-bindings from 'userRole'.
// Password holds the plaintext only on input; repositories clear it
// before returning a user and never expose the stored hash.
type User struct {
	ID       uint64     `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password,omitempty"`
	Roles    []UserRole `json:"roles"`
}

// IsRole reports whether the user holds the given role kind. Admin
// passes every check regardless of the requested kind.
func (u *User) IsRole(kind RoleKind) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r.Role == RoleAdmin || r.Role == kind {
			return true
		}
	}
	return false
}

// AdministersFranchise reports whether the user may manage the given
// franchise: global admins always, franchisees only when one of their
// bindings is scoped to that franchise id.
func (u *User) AdministersFranchise(franchiseID uint64) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r.Role == RoleAdmin {
			return true
		}
		if r.Role == RoleFranchisee && r.ObjectID == franchiseID {
			return true
		}
	}
	return false
}

// MaySeeUser reports whether the caller may read or update the target
// user's record. Self access is always allowed, everything else is
// admin only.
func (u *User) MaySeeUser(userID uint64) bool {
	if u == nil {
		return false
	}
	return u.ID == userID || u.IsRole(RoleAdmin)
}
