package auth

import "github.com/BruksfildServices01/barber-admin/internal/domain/user"

// Principal is the identity attached to an authenticated request.
type Principal struct {
	UserID uint
	Role   user.Role
}

// AllowList is the set of roles a route accepts. The zero value accepts any
// authenticated principal.
type AllowList []user.Role

func Roles(roles ...user.Role) AllowList {
	return AllowList(roles)
}

func (al AllowList) Permits(p Principal) bool {
	if len(al) == 0 {
		return true
	}
	for _, r := range al {
		if r == p.Role {
			return true
		}
	}
	return false
}
