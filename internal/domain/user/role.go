package user

import (
	"fmt"
	"strings"
)

// ===============================
// Roles
// ===============================

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleGuest   Role = "GUEST"
)

// Roles lists every role in declaration order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleGuest}
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleGuest:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole accepts the persisted spelling only.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// RoleListMessage is the validation message for an unknown role.
func RoleListMessage() string {
	names := make([]string, 0, len(Roles()))
	for _, r := range Roles() {
		names = append(names, string(r))
	}
	return fmt.Sprintf("Role must be one of the following: %s.", strings.Join(names, ", "))
}
