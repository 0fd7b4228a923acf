package domain

import "fmt"

// Role is the coarse permission tier of a user.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleFarmer Role = "FARMER"
)

// DefaultRole is assigned on self-registration when no role is given.
const DefaultRole = RoleFarmer

// ParseRole converts s into a Role, rejecting anything outside the enum.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleFarmer:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string { return string(r) }

// UnmarshalText lets encoding/json and the echo binder reject unknown roles.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r), nil
}
