package domain

import "time"

// User models an account holder of the farm management system.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	RoleSelected bool      `json:"role_selected"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserPatch is a partial update. Only present fields are applied.
type UserPatch struct {
	FullName     Optional[string] `json:"full_name"`
	Role         Optional[Role]   `json:"role"`
	IsActive     Optional[bool]   `json:"is_active"`
	RoleSelected Optional[bool]   `json:"role_selected"`
}

// IsEmpty reports whether the patch carries no field to apply.
func (p UserPatch) IsEmpty() bool {
	return !p.FullName.Present() && !p.Role.Present() && !p.IsActive.Present() && !p.RoleSelected.Present()
}

// Validate rejects explicit nulls: none of the patchable columns is nullable.
func (p UserPatch) Validate() error {
	switch {
	case p.FullName.IsNull():
		return NewValidationError("full_name must not be null")
	case p.Role.IsNull():
		return NewValidationError("role must not be null")
	case p.IsActive.IsNull():
		return NewValidationError("is_active must not be null")
	case p.RoleSelected.IsNull():
		return NewValidationError("role_selected must not be null")
	}
	if v, ok := p.FullName.Get(); ok && v == "" {
		return NewValidationError("full_name must not be empty")
	}
	return nil
}

// Apply copies the present fields of the patch onto u.
func (p UserPatch) Apply(u *User) {
	if v, ok := p.FullName.Get(); ok {
		u.FullName = v
	}
	if v, ok := p.Role.Get(); ok {
		u.Role = v
	}
	if v, ok := p.IsActive.Get(); ok {
		u.IsActive = v
	}
	if v, ok := p.RoleSelected.Get(); ok {
		u.RoleSelected = v
	}
}
