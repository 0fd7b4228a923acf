package handler

import (
	"github.com/locustfarm/farm-accounts/internal/core/domain"
)

type registerRequest struct {
	Email    string      `json:"email"     form:"email"     validate:"required,email,max=255"`
	FullName string      `json:"full_name" form:"full_name" validate:"required,max=255"`
	Password string      `json:"password"  form:"password"  validate:"required,max=72"`
	Role     domain.Role `json:"role"      form:"role"      validate:"omitempty,oneof=ADMIN FARMER"`
}

// loginRequest accepts a JSON body or an OAuth2 password-grant form, where
// the email travels as "username".
type loginRequest struct {
	Email    string `json:"email"    form:"email"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (r loginRequest) login() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// updateMeRequest only exposes full_name; any other key in the body is
// dropped by the decoder.
type updateMeRequest struct {
	FullName domain.Optional[string] `json:"full_name" swaggertype:"string"`
}

type createUserRequest = registerRequest

// updateUserRequest mirrors domain.UserPatch for the API docs.
type updateUserRequest struct {
	FullName     *string `json:"full_name,omitempty"`
	Role         *string `json:"role,omitempty" enums:"ADMIN,FARMER"`
	IsActive     *bool   `json:"is_active,omitempty"`
	RoleSelected *bool   `json:"role_selected,omitempty"`
}

type userResponse struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	Role         string `json:"role" enums:"ADMIN,FARMER"`
	IsActive     bool   `json:"is_active"`
	RoleSelected bool   `json:"role_selected"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}
