package domain

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidRole        = errors.New("role must be ADMIN or FARMER")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrAccountInactive    = errors.New("user account is inactive")
	ErrUnauthorized       = errors.New("could not validate credentials")
	ErrForbidden          = errors.New("not enough permissions")
	ErrSelfProtection     = errors.New("operation not allowed on your own account")
)

// Token verification failures. Callers that only care about "bad token"
// should match ErrUnauthorized, which AuthService wraps around these.
var (
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenInvalidSignature = errors.New("token signature invalid")
)

// Self-protection refusals for an admin acting on their own account.
var (
	ErrCannotDeactivateSelf error = selfProtectionError("cannot deactivate your own account")
	ErrCannotDeleteSelf     error = selfProtectionError("cannot delete your own account")
)

type selfProtectionError string

func (e selfProtectionError) Error() string { return string(e) }

func (e selfProtectionError) Unwrap() error { return ErrSelfProtection }

// ValidationError carries a caller-facing message and matches ErrValidation.
type ValidationError struct {
	Msg string
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrValidation }
