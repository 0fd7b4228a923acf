package ports

import "time"

// PasswordHasher is the one-way credential hasher.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// TokenService issues and verifies signed, time-limited bearer tokens.
type TokenService interface {
	Issue(subjectID int64, ttl time.Duration) (string, time.Time, error)
	Verify(token string) (int64, error)
	TTL() time.Duration
}
