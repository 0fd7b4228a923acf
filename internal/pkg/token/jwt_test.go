package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/locustfarm/farm-accounts/internal/core/domain"
)

func newService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	svc, err := NewService("test-secret", "test-issuer", time.Minute*30, opts...)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func sign(t *testing.T, method jwt.SigningMethod, claims jwt.RegisteredClaims, key any) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return raw
}

func TestService_IssueAndVerify(t *testing.T) {
	svc := newService(t)

	signed, exp, err := svc.Issue(42, svc.TTL())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if signed == "" || !exp.After(time.Now()) {
		t.Fatalf("unexpected token %q expiring %v", signed, exp)
	}

	id, err := svc.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected subject 42, got %d", id)
	}
}

func TestService_ZeroTTLIsExpired(t *testing.T) {
	svc := newService(t)

	signed, _, err := svc.Issue(7, 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Verify(signed); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestService_ExpiresAfterTTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newService(t, WithClock(func() time.Time { return now }))

	signed, _, err := svc.Issue(7, 30*time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	now = now.Add(29 * time.Minute)
	if _, err := svc.Verify(signed); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := svc.Verify(signed); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestService_WrongSecret(t *testing.T) {
	issuer := newService(t)
	other, err := NewService("another-secret", "test-issuer", time.Hour)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	signed, _, err := issuer.Issue(1, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := other.Verify(signed); !errors.Is(err, domain.ErrTokenInvalidSignature) {
		t.Fatalf("expected ErrTokenInvalidSignature, got %v", err)
	}
}

func TestService_RejectsOtherAlgorithms(t *testing.T) {
	svc := newService(t)

	raw := sign(t, jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "1",
		Issuer:    "test-issuer",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}, jwt.UnsafeAllowNoneSignatureType)

	if _, err := svc.Verify(raw); !errors.Is(err, domain.ErrTokenInvalidSignature) {
		t.Fatalf("expected ErrTokenInvalidSignature, got %v", err)
	}
}

func TestService_GarbageIsMalformed(t *testing.T) {
	svc := newService(t)

	for _, raw := range []string{"", "not-a-token", "a.b.c", strings.Repeat("x", 4096)} {
		if _, err := svc.Verify(raw); !errors.Is(err, domain.ErrTokenMalformed) {
			t.Fatalf("token %q: expected ErrTokenMalformed, got %v", raw, err)
		}
	}
}

func TestService_NonNumericSubject(t *testing.T) {
	svc := newService(t)

	raw := sign(t, jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice@example.com",
		Issuer:    "test-issuer",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}, []byte("test-secret"))

	if _, err := svc.Verify(raw); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestService_MissingExpiry(t *testing.T) {
	svc := newService(t)

	raw := sign(t, jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "1",
		Issuer:  "test-issuer",
	}, []byte("test-secret"))

	if _, err := svc.Verify(raw); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestNewService_Defaults(t *testing.T) {
	if _, err := NewService("   ", "", time.Hour); err == nil {
		t.Fatalf("expected error for blank secret")
	}

	svc, err := NewService("secret", "", 0)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if svc.TTL() != DefaultTTL || svc.issuer != DefaultIssuer {
		t.Fatalf("expected defaults, got ttl=%v issuer=%q", svc.TTL(), svc.issuer)
	}
}
