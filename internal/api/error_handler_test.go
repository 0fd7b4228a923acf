package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/locustfarm/farm-accounts/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", domain.NewValidationError("skip must not be negative"), http.StatusBadRequest, "skip must not be negative"},
		{"duplicate", domain.ErrDuplicateEmail, http.StatusBadRequest, "email already registered"},
		{"self delete", domain.ErrCannotDeleteSelf, http.StatusBadRequest, "cannot delete your own account"},
		{"bad role in bind", echo.NewHTTPError(http.StatusBadRequest, `role must be ADMIN or FARMER: "X"`).SetInternal(fmt.Errorf("%w: %q", domain.ErrInvalidRole, "X")), http.StatusBadRequest, `role must be ADMIN or FARMER: "X"`},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "incorrect email or password"},
		{"token", fmt.Errorf("%w: %w", domain.ErrUnauthorized, domain.ErrTokenExpired), http.StatusUnauthorized, "could not validate credentials"},
		{"inactive", domain.ErrAccountInactive, http.StatusForbidden, "user account is inactive"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "not enough permissions"},
		{"not found", fmt.Errorf("get: %w", domain.ErrUserNotFound), http.StatusNotFound, "user not found"},
		{"echo", echo.NewHTTPError(http.StatusUnauthorized, "not authenticated"), http.StatusUnauthorized, "not authenticated"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if got := errorMessage(t, rec); got != tc.msg {
				t.Fatalf("expected message %q, got %q", tc.msg, got)
			}
			hasChallenge := rec.Header().Get(echo.HeaderWWWAuthenticate) == "Bearer"
			if hasChallenge != (tc.code == http.StatusUnauthorized) {
				t.Fatalf("WWW-Authenticate presence mismatch for %d", tc.code)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.NoContent(http.StatusNoContent)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("committed response must not be rewritten, got %d", rec.Code)
	}
}
