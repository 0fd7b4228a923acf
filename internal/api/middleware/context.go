package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/locustfarm/farm-accounts/internal/core/domain"
)

const currentUserKey = "current_user"

// SetCurrentUser stores the authenticated user on the request context.
func SetCurrentUser(c echo.Context, u *domain.User) {
	c.Set(currentUserKey, u)
}

// CurrentUser returns the user injected by Auth, if any.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	u, ok := c.Get(currentUserKey).(*domain.User)
	return u, ok && u != nil
}
