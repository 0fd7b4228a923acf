package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locustfarm/farm-accounts/internal/api/middleware"
	"github.com/locustfarm/farm-accounts/internal/core/domain"
)

// currentUser returns the user injected by the Auth middleware. A missing
// user means the route was registered without Auth, so reject with 401.
func currentUser(c echo.Context) (*domain.User, error) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return u, nil
}
