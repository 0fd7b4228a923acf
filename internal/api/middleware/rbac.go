package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locustfarm/farm-accounts/internal/core/domain"
	"github.com/locustfarm/farm-accounts/internal/core/ports"
)

// RBAC enforces role-based access control. It must run after Auth.
func RBAC(auth ports.AuthService, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			if err := auth.RequireRole(user, allowedRoles...); err != nil {
				return err
			}
			return next(c)
		}
	}
}
