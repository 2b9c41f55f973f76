package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mazadio/auction-system/internal/core/domain"
)

// RequireRoles enforces role-based access control. It must run after Auth.
func RequireRoles(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(userContextKey).(*domain.User)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if _, ok := allowed[user.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

// RequireAdmin admits admin and superadmin accounts only.
func RequireAdmin() echo.MiddlewareFunc {
	return RequireRoles(domain.RoleAdmin, domain.RoleSuperadmin)
}
