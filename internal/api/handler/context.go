package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mazadio/auction-system/internal/core/domain"
)

// currentUser extracts the account injected by the Auth middleware. Handlers
// behind Auth treat its absence as a broken chain and fail closed.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

// viewer returns the account when one is present and nil for anonymous
// requests. Used behind OptionalAuth.
func viewer(c echo.Context) *domain.User {
	user, _ := c.Get("user").(*domain.User)
	return user
}
