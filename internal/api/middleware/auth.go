package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/mazadio/auction-system/internal/core/domain"
	"github.com/mazadio/auction-system/internal/core/ports"
)

const userContextKey = "user"

// Auth validates the bearer token, loads the account it names and injects it
// into the request context. Inactive and blocked accounts are rejected even
// when their token is still valid.
func Auth(jwtSecret string, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := authenticate(c, jwtSecret, users)
			if err != nil {
				return err
			}
			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// OptionalAuth loads the account when a bearer token is supplied and leaves
// the context anonymous otherwise. Used on public reads that reveal more to
// owners and admins.
func OptionalAuth(jwtSecret string, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return next(c)
			}
			user, err := authenticate(c, jwtSecret, users)
			if err != nil {
				return err
			}
			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

func authenticate(c echo.Context, jwtSecret string, users ports.UserRepository) (*domain.User, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
	}

	user, err := users.FindByID(c.Request().Context(), sub)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unknown account")
	}
	if !user.CanAccess() {
		return nil, echo.NewHTTPError(http.StatusForbidden, "account is not active")
	}
	return user, nil
}
