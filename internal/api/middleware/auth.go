package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bloglist/bloglist-api/internal/core/domain"
)

// Context keys set by the middleware in this package.
const (
	// TokenKey holds the raw bearer token string, when one was presented.
	TokenKey = "token"
	// UserIDKey holds the authenticated user's id, when a token was resolved.
	UserIDKey = "user_id"
)

// Verifier resolves a raw token string to a user id.
type Verifier interface {
	Verify(token string) (string, error)
}

// TokenExtractor reads the Authorization header and, when it carries a bearer
// credential in the exact form "Bearer <token>", stores the raw token in the
// request context. It never fails the request by itself; resolution and
// enforcement happen in RequireUser/ResolveUser.
func TokenExtractor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				c.Set(TokenKey, parts[1])
			}
			return next(c)
		}
	}
}

// RequireUser verifies the extracted token and injects the caller's user id.
// Both an absent token and an invalid one short-circuit with 401 before the
// handler runs. Mount on routes where authentication is mandatory.
func RequireUser(verifier Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, _ := c.Get(TokenKey).(string)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrTokenMissing.Error())
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidToken) {
					return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrInvalidToken.Error())
				}
				return err
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

// ResolveUser verifies the token only when one was extracted. Absence passes
// through unauthenticated; a present-but-invalid token still fails with 401.
// Mount on routes where identity is optional but a bad token must not be
// silently ignored.
func ResolveUser(verifier Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, _ := c.Get(TokenKey).(string)
			if token == "" {
				return next(c)
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidToken) {
					return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrInvalidToken.Error())
				}
				return err
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}
