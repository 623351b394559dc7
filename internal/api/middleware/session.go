package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/shop-api/internal/api/handler"
)

// SessionResolver maps a session token to its username.
type SessionResolver interface {
	GetUsernameFromSession(ctx context.Context, token string) (string, bool, error)
}

// Session requires a live session token as bearer credential. The resolved
// username and the token itself are stored under handler.CtxUsername and
// handler.CtxToken.
func Session(resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}

			username, ok, err := resolver.GetUsernameFromSession(c.Request().Context(), token)
			if err != nil {
				return err
			}
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}

			c.Set(handler.CtxUsername, username)
			c.Set(handler.CtxToken, token)
			return next(c)
		}
	}
}
