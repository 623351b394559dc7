package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Context keys set by the session middleware.
const (
	CtxUsername = "username"
	CtxToken    = "session_token"
)

// sessionUser returns the username the session middleware resolved. Its
// absence means the route was mounted without the middleware.
func sessionUser(c echo.Context) (string, error) {
	username, _ := c.Get(CtxUsername).(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return username, nil
}
