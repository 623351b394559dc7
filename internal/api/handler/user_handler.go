package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/shop-api/internal/api/metrics"
	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Credentials and optional email"
// @Success      201   {object}  Response
// @Failure      400   {object}  Response
// @Router       /api/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	created, err := h.users.RegisterWithEmail(c.Request().Context(), req.Username, req.Password, req.Email)
	metrics.RegistrationsTotal.WithLabelValues(metrics.Result(created, err)).Inc()
	if err != nil {
		return err
	}
	if !created {
		return fail(c, http.StatusBadRequest, "registration failed: username is taken or invalid")
	}
	return ok(c, http.StatusCreated, "user registered", nil)
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  Response{data=loginResponse}
// @Failure      401   {object}  Response
// @Router       /api/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error())
	}

	token, loggedIn, err := h.users.Login(c.Request().Context(), req.Username, req.Password)
	metrics.LoginsTotal.WithLabelValues(metrics.Result(loggedIn, err)).Inc()
	if err != nil {
		return err
	}
	if !loggedIn {
		return fail(c, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error())
	}
	return ok(c, http.StatusOK, "login successful", loginResponse{
		Token:    token,
		Username: domain.UsernameKey(req.Username),
	})
}

// Logout ends the session carried by the request.
//
// @Summary      Logout
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response
// @Failure      401  {object}  Response
// @Router       /api/logout [post]
func (h *UserHandler) Logout(c echo.Context) error {
	token, _ := c.Get(CtxToken).(string)
	removed, err := h.users.Logout(c.Request().Context(), token)
	if err != nil {
		return err
	}
	if !removed {
		return fail(c, http.StatusUnauthorized, "session not found")
	}
	metrics.LogoutsTotal.Inc()
	return ok(c, http.StatusOK, "logged out", nil)
}

// GetProfile returns the caller's account.
//
// @Summary      Get profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=domain.User}
// @Failure      404  {object}  Response
// @Router       /api/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	username, err := sessionUser(c)
	if err != nil {
		return err
	}
	user, err := h.users.GetProfile(c.Request().Context(), username)
	if err != nil {
		return err
	}
	if user == nil || !user.Active {
		return fail(c, http.StatusNotFound, "user not found")
	}
	return ok(c, http.StatusOK, "profile retrieved", user)
}

// UpdateProfile changes the caller's password.
//
// @Summary      Update profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "New password"
// @Success      200   {object}  Response
// @Failure      400   {object}  Response
// @Router       /api/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	username, err := sessionUser(c)
	if err != nil {
		return err
	}
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	updated, err := h.users.UpdateProfile(c.Request().Context(), username, req.Password)
	if err != nil {
		return err
	}
	if !updated {
		return fail(c, http.StatusBadRequest, "profile update failed")
	}
	return ok(c, http.StatusOK, "profile updated", nil)
}

// DeleteProfile deactivates the caller's account and ends the current session.
//
// @Summary      Delete profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response
// @Failure      404  {object}  Response
// @Router       /api/profile [delete]
func (h *UserHandler) DeleteProfile(c echo.Context) error {
	username, err := sessionUser(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	deleted, err := h.users.DeleteProfile(ctx, username)
	if err != nil {
		return err
	}
	if !deleted {
		return fail(c, http.StatusNotFound, "user not found")
	}
	if token, _ := c.Get(CtxToken).(string); token != "" {
		if _, err := h.users.Logout(ctx, token); err != nil {
			return err
		}
	}
	return ok(c, http.StatusOK, "profile deleted", nil)
}

// ListUsers returns every active account.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     AdminJWT
// @Success      200  {object}  Response{data=[]domain.User}
// @Router       /api/admin/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.users.GetAllUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "users retrieved", users)
}
