// Package httpapi exposes the authentication endpoints over HTTP. The
// wire shapes and status codes here are the contract the client's
// gateway is written against.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mlevkov/authgate/internal/server/auth"
	"github.com/mlevkov/authgate/internal/server/users"
)

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type sessionResponse struct {
	Message      string `json:"message"`
	UserID       int64  `json:"user_id"`
	Username     string `json:"username"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type profileResponse struct {
	UserID          int64  `json:"user_id"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	IsAuthenticated bool   `json:"is_authenticated"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) Signup(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Username and password are required"})
	}

	session, err := h.svc.Signup(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Username and password are required"})
		case errors.Is(err, users.ErrUserExists):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Username already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
	}

	return c.JSON(http.StatusCreated, sessionResponse{
		Message:      "User created successfully",
		UserID:       session.User.ID,
		Username:     session.User.Username,
		AccessToken:  session.Access,
		RefreshToken: session.Refresh,
	})
}

// Login authenticates by username or email. The identifier travels in
// the username field either way.
func (h *Handler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Username and password are required"})
	}

	session, err := h.svc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Username and password are required"})
		case errors.Is(err, auth.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Invalid credentials"})
		default:
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
	}

	return c.JSON(http.StatusOK, sessionResponse{
		Message:      "Login successful",
		UserID:       session.User.ID,
		Username:     session.User.Username,
		AccessToken:  session.Access,
		RefreshToken: session.Refresh,
	})
}

// Logout always answers 200, even when the refresh token is missing or
// cannot be revoked.
func (h *Handler) Logout(c echo.Context) error {
	var req logoutRequest
	_ = c.Bind(&req)

	h.svc.Logout(c.Request().Context(), req.RefreshToken)

	return c.JSON(http.StatusOK, messageResponse{Message: "Logout successful"})
}

func (h *Handler) Profile(c echo.Context) error {
	userID, _ := c.Get(ctxUserID).(int64)

	u, err := h.svc.Profile(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, profileResponse{
		UserID:          u.ID,
		Username:        u.Username,
		Email:           u.Email,
		IsAuthenticated: true,
	})
}
