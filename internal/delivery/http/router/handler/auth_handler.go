// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"vikrithi/internal/delivery/http/response"
	"vikrithi/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for the account credential handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// HomeView is the payload the presentation layer turns into the account
// kind's home page. View is "donor" or "recycler".
type HomeView struct {
	View string `json:"view"`
	Name string `json:"name"`
}

// ResetView points the presentation layer at the reset-password form for the
// confirmed account.
type ResetView struct {
	View     string `json:"view"`
	Name     string `json:"name"`
	UserType string `json:"userType"`
}

// MessageView carries a confirmation message for a named view.
type MessageView struct {
	View    string `json:"view"`
	Message string `json:"message"`
}

// Signup handles the account registration request.
func (h *AuthHandler) Signup(c echo.Context) error {
	input := new(usecase.SignupInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}

	output, err := h.uc.Signup(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	account := output.Account

	return response.Success(c, http.StatusCreated, HomeView{
		View: string(account.Kind),
		Name: account.Username,
	}, "Signup successful")
}

// Login handles the account login request.
func (h *AuthHandler) Login(c echo.Context) error {
	input := new(usecase.LoginInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	account := output.Account

	return response.Success(c, http.StatusOK, HomeView{
		View: string(account.Kind),
		Name: account.Username,
	}, "Login successful")
}

// ForgotPassword confirms the account and hands back the reset view.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	input := new(usecase.ForgotPasswordInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid forgot-password input")
	}

	output, err := h.uc.ForgotPassword(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, ResetView{
		View:     "resetpass",
		Name:     output.Name,
		UserType: string(output.Kind),
	}, "Proceed to password reset")
}

// ResetPassword handles the credential replacement request.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	input := new(usecase.ResetPasswordInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset-password input")
	}

	if err := h.uc.ResetPassword(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, MessageView{
		View:    "login",
		Message: "Password successfully updated!",
	}, "Password updated")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
