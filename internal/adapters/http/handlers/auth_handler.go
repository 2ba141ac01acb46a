package handlers

import (
	"errors"
	"strings"

	"abonizera-api/internal/core/services"
	"abonizera-api/internal/pkg/response"
	"abonizera-api/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles end-user signup, login and PIN reset
type AuthHandler struct {
	userService *services.UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// SignupRequest represents the user signup request body
type SignupRequest struct {
	Amazina      string `json:"amazina"`
	RefTelephone string `json:"ref_telephone"`
	AhoUherereye string `json:"aho_uherereye"`
	Telephone    string `json:"telephone"`
	Pin          string `json:"pin"`
}

// LoginRequest represents the user login request body
type LoginRequest struct {
	Telephone string `json:"telephone"`
	Pin       string `json:"pin"`
}

// ForgotPasswordRequest represents the forgot-password request body
type ForgotPasswordRequest struct {
	Telephone string `json:"telephone"`
}

// ResetPasswordRequest represents the reset-password request body
type ResetPasswordRequest struct {
	Telephone   string `json:"telephone"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// Signup handles end-user registration
// @Summary Register user
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body SignupRequest true "Signup data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Amazina == "" || req.RefTelephone == "" || req.Telephone == "" || req.Pin == "" {
		return response.BadRequest(c, "Ubutumwa burahari!")
	}
	if !validate.Pin(req.Pin) {
		return response.BadRequest(c, "PIN igomba kuba imibare 4!")
	}
	if !validate.Telephone(req.Telephone) {
		return response.BadRequest(c, "Telephone igomba kuba 10 imibare (07...)!")
	}

	user, err := h.userService.Signup(c.Context(), services.UserSignupInput{
		Amazina:      strings.TrimSpace(req.Amazina),
		RefTelephone: strings.TrimSpace(req.RefTelephone),
		AhoUherereye: strings.TrimSpace(req.AhoUherereye),
		Telephone:    req.Telephone,
		Pin:          req.Pin,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTelephoneTaken):
			return response.BadRequest(c, "Telephone yamaze kwandikwa!")
		default:
			return response.InternalServerError(c, "Ikosa mu kubika amakuru!")
		}
	}

	return response.Created(c, "Umukoresha yanditswe neza!", user)
}

// Login handles end-user login
// @Summary Login user
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Telephone == "" || req.Pin == "" {
		return response.BadRequest(c, "Telephone na PIN byarahari!")
	}
	if !validate.Pin(req.Pin) {
		return response.BadRequest(c, "PIN igomba kuba imibare 4!")
	}

	user, sessionID, err := h.userService.Login(c.Context(), req.Telephone, req.Pin)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.BadRequest(c, "Telephone ntibonetse!")
		case errors.Is(err, services.ErrInvalidPin):
			return response.BadRequest(c, "PIN siyo!")
		case errors.Is(err, services.ErrUserDisabled):
			return response.BadRequest(c, "Konti yawe yarafunzwe!")
		default:
			return response.InternalServerError(c, "Ikosa mu kureba umukoresha!")
		}
	}

	return response.Success(c, "Winjiye neza!", fiber.Map{
		"user":      user,
		"sessionId": sessionID,
	})
}

// ForgotPassword stores a PIN reset token and sends it by SMS
// @Summary Request PIN reset token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body ForgotPasswordRequest true "Telephone"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if !validate.Telephone(req.Telephone) {
		return response.BadRequest(c, "Telephone igomba kuba 10 imibare (07...)!")
	}

	if err := h.userService.ForgotPassword(c.Context(), req.Telephone); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "Ntawanditswe muri telephone iyo!")
		default:
			return response.InternalServerError(c, "Ikosa mu kubika token!")
		}
	}

	// the token travels over SMS only, never in the response
	return response.Success(c, "Token yo guhindura PIN yoherejwe ku number yawe!", nil)
}

// ResetPassword sets a new PIN given a valid reset token
// @Summary Reset PIN
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body ResetPasswordRequest true "Reset data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if !validate.Pin(req.NewPassword) {
		return response.BadRequest(c, "PIN nshya igomba kuba imibare 4!")
	}
	if req.Telephone == "" || req.Token == "" {
		return response.BadRequest(c, "Telephone na token bya ngombwa!")
	}

	if err := h.userService.ResetPassword(c.Context(), req.Telephone, req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrResetTokenInvalid):
			return response.BadRequest(c, "Token ntabwo ari yo cyanga ntiyarangije!")
		default:
			return response.InternalServerError(c, "Ikosa mu kubika PIN nshya!")
		}
	}

	return response.Success(c, "PIN nshya yashizweho neza!", nil)
}
