package handlers

import (
	"errors"
	"strconv"
	"strings"

	"abonizera-api/internal/adapters/http/middleware"
	"abonizera-api/internal/core/services"
	"abonizera-api/internal/pkg/response"
	"abonizera-api/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles admin authentication, profile and user management
type AdminHandler struct {
	adminService *services.AdminService
	userService  *services.UserService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *services.AdminService, userService *services.UserService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		userService:  userService,
	}
}

// AdminSignupRequest represents the admin signup request body
type AdminSignupRequest struct {
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Password  string `json:"password"`
}

// AdminLoginRequest represents the admin login request body
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest represents the admin profile update request body
type UpdateProfileRequest struct {
	Email           string `json:"email"`
	Telephone       string `json:"telephone"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdateUserStatusRequest represents the user status update request body
type UpdateUserStatusRequest struct {
	Status string `json:"status"`
}

// Signup handles admin registration
// @Summary Register admin account
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body AdminSignupRequest true "Admin signup data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/signup [post]
func (h *AdminHandler) Signup(c *fiber.Ctx) error {
	var req AdminSignupRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Telephone == "" || req.Password == "" {
		return response.BadRequest(c, "Email, telephone na password bya ngombwa!")
	}
	if !validate.AdminPassword(req.Password) {
		return response.BadRequest(c, "Password igomba kuba ifite imibare 6 bya gito!")
	}

	admin, err := h.adminService.Signup(c.Context(), services.AdminSignupInput{
		Email:     strings.TrimSpace(strings.ToLower(req.Email)),
		Telephone: strings.TrimSpace(req.Telephone),
		Password:  req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdminExists):
			return response.BadRequest(c, "Admin account ishashuye!")
		default:
			return response.InternalServerError(c, "Ikosa mu kubika admin!")
		}
	}

	return response.Created(c, "Admin yanditswe neza!!!", admin)
}

// Login handles admin login
// @Summary Login admin
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body AdminLoginRequest true "Admin credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/login [post]
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Email na password bya ngombwa!")
	}

	admin, sessionID, err := h.adminService.Login(c.Context(), strings.TrimSpace(strings.ToLower(req.Email)), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			// unknown email and wrong password share one message
			return response.BadRequest(c, "Email cg password siyo!!")
		default:
			return response.InternalServerError(c, "Ikosa mu kureba admin!")
		}
	}

	return response.Success(c, "Winjiye neza admin!!", fiber.Map{
		"admin":     admin,
		"sessionId": sessionID,
	})
}

// GetProfile returns the logged-in admin's profile
// @Summary Get admin profile
// @Tags Admin
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/profile [get]
func (h *AdminHandler) GetProfile(c *fiber.Ctx) error {
	identity := c.Locals(middleware.LocalAdmin).(services.SessionIdentity)

	admin, err := h.adminService.GetProfile(c.Context(), identity.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdminNotFound):
			return response.NotFound(c, "Admin account not found!")
		default:
			return response.InternalServerError(c, "Ikosa mu kubona amakuru ya admin!")
		}
	}

	return response.Success(c, "", admin)
}

// UpdateProfile updates the logged-in admin's profile
// @Summary Update admin profile
// @Tags Admin
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Param body body UpdateProfileRequest true "Profile data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/profile [put]
func (h *AdminHandler) UpdateProfile(c *fiber.Ctx) error {
	identity := c.Locals(middleware.LocalAdmin).(services.SessionIdentity)
	sessionID := c.Locals(middleware.LocalSessionID).(string)

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Telephone == "" {
		return response.BadRequest(c, "Email na telephone bya ngombwa!")
	}
	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			return response.BadRequest(c, "Ukeneye password ya kuri ubu wo guhindura password!")
		}
		if !validate.AdminPassword(req.NewPassword) {
			return response.BadRequest(c, "Password igomba kuba ifite imibare 6 bya gito!")
		}
	}

	admin, err := h.adminService.UpdateProfile(c.Context(), identity.ID, sessionID, services.UpdateProfileInput{
		Email:           strings.TrimSpace(strings.ToLower(req.Email)),
		Telephone:       strings.TrimSpace(req.Telephone),
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdminNotFound):
			return response.NotFound(c, "Admin account not found!")
		case errors.Is(err, services.ErrEmailTaken):
			return response.BadRequest(c, "Email yamaze kwandikwa!")
		case errors.Is(err, services.ErrCurrentPasswordWrong):
			return response.BadRequest(c, "Password ya kuri ubu siyo!")
		default:
			return response.InternalServerError(c, "Ikosa mu guhindura amakuru!")
		}
	}

	return response.Success(c, "Amakuru ya admin yahinduwe neza!", admin)
}

// Logout revokes the admin session
// @Summary Logout admin
// @Tags Admin
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Success 200 {object} response.Response
// @Router /admin/logout [post]
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	// revoking an unknown session still succeeds
	if sessionID := c.Get("X-Session-ID"); sessionID != "" {
		h.adminService.Logout(sessionID)
	}
	return response.Success(c, "Wasohotse neza!", nil)
}

// ListUsers returns all registered end-users
// @Summary List users
// @Tags Admin
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Ikosa mu kubona abakoresha!")
	}
	return response.Success(c, "", users)
}

// GetUser returns one end-user by id
// @Summary Get user
// @Tags Admin
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/user/{id} [get]
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetUser(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "Umukoresha ntiyabonetse!")
		default:
			return response.InternalServerError(c, "Ikosa mu kubona umukoresha!")
		}
	}

	return response.Success(c, "", user)
}

// UpdateUserStatus activates or disables an end-user account
// @Summary Update user status
// @Tags Admin
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Param id path int true "User ID"
// @Param body body UpdateUserStatusRequest true "Status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/user/{id} [put]
func (h *AdminHandler) UpdateUserStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req UpdateUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.UpdateUserStatus(c.Context(), uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			return response.BadRequest(c, "Status igomba kuba active cg disabled!")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "Umukoresha ntiyabonetse!")
		default:
			return response.InternalServerError(c, "Ikosa mu guhindura status!")
		}
	}

	return response.Success(c, "Status updated successfully", user)
}
