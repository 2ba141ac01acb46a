package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"abonizera-api/internal/adapters/http/middleware"
	"abonizera-api/internal/core/services"
	"abonizera-api/internal/pkg/response"
	"abonizera-api/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// ClientHandler handles client rows, products, balances and stats
type ClientHandler struct {
	clientService *services.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// CreateClientRequest represents the client creation request body
type CreateClientRequest struct {
	Amazina          string `json:"amazina"`
	Telephone        string `json:"telephone"`
	Igicuruzwa       string `json:"igicuruzwa"`
	Amafaranga       string `json:"amafaranga"`
	CreatedBy        uint   `json:"created_by"`
	CreatorTelephone string `json:"creator_telephone"`
	CreatorName      string `json:"creator_name"`
}

// AddProductRequest represents the add-product request body
type AddProductRequest struct {
	Telephone        string `json:"telephone"`
	Igicuruzwa       string `json:"igicuruzwa"`
	Amafaranga       string `json:"amafaranga"`
	CreatedBy        uint   `json:"created_by"`
	CreatorTelephone string `json:"creator_telephone"`
	CreatorName      string `json:"creator_name"`
}

// UpdateClientRequest represents the client update request body
type UpdateClientRequest struct {
	Amazina    string `json:"amazina"`
	Telephone  string `json:"telephone"`
	Igicuruzwa string `json:"igicuruzwa"`
	Amafaranga string `json:"amafaranga"`
}

// UpdateBalanceRequest represents the balance update request body
type UpdateBalanceRequest struct {
	Telephone        string `json:"telephone"`
	AdditionalAmount int64  `json:"additionalAmount"`
	NewProduct       string `json:"newProduct"`
	UpdatedBy        uint   `json:"updated_by"`
}

// Create registers a new client row
// @Summary Create client
// @Tags Clients
// @Accept json
// @Produce json
// @Param body body CreateClientRequest true "Client data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var req CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Amazina == "" || req.Telephone == "" || req.CreatedBy == 0 || req.CreatorTelephone == "" {
		return response.BadRequest(c, "Amazina, Telephone, User ID na Creator Telephone bya ngombwa!")
	}
	if !validate.Telephone(req.Telephone) {
		return response.BadRequest(c, "Telephone igomba kuba 10 imibare (07...)!")
	}

	client, err := h.clientService.Create(c.Context(), services.CreateClientInput{
		Amazina:          req.Amazina,
		Telephone:        req.Telephone,
		Igicuruzwa:       req.Igicuruzwa,
		Amafaranga:       req.Amafaranga,
		CreatedBy:        req.CreatedBy,
		CreatorTelephone: req.CreatorTelephone,
		CreatorName:      req.CreatorName,
	})
	if err != nil {
		return response.InternalServerError(c, "Ikosa mu kubika umwizerwa!")
	}

	return response.Success(c, "Igicuruzwa cyongewemo neza!", fiber.Map{"client": client})
}

// AddProduct appends a product to an existing client telephone
// @Summary Add product to client
// @Tags Clients
// @Accept json
// @Produce json
// @Param body body AddProductRequest true "Product data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clients/add-product [post]
func (h *ClientHandler) AddProduct(c *fiber.Ctx) error {
	var req AddProductRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Telephone == "" || req.Igicuruzwa == "" || req.CreatedBy == 0 || req.CreatorTelephone == "" {
		return response.BadRequest(c, "Telephone, Igicuruzwa, User ID na Creator Telephone bya ngombwa!")
	}
	if !validate.Telephone(req.Telephone) {
		return response.BadRequest(c, "Telephone igomba kuba 10 imibare (07...)!")
	}

	client, err := h.clientService.AddProduct(c.Context(), services.AddProductInput{
		Telephone:        req.Telephone,
		Igicuruzwa:       req.Igicuruzwa,
		Amafaranga:       req.Amafaranga,
		CreatedBy:        req.CreatedBy,
		CreatorTelephone: req.CreatorTelephone,
		CreatorName:      req.CreatorName,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			return response.NotFound(c, "Nta mwizerwa ufite telephone iyo!")
		default:
			return response.InternalServerError(c, "Ikosa mu kubika igicuruzwa!")
		}
	}

	return response.Success(c, fmt.Sprintf("Igicuruzwa cyongewemo kuri %s!", client.Amazina), fiber.Map{"client": client})
}

// ListAll returns every client row
// @Summary List clients
// @Tags Clients
// @Produce json
// @Success 200 {object} response.Response
// @Router /clients [get]
func (h *ClientHandler) ListAll(c *fiber.Ctx) error {
	clients, err := h.clientService.ListAll(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Ikosa mu kubona abawizera!")
	}
	return response.Success(c, "Abawizera bibaswe neza!", fiber.Map{"clients": clients})
}

// ListMine returns the client rows a user registered
// @Summary List my clients
// @Tags Clients
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} response.Response
// @Router /my-clients/{userId} [get]
func (h *ClientHandler) ListMine(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	clients, err := h.clientService.ListByCreator(c.Context(), uint(userID))
	if err != nil {
		return response.InternalServerError(c, "Ikosa mu kubona abawizera wawe!")
	}
	return response.Success(c, "Abawizera wawe bibaswe neza!", fiber.Map{"clients": clients})
}

// GetByID returns one client row
// @Summary Get client by id
// @Tags Clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clients/{id} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid client ID")
	}

	client, err := h.clientService.GetByID(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			return response.NotFound(c, "Umwizerwa ntaborerwa!")
		default:
			return response.InternalServerError(c, "Ikosa mu kubona amakuru y'umwizerwa!")
		}
	}

	return response.Success(c, "Amakuru y'umwizerwa abaswe neza!", fiber.Map{"client": client})
}

// GetByTelephone returns the aggregated client view for a telephone
// @Summary Get client by telephone
// @Tags Clients
// @Produce json
// @Param telephone path string true "Telephone"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clients/telephone/{telephone} [get]
func (h *ClientHandler) GetByTelephone(c *fiber.Ctx) error {
	telephone := c.Params("telephone")

	client, err := h.clientService.GetAggregate(c.Context(), telephone)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			return response.NotFound(c, "Nta mwizerwa ufite telephone iyo!")
		default:
			return response.InternalServerError(c, "Ikosa mu kubona umwizerwa!")
		}
	}

	return response.Success(c, "Amakuru y'umwizerwa abaswe neza!", fiber.Map{"client": client})
}

// ListCrossUser returns a telephone's rows registered by other users.
// The acting user comes from the session; include_mine=true keeps the
// acting user's own rows.
// @Summary List a client's rows across users
// @Tags Clients
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Param telephone path string true "Telephone"
// @Param include_mine query bool false "Include own rows"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clients/abanyizera/{telephone} [get]
func (h *ClientHandler) ListCrossUser(c *fiber.Ctx) error {
	telephone := c.Params("telephone")
	actingUserID := c.Locals(middleware.LocalUserID).(uint)
	includeMine := c.Query("include_mine") == "true"

	clients, err := h.clientService.ListCrossUser(c.Context(), telephone, actingUserID, includeMine)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			return response.NotFound(c, "Nta mwizerwa ufite telephone iyo!")
		default:
			return response.InternalServerError(c, "Ikosa mu kubona abawizera!")
		}
	}

	return response.Success(c, "Abawizera bibaswe neza!", fiber.Map{"clients": clients})
}

// CheckTelephone reports whether a telephone is registered
// @Summary Check telephone
// @Tags Clients
// @Produce json
// @Param telephone path string true "Telephone"
// @Success 200 {object} response.Response
// @Router /clients/check-telephone/{telephone} [get]
func (h *ClientHandler) CheckTelephone(c *fiber.Ctx) error {
	telephone := c.Params("telephone")

	exists, clientName, err := h.clientService.CheckTelephone(c.Context(), telephone)
	if err != nil {
		return response.InternalServerError(c, "Ikosa mu kureba telephone!")
	}

	if exists {
		return c.JSON(fiber.Map{"exists": true, "clientName": clientName})
	}
	return c.JSON(fiber.Map{"exists": false})
}

// CheckClient returns a telephone's first row when registered
// @Summary Check client existence
// @Tags Clients
// @Produce json
// @Param telephone path string true "Telephone"
// @Success 200 {object} response.Response
// @Router /clients/check/{telephone} [get]
func (h *ClientHandler) CheckClient(c *fiber.Ctx) error {
	telephone := c.Params("telephone")

	client, err := h.clientService.CheckClient(c.Context(), telephone)
	if err != nil {
		return response.InternalServerError(c, "Ikosa mu kureba umwizerwa!")
	}

	return c.JSON(fiber.Map{
		"exists": client != nil,
		"client": client,
	})
}

// Update overwrites a client row
// @Summary Update client
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path int true "Client ID"
// @Param body body UpdateClientRequest true "Client data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid client ID")
	}

	var req UpdateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Amazina == "" || req.Telephone == "" {
		return response.BadRequest(c, "Amazina na Telephone bya ngombwa!")
	}
	if !validate.Telephone(req.Telephone) {
		return response.BadRequest(c, "Telephone igomba kuba 10 imibare (07...)!")
	}

	client, err := h.clientService.Update(c.Context(), uint(id), services.UpdateClientInput{
		Amazina:    req.Amazina,
		Telephone:  req.Telephone,
		Igicuruzwa: req.Igicuruzwa,
		Amafaranga: req.Amafaranga,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			return response.NotFound(c, "Umwizerwa ntaborerwa!")
		default:
			return response.InternalServerError(c, "Ikosa mu guhindura umwizerwa!")
		}
	}

	return response.Success(c, "Umwizerwa wahinduwe neza!", fiber.Map{"client": client})
}

// UpdateBalance adds an amount to a client's balance
// @Summary Update client balance
// @Tags Clients
// @Accept json
// @Produce json
// @Param body body UpdateBalanceRequest true "Balance data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clients/update-balance [put]
func (h *ClientHandler) UpdateBalance(c *fiber.Ctx) error {
	var req UpdateBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if !validate.Telephone(req.Telephone) {
		return response.BadRequest(c, "Telephone igomba kuba 10 imibare (07...)!")
	}

	result, err := h.clientService.UpdateBalance(c.Context(), services.UpdateBalanceInput{
		Telephone:        req.Telephone,
		AdditionalAmount: req.AdditionalAmount,
		NewProduct:       req.NewProduct,
		UpdatedBy:        req.UpdatedBy,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			return response.NotFound(c, "Umwizerwa ntabwo abonetse")
		default:
			return response.InternalServerError(c, "Ikosa mu guhindura balance!")
		}
	}

	return response.Success(c, "Balance yahinduwe neza!", result)
}

// DeleteProduct removes one client row
// @Summary Delete product
// @Tags Clients
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clients/product/{id} [delete]
func (h *ClientHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	if err := h.clientService.DeleteProduct(c.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			return response.NotFound(c, "Igicuruzwa ntibonetse!")
		default:
			return response.InternalServerError(c, "Ikosa mu gusiba igicuruzwa!")
		}
	}

	return response.Success(c, "Igicuruzwa cyasibwe neza!", nil)
}

// DeleteClient removes every row of a client telephone
// @Summary Delete client
// @Tags Clients
// @Produce json
// @Param telephone path string true "Telephone"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clients/{telephone} [delete]
func (h *ClientHandler) DeleteClient(c *fiber.Ctx) error {
	telephone := c.Params("telephone")

	if _, err := h.clientService.DeleteClient(c.Context(), telephone); err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			return response.NotFound(c, "Nta mwizerwa ufite telephone iyo!")
		default:
			return response.InternalServerError(c, "Ikosa mu gusiba umwizerwa!")
		}
	}

	return response.Success(c, "Umwizerwa n'ibicuruzwa byasibwe neza!", nil)
}

// Stats returns the dashboard totals
// @Summary Client statistics
// @Tags Clients
// @Produce json
// @Success 200 {object} models.ClientStats
// @Router /clients/stats [get]
func (h *ClientHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.clientService.Stats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Ikosa mu kubona statistics!")
	}

	return c.JSON(stats)
}
