package handlers

import (
	"errors"
	"strconv"

	"abonizera-api/internal/core/services"
	"abonizera-api/internal/pkg/pagination"
	"abonizera-api/internal/pkg/response"
	"abonizera-api/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// TicketHandler handles support ticket endpoints
type TicketHandler struct {
	ticketService *services.TicketService
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService *services.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// TicketRequest represents the ticket create/update request body
type TicketRequest struct {
	Amazina     string `json:"amazina"`
	Telephone   string `json:"telephone"`
	Description string `json:"description"`
}

// Create opens a support ticket
// @Summary Create ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Param body body TicketRequest true "Ticket data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /tickets [post]
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	var req TicketRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Amazina == "" || req.Telephone == "" {
		return response.BadRequest(c, "Amazina na telephone bya ngombwa!")
	}
	if !validate.Telephone(req.Telephone) {
		return response.BadRequest(c, "Telephone igomba kuba 10 imibare (07...)!")
	}

	ticket, err := h.ticketService.Create(c.Context(), services.TicketInput{
		Amazina:     req.Amazina,
		Telephone:   req.Telephone,
		Description: req.Description,
	})
	if err != nil {
		return response.InternalServerError(c, "Ikosa mu kubika ticket!")
	}

	return response.Created(c, "Ticket yanditswe neza!", fiber.Map{"ticket": ticket})
}

// ListAll returns every ticket
// @Summary List tickets
// @Tags Tickets
// @Produce json
// @Success 200 {object} response.Response
// @Router /tickets [get]
func (h *TicketHandler) ListAll(c *fiber.Ctx) error {
	tickets, err := h.ticketService.ListAll(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Ikosa mu kubona tickets!")
	}
	return response.Success(c, "Tickets zibaswe neza!", fiber.Map{"tickets": tickets})
}

// ListPage returns one page of tickets
// @Summary List tickets (paginated)
// @Tags Tickets
// @Produce json
// @Param page path int true "Page number"
// @Param limit path int true "Items per page"
// @Success 200 {object} response.Response
// @Router /tickets/page/{page}/limit/{limit} [get]
func (h *TicketHandler) ListPage(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Params("page"))
	limit, _ := strconv.Atoi(c.Params("limit"))
	params := pagination.NewParams(page, limit)

	tickets, meta, err := h.ticketService.ListPage(c.Context(), params)
	if err != nil {
		return response.InternalServerError(c, "Ikosa mu kubona tickets!")
	}

	return response.Success(c, "Tickets zibaswe neza!", fiber.Map{
		"tickets":      tickets,
		"currentPage":  meta.CurrentPage,
		"totalPages":   meta.TotalPages,
		"totalTickets": meta.TotalItems,
		"hasNext":      meta.HasNext,
		"hasPrev":      meta.HasPrev,
	})
}

// Get returns one ticket by id
// @Summary Get ticket
// @Tags Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tickets/{id} [get]
func (h *TicketHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid ticket ID")
	}

	ticket, err := h.ticketService.Get(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTicketNotFound):
			return response.NotFound(c, "Ticket ntibonetse!")
		default:
			return response.InternalServerError(c, "Ikosa mu kubona ticket!")
		}
	}

	return response.Success(c, "Ticket ibaswe neza!", fiber.Map{"ticket": ticket})
}

// Update replaces a ticket's fields
// @Summary Update ticket
// @Tags Tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param body body TicketRequest true "Ticket data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tickets/{id} [put]
func (h *TicketHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid ticket ID")
	}

	var req TicketRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Amazina == "" || req.Telephone == "" {
		return response.BadRequest(c, "Amazina na telephone bya ngombwa!")
	}
	if !validate.Telephone(req.Telephone) {
		return response.BadRequest(c, "Telephone igomba kuba 10 imibare (07...)!")
	}

	ticket, err := h.ticketService.Update(c.Context(), uint(id), services.TicketInput{
		Amazina:     req.Amazina,
		Telephone:   req.Telephone,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTicketNotFound):
			return response.NotFound(c, "Ticket ntibonetse!")
		default:
			return response.InternalServerError(c, "Ikosa mu guhindura ticket!")
		}
	}

	return response.Success(c, "Ticket yahinduwe neza!", fiber.Map{"ticket": ticket})
}

// Delete removes a ticket
// @Summary Delete ticket
// @Tags Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tickets/{id} [delete]
func (h *TicketHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid ticket ID")
	}

	if err := h.ticketService.Delete(c.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrTicketNotFound):
			return response.NotFound(c, "Ticket ntibonetse!")
		default:
			return response.InternalServerError(c, "Ikosa mu gusiba ticket!")
		}
	}

	return response.Success(c, "Ticket yasibwe neza!", nil)
}
