package handlers

import (
	"strconv"

	"abonizera-api/internal/core/services"
	"abonizera-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HistoryHandler handles the payment history endpoints
type HistoryHandler struct {
	historyService *services.HistoryService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historyService *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// RecordHistoryRequest represents the history record request body
type RecordHistoryRequest struct {
	AbonizeraID uint   `json:"abonizera_id"`
	Amazina     string `json:"amazina"`
	Amafaranga  string `json:"amafaranga"`
	Telephone   string `json:"telephone"`
	Igicuruzwa  string `json:"igicuruzwa"`
}

// Record appends a payment history entry
// @Summary Record payment history
// @Tags History
// @Accept json
// @Produce json
// @Param body body RecordHistoryRequest true "History data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /history [post]
func (h *HistoryHandler) Record(c *fiber.Ctx) error {
	var req RecordHistoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.AbonizeraID == 0 || req.Amazina == "" || req.Telephone == "" {
		return response.BadRequest(c, "Abonizera ID, Amazina na Telephone bya ngombwa!")
	}

	entry, err := h.historyService.Record(c.Context(), services.RecordInput{
		AbonizeraID: req.AbonizeraID,
		Amazina:     req.Amazina,
		Telephone:   req.Telephone,
		Amafaranga:  req.Amafaranga,
		Igicuruzwa:  req.Igicuruzwa,
	})
	if err != nil {
		return response.InternalServerError(c, "Ikosa mu kubika amakuru mu history!")
	}

	return response.Success(c, "Amakuru yanditswe mu history!", fiber.Map{"id": entry.ID})
}

// ListAll returns the full payment history
// @Summary List payment history
// @Tags History
// @Produce json
// @Success 200 {object} response.Response
// @Router /history [get]
func (h *HistoryHandler) ListAll(c *fiber.Ctx) error {
	entries, err := h.historyService.ListAll(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Ikosa mu kubona history!")
	}
	return response.Success(c, "History ibaswe neza!", fiber.Map{"history": entries})
}

// ListByUser returns the history of client rows a user registered
// @Summary List user payment history
// @Tags History
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} response.Response
// @Router /history/user/{userId} [get]
func (h *HistoryHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	entries, err := h.historyService.ListByCreator(c.Context(), uint(userID))
	if err != nil {
		return response.InternalServerError(c, "Ikosa mu kubona history y'umukoresha!")
	}
	return response.Success(c, "History ibaswe neza!", fiber.Map{"history": entries})
}
