package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/supportdesk/helpdesk-service/internal/api/dto"
	"github.com/supportdesk/helpdesk-service/internal/repository"
	apperrors "github.com/supportdesk/helpdesk-service/pkg/util"
)

// StatusesHandler exposes the workflow status catalog.
type StatusesHandler struct {
	statuses repository.StatusRepository
}

// NewStatusesHandler constructs handler.
func NewStatusesHandler(statuses repository.StatusRepository) *StatusesHandler {
	return &StatusesHandler{statuses: statuses}
}

// List GET /api/statuses.
func (h *StatusesHandler) List(c *fiber.Ctx) error {
	statuses, err := h.statuses.List(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	items := make([]dto.StatusResponse, 0, len(statuses))
	for i := range statuses {
		items = append(items, dto.NewStatusResponse(&statuses[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
