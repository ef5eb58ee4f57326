package dto

import "github.com/supportdesk/helpdesk-service/internal/domain"

// StatusResponse represents a workflow status.
type StatusResponse struct {
	ID          int64             `json:"id"`
	Name        domain.StatusName `json:"name"`
	Description string            `json:"description"`
}

// NewStatusResponse maps a domain status.
func NewStatusResponse(status *domain.Status) StatusResponse {
	return StatusResponse{
		ID:          status.ID,
		Name:        status.Name,
		Description: status.Description,
	}
}
