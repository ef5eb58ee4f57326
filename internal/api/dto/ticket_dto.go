package dto

import (
	"time"

	"github.com/supportdesk/helpdesk-service/internal/domain"
	"github.com/supportdesk/helpdesk-service/internal/service"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    domain.Priority `json:"priority"`
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	AgentID int64 `json:"agent_id"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.StatusName `json:"status"`
}

// UpdatePriorityRequest payload.
type UpdatePriorityRequest struct {
	Priority domain.Priority `json:"priority"`
}

// TicketResponse represents a ticket with its joined relations.
type TicketResponse struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    domain.Priority `json:"priority"`
	Status      *StatusResponse `json:"status,omitempty"`
	Customer    *UserResponse   `json:"customer,omitempty"`
	Agent       *UserResponse   `json:"agent,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	ClosedAt    *time.Time      `json:"closed_at"`

	// Messages is populated on the detail endpoint only.
	Messages []MessageResponse `json:"messages,omitempty"`
}

// TicketStatsResponse mirrors the per-status dashboard counts.
type TicketStatsResponse struct {
	Total             int64 `json:"total"`
	PendingModeration int64 `json:"pending_moderation"`
	Open              int64 `json:"open"`
	InProgress        int64 `json:"in_progress"`
	AwaitingCustomer  int64 `json:"awaiting_customer"`
	AwaitingAgent     int64 `json:"awaiting_agent"`
	Resolved          int64 `json:"resolved"`
	Closed            int64 `json:"closed"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Priority:    ticket.Priority,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
		ClosedAt:    ticket.ClosedAt,
	}
	if ticket.Status != nil {
		status := NewStatusResponse(ticket.Status)
		resp.Status = &status
	}
	if ticket.Customer != nil {
		customer := NewUserResponse(ticket.Customer)
		resp.Customer = &customer
	}
	if ticket.Agent != nil {
		agent := NewUserResponse(ticket.Agent)
		resp.Agent = &agent
	}
	return resp
}

// NewTicketStatsResponse maps service stats.
func NewTicketStatsResponse(stats *service.TicketStats) TicketStatsResponse {
	return TicketStatsResponse{
		Total:             stats.Total,
		PendingModeration: stats.PendingModeration,
		Open:              stats.Open,
		InProgress:        stats.InProgress,
		AwaitingCustomer:  stats.AwaitingCustomer,
		AwaitingAgent:     stats.AwaitingAgent,
		Resolved:          stats.Resolved,
		Closed:            stats.Closed,
	}
}
