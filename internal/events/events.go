package events

import (
	"time"

	"github.com/supportdesk/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated  EventType = "ticket_created"
	EventTicketAssigned EventType = "ticket_assigned"
	EventTicketClosed   EventType = "ticket_closed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  int64       `json:"ticket_id"`
	ActorID   int64       `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload carries what the outbound notification needs.
type TicketCreatedPayload struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Priority      domain.Priority `json:"priority"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CompanyName   string          `json:"company_name,omitempty"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AgentID       int64  `json:"agent_id"`
	AgentUsername string `json:"agent_username"`
}

// TicketClosedPayload payload.
type TicketClosedPayload struct {
	Title string `json:"title"`
}
